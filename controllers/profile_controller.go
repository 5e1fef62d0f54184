package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comedor/lunch-orders-api/config"
	"github.com/comedor/lunch-orders-api/middleware"
	"github.com/comedor/lunch-orders-api/models"
	"github.com/comedor/lunch-orders-api/services"
)

// CreateProfile handles POST /api/v1/profile - bootstraps the local user row
// from the identity provider's /userinfo endpoint. Orders reference this row,
// so it must exist before the first submission.
func CreateProfile(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHENTICATED",
				"message": "You must sign in",
			},
		})
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TOKEN",
				"message": "Access token not found",
			},
		})
		return
	}

	auth0Service := services.NewAuth0Service(config.GetConfig())
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH_PROVIDER_ERROR",
				"message": "Failed to fetch user information from the identity provider",
			},
		})
		return
	}

	if userInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_EMAIL",
				"message": "Email not provided by the identity provider",
			},
		})
		return
	}

	user := models.User{
		Auth0ID:     auth0ID,
		DisplayName: userInfo.Name,
		Email:       userInfo.Email,
	}

	db := config.GetDB()
	if err := db.Create(&user).Error; err != nil {
		// Duplicate detection that works with both PostgreSQL and SQLite
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_EXISTS",
					"message": "A profile for this user or email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create profile",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetMyProfile handles GET /api/v1/profile/me - returns the caller's profile
// plus the name used for greeting text (display name, falling back to email)
func GetMyProfile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":            user.ID,
			"auth0_id":      user.Auth0ID,
			"display_name":  user.DisplayName,
			"email":         user.Email,
			"greeting_name": user.GreetingName(),
		},
	})
}
