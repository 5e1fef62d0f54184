package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comedor/lunch-orders-api/config"
	"github.com/comedor/lunch-orders-api/services"
	"github.com/comedor/lunch-orders-api/utils"
)

// GetMenu handles GET /api/v1/menu?date=YYYY-MM-DD - returns the menu for a
// date. A date with no configured menu is a normal outcome: the response is
// still successful with a null menu, and the client renders the "no menu"
// state. Store failures collapse to the same null outcome (logged by the
// service), so clients only ever see present/absent.
func GetMenu(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_DATE",
				"message": "Query parameter 'date' is required",
			},
		})
		return
	}

	if !utils.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DATE",
				"message": "Date must be formatted as YYYY-MM-DD",
			},
		})
		return
	}

	menuService := services.NewMenuService(config.GetDB())
	menu, _ := menuService.GetForDate(date)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    menu,
	})
}
