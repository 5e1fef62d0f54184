package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comedor/lunch-orders-api/config"
	"github.com/comedor/lunch-orders-api/middleware"
	"github.com/comedor/lunch-orders-api/models"
	"github.com/comedor/lunch-orders-api/services"
	"github.com/comedor/lunch-orders-api/utils"
)

// CreateOrderRequest represents the request body for submitting an order.
// Type is deliberately not tagged required: a missing selection is reported
// by the service with its own message, after the authentication check.
type CreateOrderRequest struct {
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	ExtraPortion bool    `json:"extra_portion"`
	Note         *string `json:"note"`
}

// HistoryItem is one history row enriched for display: the resolver output
// plus the deletion affordance hint.
type HistoryItem struct {
	models.Order
	Description string `json:"description"`
	CanDelete   bool   `json:"can_delete"`
}

// CreateOrder handles POST /api/v1/orders - submits one lunch order for the
// authenticated user
func CreateOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.Submit(user, req.Date, models.OrderType(req.Type), req.ExtraPortion, req.Note)
	if errors.Is(err, services.ErrMissingSelection) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_SELECTION",
				"message": "Select an option",
			},
		})
		return
	}
	if err != nil {
		// The store's message is surfaced verbatim on write failures.
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order registered",
		"data":    order,
	})
}

// ListDayOrders handles GET /api/v1/orders?date= - lists the authenticated
// user's orders for one date, in creation order. An empty result and a store
// failure look the same to the client; both render as an empty list.
func ListDayOrders(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	orders := orderService.ListForDate(user.ID, c.Query("date"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListOrderHistory handles GET /api/v1/orders/history?desde=&hasta= - lists
// the authenticated user's orders inside the closed date interval, newest
// date first, each described against the menu of its own date. A reversed
// range is a reported condition, not an error: 200 with a warning.
func ListOrderHistory(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	orders, menus, warning := orderService.ListRange(user.ID, c.Query("desde"), c.Query("hasta"))

	now := time.Now()
	items := make([]HistoryItem, 0, len(orders))
	for _, order := range orders {
		var menu *models.Menu
		if m, ok := menus[order.Date]; ok {
			menu = &m
		}
		items = append(items, HistoryItem{
			Order:       order,
			Description: order.Type.Describe(menu),
			CanDelete:   utils.DeletableOn(order.Date, now),
		})
	}

	response := gin.H{
		"success": true,
		"data":    items,
		"menus":   menus,
	}
	if warning != "" {
		response["warning"] = warning
	}
	c.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /api/v1/orders/:id - deletes one of the
// authenticated user's future orders. Ownership and the future-date rule are
// enforced here, not just by the client's affordance.
func DeleteOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ORDER_ID",
				"message": "Order ID must be a positive integer",
			},
		})
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	err = orderService.Delete(user.ID, uint(orderID), time.Now())
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to delete this order",
			},
		})
	case errors.Is(err, services.ErrOrderLocked):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_LOCKED",
				"message": "Orders for today or past dates cannot be deleted",
			},
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Deletion failed",
			},
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order deleted",
		})
	}
}

// requireUser resolves the authenticated user's database row, writing the
// appropriate error response when it cannot. A missing token means the
// session gatekeeper was bypassed or absent; a missing row means the profile
// was never bootstrapped.
func requireUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHENTICATED",
				"message": "You must sign in",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}
