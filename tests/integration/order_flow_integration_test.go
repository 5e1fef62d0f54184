package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comedor/lunch-orders-api/config"
	"github.com/comedor/lunch-orders-api/controllers"
	"github.com/comedor/lunch-orders-api/models"
	"github.com/comedor/lunch-orders-api/tests/testutil"
)

// newOrderRouter wires the order and menu routes behind the mock gatekeeper,
// mirroring the production route table.
func newOrderRouter(auth0ID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := testutil.MockAuthMiddleware(auth0ID, "mock-token")
	v1 := router.Group("/api/v1")
	v1.GET("/menu", auth, controllers.GetMenu)
	v1.POST("/orders", auth, controllers.CreateOrder)
	v1.GET("/orders", auth, controllers.ListDayOrders)
	v1.GET("/orders/history", auth, controllers.ListOrderHistory)
	v1.DELETE("/orders/:id", auth, controllers.DeleteOrder)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Response is not valid JSON: %v", err)
		}
	}
	return w, response
}

// TestOrderLifecycleIntegration walks one user through the whole flow:
// check the menu, submit an order, see it in the day listing and the
// history, then delete it while its date is still in the future.
func TestOrderLifecycleIntegration(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	user := testutil.CreateUser(t, db, "auth0|diner", "Ana")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	db.Create(&models.Menu{Date: tomorrow, Soup: "Lentil soup", Option1: "Chicken", Option2: "Fish"})

	router := newOrderRouter(user.Auth0ID)

	// The menu for tomorrow is available
	w, response := doJSON(t, router, "GET", "/api/v1/menu?date="+tomorrow, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	menu := response["data"].(map[string]interface{})
	assert.Equal(t, "Lentil soup", menu["soup"])

	// Submit a combo order with a note
	w, response = doJSON(t, router, "POST", "/api/v1/orders", map[string]interface{}{
		"date": tomorrow,
		"type": "combo1",
		"note": "No onions",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, response["message"].(string), "registered")
	orderID := uint(response["data"].(map[string]interface{})["id"].(float64))

	// The day listing shows it
	w, response = doJSON(t, router, "GET", "/api/v1/orders?date="+tomorrow, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)

	// The history describes it against the menu and offers deletion
	historyURL := fmt.Sprintf("/api/v1/orders/history?desde=%s&hasta=%s", tomorrow, tomorrow)
	w, response = doJSON(t, router, "GET", historyURL, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := response["data"].([]interface{})
	if assert.Len(t, items, 1) {
		item := items[0].(map[string]interface{})
		assert.Equal(t, "Combo option 1 (Lentil soup + Chicken)", item["description"])
		assert.Equal(t, true, item["can_delete"])
		assert.Equal(t, "No onions", item["note"])
	}

	// Delete it while still in the future
	w, _ = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone from the listing
	w, response = doJSON(t, router, "GET", "/api/v1/orders?date="+tomorrow, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, response["data"].([]interface{}))
}

// TestOrderWithoutMenuIntegration verifies that a missing menu never blocks
// the order flow: submission works and the history degrades the description
// to the raw order code.
func TestOrderWithoutMenuIntegration(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	user := testutil.CreateUser(t, db, "auth0|diner", "Ana")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	router := newOrderRouter(user.Auth0ID)

	// No menu for tomorrow
	w, response := doJSON(t, router, "GET", "/api/v1/menu?date="+tomorrow, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, response["data"], "Absent menu is a normal, successful outcome")

	// Ordering still works
	w, _ = doJSON(t, router, "POST", "/api/v1/orders", map[string]interface{}{
		"date": tomorrow,
		"type": "option1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// History falls back to the raw code
	historyURL := fmt.Sprintf("/api/v1/orders/history?desde=%s&hasta=%s", tomorrow, tomorrow)
	w, response = doJSON(t, router, "GET", historyURL, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := response["data"].([]interface{})
	if assert.Len(t, items, 1) {
		assert.Equal(t, "option1", items[0].(map[string]interface{})["description"])
	}
}

// TestCrossUserIsolationIntegration verifies that listings and deletion are
// scoped to the authenticated user.
func TestCrossUserIsolationIntegration(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	ana := testutil.CreateUser(t, db, "auth0|ana", "Ana")
	ben := testutil.CreateUser(t, db, "auth0|ben", "Ben")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	bensOrder := models.Order{UserID: ben.ID, Date: tomorrow, Type: models.TypeSoup}
	db.Create(&bensOrder)

	router := newOrderRouter(ana.Auth0ID)

	// Ana sees no orders
	w, response := doJSON(t, router, "GET", "/api/v1/orders?date="+tomorrow, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, response["data"].([]interface{}))

	// Ana cannot delete Ben's order
	w, response = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/orders/%d", bensOrder.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "FORBIDDEN", errorData["code"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count, "Ben's order must survive")
}
