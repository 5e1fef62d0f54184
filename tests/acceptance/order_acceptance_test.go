package acceptance

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

// The acceptance criteria here mirror the behaviors users rely on every day:
// an order submitted for a date shows up exactly there, reversed history
// ranges warn instead of failing, and today's orders cannot be deleted.

func newAcceptanceRouter(auth0ID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := testutil.MockAuthMiddleware(auth0ID, "mock-token")
	v1 := router.Group("/api/v1")
	v1.POST("/orders", auth, controllers.CreateOrder)
	v1.GET("/orders", auth, controllers.ListDayOrders)
	v1.GET("/orders/history", auth, controllers.ListOrderHistory)
	v1.DELETE("/orders/:id", auth, controllers.DeleteOrder)

	return router
}

func request(router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func TestAcceptanceSingleDayRangeSelectsExactlyThatDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	user := testutil.CreateUser(t, db, "auth0|diner", "Ana")
	db.Create(&models.Order{UserID: user.ID, Date: "2024-06-04", Type: models.TypeSoup})
	db.Create(&models.Order{UserID: user.ID, Date: "2024-06-05", Type: models.TypeCombo1})
	db.Create(&models.Order{UserID: user.ID, Date: "2024-06-06", Type: models.TypeOption2})

	router := newAcceptanceRouter(user.Auth0ID)

	w, response := request(router, "GET", "/api/v1/orders/history?desde=2024-06-05&hasta=2024-06-05", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	items := response["data"].([]interface{})
	if assert.Len(t, items, 1, "desde == hasta must select exactly that day") {
		assert.Equal(t, "2024-06-05", items[0].(map[string]interface{})["date"])
	}
}

func TestAcceptanceReversedRangeWarnsRegardlessOfData(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	user := testutil.CreateUser(t, db, "auth0|diner", "Ana")
	for day := 1; day <= 10; day++ {
		db.Create(&models.Order{UserID: user.ID, Date: fmt.Sprintf("2024-06-%02d", day), Type: models.TypeSoup})
	}

	router := newAcceptanceRouter(user.Auth0ID)

	w, response := request(router, "GET", "/api/v1/orders/history?desde=2024-06-10&hasta=2024-06-01", nil)

	assert.Equal(t, http.StatusOK, w.Code, "A reversed range is reported, not thrown")
	assert.Empty(t, response["data"].([]interface{}))
	assert.NotEmpty(t, response["warning"])
}

func TestAcceptanceTodaysOrderIsImmutable(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	user := testutil.CreateUser(t, db, "auth0|diner", "Ana")
	today := time.Now().Format("2006-01-02")
	order := models.Order{UserID: user.ID, Date: today, Type: models.TypeSoup}
	db.Create(&order)

	router := newAcceptanceRouter(user.Auth0ID)

	// The listing suppresses the affordance
	historyURL := fmt.Sprintf("/api/v1/orders/history?desde=%s&hasta=%s", today, today)
	w, response := request(router, "GET", historyURL, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := response["data"].([]interface{})
	if assert.Len(t, items, 1) {
		assert.Equal(t, false, items[0].(map[string]interface{})["can_delete"])
	}

	// And the server refuses even a direct call
	w, response = request(router, "DELETE", fmt.Sprintf("/api/v1/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "ORDER_LOCKED", errorData["code"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAcceptanceRepeatedDayListingIsStable(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	user := testutil.CreateUser(t, db, "auth0|diner", "Ana")
	router := newAcceptanceRouter(user.Auth0ID)

	for _, typ := range []string{"soup", "combo2"} {
		w, _ := request(router, "POST", "/api/v1/orders", map[string]interface{}{
			"date": "2024-06-05",
			"type": typ,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	_, first := request(router, "GET", "/api/v1/orders?date=2024-06-05", nil)
	_, second := request(router, "GET", "/api/v1/orders?date=2024-06-05", nil)

	assert.Equal(t, first["data"], second["data"], "Same inputs, no writes in between: identical listings")
}
