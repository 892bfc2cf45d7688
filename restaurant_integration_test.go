package main

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
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/router"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
)

func setupIntegration(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Customer{},
		&models.Table{},
		&models.Order{},
	))

	return router.SetupRouter(db)
}

func request(r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// Full flow: register, login, create restaurant and tables, take a
// reservation, hit the conflict, cancel, and watch the table free up.
func TestReservationLifecycle(t *testing.T) {
	r := setupIntegration(t)

	w := request(r, http.MethodPost, "/register", "", map[string]interface{}{
		"name":     "Admin",
		"email":    "admin@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = request(r, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &login)
	require.NotEmpty(t, login.Token)
	token := login.Token

	// wrong password is rejected
	w = request(r, http.MethodPost, "/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/admin/restaurants", token, map[string]interface{}{
		"name":               "Corner Bistro",
		"seating_preference": "window-first",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var restaurant models.Restaurant
	decodeData(t, w, &restaurant)

	tableBody := map[string]interface{}{
		"table_no":      1,
		"capacity":      4,
		"cost_person":   100,
		"restaurant_id": restaurant.ID,
		"floor_type":    "indoor",
		"position":      map[string]interface{}{"x": 1, "y": 1},
	}
	w = request(r, http.MethodPost, "/admin/tables", token, tableBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var table models.Table
	decodeData(t, w, &table)
	assert.Equal(t, "horizontal", table.Position.Align)

	// table numbers are unique per restaurant
	w = request(r, http.MethodPost, "/admin/tables", token, tableBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	// no auth, no write
	w = request(r, http.MethodPost, "/admin/tables", "", tableBody)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, http.MethodPost, "/admin/customers", token, map[string]interface{}{
		"name": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var customer models.Customer
	decodeData(t, w, &customer)

	slot := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	orderBody := map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"customer_id":   customer.ID,
		"table_ids":     []uint{table.ID},
		"delivery_time": slot.Format(time.RFC3339),
	}
	w = request(r, http.MethodPost, "/orders", "", orderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	decodeData(t, w, &order)

	// same table, same slot: rejected
	w = request(r, http.MethodPost, "/orders", "", orderBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	availURL := fmt.Sprintf("/restaurants/%d/tables?timestamp=%s", restaurant.ID, slot.Format(time.RFC3339))
	w = request(r, http.MethodGet, availURL, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view struct {
		Tables []struct {
			TableStatus string `json:"table_status"`
			Customer    string `json:"customer"`
		} `json:"tables"`
		AvailableCount int64 `json:"available_count"`
		OccupiedCount  int64 `json:"occupied_count"`
	}
	decodeData(t, w, &view)
	require.Len(t, view.Tables, 1)
	assert.Equal(t, "reserved", view.Tables[0].TableStatus)
	assert.Equal(t, "Alice", view.Tables[0].Customer)
	assert.Equal(t, int64(1), view.OccupiedCount)

	w = request(r, http.MethodPatch, fmt.Sprintf("/admin/orders/%d/cancel", order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// cancelled order releases the table for that slot
	w = request(r, http.MethodGet, availURL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &view)
	require.Len(t, view.Tables, 1)
	assert.Equal(t, "available", view.Tables[0].TableStatus)
	assert.Equal(t, int64(1), view.AvailableCount)

	// and the slot can be booked again
	w = request(r, http.MethodPost, "/orders", "", orderBody)
	assert.Equal(t, http.StatusCreated, w.Code)

	// logout blacklists the token
	w = request(r, http.MethodPost, "/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = request(r, http.MethodGet, "/admin/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
