package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/julian-of-21twelve-interactive/bytServer-sub001/controllers"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
)

// setupTestDBForTables uses in-memory SQLite with gorm error translation on,
// so the unique index behaves like the MySQL one.
func setupTestDBForTables(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Restaurant{},
		&models.Customer{},
		&models.Table{},
		&models.Order{},
	))
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	router.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetTablesByRestaurant)
	router.GET("/restaurants/:restaurant_id/available-tables", tableCtrl.GetAvailableTablesByRestaurant)
	return router
}

func createTestRestaurant(t *testing.T, db *gorm.DB) models.Restaurant {
	restaurant := models.Restaurant{Name: "R1", SeatingPreference: "window-first"}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

func tablePayload(restaurantID uint, tableNo int) map[string]interface{} {
	return map[string]interface{}{
		"table_no":      tableNo,
		"capacity":      4,
		"cost_person":   100,
		"restaurant_id": restaurantID,
		"floor_type":    "indoor",
		"position":      map[string]interface{}{"x": 1, "y": 1, "align": "horizontal"},
	}
}

func doJSON(r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	w := doJSON(router, http.MethodPost, "/tables", tablePayload(restaurant.ID, 5))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status bool         `json:"status"`
		Data   models.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, 5, resp.Data.TableNo)
	assert.Equal(t, "horizontal", resp.Data.Position.Align)
}

func TestCreateTableDuplicate(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	w := doJSON(router, http.MethodPost, "/tables", tablePayload(restaurant.ID, 5))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/tables", tablePayload(restaurant.ID, 5))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "5")
}

func TestGetAllTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	for i := 1; i <= 3; i++ {
		w := doJSON(router, http.MethodPost, "/tables", tablePayload(restaurant.ID, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, http.MethodGet, "/tables?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string         `json:"message"`
		Data    []models.Table `json:"data"`
		Meta    struct {
			TotalDocs  int64 `json:"totalDocs"`
			TotalPages int64 `json:"totalPages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "List of tables", resp.Message)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Meta.TotalDocs)
	assert.Equal(t, int64(2), resp.Meta.TotalPages)
}

func TestUpdateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	w := doJSON(router, http.MethodPost, "/tables", tablePayload(restaurant.ID, 5))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	payload := tablePayload(restaurant.ID, 5)
	payload["capacity"] = 8
	payload["booking_status"] = true

	url := "/tables/" + strconv.Itoa(int(created.Data.ID))
	w = doJSON(router, http.MethodPatch, url, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data models.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.Data.Capacity)
	assert.True(t, resp.Data.BookingStatus)
}

func TestDeleteTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	w := doJSON(router, http.MethodPost, "/tables", tablePayload(restaurant.ID, 5))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodDelete, "/tables/"+strconv.Itoa(int(created.Data.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/tables/"+strconv.Itoa(int(created.Data.ID)), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTableNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	w := doJSON(router, http.MethodDelete, "/tables/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTablesByRestaurantWithTimestamp(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	booked := models.Table{TableNo: 5, Capacity: 4, CostPerson: 100, RestaurantID: restaurant.ID, BookingStatus: true}
	require.NoError(t, db.Create(&booked).Error)
	reserved := models.Table{TableNo: 6, Capacity: 4, CostPerson: 100, RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&reserved).Error)

	slot := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	customer := models.Customer{Name: "Alice"}
	require.NoError(t, db.Create(&customer).Error)
	order := models.Order{
		RestaurantID: restaurant.ID,
		CustomerID:   customer.ID,
		Tables:       []models.Table{reserved},
		DeliveryTime: slot,
		Status:       models.OrderStatusConfirmed,
	}
	require.NoError(t, db.Create(&order).Error)

	url := fmt.Sprintf("/restaurants/%d/tables?timestamp=%s", restaurant.ID, slot.Format(time.RFC3339))
	w := doJSON(router, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Tables []struct {
				TableNo     int    `json:"table_no"`
				TableStatus string `json:"table_status"`
			} `json:"tables"`
			AvailableCount    int64  `json:"available_count"`
			OccupiedCount     int64  `json:"occupied_count"`
			SeatingPreference string `json:"seating_preference"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	statusByNo := map[int]string{}
	for _, tb := range resp.Data.Tables {
		statusByNo[tb.TableNo] = tb.TableStatus
	}
	assert.Equal(t, "occupied", statusByNo[5])
	assert.Equal(t, "reserved", statusByNo[6])
	assert.Equal(t, int64(1), resp.Data.AvailableCount)
	assert.Equal(t, int64(1), resp.Data.OccupiedCount)
	assert.Equal(t, "window-first", resp.Data.SeatingPreference)

	// one hour later the order no longer matches
	url = fmt.Sprintf("/restaurants/%d/tables?timestamp=%s", restaurant.ID, slot.Add(time.Hour).Format(time.RFC3339))
	w = doJSON(router, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	statusByNo = map[int]string{}
	for _, tb := range resp.Data.Tables {
		statusByNo[tb.TableNo] = tb.TableStatus
	}
	assert.Equal(t, "occupied", statusByNo[5])
	assert.Equal(t, "available", statusByNo[6])
}

func TestGetTablesByUnknownRestaurant(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	// unknown restaurant is an empty result, not an error
	w := doJSON(router, http.MethodGet, "/restaurants/424242/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Tables []interface{} `json:"tables"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Tables)
}

func TestGetTablesByRestaurantNoTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	url := fmt.Sprintf("/restaurants/%d/tables", restaurant.ID)
	w := doJSON(router, http.MethodGet, url, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAvailableTablesByRestaurant(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	restaurant := createTestRestaurant(t, db)
	router := setupTableRouter(db)

	table := models.Table{TableNo: 1, Capacity: 4, CostPerson: 100, RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&table).Error)

	slot := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	customer := models.Customer{Name: "Bob"}
	require.NoError(t, db.Create(&customer).Error)
	order := models.Order{
		RestaurantID: restaurant.ID,
		CustomerID:   customer.ID,
		Tables:       []models.Table{table},
		DeliveryTime: slot,
		Status:       models.OrderStatusConfirmed,
	}
	require.NoError(t, db.Create(&order).Error)

	// timestamp is mandatory on this endpoint
	w := doJSON(router, http.MethodGet, fmt.Sprintf("/restaurants/%d/available-tables", restaurant.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	url := fmt.Sprintf("/restaurants/%d/available-tables?timestamp=%s", restaurant.ID, slot.Format(time.RFC3339))
	w = doJSON(router, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []struct {
			TableNo         int    `json:"table_no"`
			AvailableStatus string `json:"available_status"`
			Customer        string `json:"customer"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "reserved", resp.Data[0].AvailableStatus)
	assert.Equal(t, "Bob", resp.Data[0].Customer)
}
