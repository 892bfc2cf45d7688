package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/hub"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/services"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB       *gorm.DB
	Resolver *services.AvailabilityResolver
	Guard    *services.ReservationGuard
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:       db,
		Resolver: services.NewAvailabilityResolver(db),
		Guard:    services.NewReservationGuard(db),
	}
}

type tableRequest struct {
	TableNo       int              `json:"table_no" binding:"required"`
	Capacity      int              `json:"capacity" binding:"required,gt=0"`
	CostPerson    int              `json:"cost_person" binding:"required,gt=0"`
	RestaurantID  uint             `json:"restaurant_id" binding:"required"`
	BookingStatus *bool            `json:"booking_status"`
	FloorType     string           `json:"floor_type"`
	Position      *models.Position `json:"position"`
}

// GetAllTables -> plain paginated listing, no occupancy computation
func (tc *TableController) GetAllTables(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	if err := tc.DB.Model(&models.Table{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var tables []models.Table
	if err := tc.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.Publish(actorFrom(c), hub.ActionGetAll, tables)
	utils.RespondPage(c, http.StatusOK, "List of tables", tables, utils.NewPageMeta(total, page, limit))
}

// GetTablesByRestaurant -> tables of one restaurant, optionally filtered by
// floor type and annotated with occupancy status when ?timestamp= is given
func (tc *TableController) GetTablesByRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	floorType := c.DefaultQuery("floor_type", services.FloorTypeAll)
	ascending := c.Query("sort") == "asc"

	var at *time.Time
	if raw := c.Query("timestamp"); raw != "" {
		t, err := services.ParseTimestamp(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		at = &t
	}

	// Unknown restaurant is an empty result, not an error.
	var restaurant models.Restaurant
	if err := tc.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "List of tables", gin.H{
				"tables":             []services.TableAvailabilityView{},
				"available_count":    0,
				"occupied_count":     0,
				"seating_preference": "",
			})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views, counts, err := tc.Resolver.Resolve(uint(restaurantID), floorType, at, ascending)
	if err != nil {
		if errors.Is(err, services.ErrNoTablesFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, limit, offset := utils.ParsePagination(c)
	paged := pageOf(views, offset, limit)

	payload := gin.H{
		"tables":             paged,
		"available_count":    counts.Available,
		"occupied_count":     counts.Occupied,
		"seating_preference": restaurant.SeatingPreference,
	}

	hub.Publish(actorFrom(c), hub.ActionGetByRestaurant, payload)
	utils.RespondPage(c, http.StatusOK, "List of tables", payload,
		utils.NewPageMeta(int64(len(views)), page, limit))
}

// GetTableByID -> detail of a single table
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	hub.Publish(actorFrom(c), hub.ActionGet, table)
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CreateTable -> add a new table; (table_no, restaurant) must be unique
func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.DB.First(&models.Restaurant{}, req.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	if err := tc.Guard.CanCreate(req.TableNo, req.RestaurantID); err != nil {
		var dup *services.DuplicateTableError
		if errors.As(err, &dup) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table := models.Table{
		TableNo:      req.TableNo,
		Capacity:     req.Capacity,
		CostPerson:   req.CostPerson,
		RestaurantID: req.RestaurantID,
		FloorType:    req.FloorType,
	}
	if req.BookingStatus != nil {
		table.BookingStatus = *req.BookingStatus
	}
	if req.Position != nil {
		table.Position = *req.Position
	}
	if table.Position.Align == "" {
		table.Position.Align = "horizontal"
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		// The unique index is the authoritative duplicate guard; a racing
		// create that slipped past the pre-check lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, &services.DuplicateTableError{TableNo: req.TableNo})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.Publish(actorFrom(c), hub.ActionAdd, table)

	utils.InfoLogger.Printf("New table created: no=%d restaurant=%d", table.TableNo, table.RestaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> operator edit of an existing table
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.Guard.CanUpdate(table.ID, req.TableNo, req.RestaurantID); err != nil {
		var dup *services.DuplicateTableError
		if errors.As(err, &dup) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table.TableNo = req.TableNo
	table.Capacity = req.Capacity
	table.CostPerson = req.CostPerson
	table.RestaurantID = req.RestaurantID
	table.FloorType = req.FloorType
	if req.BookingStatus != nil {
		table.BookingStatus = *req.BookingStatus
	}
	if req.Position != nil {
		table.Position = *req.Position
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, &services.DuplicateTableError{TableNo: req.TableNo})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.Publish(actorFrom(c), hub.ActionUpdate, table)

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> remove a table; historical orders keep the stale reference
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.Publish(actorFrom(c), hub.ActionDelete, table)

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", table)
}

// GetAvailableTablesByRestaurant -> customer-facing availability for one
// delivery slot; tables come back available or reserved with the reserving
// customer's name
func (tc *TableController) GetAvailableTablesByRestaurant(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	at, err := services.ParseTimestamp(c.Query("timestamp"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	views, err := tc.Resolver.AvailableTables(uint(restaurantID), at)
	if err != nil {
		if errors.Is(err, services.ErrNoTablesFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	page, limit, offset := utils.ParsePagination(c)
	paged := pageOf(views, offset, limit)

	hub.Publish(actorFrom(c), hub.ActionGetAvailableByRes, paged)
	utils.RespondPage(c, http.StatusOK, "Available tables", paged,
		utils.NewPageMeta(int64(len(views)), page, limit))
}

// pageOf slices an in-memory result set; availability views are computed per
// request across the whole restaurant, so paging happens after the join.
func pageOf[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
