package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/services"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
	"gorm.io/gorm"
)

// OrderController covers the slim slice of order management this service
// owns: binding an order to tables for a delivery slot. Menu items, pricing
// and payment live elsewhere.
type OrderController struct {
	DB    *gorm.DB
	Guard *services.ReservationGuard
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:    db,
		Guard: services.NewReservationGuard(db),
	}
}

// CreateOrder -> bind an order to one or more tables for a delivery slot.
// The assignment is rejected when any target table already has a
// non-cancelled order in the same slot.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		CustomerID   uint   `json:"customer_id" binding:"required"`
		TableIDs     []uint `json:"table_ids" binding:"required,min=1"`
		DeliveryTime string `json:"delivery_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	deliveryTime, err := services.ParseTimestamp(req.DeliveryTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tables []models.Table
	if err := oc.DB.Where("restaurant_id = ?", req.RestaurantID).Find(&tables, req.TableIDs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(tables) != len(req.TableIDs) {
		utils.RespondError(c, http.StatusNotFound, errors.New("one or more tables not found for this restaurant"))
		return
	}

	if err := oc.Guard.CanAssign(req.TableIDs, req.RestaurantID, deliveryTime); err != nil {
		var reserved *services.TableAlreadyReservedError
		if errors.As(err, &reserved) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order := models.Order{
		RestaurantID: req.RestaurantID,
		CustomerID:   req.CustomerID,
		Tables:       tables,
		DeliveryTime: deliveryTime,
		Status:       models.OrderStatusConfirmed,
	}
	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created for restaurant %d (%d tables)",
		order.ID, order.RestaurantID, len(tables))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> paginated listing with table bindings and customer
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	if err := oc.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Tables").Preload("Customer").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "List of orders", orders, utils.NewPageMeta(total, page, limit))
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Tables").Preload("Customer").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CancelOrder -> mark an order cancelled; its tables free up for the slot
func (oc *OrderController) CancelOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = models.OrderStatusCancelled
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d cancelled", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}
