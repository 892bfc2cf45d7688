package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// CreateCustomer -> staff registers a customer manually
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{Name: req.Name, Phone: req.Phone}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

// GetAllCustomers -> paginated listing
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	if err := cc.DB.Model(&models.Customer{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var customers []models.Customer
	if err := cc.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "List of customers", customers, utils.NewPageMeta(total, page, limit))
}

// GetCustomerByID -> detail of one customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}
