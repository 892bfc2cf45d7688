package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/models"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
	"gorm.io/gorm"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// CreateRestaurant -> register a restaurant with its seating preference
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name              string `json:"name" binding:"required"`
		SeatingPreference string `json:"seating_preference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:              req.Name,
		SeatingPreference: req.SeatingPreference,
	}
	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New restaurant created: %s", restaurant.Name)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created successfully", restaurant)
}

// GetAllRestaurants -> paginated listing
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	page, limit, offset := utils.ParsePagination(c)

	var total int64
	if err := rc.DB.Model(&models.Restaurant{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var restaurants []models.Restaurant
	if err := rc.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondPage(c, http.StatusOK, "List of restaurants", restaurants, utils.NewPageMeta(total, page, limit))
}

// GetRestaurantByID -> detail of one restaurant
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, c.Param("restaurant_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}
