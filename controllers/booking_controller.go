package controllers

import (
	"net/http"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/utils"

	"github.com/gin-gonic/gin"
)

// BookingController 健康咨询预约控制器
type BookingController struct{}

// CreateBooking 提交咨询预约
func (bc *BookingController) CreateBooking(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := models.ConsultationBooking{
		ID:            utils.GenerateID(),
		UserID:        uid,
		Name:          req.Name,
		Email:         req.Email,
		Topic:         req.Topic,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		config.Logger.Errorw("保存预约失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "预约失败"})
		return
	}

	config.Logger.Infow("新咨询预约", "uid", uid, "topic", req.Topic)
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// ListBookings 查看自己的预约记录
func (bc *BookingController) ListBookings(c *gin.Context) {
	uid := c.GetString("uid")

	var bookings []models.ConsultationBooking
	err := config.DB.Where("user_id = ?", uid).Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		config.Logger.Errorw("查询预约记录失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询预约失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
