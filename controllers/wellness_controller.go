package controllers

import (
	"io"
	"net/http"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

// WellnessController 健康分析与监测控制器
type WellnessController struct {
	analysis *services.AnalysisService
	monitor  *services.MonitorService
}

// NewWellnessController 创建健康控制器
func NewWellnessController(analysis *services.AnalysisService, monitor *services.MonitorService) *WellnessController {
	return &WellnessController{analysis: analysis, monitor: monitor}
}

// Analyze 分析一帧画面
// 请求为 multipart 表单，画面放在 frame 字段；错误响应格式是对外契约，不可改动
func (wc *WellnessController) Analyze(c *gin.Context) {
	file, _, err := c.Request.FormFile("frame")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No frame provided"})
		return
	}
	defer file.Close()

	frame, err := io.ReadAll(file)
	if err != nil {
		config.Logger.Errorw("读取画面数据失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	reading := wc.analysis.Analyze(c.Request.Context(), frame)
	c.JSON(http.StatusOK, reading)
}

// Liveness 分析接口的存活探测
func (wc *WellnessController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "wellness-analysis",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// StartMonitoring 开启周期采样
func (wc *WellnessController) StartMonitoring(c *gin.Context) {
	uid := c.GetString("uid")
	wc.monitor.StartMonitoring(uid)
	c.JSON(http.StatusOK, gin.H{"monitoring": true})
}

// StopMonitoring 停止周期采样
func (wc *WellnessController) StopMonitoring(c *gin.Context) {
	uid := c.GetString("uid")
	wc.monitor.StopMonitoring(uid)
	c.JSON(http.StatusOK, gin.H{"monitoring": false})
}

// LatestReading 获取最近一次读数
func (wc *WellnessController) LatestReading(c *gin.Context) {
	uid := c.GetString("uid")

	reading, ok := services.LatestReading(c.Request.Context(), uid)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "暂无健康读数"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reading": reading,
		"score":   reading.Score(),
	})
}

// History 读数历史，供趋势图使用
func (wc *WellnessController) History(c *gin.Context) {
	uid := c.GetString("uid")

	var readings []models.WellnessReading
	err := config.DB.Where("user_id = ?", uid).
		Order("timestamp DESC").Limit(100).Find(&readings).Error
	if err != nil {
		config.Logger.Errorw("查询读数历史失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询历史失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings})
}
