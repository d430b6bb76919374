package controllers

import (
	"net/http"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

// UserController 用户控制器
type UserController struct {
	monitor *services.MonitorService
	store   services.StateStore
}

// NewUserController 创建用户控制器
func NewUserController(monitor *services.MonitorService, store services.StateStore) *UserController {
	return &UserController{monitor: monitor, store: store}
}

// GetUser 获取当前用户资料
func (uc *UserController) GetUser(c *gin.Context) {
	uid := c.GetString("uid")

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		config.Logger.Errorw("获取用户信息失败", "error", err, "uid", uid)
		c.JSON(http.StatusNotFound, gin.H{"error": "用户未找到"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": models.NewUserResponse(&user)})
}

// UpdateProfile 更新用户资料并广播变更
func (uc *UserController) UpdateProfile(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户未找到"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Company != "" {
		updates["company"] = req.Company
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"user": models.NewUserResponse(&user)})
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		config.Logger.Errorw("更新用户资料失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新资料失败"})
		return
	}

	// 会话快照与各实例的昵称缓存都要跟上
	persistAuthStateSnapshot(uc.store, &user)
	services.PublishUserUpdated(c.Request.Context(), user)

	config.Logger.Infow("用户资料已更新", "uid", uid)
	c.JSON(http.StatusOK, gin.H{"user": models.NewUserResponse(&user)})
}

// persistAuthStateSnapshot 资料变更后刷新会话里的用户快照
func persistAuthStateSnapshot(store services.StateStore, user *models.User) {
	token, ok := store.Get(user.ID, models.StateKeyAuthToken)
	if !ok {
		// 没有会话状态就不需要刷新
		return
	}
	persistAuthState(store, user, token)
}

// SelectPlan 切换订阅套餐
func (uc *UserController) SelectPlan(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户未找到"})
		return
	}

	if err := config.DB.Model(&user).Update("plan", req.Plan).Error; err != nil {
		config.Logger.Errorw("切换套餐失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "切换套餐失败"})
		return
	}

	persistAuthStateSnapshot(uc.store, &user)
	services.PublishUserUpdated(c.Request.Context(), user)

	c.JSON(http.StatusOK, gin.H{"user": models.NewUserResponse(&user)})
}

// GetStats 仪表盘统计数字
func (uc *UserController) GetStats(c *gin.Context) {
	uid := c.GetString("uid")

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		config.Logger.Errorw("获取用户信息失败", "error", err, "uid", uid)
		c.JSON(http.StatusNotFound, gin.H{"error": "用户未找到"})
		return
	}

	c.JSON(http.StatusOK, models.StatsResponse{
		WellnessScore:       services.CurrentWellnessScore(c.Request.Context(), uid),
		ActivitiesCompleted: user.ActivitiesCompleted,
		StreakDays:          user.StreakDays,
		TotalPoints:         user.TotalPoints,
		WeeklyGoal:          user.WeeklyGoal,
		WeeklyProgress:      user.WeeklyProgress,
		Monitoring:          uc.monitor.IsMonitoring(uid),
	})
}

// GetIntegrations 日历集成状态，目前为静态演示数据
func (uc *UserController) GetIntegrations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"integrations": []gin.H{
			{"id": "m365", "name": "Microsoft 365", "connected": true, "scopes": []string{"Calendars.Read"}},
			{"id": "teams", "name": "Teams Presence", "connected": false, "scopes": []string{"Presence.Read"}},
		},
	})
}
