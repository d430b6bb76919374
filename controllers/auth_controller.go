package controllers

import (
	"net/http"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/services"
	"CheerioGo/utils"

	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器
type AuthController struct {
	store services.StateStore
}

// NewAuthController 创建认证控制器
func NewAuthController(store services.StateStore) *AuthController {
	return &AuthController{store: store}
}

// 演示账号的固定身份
const (
	demoEmail = "demo@cheerio.app"
	demoName  = "Demo User"
)

// Register 邮箱注册
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 邮箱唯一
	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "该邮箱已注册"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		config.Logger.Errorw("密码加密失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "注册失败"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:           utils.GenerateID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Company:      req.Company,
		Plan:         "free",
		JoinDate:     now,
		LastLogin:    &now,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		config.Logger.Errorw("用户创建失败", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户创建失败"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}
	persistAuthState(ac.store, &user, token)

	config.Logger.Infow("用户注册成功", "userID", user.ID, "email", user.Email)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  models.NewUserResponse(&user),
	})
}

// Login 邮箱登录
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
		return
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码错误"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("last_login", now).Error; err != nil {
		config.Logger.Warnw("更新登录时间失败", "error", err, "uid", user.ID)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}
	persistAuthState(ac.store, &user, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  models.NewUserResponse(&user),
	})
}

// DemoLogin 一键进入演示账号，不存在时自动创建
func (ac *AuthController) DemoLogin(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("email = ?", demoEmail).First(&user).Error; err != nil {
		now := time.Now()
		user = models.User{
			ID:         utils.GenerateID(),
			Name:       demoName,
			Email:      demoEmail,
			Company:    "Cheerio Inc",
			Plan:       "premium",
			JoinDate:   now,
			LastLogin:  &now,
			IsDemoUser: true,
			// 演示账号带一些已有进度，仪表盘不至于全是零
			TotalPoints:         230,
			ActivitiesCompleted: 12,
			StreakDays:          5,
			WeeklyProgress:      18,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			config.Logger.Errorw("演示用户创建失败", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "用户创建失败"})
			return
		}
		config.Logger.Infow("演示用户创建成功", "userID", user.ID)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}
	persistAuthState(ac.store, &user, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  models.NewUserResponse(&user),
	})
}

// Logout 退出登录，清掉服务端保存的会话状态
func (ac *AuthController) Logout(c *gin.Context) {
	uid := c.GetString("uid")

	if err := ac.store.Delete(uid, models.StateKeyAuthToken, models.StateKeyUserData); err != nil {
		config.Logger.Warnw("清除会话状态失败", "error", err, "uid", uid)
	}

	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}
