package controllers

import (
	"errors"
	"net/http"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

// PetController 虚拟宠物控制器
type PetController struct {
	pets *services.PetService
}

// NewPetController 创建宠物控制器
func NewPetController(pets *services.PetService) *PetController {
	return &PetController{pets: pets}
}

// loadPetState 取出宠物状态，首次访问时建档并套用时间衰减
func (pc *PetController) loadPetState(c *gin.Context, uid string, now time.Time) (*models.PetState, *models.User, bool) {
	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户未找到"})
		return nil, nil, false
	}

	var state models.PetState
	err := config.DB.Where("user_id = ?", uid).First(&state).Error
	if err != nil {
		state = models.PetState{
			UserID:    uid,
			Type:      "dog",
			Name:      "Wellness Buddy",
			Hunger:    80,
			Happiness: 85,
			LastScore: -1,
			LastFed:   now,
		}
		if err := config.DB.Create(&state).Error; err != nil {
			config.Logger.Errorw("创建宠物档案失败", "error", err, "uid", uid)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "宠物数据不可用"})
			return nil, nil, false
		}
	}

	services.SyncHappiness(&state, services.CurrentWellnessScore(c.Request.Context(), uid))
	return &state, &user, true
}

// savePetState 回写宠物状态
func savePetState(state *models.PetState) {
	if err := config.DB.Save(state).Error; err != nil {
		config.Logger.Errorw("保存宠物状态失败", "error", err, "uid", state.UserID)
	}
}

// petView 从状态与用户事实派生视图
func (pc *PetController) petView(c *gin.Context, state *models.PetState, user *models.User, now time.Time) models.PetView {
	facts := services.PetFacts{
		WellnessScore:       services.CurrentWellnessScore(c.Request.Context(), user.ID),
		ActivitiesCompleted: user.ActivitiesCompleted,
		TotalPoints:         user.TotalPoints,
	}
	return services.DerivePet(*state, facts, now)
}

// GetPet 获取宠物当前视图
func (pc *PetController) GetPet(c *gin.Context) {
	uid := c.GetString("uid")
	now := time.Now()

	state, user, ok := pc.loadPetState(c, uid, now)
	if !ok {
		return
	}
	savePetState(state)

	c.JSON(http.StatusOK, gin.H{"pet": pc.petView(c, state, user, now)})
}

// Interact 宠物互动：喂食、抚摸或聊天
func (pc *PetController) Interact(c *gin.Context) {
	uid := c.GetString("uid")
	now := time.Now()

	var req models.PetActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, user, ok := pc.loadPetState(c, uid, now)
	if !ok {
		return
	}

	var message string
	switch req.Action {
	case "feed":
		if err := pc.pets.Feed(state, now); err != nil {
			if errors.Is(err, services.ErrPetFull) {
				view := pc.petView(c, state, user, now)
				view.Message = state.Name + " is already full!"
				savePetState(state)
				c.JSON(http.StatusOK, gin.H{"pet": view})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "互动失败"})
			return
		}
		message = state.Name + " enjoyed the treat! +10 happiness"
	case "pet":
		pc.pets.Pet(state)
		message = "That feels nice!"
	case "talk":
		view := pc.petView(c, state, user, now)
		message = pc.pets.Talk(state.Type, view.Mood)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的互动类型"})
		return
	}

	savePetState(state)

	view := pc.petView(c, state, user, now)
	view.Message = message
	c.JSON(http.StatusOK, gin.H{"pet": view})
}

// UpdatePet 修改宠物名字或物种
func (pc *PetController) UpdatePet(c *gin.Context) {
	uid := c.GetString("uid")
	now := time.Now()

	var req models.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != "" && !models.IsValidPetType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的宠物类型"})
		return
	}

	state, user, ok := pc.loadPetState(c, uid, now)
	if !ok {
		return
	}

	if req.Name != "" {
		state.Name = req.Name
	}
	if req.Type != "" {
		state.Type = req.Type
	}
	savePetState(state)

	c.JSON(http.StatusOK, gin.H{"pet": pc.petView(c, state, user, now)})
}
