package controllers

import (
	"net/http"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

// ChallengeController 挑战控制器
type ChallengeController struct {
	engine *services.ChallengeEngine
}

// NewChallengeController 创建挑战控制器
func NewChallengeController(engine *services.ChallengeEngine) *ChallengeController {
	return &ChallengeController{engine: engine}
}

// challengeView 合并目录定义与实例状态
func challengeView(def models.ChallengeDefinition, state models.ChallengeState) models.ChallengeResponse {
	return models.ChallengeResponse{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Category:    def.Category,
		Target:      def.Target,
		Points:      def.Points,
		Icon:        def.Icon,
		Unit:        def.Unit,
		Progress:    state.Progress,
		IsActive:    state.IsActive,
		IsCompleted: state.Completed(),
		StartTime:   state.StartTime,
	}
}

// ListChallenges 列出全部挑战及当前进度
func (cc *ChallengeController) ListChallenges(c *gin.Context) {
	uid := c.GetString("uid")

	states := cc.engine.States(uid)
	catalog := models.ChallengeCatalog()

	views := make([]models.ChallengeResponse, 0, len(catalog))
	for i, def := range catalog {
		views = append(views, challengeView(def, states[i]))
	}

	c.JSON(http.StatusOK, gin.H{"challenges": views})
}

// StartChallenge 激活一个挑战
func (cc *ChallengeController) StartChallenge(c *gin.Context) {
	uid := c.GetString("uid")
	challengeID := c.Param("id")

	state, err := cc.engine.StartChallenge(uid, challengeID, time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	def, _ := models.FindChallengeDefinition(challengeID)
	c.JSON(http.StatusOK, gin.H{"challenge": challengeView(def, state)})
}

// PauseChallenge 暂停一个挑战，进度保留
func (cc *ChallengeController) PauseChallenge(c *gin.Context) {
	uid := c.GetString("uid")
	challengeID := c.Param("id")

	state, err := cc.engine.PauseChallenge(uid, challengeID, time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	def, _ := models.FindChallengeDefinition(challengeID)
	c.JSON(http.StatusOK, gin.H{"challenge": challengeView(def, state)})
}

// CompleteChallenge 立即完成一个挑战
func (cc *ChallengeController) CompleteChallenge(c *gin.Context) {
	uid := c.GetString("uid")
	challengeID := c.Param("id")

	state, err := cc.engine.CompleteNow(uid, challengeID, time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err == nil {
		def, _ := models.FindChallengeDefinition(challengeID)
		c.JSON(http.StatusOK, gin.H{
			"challenge":   challengeView(def, state),
			"totalPoints": user.TotalPoints,
		})
		return
	}

	def, _ := models.FindChallengeDefinition(challengeID)
	c.JSON(http.StatusOK, gin.H{"challenge": challengeView(def, state)})
}
