package controllers

import (
	"encoding/json"
	"net/http"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

// SyncController 客户端状态同步控制器
// 仪表盘的本地状态（令牌、用户快照、引导进度、主题）都放在服务端键值表里，
// 换浏览器或清缓存后仍能恢复
type SyncController struct {
	store services.StateStore
}

// NewSyncController 创建状态同步控制器
func NewSyncController(store services.StateStore) *SyncController {
	return &SyncController{store: store}
}

// persistAuthState 登录成功后写入会话状态键
func persistAuthState(store services.StateStore, user *models.User, token string) {
	userData, err := json.Marshal(models.NewUserResponse(user))
	if err != nil {
		config.Logger.Errorw("序列化用户快照失败", "error", err, "uid", user.ID)
		return
	}

	if err := store.Save(user.ID, models.StateKeyAuthToken, token); err != nil {
		config.Logger.Errorw("保存状态键失败", "error", err, "uid", user.ID, "key", models.StateKeyAuthToken)
	}
	if err := store.Save(user.ID, models.StateKeyUserData, string(userData)); err != nil {
		config.Logger.Errorw("保存状态键失败", "error", err, "uid", user.ID, "key", models.StateKeyUserData)
	}
}

// RestoreState 恢复客户端状态
// 用户快照损坏时视为未认证并清掉相关键，绝不让坏数据进入前端
func (sc *SyncController) RestoreState(c *gin.Context) {
	uid := c.GetString("uid")

	states, err := sc.store.List(uid)
	if err != nil {
		config.Logger.Errorw("读取客户端状态失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取状态失败"})
		return
	}

	resp := models.RestoreStateResponse{State: make(map[string]string)}
	var rawToken, rawUser string
	for _, s := range states {
		resp.State[s.Key] = s.Value
		switch s.Key {
		case models.StateKeyAuthToken:
			rawToken = s.Value
		case models.StateKeyUserData:
			rawUser = s.Value
		}
	}

	if rawToken != "" && rawUser != "" {
		user, err := models.DecodeUserSnapshot(rawUser)
		if err != nil {
			// 损坏的快照当作未登录处理，同时把脏数据清掉
			config.Logger.Warnw("用户快照损坏，清除会话状态", "error", err, "uid", uid)
			if clearErr := sc.store.Delete(uid, models.StateKeyAuthToken, models.StateKeyUserData); clearErr != nil {
				config.Logger.Errorw("清除会话状态失败", "error", clearErr, "uid", uid)
			}
			delete(resp.State, models.StateKeyAuthToken)
			delete(resp.State, models.StateKeyUserData)
		} else {
			resp.Authenticated = true
			resp.User = user
		}
	}

	c.JSON(http.StatusOK, resp)
}

// SaveState 写入一个客户端状态键
func (sc *SyncController) SaveState(c *gin.Context) {
	uid := c.GetString("uid")

	var req models.SaveStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsKnownStateKey(req.Key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的状态键"})
		return
	}

	if err := sc.store.Save(uid, req.Key, req.Value); err != nil {
		config.Logger.Errorw("保存状态键失败", "error", err, "uid", uid, "key", req.Key)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存状态失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "状态已保存"})
}

// DeleteState 删除一个客户端状态键
func (sc *SyncController) DeleteState(c *gin.Context) {
	uid := c.GetString("uid")
	key := c.Param("key")

	if !models.IsKnownStateKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的状态键"})
		return
	}

	if err := sc.store.Delete(uid, key); err != nil {
		config.Logger.Errorw("删除状态键失败", "error", err, "uid", uid, "key", key)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除状态失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "状态已删除"})
}
