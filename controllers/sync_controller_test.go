package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CheerioGo/models"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

func newSyncRouter(store services.StateStore, uid string) *gin.Engine {
	sc := NewSyncController(store)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("uid", uid) })
	r.GET("/state", sc.RestoreState)
	return r
}

func restoreState(t *testing.T, r *gin.Engine) models.RestoreStateResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("恢复状态应返回200，实际 %d", w.Code)
	}
	var resp models.RestoreStateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	return resp
}

func TestRestoreStateAuthenticated(t *testing.T) {
	store := services.NewMemoryStateStore()
	store.Save("u1", models.StateKeyAuthToken, "token-1")
	store.Save("u1", models.StateKeyUserData, `{"id":"u1","name":"Alex Chen","email":"alex@example.com"}`)
	store.Save("u1", models.StateKeyTheme, "dark")

	resp := restoreState(t, newSyncRouter(store, "u1"))
	if !resp.Authenticated {
		t.Fatalf("完整会话状态应恢复为已登录")
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("应带回用户快照: %+v", resp.User)
	}
	if resp.State[models.StateKeyTheme] != "dark" {
		t.Fatalf("其余状态键应原样带回: %+v", resp.State)
	}
}

func TestRestoreStateCorruptSnapshotClearsSession(t *testing.T) {
	// 损坏的用户快照按未登录处理，且脏键要被清掉而不是下次继续出错
	store := services.NewMemoryStateStore()
	store.Save("u1", models.StateKeyAuthToken, "token-1")
	store.Save("u1", models.StateKeyUserData, `{not json`)
	store.Save("u1", models.StateKeyTheme, "dark")

	resp := restoreState(t, newSyncRouter(store, "u1"))
	if resp.Authenticated || resp.User != nil {
		t.Fatalf("损坏快照不应恢复为已登录: %+v", resp)
	}
	if _, ok := resp.State[models.StateKeyAuthToken]; ok {
		t.Fatalf("响应里不应再带令牌")
	}
	if _, ok := resp.State[models.StateKeyUserData]; ok {
		t.Fatalf("响应里不应再带损坏的快照")
	}
	if resp.State[models.StateKeyTheme] != "dark" {
		t.Fatalf("无关状态键应保留: %+v", resp.State)
	}

	// 存储里的脏键也要被清掉
	if _, ok := store.Get("u1", models.StateKeyAuthToken); ok {
		t.Fatalf("令牌键应已从存储中清除")
	}
	if _, ok := store.Get("u1", models.StateKeyUserData); ok {
		t.Fatalf("快照键应已从存储中清除")
	}
	if _, ok := store.Get("u1", models.StateKeyTheme); !ok {
		t.Fatalf("其余状态键不应被误删")
	}
}

func TestRestoreStateWithoutSession(t *testing.T) {
	resp := restoreState(t, newSyncRouter(services.NewMemoryStateStore(), "u1"))
	if resp.Authenticated || resp.User != nil {
		t.Fatalf("无会话状态应恢复为未登录: %+v", resp)
	}
	if len(resp.State) != 0 {
		t.Fatalf("无状态时应返回空集合: %+v", resp.State)
	}
}
