package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// UserResponse 用户响应结构体
type UserResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Company  string    `json:"company"`
	Plan     string    `json:"plan"`
	JoinDate time.Time `json:"joinDate"`
	Avatar   string    `json:"avatar"`
}

// NewUserResponse 从用户模型构建响应
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Company:  u.Company,
		Plan:     u.Plan,
		JoinDate: u.JoinDate,
		Avatar:   u.Avatar,
	}
}

// StatsResponse 仪表盘统计响应结构体
type StatsResponse struct {
	WellnessScore       int  `json:"wellnessScore"`
	ActivitiesCompleted int  `json:"activitiesCompleted"`
	StreakDays          int  `json:"streakDays"`
	TotalPoints         int  `json:"totalPoints"`
	WeeklyGoal          int  `json:"weeklyGoal"`
	WeeklyProgress      int  `json:"weeklyProgress"`
	Monitoring          bool `json:"monitoring"`
}

// ChallengeResponse 挑战响应结构体，目录定义与实例状态合并后的视图
type ChallengeResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Target      float64    `json:"target"`
	Points      int        `json:"points"`
	Icon        string     `json:"icon"`
	Unit        string     `json:"unit"`
	Progress    float64    `json:"progress"`
	IsActive    bool       `json:"isActive"`
	IsCompleted bool       `json:"isCompleted"`
	StartTime   *time.Time `json:"startTime,omitempty"`
}

// DecodeUserSnapshot 解析状态里保存的用户快照
// 损坏的快照返回错误，调用方应清掉相关状态键并按未登录处理
func DecodeUserSnapshot(raw string) (*UserResponse, error) {
	var user UserResponse
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("用户快照缺少ID")
	}
	return &user, nil
}

// RestoreStateResponse 客户端状态恢复响应结构体
type RestoreStateResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *UserResponse     `json:"user,omitempty"`
	State         map[string]string `json:"state"`
}
