package models

import (
	"strings"
	"time"
)

// User 用户模型
type User struct {
	ID           string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(100)" json:"name"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
	Company      string     `gorm:"type:varchar(100)" json:"company"`
	Plan         string     `gorm:"type:varchar(20);default:free" json:"plan"` // free 或 premium
	Avatar       string     `gorm:"type:varchar(255)" json:"avatar"`
	JoinDate     time.Time  `json:"joinDate"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	IsDemoUser   bool       `gorm:"default:false" json:"isDemoUser"`

	// 仪表盘统计
	TotalPoints         int `gorm:"default:0" json:"totalPoints"`
	ActivitiesCompleted int `gorm:"default:0" json:"activitiesCompleted"`
	StreakDays          int `gorm:"default:0" json:"streakDays"`
	WeeklyGoal          int `gorm:"default:50" json:"weeklyGoal"`
	WeeklyProgress      int `gorm:"default:0" json:"weeklyProgress"`
}

// FirstName 返回用户的名字部分，用于仪表盘问候语
func (u *User) FirstName() string {
	if u.Name == "" {
		return u.Email
	}
	parts := strings.Fields(u.Name)
	return parts[0]
}

// UserState 客户端状态键值对，对应浏览器本地存储的同步副本
// 每个键独立写入，最后写入者生效
type UserState struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID       string    `gorm:"type:varchar(50);uniqueIndex:idx_user_state_key" json:"user_id"`
	Key          string    `gorm:"type:varchar(50);uniqueIndex:idx_user_state_key" json:"key"`
	Value        string    `gorm:"type:text" json:"value"`
	LastModified time.Time `json:"lastModified"`
}

// 客户端状态的合法键名
const (
	StateKeyAuthToken          = "auth-token"
	StateKeyUserData           = "user-data"
	StateKeyOnboardingComplete = "onboarding-complete"
	StateKeyTheme              = "theme"
)

// KnownStateKeys 状态键白名单
var KnownStateKeys = []string{
	StateKeyAuthToken,
	StateKeyUserData,
	StateKeyOnboardingComplete,
	StateKeyTheme,
}

func IsKnownStateKey(key string) bool {
	for _, k := range KnownStateKeys {
		if k == key {
			return true
		}
	}
	return false
}
