package models

import "time"

// ChallengeDefinition 挑战定义，来自静态目录
type ChallengeDefinition struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"` // posture / health / breaks / mental
	Target      float64 `json:"target"`
	Points      int     `json:"points"`
	Icon        string  `json:"icon"`
	Unit        string  `json:"unit"`
}

// ChallengeCatalog 返回固定的挑战目录
// 客户端会保存挑战ID，保持目录稳定
func ChallengeCatalog() []ChallengeDefinition {
	return []ChallengeDefinition{
		{
			ID:          "1",
			Title:       "Posture Perfect",
			Description: "Maintain good posture for 4 hours today",
			Category:    "posture",
			Target:      4,
			Points:      50,
			Icon:        "target",
			Unit:        "hours",
		},
		{
			ID:          "2",
			Title:       "Hydration Hero",
			Description: "Drink 8 glasses of water throughout the day",
			Category:    "health",
			Target:      8,
			Points:      30,
			Icon:        "coffee",
			Unit:        "glasses",
		},
		{
			ID:          "3",
			Title:       "Break Master",
			Description: "Take 6 micro-breaks this week",
			Category:    "breaks",
			Target:      6,
			Points:      100,
			Icon:        "clock",
			Unit:        "breaks",
		},
		{
			ID:          "4",
			Title:       "Eye Care Champion",
			Description: "Complete 20-20-20 rule 10 times today",
			Category:    "health",
			Target:      10,
			Points:      40,
			Icon:        "eye",
			Unit:        "exercises",
		},
		{
			ID:          "5",
			Title:       "Mindful Moments",
			Description: "Practice 3 breathing exercises today",
			Category:    "mental",
			Target:      3,
			Points:      60,
			Icon:        "heart",
			Unit:        "exercises",
		},
		{
			ID:          "6",
			Title:       "Focus Flow",
			Description: "Maintain focus for 2 hours straight",
			Category:    "mental",
			Target:      2,
			Points:      80,
			Icon:        "brain",
			Unit:        "hours",
		},
	}
}

// FindChallengeDefinition 按ID查找挑战定义
func FindChallengeDefinition(id string) (ChallengeDefinition, bool) {
	for _, def := range ChallengeCatalog() {
		if def.ID == id {
			return def, true
		}
	}
	return ChallengeDefinition{}, false
}

// ProgressRule 自动推进节奏：每经过 Interval 增加 Increment
type ProgressRule struct {
	Interval  time.Duration
	Increment float64
}

// ProgressRuleFor 返回某个挑战的推进节奏
// 节奏按分类配置，个别挑战有专门的调校值（这是有意的调参数据，不要归一化）
func ProgressRuleFor(def ChallengeDefinition) ProgressRule {
	switch def.Category {
	case "posture":
		// 每30秒 = 0.1小时
		return ProgressRule{Interval: 30 * time.Second, Increment: 0.1}
	case "health":
		// 每45秒 = 1杯水/1次练习
		return ProgressRule{Interval: 45 * time.Second, Increment: 1}
	case "breaks":
		// 每60秒 = 1次休息
		return ProgressRule{Interval: 60 * time.Second, Increment: 1}
	case "mental":
		// 每40秒，「Focus Flow」按小时计为0.2，其余按次数计为1
		if def.ID == "6" {
			return ProgressRule{Interval: 40 * time.Second, Increment: 0.2}
		}
		return ProgressRule{Interval: 40 * time.Second, Increment: 1}
	}
	return ProgressRule{}
}

// ChallengeState 用户的挑战实例状态
type ChallengeState struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID      string     `gorm:"type:varchar(50);uniqueIndex:idx_challenge_user" json:"user_id"`
	ChallengeID string     `gorm:"type:varchar(50);uniqueIndex:idx_challenge_user" json:"challengeId"`
	Progress    float64    `json:"progress"`
	IsActive    bool       `json:"isActive"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	LastUpdate  *time.Time `json:"lastUpdate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Completed 是否已到达终态
func (s *ChallengeState) Completed() bool {
	return s.CompletedAt != nil
}
