package models

import "time"

// WellnessReading 一次健康状态快照，由内置模拟器或外部分析服务产生
// 产生后不可变，下一次采样产生新的记录
type WellnessReading struct {
	ID             string    `gorm:"type:varchar(50);primaryKey" json:"-"`
	UserID         string    `gorm:"type:varchar(50);index" json:"-"`
	Mood           string    `gorm:"type:varchar(30)" json:"mood"`
	Posture        string    `gorm:"type:varchar(30)" json:"posture"`
	Alertness      string    `gorm:"type:varchar(30)" json:"alertness"`
	Confidence     float64   `json:"confidence"`
	FaceDetected   bool      `json:"faceDetected"`
	EyeAspectRatio float64   `json:"eyeAspectRatio"`
	BlinkRate      float64   `json:"blinkRate"`
	Timestamp      time.Time `json:"timestamp"`
}

// 情绪、坐姿、警觉度的取值目录
// 目录顺序有意义：情绪的默认抽取只取前三项（偏向积极结果）
var (
	Moods           = []string{"Happy", "Neutral", "Focused", "Tired", "Stressed"}
	Postures        = []string{"Good", "Slouching", "Forward Head", "Tilted"}
	AlertnessLevels = []string{"Alert", "Tired", "Drowsy"}
)

// 各维度对综合健康评分的贡献
var (
	moodScores = map[string]int{
		"Happy": 95, "Focused": 90, "Neutral": 75, "Tired": 55, "Stressed": 40,
	}
	postureScores = map[string]int{
		"Good": 95, "Slouching": 60, "Forward Head": 55, "Tilted": 65,
	}
	alertnessScores = map[string]int{
		"Alert": 95, "Tired": 60, "Drowsy": 40,
	}
)

// Score 从单次快照推导 0-100 的综合健康评分
// 情绪权重最高，其次坐姿，再次警觉度
func (r *WellnessReading) Score() int {
	mood, ok := moodScores[r.Mood]
	if !ok {
		mood = 75
	}
	posture, ok := postureScores[r.Posture]
	if !ok {
		posture = 75
	}
	alertness, ok := alertnessScores[r.Alertness]
	if !ok {
		alertness = 75
	}

	score := int(0.4*float64(mood) + 0.35*float64(posture) + 0.25*float64(alertness))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
