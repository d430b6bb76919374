package services

import (
	"math/rand"
	"sync"
	"time"

	"CheerioGo/models"
)

// SyntheticSampler 内置健康数据模拟器
// 按时间段加权产生貌似真实的传感器读数，Sample 是 now 与内部随机源的纯函数
type SyntheticSampler struct {
	mu   sync.Mutex
	unit func() float64 // 返回 [0,1) 的均匀随机数，测试可替换
}

// NewSyntheticSampler 创建模拟器，seed 相同则序列相同
func NewSyntheticSampler(seed int64) *SyntheticSampler {
	rng := rand.New(rand.NewSource(seed))
	return &SyntheticSampler{unit: rng.Float64}
}

// Sample 产生一次健康状态快照
func (s *SyntheticSampler) Sample(now time.Time) models.WellnessReading {
	s.mu.Lock()
	defer s.mu.Unlock()

	hour := now.Hour()
	minute := now.Minute()

	// 时间段加权：午后疲劳、午饭后困倦、整刻钟的压力脉冲
	isTiredTime := hour > 14 && hour < 17
	isStressedTime := minute%15 == 0
	isDrowsyTime := hour > 13 && hour < 15

	var mood string
	switch {
	case isTiredTime && s.unit() > 0.6:
		mood = "Tired"
	case isStressedTime && s.unit() > 0.7:
		mood = "Stressed"
	default:
		// 默认只在前三项里抽取，偏向积极结果
		mood = models.Moods[int(s.unit()*3)]
	}

	var posture string
	if s.unit() > 0.8 {
		// 三种不良坐姿之一
		posture = models.Postures[int(s.unit()*3)+1]
	} else {
		posture = "Good"
	}

	var alertness string
	switch {
	case isDrowsyTime && s.unit() > 0.5:
		alertness = "Drowsy"
	case s.unit() > 0.8:
		alertness = "Tired"
	default:
		alertness = "Alert"
	}

	return models.WellnessReading{
		Mood:           mood,
		Posture:        posture,
		Alertness:      alertness,
		Confidence:     0.75 + s.unit()*0.25,
		FaceDetected:   s.unit() > 0.1, // 约90%的人脸检出率
		EyeAspectRatio: 0.25 + s.unit()*0.15,
		BlinkRate:      12 + s.unit()*8,
		Timestamp:      now,
	}
}
