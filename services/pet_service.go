package services

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"CheerioGo/models"
)

// PetFacts 派生宠物视图所需的用户事实
type PetFacts struct {
	WellnessScore       int
	ActivitiesCompleted int
	TotalPoints         int
}

// DerivePet 从持久状态与用户事实派生完整宠物视图
// 纯函数，不触碰存储，便于校验派生规则
func DerivePet(state models.PetState, facts PetFacts, now time.Time) models.PetView {
	experience := facts.ActivitiesCompleted*10 + facts.TotalPoints/10
	level := experience/100 + 1

	var size string
	switch {
	case level >= 10:
		size = "elder"
	case level >= 6:
		size = "adult"
	case level >= 3:
		size = "young"
	default:
		size = "baby"
	}

	// 深夜与清晨宠物睡觉，心情不看分数
	var mood string
	hour := now.Hour()
	switch {
	case hour >= 22 || hour <= 6:
		mood = "sleeping"
	case facts.WellnessScore >= 90:
		mood = "excited"
	case facts.WellnessScore >= 70:
		mood = "happy"
	case facts.WellnessScore >= 50:
		mood = "neutral"
	default:
		mood = "sad"
	}

	return models.PetView{
		Type:       state.Type,
		Name:       state.Name,
		Level:      level,
		Experience: experience,
		Mood:       mood,
		Size:       size,
		Hunger:     CurrentHunger(state, now),
		Happiness:  state.Happiness,
	}
}

// CurrentHunger 派生当前饥饿度
// 存储值是上次喂食时刻的基准，之后每30分钟连续衰减1点；
// 衰减只在读取时计算，不回写，避免重复读取造成重复扣减
func CurrentHunger(state models.PetState, now time.Time) float64 {
	if state.LastFed.IsZero() || now.Before(state.LastFed) {
		return state.Hunger
	}
	hunger := state.Hunger - now.Sub(state.LastFed).Minutes()/30
	if hunger < 0 {
		return 0
	}
	return hunger
}

// SyncHappiness 健康分变化时让宠物幸福度跟随最新分数
// 喂食和抚摸的加成保留到下一次分数变化为止
func SyncHappiness(state *models.PetState, wellnessScore int) {
	if state.LastScore == wellnessScore {
		return
	}
	state.Happiness = clampStat(float64(wellnessScore))
	state.LastScore = wellnessScore
}

// PetService 宠物互动逻辑
type PetService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPetService 创建宠物服务
func NewPetService(seed int64) *PetService {
	return &PetService{rng: rand.New(rand.NewSource(seed))}
}

// ErrPetFull 宠物已吃饱，本次喂食不生效
var ErrPetFull = errors.New("宠物已经吃饱了")

// Feed 喂食，提升饥饿度与幸福度
// 基于衰减后的当前值计算，之后把新基准与喂食时刻一起落库
func (p *PetService) Feed(state *models.PetState, now time.Time) error {
	current := CurrentHunger(*state, now)
	if current >= 90 {
		return ErrPetFull
	}
	state.Hunger = clampStat(current + 20)
	state.Happiness = clampStat(state.Happiness + 10)
	state.LastFed = now
	return nil
}

// Pet 抚摸，小幅提升幸福度
func (p *PetService) Pet(state *models.PetState) {
	state.Happiness = clampStat(state.Happiness + 5)
}

// Talk 随机返回一句当前心情下的台词
func (p *PetService) Talk(petType, mood string) string {
	phrases := models.PetPhrases(petType, mood)
	p.mu.Lock()
	defer p.mu.Unlock()
	return phrases[p.rng.Intn(len(phrases))]
}

func clampStat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
