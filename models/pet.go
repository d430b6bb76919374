package models

import "time"

// 虚拟宠物的枚举取值
var (
	PetTypes = []string{"dog", "cat", "panda", "penguin", "bunny", "hamster"}
	PetMoods = []string{"happy", "neutral", "sad", "excited", "sleeping"}
	PetSizes = []string{"baby", "young", "adult", "elder"}
)

func IsValidPetType(t string) bool {
	for _, p := range PetTypes {
		if p == t {
			return true
		}
	}
	return false
}

// PetState 宠物的持久化状态
// 等级、心情、体型等均为派生值，不落库；宠物不持有独立事实，
// 只保留互动时间戳和互动产生的数值
type PetState struct {
	UserID    string    `gorm:"type:varchar(50);primaryKey" json:"user_id"`
	Type      string    `gorm:"type:varchar(20);default:dog" json:"type"`
	Name      string    `gorm:"type:varchar(50);default:Wellness Buddy" json:"name"`
	Hunger    float64   `gorm:"default:80" json:"hunger"`
	Happiness float64   `gorm:"default:85" json:"happiness"`
	LastScore int       `gorm:"default:-1" json:"-"`
	LastFed   time.Time `json:"lastFed"`
}

// PetView 派生后的完整宠物视图
type PetView struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	Experience int     `json:"experience"`
	Mood       string  `json:"mood"`
	Size       string  `json:"size"`
	Hunger     float64 `json:"hunger"`
	Happiness  float64 `json:"happiness"`
	Message    string  `json:"message,omitempty"`
}

// petPhrases 各物种在各心情下的固定台词表，互动时随机选取
// 仅 dog/cat/panda 有完整台词，其余物种使用通用台词
var petPhrases = map[string]map[string][]string{
	"dog": {
		"happy":    {"Woof! I'm so happy!", "Let's play!", "You're doing great!"},
		"excited":  {"WOOF WOOF! Amazing!", "I'm so excited!", "You're the best!"},
		"neutral":  {"Woof... how are you?", "Maybe some exercise?", "I'm here for you"},
		"sad":      {"Whimper... I'm worried about you", "You seem stressed", "Let's take a break"},
		"sleeping": {"Zzz... peaceful dreams", "So sleepy...", "Good night"},
	},
	"cat": {
		"happy":    {"Purr... I'm content", "Meow! Nice work", "You're purrfect"},
		"excited":  {"MEOW! Fantastic!", "I'm so proud!", "Purr purr purr!"},
		"neutral":  {"Meow... how are you feeling?", "Perhaps some relaxation?", "I'm watching over you"},
		"sad":      {"Mew... you seem down", "I sense your stress", "Let me comfort you"},
		"sleeping": {"Purr... sweet dreams", "So cozy...", "Nap time"},
	},
	"panda": {
		"happy":    {"I'm bamboo-zled by your progress!", "You're doing great!", "So peaceful and happy"},
		"excited":  {"WOW! You're amazing!", "I'm so excited for you!", "Incredible work!"},
		"neutral":  {"How are you feeling?", "Maybe some mindfulness?", "I'm here with you"},
		"sad":      {"I sense you need comfort", "You seem overwhelmed", "Let's find some peace"},
		"sleeping": {"Dreaming of bamboo...", "So restful...", "Peaceful slumber"},
	},
}

// PetPhrases 返回某物种在某心情下的台词表
func PetPhrases(petType, mood string) []string {
	if byMood, ok := petPhrases[petType]; ok {
		if phrases, ok := byMood[mood]; ok && len(phrases) > 0 {
			return phrases
		}
	}
	return []string{"I'm here to support your wellness journey!"}
}
