package services

import (
	"sync"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
)

// StateStore 客户端状态键值的存取接口
// 控制器只关心键值语义，落地方式由装配方决定
type StateStore interface {
	List(userID string) ([]models.UserState, error)
	Get(userID, key string) (string, bool)
	Save(userID, key, value string) error
	Delete(userID string, keys ...string) error
}

// GormStateStore 数据库实现，每个键一行，最后写入者生效
type GormStateStore struct{}

func (GormStateStore) List(userID string) ([]models.UserState, error) {
	var states []models.UserState
	err := config.DB.Where("user_id = ?", userID).Find(&states).Error
	return states, err
}

func (GormStateStore) Get(userID, key string) (string, bool) {
	var state models.UserState
	err := config.DB.Where("user_id = ? AND `key` = ?", userID, key).First(&state).Error
	if err != nil {
		return "", false
	}
	return state.Value, true
}

func (GormStateStore) Save(userID, key, value string) error {
	now := time.Now()

	var existing models.UserState
	err := config.DB.Where("user_id = ? AND `key` = ?", userID, key).First(&existing).Error
	if err != nil {
		return config.DB.Create(&models.UserState{
			UserID:       userID,
			Key:          key,
			Value:        value,
			LastModified: now,
		}).Error
	}
	return config.DB.Model(&existing).Updates(map[string]interface{}{
		"value":         value,
		"last_modified": now,
	}).Error
}

func (GormStateStore) Delete(userID string, keys ...string) error {
	return config.DB.Where("user_id = ? AND `key` IN ?", userID, keys).
		Delete(&models.UserState{}).Error
}

// MemoryStateStore 进程内实现，单机部署与测试使用
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]map[string]models.UserState
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]map[string]models.UserState)}
}

func (m *MemoryStateStore) List(userID string) ([]models.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.UserState, 0, len(m.states[userID]))
	for _, s := range m.states[userID] {
		out = append(out, s)
	}
	return out, nil
}

func (m *MemoryStateStore) Get(userID, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.states[userID][key]
	return s.Value, ok
}

func (m *MemoryStateStore) Save(userID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states[userID] == nil {
		m.states[userID] = make(map[string]models.UserState)
	}
	m.states[userID][key] = models.UserState{
		UserID:       userID,
		Key:          key,
		Value:        value,
		LastModified: time.Now(),
	}
	return nil
}

func (m *MemoryStateStore) Delete(userID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.states[userID], key)
	}
	return nil
}
