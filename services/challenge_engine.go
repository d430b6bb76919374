package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
)

// CompletionStore 记录每个用户已完成过的挑战ID
// MarkCompleted 返回是否首次标记，奖励发放以此为准
type CompletionStore interface {
	IsCompleted(userID, challengeID string) bool
	MarkCompleted(userID, challengeID string) bool
}

// RedisCompletionStore 基于 Redis 集合的完成记录
type RedisCompletionStore struct{}

func completedKey(userID string) string {
	return "challenges:completed:" + userID
}

func (RedisCompletionStore) IsCompleted(userID, challengeID string) bool {
	ok, err := config.RedisClient.SIsMember(context.Background(), completedKey(userID), challengeID).Result()
	if err != nil {
		config.Logger.Warnw("读取挑战完成记录失败", "uid", userID, "challengeID", challengeID, "error", err)
		return false
	}
	return ok
}

func (RedisCompletionStore) MarkCompleted(userID, challengeID string) bool {
	// SADD 的返回值保证了同一挑战只会首次标记成功一次
	added, err := config.RedisClient.SAdd(context.Background(), completedKey(userID), challengeID).Result()
	if err != nil {
		config.Logger.Errorw("写入挑战完成记录失败", "uid", userID, "challengeID", challengeID, "error", err)
		return false
	}
	return added > 0
}

// MemoryCompletionStore 进程内完成记录，单机部署与测试使用
type MemoryCompletionStore struct {
	mu        sync.Mutex
	completed map[string]map[string]bool
}

func NewMemoryCompletionStore() *MemoryCompletionStore {
	return &MemoryCompletionStore{completed: make(map[string]map[string]bool)}
}

func (m *MemoryCompletionStore) IsCompleted(userID, challengeID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed[userID][challengeID]
}

func (m *MemoryCompletionStore) MarkCompleted(userID, challengeID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed[userID][challengeID] {
		return false
	}
	if m.completed[userID] == nil {
		m.completed[userID] = make(map[string]bool)
	}
	m.completed[userID][challengeID] = true
	return true
}

// ChallengeEngine 挑战进度引擎
// 状态常驻内存，按固定节奏推进激活中的挑战
type ChallengeEngine struct {
	mu     sync.Mutex
	states map[string]map[string]*models.ChallengeState

	completed CompletionStore

	// 完成时的回调，由装配方决定积分与通知如何落地
	onPointsEarned       func(userID string, points int)
	onChallengeCompleted func(userID string, def models.ChallengeDefinition)

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewChallengeEngine 创建挑战引擎
func NewChallengeEngine(completed CompletionStore) *ChallengeEngine {
	return &ChallengeEngine{
		states:    make(map[string]map[string]*models.ChallengeState),
		completed: completed,
		stop:      make(chan struct{}),
	}
}

// OnPointsEarned 注册积分奖励回调
func (e *ChallengeEngine) OnPointsEarned(fn func(userID string, points int)) {
	e.onPointsEarned = fn
}

// OnChallengeCompleted 注册完成通知回调
func (e *ChallengeEngine) OnChallengeCompleted(fn func(userID string, def models.ChallengeDefinition)) {
	e.onChallengeCompleted = fn
}

// Start 启动每秒一次的推进循环
func (e *ChallengeEngine) Start() {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-e.stop:
				return
			case now := <-ticker.C:
				e.Tick(now)
			}
		}
	}()
}

// Stop 停止推进循环
func (e *ChallengeEngine) Stop() {
	close(e.stop)
}

// Wait 等待推进循环退出
func (e *ChallengeEngine) Wait() {
	e.wg.Wait()
}

// States 返回用户全部挑战状态的快照，按目录顺序排列
func (e *ChallengeEngine) States(userID string) []models.ChallengeState {
	e.mu.Lock()
	defer e.mu.Unlock()

	user := e.ensureUser(userID)
	catalog := models.ChallengeCatalog()
	out := make([]models.ChallengeState, 0, len(catalog))
	for _, def := range catalog {
		out = append(out, *user[def.ID])
	}
	return out
}

// StartChallenge 把挑战置为激活状态
// 已激活或已完成时保持原状，不视为错误
func (e *ChallengeEngine) StartChallenge(userID, challengeID string, now time.Time) (models.ChallengeState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.lookup(userID, challengeID)
	if err != nil {
		return models.ChallengeState{}, err
	}
	if state.IsActive || state.Completed() {
		return *state, nil
	}

	// 每次启动都从零开始，包括暂停后的重启
	state.IsActive = true
	state.Progress = 0
	start := now
	state.StartTime = &start
	last := now
	state.LastUpdate = &last
	return *state, nil
}

// PauseChallenge 暂停挑战，保留已有进度
func (e *ChallengeEngine) PauseChallenge(userID, challengeID string, now time.Time) (models.ChallengeState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.lookup(userID, challengeID)
	if err != nil {
		return models.ChallengeState{}, err
	}
	if !state.IsActive || state.Completed() {
		return *state, nil
	}

	state.IsActive = false
	last := now
	state.LastUpdate = &last
	return *state, nil
}

// CompleteNow 立即完成挑战，进度拉满并发放奖励
func (e *ChallengeEngine) CompleteNow(userID, challengeID string, now time.Time) (models.ChallengeState, error) {
	e.mu.Lock()

	state, err := e.lookup(userID, challengeID)
	if err != nil {
		e.mu.Unlock()
		return models.ChallengeState{}, err
	}
	if state.Completed() {
		out := *state
		e.mu.Unlock()
		return out, nil
	}

	def, _ := models.FindChallengeDefinition(challengeID)
	state.Progress = def.Target
	awarded := e.finish(userID, state, def, now)
	out := *state
	e.mu.Unlock()

	if awarded {
		e.dispatchAward(challengeAward{userID: userID, def: def})
	}
	return out, nil
}

// Tick 按当前时刻推进所有激活中的挑战
// 单独暴露是为了让时间可以由调用方控制
func (e *ChallengeEngine) Tick(now time.Time) {
	var awards []challengeAward

	e.mu.Lock()
	for userID, user := range e.states {
		for challengeID, state := range user {
			if !state.IsActive || state.Completed() {
				continue
			}
			def, ok := models.FindChallengeDefinition(challengeID)
			if !ok {
				continue
			}
			rule := models.ProgressRuleFor(def)
			if state.LastUpdate == nil || now.Sub(*state.LastUpdate) < rule.Interval {
				continue
			}

			state.Progress += rule.Increment
			if state.Progress > def.Target {
				state.Progress = def.Target
			}
			last := now
			state.LastUpdate = &last

			if state.Progress >= def.Target && e.finish(userID, state, def, now) {
				awards = append(awards, challengeAward{userID: userID, def: def})
			}
		}
	}
	e.mu.Unlock()

	for _, a := range awards {
		e.dispatchAward(a)
	}
}

// challengeAward 待派发的完成奖励
type challengeAward struct {
	userID string
	def    models.ChallengeDefinition
}

// finish 完成态迁移，调用方需持有锁
// 返回是否首次完成，首次完成的奖励由调用方在锁外派发
func (e *ChallengeEngine) finish(userID string, state *models.ChallengeState, def models.ChallengeDefinition, now time.Time) bool {
	if !e.completed.MarkCompleted(userID, def.ID) {
		return false
	}

	done := now
	state.CompletedAt = &done
	state.IsActive = false
	return true
}

// dispatchAward 发放完成奖励
// 回调里通常有落库和通知，必须在锁外调用，慢回调不能拖住所有用户的推进
func (e *ChallengeEngine) dispatchAward(a challengeAward) {
	if e.onPointsEarned != nil {
		e.onPointsEarned(a.userID, a.def.Points)
	}
	if e.onChallengeCompleted != nil {
		e.onChallengeCompleted(a.userID, a.def)
	}
}

// lookup 返回可变状态指针，调用方需持有锁
func (e *ChallengeEngine) lookup(userID, challengeID string) (*models.ChallengeState, error) {
	if _, ok := models.FindChallengeDefinition(challengeID); !ok {
		return nil, errors.New("挑战不存在")
	}
	user := e.ensureUser(userID)
	return user[challengeID], nil
}

// ensureUser 为用户初始化全部挑战状态，调用方需持有锁
func (e *ChallengeEngine) ensureUser(userID string) map[string]*models.ChallengeState {
	user, ok := e.states[userID]
	if ok {
		return user
	}

	user = make(map[string]*models.ChallengeState)
	for _, def := range models.ChallengeCatalog() {
		state := &models.ChallengeState{
			UserID:      userID,
			ChallengeID: def.ID,
		}
		// 历史完成记录在新会话里依旧视为终态
		if e.completed.IsCompleted(userID, def.ID) {
			done := time.Now()
			state.CompletedAt = &done
			state.Progress = def.Target
		}
		user[def.ID] = state
	}
	e.states[userID] = user
	return user
}
