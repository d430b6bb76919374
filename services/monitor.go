package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
	"CheerioGo/utils"

	"gorm.io/gorm"
)

const latestReadingTTL = 5 * time.Minute

func latestReadingKey(userID string) string {
	return "wellness:latest:" + userID
}

// MonitorService 健康状态采样服务
// 每个开启监测的用户对应一个采样协程，读数同时写入 Redis 与历史表
type MonitorService struct {
	analysis *AnalysisService

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
	names    map[string]string

	sampleInterval time.Duration
	statsInterval  time.Duration

	root   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitorService 创建监测服务
func NewMonitorService(conf config.Config, analysis *AnalysisService) *MonitorService {
	root, cancel := context.WithCancel(context.Background())
	return &MonitorService{
		analysis:       analysis,
		sessions:       make(map[string]context.CancelFunc),
		names:          make(map[string]string),
		sampleInterval: time.Duration(conf.SampleIntervalSec) * time.Second,
		statsInterval:  time.Duration(conf.StatsIntervalSec) * time.Second,
		root:           root,
		cancel:         cancel,
	}
}

// Start 启动统计累积循环
func (m *MonitorService) Start() {
	m.wg.Add(1)
	go m.statsLoop()
}

// Stop 停止全部采样与统计循环
func (m *MonitorService) Stop() {
	m.cancel()
}

// Wait 等待所有协程退出
func (m *MonitorService) Wait() {
	m.wg.Wait()
}

// StartMonitoring 为用户开启采样，重复开启为幂等操作
func (m *MonitorService) StartMonitoring(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(m.root)
	m.sessions[userID] = cancel

	m.wg.Add(1)
	go m.sampleLoop(ctx, userID)
	config.Logger.Infow("开始健康监测", "uid", userID, "name", m.names[userID])
}

// StopMonitoring 停止用户的采样
func (m *MonitorService) StopMonitoring(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cancel, ok := m.sessions[userID]
	if !ok {
		return
	}
	cancel()
	delete(m.sessions, userID)
	config.Logger.Infow("停止健康监测", "uid", userID)
}

// ActiveCount 监测中的用户数
func (m *MonitorService) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// IsMonitoring 查询用户是否在监测中
func (m *MonitorService) IsMonitoring(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// SetDisplayName 缓存用户昵称，资料变更广播会刷新它
func (m *MonitorService) SetDisplayName(userID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[userID] = name
}

// sampleLoop 周期采样并落库
func (m *MonitorService) sampleLoop(ctx context.Context, userID string) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reading := m.analysis.Analyze(ctx, nil)
			reading.ID = utils.GenerateID()
			reading.UserID = userID
			m.storeReading(ctx, userID, reading)
		}
	}
}

// storeReading 最新读数进 Redis 供仪表盘轮询，历史记录留在数据库
func (m *MonitorService) storeReading(ctx context.Context, userID string, reading models.WellnessReading) {
	payload, err := json.Marshal(reading)
	if err == nil {
		if err := config.RedisClient.Set(ctx, latestReadingKey(userID), payload, latestReadingTTL).Err(); err != nil {
			config.Logger.Warnw("缓存最新读数失败", "uid", userID, "error", err)
		}
	}

	if err := config.DB.Create(&reading).Error; err != nil {
		config.Logger.Errorw("保存健康读数失败", "uid", userID, "error", err)
	}
}

// statsLoop 监测期间周期性累积用户统计数字
func (m *MonitorService) statsLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.root.Done():
			return
		case <-ticker.C:
			m.accumulateStats()
		}
	}
}

// accumulateStats 给所有监测中的用户加一点活动量与周进度
func (m *MonitorService) accumulateStats() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, userID := range ids {
		err := config.DB.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"activities_completed": gorm.Expr("activities_completed + ?", 1),
				"weekly_progress":      gorm.Expr("LEAST(weekly_progress + ?, weekly_goal)", 1),
			}).Error
		if err != nil {
			config.Logger.Warnw("累积统计失败", "uid", userID, "error", err)
		}
	}
}

// LatestReading 返回用户最近一次读数
func LatestReading(ctx context.Context, userID string) (models.WellnessReading, bool) {
	var reading models.WellnessReading

	data, err := config.RedisClient.Get(ctx, latestReadingKey(userID)).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(data, &reading); jsonErr == nil {
			return reading, true
		}
	}

	// Redis 没有就回查历史表
	err = config.DB.Where("user_id = ?", userID).Order("timestamp DESC").First(&reading).Error
	if err != nil {
		return models.WellnessReading{}, false
	}
	return reading, true
}

// CurrentWellnessScore 根据最近读数计算综合健康分，无读数时给基线分
func CurrentWellnessScore(ctx context.Context, userID string) int {
	reading, ok := LatestReading(ctx, userID)
	if !ok {
		return 85
	}
	return reading.Score()
}
