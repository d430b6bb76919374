package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"

	"go.uber.org/zap"
)

func init() {
	// 测试里不需要真实日志
	config.Logger = zap.NewNop().Sugar()
}

func newRemoteAnalyzer(baseURL string) *RemoteAnalyzer {
	return &RemoteAnalyzer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Second},
		timeout: time.Second,
	}
}

func TestRemoteAnalyzerSuccess(t *testing.T) {
	want := models.WellnessReading{
		Mood:           "Focused",
		Posture:        "Good",
		Alertness:      "Alert",
		Confidence:     0.9,
		FaceDetected:   true,
		EyeAspectRatio: 0.3,
		BlinkRate:      14,
		Timestamp:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("请求路径应为 /analyze，实际 %s", r.URL.Path)
		}
		file, _, err := r.FormFile("frame")
		if err != nil {
			t.Errorf("应收到 frame 字段: %v", err)
		} else {
			file.Close()
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := newRemoteAnalyzer(srv.URL).Analyze(context.Background(), []byte("fake-jpeg"))
	if err != nil {
		t.Fatalf("分析失败: %v", err)
	}
	if got.Mood != want.Mood || got.Confidence != want.Confidence {
		t.Fatalf("远端结果应原样透传: %+v", got)
	}
}

func TestRemoteAnalyzerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newRemoteAnalyzer(srv.URL).Analyze(context.Background(), []byte("x")); err == nil {
		t.Fatalf("5xx 响应应返回错误")
	}
}

func TestAnalysisServiceFallsBackOnRemoteFailure(t *testing.T) {
	// 远端不可达时静默回退到内置模拟器
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	srv.Close() // 直接关掉，连接必然失败

	svc := &AnalysisService{
		primary:  newRemoteAnalyzer(srv.URL),
		fallback: NewSyntheticSampler(1),
	}

	reading := svc.Analyze(context.Background(), []byte("x"))
	if reading.Mood == "" || reading.Posture == "" {
		t.Fatalf("回退读数应完整: %+v", reading)
	}
}

func TestAnalysisServiceSkipsRemoteWithoutFrame(t *testing.T) {
	// 后台采样没有画面可转发，不该白打一趟远端再回退
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	svc := &AnalysisService{
		primary:  newRemoteAnalyzer(srv.URL),
		fallback: NewSyntheticSampler(1),
	}

	reading := svc.Analyze(context.Background(), nil)
	if hits != 0 {
		t.Fatalf("无画面时不应请求远端，实际请求 %d 次", hits)
	}
	if reading.Mood == "" || reading.Timestamp.IsZero() {
		t.Fatalf("模拟读数应完整: %+v", reading)
	}
}

func TestAnalysisServiceSyntheticByDefault(t *testing.T) {
	svc := NewAnalysisService(config.Config{WellnessSource: "synthetic"}, NewSyntheticSampler(1))
	if svc.primary != nil {
		t.Fatalf("synthetic 配置不应装配远端客户端")
	}

	reading := svc.Analyze(context.Background(), nil)
	if reading.Timestamp.IsZero() {
		t.Fatalf("模拟读数应带时间戳")
	}
}
