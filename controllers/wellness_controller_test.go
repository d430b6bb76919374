package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"CheerioGo/config"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
}

func newWellnessRouter() *gin.Engine {
	sampler := services.NewSyntheticSampler(1)
	analysis := services.NewAnalysisService(config.Config{WellnessSource: "synthetic"}, sampler)
	wc := NewWellnessController(analysis, nil)

	r := gin.New()
	r.POST("/analyze-wellness", wc.Analyze)
	r.GET("/analyze-wellness", wc.Liveness)
	return r
}

func TestAnalyzeWithoutFrame(t *testing.T) {
	r := newWellnessRouter()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze-wellness", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺少 frame 字段应返回400，实际 %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	if resp["error"] != "No frame provided" {
		t.Fatalf("错误信息是对外契约，实际 %q", resp["error"])
	}
}

func TestAnalyzeReturnsReading(t *testing.T) {
	r := newWellnessRouter()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("frame", "frame.jpg")
	if err != nil {
		t.Fatalf("构造表单失败: %v", err)
	}
	part.Write([]byte("fake-jpeg-bytes"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze-wellness", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("带 frame 的请求应返回200，实际 %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Mood         string  `json:"mood"`
		Posture      string  `json:"posture"`
		Alertness    string  `json:"alertness"`
		Confidence   float64 `json:"confidence"`
		Timestamp    string  `json:"timestamp"`
		FaceDetected *bool   `json:"faceDetected"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	if resp.Mood == "" || resp.Posture == "" || resp.Alertness == "" {
		t.Fatalf("读数字段不完整: %s", w.Body.String())
	}
	if resp.Confidence < 0.75 || resp.Confidence >= 1.0 {
		t.Fatalf("confidence 越界: %v", resp.Confidence)
	}
	if resp.FaceDetected == nil || resp.Timestamp == "" {
		t.Fatalf("faceDetected 与 timestamp 都应出现在响应里: %s", w.Body.String())
	}
}

func TestLiveness(t *testing.T) {
	r := newWellnessRouter()

	req := httptest.NewRequest(http.MethodGet, "/analyze-wellness", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("存活探测应返回200，实际 %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	if resp["status"] != "ok" || resp["service"] != "wellness-analysis" {
		t.Fatalf("探测响应格式是对外契约: %s", w.Body.String())
	}
	if _, ok := resp["timestamp"]; !ok {
		t.Fatalf("探测响应缺少 timestamp")
	}
}
