package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"CheerioGo/config"
	"CheerioGo/models"
)

// WellnessSource 健康数据来源抽象
// frame 为可选的画面快照，来源可以忽略它
type WellnessSource interface {
	Analyze(ctx context.Context, frame []byte) (models.WellnessReading, error)
}

// RemoteAnalyzer 调用外部分析服务的客户端
type RemoteAnalyzer struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewRemoteAnalyzer 创建远端分析客户端
func NewRemoteAnalyzer(conf config.Config) *RemoteAnalyzer {
	timeout := time.Duration(conf.AnalyzerTimeoutMS) * time.Millisecond
	return &RemoteAnalyzer{
		baseURL: conf.AnalyzerBaseURL,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Analyze 以 multipart 表单把画面转发给远端 /analyze 接口
func (r *RemoteAnalyzer) Analyze(ctx context.Context, frame []byte) (models.WellnessReading, error) {
	var reading models.WellnessReading

	if len(frame) == 0 {
		return reading, errors.New("无画面数据可转发")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("frame", "frame.jpg")
	if err != nil {
		return reading, err
	}
	if _, err := part.Write(frame); err != nil {
		return reading, err
	}
	if err := writer.Close(); err != nil {
		return reading, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/analyze", body)
	if err != nil {
		return reading, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return reading, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return reading, fmt.Errorf("分析服务返回 %d: %s", resp.StatusCode, string(data))
	}

	// 远端返回的结构体原样透传，不做字段校验
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return reading, err
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now()
	}
	return reading, nil
}

// AnalysisService 统一的健康分析入口
// 配置决定主来源，远端失败时静默回退到内置模拟器
type AnalysisService struct {
	primary  WellnessSource // 为 nil 时直接使用模拟器
	fallback *SyntheticSampler
}

// NewAnalysisService 按配置装配分析服务
func NewAnalysisService(conf config.Config, sampler *SyntheticSampler) *AnalysisService {
	svc := &AnalysisService{fallback: sampler}
	if conf.WellnessSource == "remote" {
		svc.primary = NewRemoteAnalyzer(conf)
	}
	return svc
}

// Analyze 返回一次健康读数，保证不失败
// 没有画面时远端无事可做，直接走模拟器
func (s *AnalysisService) Analyze(ctx context.Context, frame []byte) models.WellnessReading {
	if s.primary != nil && len(frame) > 0 {
		reading, err := s.primary.Analyze(ctx, frame)
		if err == nil {
			return reading
		}
		// 回退不向调用方暴露，只记日志
		config.Logger.Warnw("远端分析失败，回退到内置模拟器", "error", err)
	}
	return s.fallback.Sample(time.Now())
}
