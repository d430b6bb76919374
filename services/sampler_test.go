package services

import (
	"testing"
	"time"
)

func fixedUnit(v float64) func() float64 {
	return func() float64 { return v }
}

func TestSampleFieldRanges(t *testing.T) {
	s := NewSyntheticSampler(42)
	now := time.Date(2025, 3, 10, 10, 3, 0, 0, time.Local)

	for i := 0; i < 200; i++ {
		r := s.Sample(now)

		if r.Confidence < 0.75 || r.Confidence >= 1.0 {
			t.Fatalf("confidence 越界: %v", r.Confidence)
		}
		if r.EyeAspectRatio < 0.25 || r.EyeAspectRatio >= 0.40 {
			t.Fatalf("eyeAspectRatio 越界: %v", r.EyeAspectRatio)
		}
		if r.BlinkRate < 12 || r.BlinkRate >= 20 {
			t.Fatalf("blinkRate 越界: %v", r.BlinkRate)
		}
		if r.Mood == "" || r.Posture == "" || r.Alertness == "" {
			t.Fatalf("出现空枚举值: %+v", r)
		}
		if !r.Timestamp.Equal(now) {
			t.Fatalf("timestamp 不等于采样时刻")
		}
	}
}

func TestSampleTiredWindow(t *testing.T) {
	// 15:30 落在疲劳时段，高随机数必然抽出 Tired
	s := &SyntheticSampler{unit: fixedUnit(0.99)}
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local)

	r := s.Sample(now)
	if r.Mood != "Tired" {
		t.Fatalf("疲劳时段高随机数应得 Tired，实际 %q", r.Mood)
	}
}

func TestSampleDrowsyWindow(t *testing.T) {
	// 14:03 落在困倦时段且避开整刻钟
	s := &SyntheticSampler{unit: fixedUnit(0.99)}
	now := time.Date(2025, 3, 10, 14, 3, 0, 0, time.Local)

	r := s.Sample(now)
	if r.Alertness != "Drowsy" {
		t.Fatalf("困倦时段高随机数应得 Drowsy，实际 %q", r.Alertness)
	}
}

func TestSampleStressWindow(t *testing.T) {
	// 10:15 不在疲劳时段，整刻钟触发压力脉冲
	s := &SyntheticSampler{unit: fixedUnit(0.99)}
	now := time.Date(2025, 3, 10, 10, 15, 0, 0, time.Local)

	r := s.Sample(now)
	if r.Mood != "Stressed" {
		t.Fatalf("整刻钟高随机数应得 Stressed，实际 %q", r.Mood)
	}
}

func TestSampleCalmDefaults(t *testing.T) {
	// 低随机数时一切回到默认：积极情绪、良好坐姿、警觉
	s := &SyntheticSampler{unit: fixedUnit(0.2)}
	now := time.Date(2025, 3, 10, 10, 3, 0, 0, time.Local)

	r := s.Sample(now)
	if r.Mood != "Happy" {
		t.Fatalf("低随机数应落在目录第一项 Happy，实际 %q", r.Mood)
	}
	if r.Posture != "Good" {
		t.Fatalf("低随机数应得 Good 坐姿，实际 %q", r.Posture)
	}
	if r.Alertness != "Alert" {
		t.Fatalf("低随机数应得 Alert，实际 %q", r.Alertness)
	}
	if !r.FaceDetected {
		t.Fatalf("0.2 应判为检出人脸")
	}
}

func TestSampleFaceDetectionBoundary(t *testing.T) {
	// 人脸判定是严格大于 0.1，恰好抽中边界值算未检出
	s := &SyntheticSampler{unit: fixedUnit(0.1)}
	now := time.Date(2025, 3, 10, 10, 3, 0, 0, time.Local)

	if r := s.Sample(now); r.FaceDetected {
		t.Fatalf("0.1 恰在判定边界上，应为未检出人脸")
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	a := NewSyntheticSampler(7)
	b := NewSyntheticSampler(7)
	for i := 0; i < 20; i++ {
		ra, rb := a.Sample(now), b.Sample(now)
		if ra != rb {
			t.Fatalf("相同种子第 %d 次采样不一致: %+v vs %+v", i, ra, rb)
		}
	}
}
