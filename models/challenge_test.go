package models

import (
	"testing"
	"time"
)

func TestChallengeCatalogStable(t *testing.T) {
	catalog := ChallengeCatalog()
	if len(catalog) != 6 {
		t.Fatalf("目录应有6个挑战，实际 %d", len(catalog))
	}

	seen := make(map[string]bool)
	for _, def := range catalog {
		if seen[def.ID] {
			t.Fatalf("挑战ID重复: %s", def.ID)
		}
		seen[def.ID] = true
		if def.Target <= 0 || def.Points <= 0 {
			t.Fatalf("挑战 %s 的目标或积分非法: %+v", def.ID, def)
		}
	}

	// 客户端持有这些ID，排序与ID都不能变
	if catalog[0].Title != "Posture Perfect" || catalog[2].Points != 100 {
		t.Fatalf("目录内容发生了变化")
	}
}

func TestFindChallengeDefinition(t *testing.T) {
	def, ok := FindChallengeDefinition("4")
	if !ok || def.Title != "Eye Care Champion" {
		t.Fatalf("按ID查找失败: %+v", def)
	}
	if _, ok := FindChallengeDefinition("999"); ok {
		t.Fatalf("不存在的ID不应命中")
	}
}

func TestProgressRules(t *testing.T) {
	cases := []struct {
		id        string
		interval  time.Duration
		increment float64
	}{
		{"1", 30 * time.Second, 0.1},
		{"2", 45 * time.Second, 1},
		{"3", 60 * time.Second, 1},
		{"4", 45 * time.Second, 1},
		{"5", 40 * time.Second, 1},
		{"6", 40 * time.Second, 0.2},
	}

	for _, tc := range cases {
		def, ok := FindChallengeDefinition(tc.id)
		if !ok {
			t.Fatalf("挑战 %s 不存在", tc.id)
		}
		rule := ProgressRuleFor(def)
		if rule.Interval != tc.interval || rule.Increment != tc.increment {
			t.Errorf("挑战 %s 的节奏应为 %v/%v，实际 %v/%v",
				tc.id, tc.interval, tc.increment, rule.Interval, rule.Increment)
		}
	}
}

func TestChallengeStateCompleted(t *testing.T) {
	var state ChallengeState
	if state.Completed() {
		t.Fatalf("新状态不应是完成态")
	}
	now := time.Now()
	state.CompletedAt = &now
	if !state.Completed() {
		t.Fatalf("设置完成时间后应为完成态")
	}
}
