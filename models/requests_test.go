package models

import "testing"

func TestRegisterRequestValidate(t *testing.T) {
	req := RegisterRequest{Password: "secret123", ConfirmPassword: "secret123"}
	if err := req.Validate(); err != nil {
		t.Fatalf("一致的密码不应报错: %v", err)
	}

	req.ConfirmPassword = "different"
	if err := req.Validate(); err == nil || err.Error() != "passwords do not match" {
		t.Fatalf("不一致的密码应返回固定错误，实际 %v", err)
	}
}

func TestSelectPlanRequestValidate(t *testing.T) {
	for _, plan := range []string{"free", "premium"} {
		req := SelectPlanRequest{Plan: plan}
		if err := req.Validate(); err != nil {
			t.Fatalf("%s 套餐应合法: %v", plan, err)
		}
	}

	req := SelectPlanRequest{Plan: "enterprise"}
	if err := req.Validate(); err == nil {
		t.Fatalf("未知套餐应被拒绝")
	}
}

func TestBookingRequestValidate(t *testing.T) {
	valid := BookingRequest{
		Name:          "Alex",
		Email:         "alex@example.com",
		Topic:         "stress",
		PreferredDate: "2025-03-20",
		PreferredTime: "10:00",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("完整请求不应报错: %v", err)
	}

	missing := valid
	missing.Topic = ""
	if err := missing.Validate(); err == nil || err.Error() != "name, email and topic are required" {
		t.Fatalf("缺少主题应返回固定错误，实际 %v", err)
	}

	noSlot := valid
	noSlot.PreferredTime = ""
	if err := noSlot.Validate(); err == nil || err.Error() != "preferred date and time are required" {
		t.Fatalf("缺少时段应返回固定错误，实际 %v", err)
	}
}

func TestIsKnownStateKey(t *testing.T) {
	for _, key := range KnownStateKeys {
		if !IsKnownStateKey(key) {
			t.Fatalf("%s 应为已知状态键", key)
		}
	}
	if IsKnownStateKey("random-key") {
		t.Fatalf("未登记的键不应通过")
	}
}
