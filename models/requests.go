package models

import "fmt"

// RegisterRequest 注册请求结构体
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Company         string `json:"company"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// Validate 密码一致性校验，在任何状态变更之前完成
func (r *RegisterRequest) Validate() error {
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 资料更新请求结构体
type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Avatar  string `json:"avatar"`
}

// SelectPlanRequest 套餐切换请求结构体
type SelectPlanRequest struct {
	Plan string `json:"plan" binding:"required"` // free 或 premium
}

func (r *SelectPlanRequest) Validate() error {
	if r.Plan != "free" && r.Plan != "premium" {
		return fmt.Errorf("invalid plan, must be one of: free, premium")
	}
	return nil
}

// SaveStateRequest 客户端状态写入请求结构体
type SaveStateRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// PetActionRequest 宠物互动请求结构体
type PetActionRequest struct {
	Action string `json:"action" binding:"required"` // feed / pet / talk
}

// UpdatePetRequest 宠物设置请求结构体
type UpdatePetRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// BookingRequest 咨询预约请求结构体
type BookingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Topic         string `json:"topic"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Notes         string `json:"notes"`
}

// Validate 检查必填字段，缺失时同步拒绝
func (r *BookingRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Topic == "" {
		return fmt.Errorf("name, email and topic are required")
	}
	if r.PreferredDate == "" || r.PreferredTime == "" {
		return fmt.Errorf("preferred date and time are required")
	}
	return nil
}
