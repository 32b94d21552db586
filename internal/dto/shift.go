package dto

import "time"

// ── 班次模块 DTO ──

// CreateShiftRequest 手动创建班次请求
type CreateShiftRequest struct {
	UserID       string    `json:"user_id"       binding:"required,uuid"`
	DepartmentID string    `json:"department_id" binding:"required,uuid"`
	StartTime    time.Time `json:"start_time"    binding:"required"`
	EndTime      time.Time `json:"end_time"      binding:"required"`
}

// UpdateShiftRequest 班次调整请求
type UpdateShiftRequest struct {
	UserID    *string    `json:"user_id"    binding:"omitempty,uuid"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}

// ShiftListRequest 班次列表查询参数
type ShiftListRequest struct {
	DepartmentID string `form:"department_id" binding:"required,uuid"`
	From         string `form:"from"          binding:"omitempty"`
	To           string `form:"to"            binding:"omitempty"`
}
