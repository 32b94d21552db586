package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Department DepartmentRepository
	User       UserRepository
	Patient    PatientRepository
	Shift      ShiftRepository
	Alert      AlertRepository
	EventLog   EventLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Department: NewDepartmentRepo(db),
		User:       NewUserRepo(db),
		Patient:    NewPatientRepo(db),
		Shift:      NewShiftRepo(db),
		Alert:      NewAlertRepo(db),
		EventLog:   NewEventLogRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
