package dto

// ── 患者模块 DTO ──

// AdmitPatientRequest 患者收治请求
type AdmitPatientRequest struct {
	Name         string `json:"name"          binding:"required,min=1,max=100"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

// UpdatePatientStatusRequest 患者状态变更请求
type UpdatePatientStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=waiting admitted discharged"`
}
