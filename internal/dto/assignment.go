package dto

// ── 排班模块 DTO ──

// TriggerAssignRequest 手动触发自动排班请求
type TriggerAssignRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	// Date 班次开始时间（RFC3339）；缺省为次日零点
	Date string `json:"date" binding:"omitempty"`
}

// TriggerAssignResponse 手动触发自动排班响应
type TriggerAssignResponse struct {
	DepartmentID string `json:"department_id"`
	Date         string `json:"date"`
	Strategy     string `json:"strategy"`
}
