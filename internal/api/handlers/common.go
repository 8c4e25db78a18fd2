package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"event_portal/internal/service"
)

// statusFromError 把服務層的錯誤分類對應到 HTTP 狀態碼
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrPhoneTaken),
		errors.Is(err, service.ErrAlreadyRegistered):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

// parseIDQuery 解析 query 參數中的數字 ID
func parseIDQuery(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// actorEmail 取出 AuthMiddleware 放進上下文的操作者 email
func actorEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get("userEmail")
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}
