package service

import "errors"

// 服務層統一的錯誤分類，handler 依這些錯誤決定 HTTP 狀態碼
// 其餘未分類的錯誤視為內部錯誤
var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not allowed")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrPhoneTaken         = errors.New("phone number already taken")
	ErrAlreadyRegistered  = errors.New("already registered")
)
