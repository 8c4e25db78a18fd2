package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event_portal/internal/service"
)

// AuthHandler 處理與帳號相關的請求
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler 創建一個新的 AuthHandler 實例
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// SignupInput 定義註冊請求的結構
type SignupInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// Signup 處理使用者註冊，成功時直接回傳登入 token
func (h *AuthHandler) Signup(c *gin.Context) {
	var input SignupInput
	// 解析並驗證請求體
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.userService.Signup(service.SignupInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// SignIn 處理使用者登入，帳號密碼由 query 參數帶入
func (h *AuthHandler) SignIn(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email 與 password 不可為空"})
		return
	}

	token, err := h.userService.SignIn(email, password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// VerifyToken 確認 token 仍然有效並回傳使用者角色
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	user, err := h.userService.GetByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}

// UpdateInput 定義更新個人資料的結構，只套用有帶的欄位
type UpdateInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password"`
}

// Update 更新使用者自己的資料
func (h *AuthHandler) Update(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateUser(email, service.UpdateInput{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "資料已更新"})
}

// Delete 刪除使用者帳號，主辦的活動與所有關聯資料一併刪除
func (h *AuthHandler) Delete(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := h.userService.DeleteUser(email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "帳號已刪除"})
}

// BlacklistInput 定義加入黑名單的請求
type BlacklistInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// Blacklist 把使用者列入黑名單，管理員限定
func (h *AuthHandler) Blacklist(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input BlacklistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.Blacklist(email, input.UserID, input.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "使用者已列入黑名單"})
}

// Unblacklist 把使用者移出黑名單，管理員限定
func (h *AuthHandler) Unblacklist(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	userID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的使用者ID"})
		return
	}

	if err := h.userService.Unblacklist(email, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "使用者已移出黑名單"})
}
