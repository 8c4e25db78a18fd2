package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"event_portal/internal/models"
	"event_portal/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理活動通知的 WebSocket 連接
type WebSocketHandler struct {
	wsService           *service.WebSocketService
	eventService        *service.EventService
	registrationService *service.RegistrationService
	userService         *service.UserService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(
	wsService *service.WebSocketService,
	eventService *service.EventService,
	registrationService *service.RegistrationService,
	userService *service.UserService,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsService:           wsService,
		eventService:        eventService,
		registrationService: registrationService,
		userService:         userService,
	}
}

// HandleWebSocket 處理訂閱活動通知的連接請求
// 只有活動主辦者、管理員或已報名的使用者能訂閱
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的活動ID"})
		return
	}

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

	event, err := h.eventService.GetEvent(uint(eventID))
	if err != nil {
		respondError(c, err)
		return
	}

	role, err := h.determineUserRole(event, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法確定使用者角色"})
		return
	}
	if role == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "尚未報名此活動"})
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	h.wsService.HandleConnection(conn, event.ID, user.ID, role)
}

// determineUserRole 確定使用者在活動中的角色，空字串表示無權訂閱
func (h *WebSocketHandler) determineUserRole(event *models.Event, user *models.User) (string, error) {
	if user.Role == models.RoleAdmin {
		return "admin", nil
	}
	if event.OrganizerID == user.ID {
		return "organizer", nil
	}

	registered, err := h.registrationService.IsRegistered(event.ID, user.ID)
	if err != nil {
		return "", err
	}
	if registered {
		return "participant", nil
	}
	return "", nil
}
