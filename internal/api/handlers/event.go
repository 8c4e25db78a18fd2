package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event_portal/internal/service"
)

// EventHandler 處理與活動相關的請求
type EventHandler struct {
	eventService        *service.EventService
	registrationService *service.RegistrationService
}

// NewEventHandler 創建一個新的 EventHandler 實例
func NewEventHandler(eventService *service.EventService, registrationService *service.RegistrationService) *EventHandler {
	return &EventHandler{
		eventService:        eventService,
		registrationService: registrationService,
	}
}

// EventInput 定義建立與更新活動的請求結構
type EventInput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

func (input EventInput) toService() service.EventInput {
	return service.EventInput{
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
	}
}

// AddEvent 建立活動，主辦方或管理員限定
func (h *EventHandler) AddEvent(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.eventService.CreateEvent(email, input.toService()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "活動建立成功"})
}

// UpdateEvent 更新活動，所有可變欄位整份覆蓋
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventService.UpdateEvent(email, input.ID, input.toService()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "活動更新成功"})
}

// DeleteEvent 刪除活動與其所有附屬資料
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	eventID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的活動ID"})
		return
	}

	if err := h.eventService.DeleteEvent(email, eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "活動已刪除"})
}

// ListEvents 列出所有活動，公開路徑
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Register 報名活動
func (h *EventHandler) Register(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	eventID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的活動ID"})
		return
	}

	if err := h.registrationService.Register(email, eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "報名成功"})
}

// GetStats 查活動統計，主辦者或管理員限定
func (h *EventHandler) GetStats(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	eventID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的活動ID"})
		return
	}

	stats, err := h.eventService.GetStats(email, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
