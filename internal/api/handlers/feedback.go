package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event_portal/internal/service"
)

// FeedbackHandler 處理與活動評價相關的請求
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler 創建一個新的 FeedbackHandler 實例
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackInput 定義留下評價的請求結構
type FeedbackInput struct {
	EventID uint   `json:"event_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// LeaveFeedback 對活動留下評價，必須已報名過該活動
func (h *FeedbackHandler) LeaveFeedback(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feedbackService.LeaveFeedback(email, input.EventID, input.Rating, input.Comment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "評價已送出"})
}

// ListByEvent 列出活動的所有評價
func (h *FeedbackHandler) ListByEvent(c *gin.Context) {
	eventID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的活動ID"})
		return
	}

	feedbacks, err := h.feedbackService.ListByEvent(eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}
