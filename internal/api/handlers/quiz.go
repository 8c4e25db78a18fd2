package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event_portal/internal/models"
	"event_portal/internal/service"
)

// QuizHandler 處理與測驗相關的請求
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler 創建一個新的 QuizHandler 實例
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// QuizInput 定義建立測驗的請求結構
type QuizInput struct {
	EventID     uint            `json:"event_id" binding:"required"`
	Description string          `json:"description"`
	TimeToPass  int             `json:"time_to_pass" binding:"required"`
	Questions   []QuestionInput `json:"questions"`
}

type QuestionInput struct {
	Text    string   `json:"text" binding:"required"`
	Type    string   `json:"type"`
	Answers []string `json:"answers"`
}

// CreateQuiz 替活動建立測驗，活動主辦者或管理員限定
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceInput := service.QuizInput{
		EventID:     input.EventID,
		Description: input.Description,
		TimeToPass:  input.TimeToPass,
	}
	for _, q := range input.Questions {
		serviceInput.Questions = append(serviceInput.Questions, service.QuestionInput{
			Text:    q.Text,
			Type:    models.QuestionType(q.Type),
			Answers: q.Answers,
		})
	}

	quiz, err := h.quizService.CreateQuiz(email, serviceInput)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// ListByEvent 列出活動的測驗，公開路徑
func (h *QuizHandler) ListByEvent(c *gin.Context) {
	eventID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的活動ID"})
		return
	}

	quizzes, err := h.quizService.ListByEvent(eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// ResultInput 定義提交成績的請求結構
type ResultInput struct {
	QuizID uint    `json:"quiz_id" binding:"required"`
	Result float64 `json:"result"`
}

// SubmitResult 提交測驗成績，必須已報名測驗所屬的活動
// 重複提交會覆蓋原本的成績
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	var input ResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.RecordResult(email, input.QuizID, input.Result); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "成績已儲存"})
}

// ListResults 列出測驗的所有成績，活動主辦者或管理員限定
func (h *QuizHandler) ListResults(c *gin.Context) {
	email, ok := actorEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	quizID, err := parseIDQuery(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的測驗ID"})
		return
	}

	results, err := h.quizService.ListResults(email, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
