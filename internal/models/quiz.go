package models

import (
	"time"

	"gorm.io/gorm"
)

// Quiz 屬於一場活動，底下有多個題目
type Quiz struct {
	gorm.Model
	EventID     uint           `gorm:"not null;index" json:"event_id"`
	Description string         `gorm:"type:text" json:"description"`
	TimeToPass  int            `json:"time_to_pass"` // 作答時間限制，分鐘
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

// QuestionType 定義題目的類型
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
)

// QuizQuestion 是測驗的題目
type QuizQuestion struct {
	gorm.Model
	QuizID  uint         `gorm:"not null;index" json:"quiz_id"`
	Text    string       `gorm:"type:text;not null" json:"text"`
	Type    QuestionType `gorm:"type:varchar(50)" json:"type"`
	Answers []QuizAnswer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

// QuizAnswer 是題目的選項
type QuizAnswer struct {
	gorm.Model
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
}

// UserQuizResult 記錄使用者在某個測驗的成績
// (user, quiz) 唯一，重複提交會覆蓋原本的成績
type UserQuizResult struct {
	gorm.Model
	UserID  uint      `gorm:"uniqueIndex:idx_user_quiz;not null" json:"user_id"`
	QuizID  uint      `gorm:"uniqueIndex:idx_user_quiz;not null" json:"quiz_id"`
	Result  float64   `gorm:"not null" json:"result"` // 0 到 100
	DateEnd time.Time `json:"date_end"`
}
