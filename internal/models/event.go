package models

import (
	"gorm.io/gorm"
)

// Event 表示一場活動
type Event struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Date        string `gorm:"not null" json:"date"` // 格式 YYYY-MM-DD
	Time        string `gorm:"not null" json:"time"` // 格式 HH:MM
	Location    string `json:"location"`
	OrganizerID uint   `gorm:"not null;index" json:"organizer_id"` // 活動擁有者
}

// Registration 連結使用者與活動，一個使用者對同一場活動最多一筆
// 報名時間即 CreatedAt
type Registration struct {
	gorm.Model
	EventID uint `gorm:"uniqueIndex:idx_event_member;not null" json:"event_id"`
	UserID  uint `gorm:"uniqueIndex:idx_event_member;not null" json:"user_id"`
}

// Feedback 是參加者對活動的評價，同一使用者可以留多筆
type Feedback struct {
	gorm.Model
	UserID  uint   `gorm:"not null" json:"user_id"`
	EventID uint   `gorm:"not null;index" json:"event_id"`
	Rating  int    `gorm:"not null" json:"rating"` // 1 到 5
	Comment string `gorm:"type:text" json:"comment"`
}

// OrganizerStats 是活動的彙總統計，與活動一對一
// 這些欄位不在讀取時計算，而是在寫入 Registration 和 Feedback 時於同一交易內維護
type OrganizerStats struct {
	gorm.Model
	EventID                uint    `gorm:"uniqueIndex;not null" json:"event_id"`
	QuantityOfParticipants int     `json:"quantity_of_participants"`
	MediumRating           float64 `json:"medium_rating"`
}
