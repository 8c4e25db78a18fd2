package models

import (
	"gorm.io/gorm"
)

// User 表示系統中的使用者
type User struct {
	gorm.Model           // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Name        string   `gorm:"not null" json:"name"`
	Email       string   `gorm:"uniqueIndex;not null" json:"email"` // email 為帳號識別，必須唯一
	PhoneNumber *string  `gorm:"uniqueIndex" json:"phone_number,omitempty"` // 選填，未提供時為 NULL，不佔用唯一索引
	Password    string   `gorm:"not null" json:"-"` // bcrypt 雜湊，json 序列化時會被忽略
	Role        UserRole `gorm:"not null" json:"role"`
}

// UserRole 定義使用者角色的類型
type UserRole string

const (
	RoleOrganizer   UserRole = "organizer"   // 活動主辦方
	RoleParticipant UserRole = "participant" // 一般參加者，註冊時的預設角色
	RoleAdmin       UserRole = "admin"       // 管理員
)

// BlackListUser 標記被排除的使用者，被列入者不能報名活動
type BlackListUser struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Reason string `gorm:"type:text;not null" json:"reason"`
}
