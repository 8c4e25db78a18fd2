package service

import (
	"event_portal/internal/models"
)

// 授權判斷集中在這裡，全部是對已讀出狀態的純函式
// 服務層必須先通過這些檢查才能執行對應的寫入

// CanCreateEvent 只有主辦方或管理員能建立活動
func CanCreateEvent(actor *models.User) bool {
	return actor.Role == models.RoleOrganizer || actor.Role == models.RoleAdmin
}

// CanMutateEvent 活動只能由它的主辦者或管理員修改、刪除
func CanMutateEvent(actor *models.User, event *models.Event) bool {
	return actor.Role == models.RoleAdmin || actor.ID == event.OrganizerID
}

// CanRegister 任何登入的使用者都能報名，黑名單與重複報名除外
func CanRegister(blacklisted, alreadyRegistered bool) bool {
	return !blacklisted && !alreadyRegistered
}

// CanRecordQuizResult 必須先報名測驗所屬的活動
func CanRecordQuizResult(registered bool) bool {
	return registered
}

// CanLeaveFeedback 必須先報名該活動
func CanLeaveFeedback(registered bool) bool {
	return registered
}

// CanManageBlacklist 黑名單只有管理員能維護
func CanManageBlacklist(actor *models.User) bool {
	return actor.Role == models.RoleAdmin
}
