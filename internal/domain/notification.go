package domain

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyEmail   NotificationType = "email" // simulated outbound email
)

type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}
