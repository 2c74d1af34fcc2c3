package domain

import "time"

// NotificationKind identifies the template of an outbound notification.
type NotificationKind string

const (
	NotificationWelcome          NotificationKind = "welcome"
	NotificationExpirationDigest NotificationKind = "expiration-digest"
)

// NotificationStatus of a queued notification. Delivery is handled outside this service.
type NotificationStatus string

const NotificationQueued NotificationStatus = "queued"

// Notification is an outbound-notification placeholder.
type Notification struct {
	NotificationID string                 `json:"notificationID"`
	Kind           NotificationKind       `json:"kind"`
	Recipient      string                 `json:"recipient"`
	Subject        string                 `json:"subject"`
	Payload        map[string]interface{} `json:"payload"`
	Status         NotificationStatus     `json:"status"`
	CreatedAt      time.Time              `json:"createdAt"`
}
