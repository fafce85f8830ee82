package entity

// Guild — конфигурация одного сервера (чата), в который бот доставляет сделки.
type Guild struct {
	ID           int64  `json:"id"`
	PlatformID   int64  `json:"platform_id"` // идентификатор чата на платформе, уникален
	Name         string `json:"name"`
	Auto         bool   `json:"auto"`          // включена ли автодоставка
	DeliveryHour int    `json:"delivery_hour"` // час автодоставки, 0..23, UTC
}
