package rest

// Guild — представление конфигурации сервера в админском API.
type Guild struct {
	ID           int64  `json:"id"`
	PlatformID   int64  `json:"platformId"`
	Name         string `json:"name"`
	Auto         bool   `json:"auto"`
	DeliveryHour int    `json:"deliveryHour"`
}

// UpdateGuildDealsRequest — запрос ручного запуска доставки.
type UpdateGuildDealsRequest struct {
	Store  string `json:"store" validate:"required,oneof=steam gog all"`
	Amount int    `json:"amount" validate:"required,gt=0,lte=200"`
}

// UpdateGuildDealsResponse — результат ручного запуска доставки.
type UpdateGuildDealsResponse struct {
	Delivered int `json:"delivered"`
}
