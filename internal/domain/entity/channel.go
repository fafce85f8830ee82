package entity

// Channel — привязка канала доставки к фильтру магазин/ценовой диапазон.
// Стабильная идентичность строки — ID в базе; PlatformID — изменяемый
// атрибут, который переписывается при пересоздании канала на платформе.
// Диапазон розничной цены: MinRetailPrice < цена <= MaxRetailPrice.
type Channel struct {
	ID              int64
	PlatformID      int64 // идентификатор топика/канала на платформе, уникален
	CategoryID      int64 // идентификатор категории (форум-чата), под которой живёт канал
	GuildPlatformID int64
	Name            string
	MinRetailPrice  float64
	MaxRetailPrice  float64
	Store           Store

	// Идентификаторы сообщений, отправленных ботом в прошлую доставку.
	// Топики форума делят одну сквозную нумерацию сообщений чата, поэтому
	// для очистки храним точный список, а не диапазон.
	MessageIDs []int
}
