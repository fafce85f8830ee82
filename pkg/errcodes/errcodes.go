package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Коды доменных ошибок бота.
	NoDealsFound     failure.ErrorCode = "NoDealsFound"     // Апстрим вернул пустую выдачу по фильтрам
	AlreadyRunning   failure.ErrorCode = "AlreadyRunning"   // Доставка для этого сервера уже идёт
	TooManyRequested failure.ErrorCode = "TooManyRequested" // Запрошено больше 200 сделок
	InvalidStore     failure.ErrorCode = "InvalidStore"     // Магазин не из перечисления steam/gog/all
	InvalidHour      failure.ErrorCode = "InvalidHour"      // Час автодоставки вне 0..23
	GuildNotFound    failure.ErrorCode = "GuildNotFound"
	ChannelNotFound  failure.ErrorCode = "ChannelNotFound" // Канал удалили на стороне платформы
)
