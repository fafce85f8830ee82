package entity

import "math"

// Deal — одна скидка из выдачи внешнего API.
// Значение создаётся один раз на запись выдачи и дальше не меняется.
type Deal struct {
	Title               string
	StoreID             string // "1" — steam, "7" — gog
	SalePrice           float64
	NormalPrice         float64
	SavedPercentage     int
	MetacriticScore     int
	SteamReviewsPercent int
	SteamReviewsCount   int
	SteamAppID          string
	ThumbnailURL        string
}

// SavedAmount — экономия в долларах, округлённая до центов.
// Считается на лету, а не хранится, чтобы не было рассинхрона с ценами.
func (d Deal) SavedAmount() float64 {
	return math.Round((d.NormalPrice-d.SalePrice)*100) / 100
}
