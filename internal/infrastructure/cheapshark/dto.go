package cheapshark

import (
	"math"
	"strconv"

	"deals_bot/internal/domain/entity"
)

// dealRecord — запись выдачи API как она приходит по проводу. Числовые
// поля API отдаёт строками.
type dealRecord struct {
	Title              string `json:"title"`
	StoreID            string `json:"storeID"`
	SalePrice          string `json:"salePrice"`
	NormalPrice        string `json:"normalPrice"`
	Savings            string `json:"savings"`
	MetacriticScore    string `json:"metacriticScore"`
	SteamRatingPercent string `json:"steamRatingPercent"`
	SteamRatingCount   string `json:"steamRatingCount"`
	SteamAppID         string `json:"steamAppID"`
	Thumb              string `json:"thumb"`
}

func (r dealRecord) toDomain() entity.Deal {
	return entity.Deal{
		Title:               r.Title,
		StoreID:             r.StoreID,
		SalePrice:           floatOrZero(r.SalePrice),
		NormalPrice:         floatOrZero(r.NormalPrice),
		SavedPercentage:     int(math.Round(floatOrZero(r.Savings))),
		MetacriticScore:     intOrZero(r.MetacriticScore),
		SteamReviewsPercent: intOrZero(r.SteamRatingPercent),
		SteamReviewsCount:   intOrZero(r.SteamRatingCount),
		SteamAppID:          r.SteamAppID,
		ThumbnailURL:        r.Thumb,
	}
}

// Кривое числовое поле не валит всю выдачу, а превращается в ноль.
func floatOrZero(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func intOrZero(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
