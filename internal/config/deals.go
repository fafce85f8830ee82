package config

import "deals_bot/internal/domain/entity"

type Deals struct {
	APIBaseURL string `env:"DEALS_API_BASE_URL" envDefault:"https://www.cheapshark.com/api/1.0/deals"`

	// Размеры плановой выборки по магазинам.
	SteamAmount int `env:"DEALS_STEAM_AMOUNT" envDefault:"60"`
	GogAmount   int `env:"DEALS_GOG_AMOUNT" envDefault:"60"`

	DefaultDeliveryHour int `env:"DEALS_DEFAULT_DELIVERY_HOUR" envDefault:"12"`

	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
}

// ChannelPreset описывает один топик со сделками, создаваемый при
// добавлении бота в группу.
type ChannelPreset struct {
	Name           string
	Store          entity.Store
	MinRetailPrice float64
	MaxRetailPrice float64
}

// ChannelPresets — стандартный набор топиков: дешёвые и дорогие игры по
// каждому магазину. Граница в $29 отделяет инди-ценник от AAA.
func (Deals) ChannelPresets() []ChannelPreset {
	return []ChannelPreset{
		{Name: "steam-deals", Store: entity.StoreSteam, MinRetailPrice: 0, MaxRetailPrice: 29},
		{Name: "steam-aaa-deals", Store: entity.StoreSteam, MinRetailPrice: 29, MaxRetailPrice: 1000},
		{Name: "gog-deals", Store: entity.StoreGOG, MinRetailPrice: 0, MaxRetailPrice: 29},
		{Name: "gog-aaa-deals", Store: entity.StoreGOG, MinRetailPrice: 29, MaxRetailPrice: 1000},
	}
}
