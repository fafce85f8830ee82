package messenger

import (
	"fmt"
	"html"
	"strings"

	"deals_bot/internal/domain/entity"
)

// В магазинных URL пунктуация выбрасывается, " - " схлопывается в пробел.
var slugPunctReplacer = strings.NewReplacer(" - ", " ", "'", "", ".", "", ":", "") //nolint:gochecknoglobals

// DealCard собирает HTML-карточку сделки. Невидимый якорь в начале
// заставляет Телеграм показать обложку игры как превью ссылки.
func DealCard(deal entity.Deal) string {
	var b strings.Builder

	if deal.ThumbnailURL != "" {
		fmt.Fprintf(&b, "<a href=\"%s\">&#8205;</a>", deal.ThumbnailURL)
	}

	fmt.Fprintf(&b, "<b>%s</b>\n\n", html.EscapeString(deal.Title))
	fmt.Fprintf(&b, "💵 <b>$%.2f</b> <s>$%.2f</s>\n", deal.SalePrice, deal.NormalPrice)
	fmt.Fprintf(&b, "📉 You save $%.2f (%d%% off)\n", deal.SavedAmount(), deal.SavedPercentage)

	if deal.MetacriticScore > 0 {
		fmt.Fprintf(&b, "Ⓜ️ Metacritic: %d\n", deal.MetacriticScore)
	}

	if deal.SteamReviewsCount > 0 {
		fmt.Fprintf(&b, "👍 Steam reviews: %d%% positive of %d\n", deal.SteamReviewsPercent, deal.SteamReviewsCount)
	}

	if url := StoreURL(deal); url != "" {
		fmt.Fprintf(&b, "\n🔗 <a href=\"%s\">Store page</a>", url)
	}

	return b.String()
}

// StoreURL возвращает ссылку на страницу игры в магазине.
func StoreURL(deal entity.Deal) string {
	switch deal.StoreID {
	case "1":
		if deal.SteamAppID == "" {
			return ""
		}
		return "https://store.steampowered.com/app/" + deal.SteamAppID
	case "7":
		return "https://www.gog.com/game/" + gogSlug(deal.Title)
	}

	return ""
}

// У GOG нет идентификатора игры в выдаче API, ссылка строится из названия.
func gogSlug(title string) string {
	slug := slugPunctReplacer.Replace(title)
	slug = strings.ReplaceAll(slug, " ", "_")

	return strings.ToLower(slug)
}
