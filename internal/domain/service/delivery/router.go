package delivery

import "deals_bot/internal/domain/entity"

// Route раскладывает выдачу по каналам согласно их фильтрам, сохраняя
// исходный порядок сделок. Ключ — стабильный идентификатор строки канала.
// Ценовой диапазон: MinRetailPrice < NormalPrice <= MaxRetailPrice.
func Route(deals []entity.Deal, channels []entity.Channel) map[int64][]entity.Deal {
	routed := make(map[int64][]entity.Deal, len(channels))

	for _, ch := range channels {
		matched := make([]entity.Deal, 0)

		for _, deal := range deals {
			if deal.StoreID != ch.Store.APIID() {
				continue
			}
			if deal.NormalPrice <= ch.MinRetailPrice || deal.NormalPrice > ch.MaxRetailPrice {
				continue
			}

			matched = append(matched, deal)
		}

		routed[ch.ID] = matched
	}

	return routed
}
