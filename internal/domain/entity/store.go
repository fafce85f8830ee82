package entity

// Store — селектор магазина, по которому фильтруется выдача сделок.
type Store string

const (
	StoreSteam Store = "steam"
	StoreGOG   Store = "gog"
	StoreAll   Store = "all"
)

// APIID возвращает значение параметра storeID внешнего API сделок.
func (s Store) APIID() string {
	switch s {
	case StoreSteam:
		return "1"
	case StoreGOG:
		return "7"
	case StoreAll:
		return "1,7"
	}

	return ""
}

func (s Store) Valid() bool {
	return s == StoreSteam || s == StoreGOG || s == StoreAll
}

func (s Store) String() string {
	return string(s)
}
