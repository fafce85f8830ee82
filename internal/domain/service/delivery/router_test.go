package delivery

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deals_bot/internal/domain/entity"
)

func TestRoute_PriceBands(t *testing.T) {
	channels := []entity.Channel{
		{ID: 1, Store: entity.StoreSteam, MinRetailPrice: 0, MaxRetailPrice: 29},
		{ID: 2, Store: entity.StoreSteam, MinRetailPrice: 29, MaxRetailPrice: 1000},
	}

	deals := []entity.Deal{
		{Title: "cheap", StoreID: "1", NormalPrice: 10},
		{Title: "boundary", StoreID: "1", NormalPrice: 29},
		{Title: "above boundary", StoreID: "1", NormalPrice: 29.01},
		{Title: "expensive", StoreID: "1", NormalPrice: 50},
	}

	routed := Route(deals, channels)

	rq := require.New(t)
	rq.Equal([]string{"cheap", "boundary"}, titles(routed[1]))
	rq.Equal([]string{"above boundary", "expensive"}, titles(routed[2]))
}

func TestRoute_StoreMatch(t *testing.T) {
	channels := []entity.Channel{
		{ID: 1, Store: entity.StoreSteam, MaxRetailPrice: 1000},
		{ID: 2, Store: entity.StoreGOG, MaxRetailPrice: 1000},
	}

	deals := []entity.Deal{
		{Title: "steam game", StoreID: "1", NormalPrice: 20},
		{Title: "gog game", StoreID: "7", NormalPrice: 20},
		{Title: "unknown store", StoreID: "11", NormalPrice: 20},
	}

	routed := Route(deals, channels)

	rq := require.New(t)
	rq.Equal([]string{"steam game"}, titles(routed[1]))
	rq.Equal([]string{"gog game"}, titles(routed[2]))
}

func TestRoute_EmptyMatchStaysPresent(t *testing.T) {
	channels := []entity.Channel{
		{ID: 5, Store: entity.StoreGOG, MinRetailPrice: 29, MaxRetailPrice: 1000},
	}

	routed := Route([]entity.Deal{{Title: "steam only", StoreID: "1", NormalPrice: 40}}, channels)

	rq := require.New(t)
	rq.Contains(routed, int64(5))
	rq.Empty(routed[5])
}

func TestRoute_OrderPreserved(t *testing.T) {
	channels := []entity.Channel{{ID: 1, Store: entity.StoreSteam, MaxRetailPrice: 1000}}

	deals := []entity.Deal{
		{Title: "a", StoreID: "1", NormalPrice: 30},
		{Title: "b", StoreID: "7", NormalPrice: 30},
		{Title: "c", StoreID: "1", NormalPrice: 5},
		{Title: "d", StoreID: "1", NormalPrice: 999},
	}

	rq := require.New(t)
	rq.Equal([]string{"a", "c", "d"}, titles(Route(deals, channels)[1]))
}

func titles(deals []entity.Deal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.Title)
	}
	return out
}
