package cheapshark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
)

func TestClient_Page_QueryParams(t *testing.T) {
	rq := require.New(t)

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.Page(context.Background(), deals.Query{
		Store:          entity.StoreAll,
		SortBy:         "Metacritic",
		MinRetailPrice: 5,
		MaxRetailPrice: 60,
		MinSteamRating: 80,
		AAA:            true,
	}, 60, 2)
	rq.NoError(err)

	rq.Equal(map[string]string{
		"storeID":     "1,7",
		"sortBy":      "Metacritic",
		"onSale":      "1",
		"upperPrice":  "60",
		"pageSize":    "60",
		"pageNumber":  "2",
		"lowerPrice":  "5",
		"steamRating": "80",
		"AAA":         "1",
	}, gotQuery)
}

func TestClient_Page_OptionalParamsOmitted(t *testing.T) {
	rq := require.New(t)

	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.Page(context.Background(), deals.Query{Store: entity.StoreSteam, MaxRetailPrice: 60}, 60, 0)
	rq.NoError(err)
	rq.NotContains(rawQuery, "lowerPrice")
	rq.NotContains(rawQuery, "steamRating")
	rq.NotContains(rawQuery, "AAA")
}

func TestClient_Page_Decode(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{
				"title": "Overlord II",
				"storeID": "1",
				"salePrice": "1.25",
				"normalPrice": "9.99",
				"savings": "87.487487",
				"metacriticScore": "74",
				"steamRatingPercent": "89",
				"steamRatingCount": "2893",
				"steamAppID": "12810",
				"thumb": "https://cdn.example.com/12810.jpg"
			},
			{
				"title": "Broken Numbers",
				"storeID": "7",
				"salePrice": "oops",
				"normalPrice": "",
				"savings": "not-a-number",
				"metacriticScore": ""
			}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	got, err := client.Page(context.Background(), deals.Query{Store: entity.StoreAll, MaxRetailPrice: 60}, 60, 0)
	rq.NoError(err)
	rq.Len(got, 2)

	rq.Equal(entity.Deal{
		Title:               "Overlord II",
		StoreID:             "1",
		SalePrice:           1.25,
		NormalPrice:         9.99,
		SavedPercentage:     87,
		MetacriticScore:     74,
		SteamReviewsPercent: 89,
		SteamReviewsCount:   2893,
		SteamAppID:          "12810",
		ThumbnailURL:        "https://cdn.example.com/12810.jpg",
	}, got[0])

	// Кривые числа не валят страницу, а обнуляются.
	rq.Equal(0.0, got[1].SalePrice)
	rq.Equal(0, got[1].SavedPercentage)
	rq.Equal(8.74, entity.Deal{NormalPrice: 9.99, SalePrice: 1.25}.SavedAmount())
}

func TestClient_Page_UpstreamError(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client())

	_, err := client.Page(context.Background(), deals.Query{Store: entity.StoreSteam, MaxRetailPrice: 60}, 60, 0)
	rq.Error(err)
	rq.Contains(err.Error(), "502")
}
