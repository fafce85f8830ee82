package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/pkg/errcodes"
	"deals_bot/pkg/middlewarex"
	"deals_bot/pkg/rest"
	"deals_bot/pkg/tests"
)

type fakeGuilds struct {
	guilds []entity.Guild
}

func (r *fakeGuilds) List(_ context.Context) ([]entity.Guild, error) {
	return r.guilds, nil
}

type fakeTrigger struct {
	delivered int
	err       error

	gotGuildID int64
	gotStore   entity.Store
	gotAmount  int
}

func (t *fakeTrigger) Trigger(_ context.Context, guildPlatformID int64, store entity.Store, amount int) (int, error) {
	t.gotGuildID = guildPlatformID
	t.gotStore = store
	t.gotAmount = amount
	return t.delivered, t.err
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestAPI(t *testing.T, guilds *fakeGuilds, trigger *fakeTrigger) tests.APIClient {
	t.Helper()

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Recovery)

	NewServer(guilds, trigger).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return tests.NewAPIClient(srv.URL, srv.Client())
}

func TestServer_GetGuilds(t *testing.T) {
	rq := require.New(t)

	guilds := &fakeGuilds{guilds: []entity.Guild{
		{ID: 1, PlatformID: -100, Name: "one", Auto: true, DeliveryHour: 12},
		{ID: 2, PlatformID: -200, Name: "two", Auto: false, DeliveryHour: 9},
	}}

	api := newTestAPI(t, guilds, &fakeTrigger{})

	var got []rest.Guild
	resp, err := api.Get(context.Background(), "/v1/guilds", &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(got, 2)
	rq.Equal("one", got[0].Name)
	rq.Equal(int64(-200), got[1].PlatformID)
}

func TestServer_PostGuildUpdate(t *testing.T) {
	rq := require.New(t)

	trigger := &fakeTrigger{delivered: 42}
	api := newTestAPI(t, &fakeGuilds{}, trigger)

	var got rest.UpdateGuildDealsResponse
	resp, err := api.Post(context.Background(), "/v1/guilds/-100500/update",
		rest.UpdateGuildDealsRequest{Store: "steam", Amount: 50}, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(42, got.Delivered)

	rq.Equal(int64(-100500), trigger.gotGuildID)
	rq.Equal(entity.StoreSteam, trigger.gotStore)
	rq.Equal(50, trigger.gotAmount)
}

func TestServer_PostGuildUpdate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request rest.UpdateGuildDealsRequest
	}{
		{name: "unknown store", request: rest.UpdateGuildDealsRequest{Store: "origin", Amount: 10}},
		{name: "zero amount", request: rest.UpdateGuildDealsRequest{Store: "steam"}},
		{name: "too many", request: rest.UpdateGuildDealsRequest{Store: "steam", Amount: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			trigger := &fakeTrigger{}
			api := newTestAPI(t, &fakeGuilds{}, trigger)

			var errResp errorResponse
			resp, err := api.Post(context.Background(), "/v1/guilds/1/update", tt.request, nil, &errResp)
			rq.NoError(err)
			rq.Equal(http.StatusBadRequest, resp.StatusCode)
			rq.Equal(errcodes.ValidationError.String(), errResp.Code)
			rq.Zero(trigger.gotAmount)
		})
	}
}

func TestServer_PostGuildUpdate_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "guild not found",
			err:        domain.NewError(errcodes.GuildNotFound, "guild not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   errcodes.GuildNotFound.String(),
		},
		{
			name:       "already running",
			err:        domain.NewError(errcodes.AlreadyRunning, "delivery is already in progress"),
			wantStatus: http.StatusConflict,
			wantCode:   errcodes.AlreadyRunning.String(),
		},
		{
			name:       "no deals",
			err:        domain.NewError(errcodes.NoDealsFound, "no deals found"),
			wantStatus: http.StatusNotFound,
			wantCode:   errcodes.NoDealsFound.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			api := newTestAPI(t, &fakeGuilds{}, &fakeTrigger{err: tt.err})

			var errResp errorResponse
			resp, err := api.Post(context.Background(), "/v1/guilds/1/update",
				rest.UpdateGuildDealsRequest{Store: "all", Amount: 10}, nil, &errResp)
			rq.NoError(err)
			rq.Equal(tt.wantStatus, resp.StatusCode)
			rq.Equal(tt.wantCode, errResp.Code)
		})
	}
}

func TestServer_PostGuildUpdate_BadID(t *testing.T) {
	rq := require.New(t)

	api := newTestAPI(t, &fakeGuilds{}, &fakeTrigger{})

	var errResp errorResponse
	resp, err := api.Post(context.Background(), "/v1/guilds/abc/update",
		rest.UpdateGuildDealsRequest{Store: "all", Amount: 10}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}
