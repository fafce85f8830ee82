package server

import (
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"deals_bot/internal/domain/entity"
	"deals_bot/pkg/errcodes"
	"deals_bot/pkg/httpx/reply"
	"deals_bot/pkg/httpx/req"
	"deals_bot/pkg/lox"
	"deals_bot/pkg/rest"
)

func (s Server) getV1Guilds(w http.ResponseWriter, r *http.Request) error {
	guilds, err := s.guilds.List(r.Context())
	if err != nil {
		return fmt.Errorf("list guilds: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, lox.Map(guilds, newRESTGuild))

	return nil
}

func (s Server) postV1GuildUpdate(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("parse guild id: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("guild id must be an integer"),
		)
	}

	var request rest.UpdateGuildDealsRequest
	if err := req.Read(r, &request); err != nil {
		return err
	}

	delivered, err := s.update.Trigger(r.Context(), id, entity.Store(request.Store), request.Amount)
	if err != nil {
		return toFailure(err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.UpdateGuildDealsResponse{Delivered: delivered})

	return nil
}
