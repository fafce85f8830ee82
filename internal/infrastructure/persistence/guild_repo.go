package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/pkg/errcodes"
)

type GuildRepository struct {
	db *sqlx.DB
}

// NewGuildRepository создаёт новый экземпляр репозитория.
func NewGuildRepository(db *sqlx.DB) *GuildRepository {
	return &GuildRepository{db: db}
}

// Create сохраняет новый сервер. Повторное добавление того же чата
// не ошибка: строка остаётся как есть.
func (r *GuildRepository) Create(ctx context.Context, guild *entity.Guild) error {
	query := `
		INSERT INTO guilds (platform_id, name, auto, delivery_hour)
		VALUES (:platform_id, :name, :auto, :delivery_hour)
		ON CONFLICT (platform_id) DO NOTHING`

	params := map[string]any{
		"platform_id":   guild.PlatformID,
		"name":          guild.Name,
		"auto":          guild.Auto,
		"delivery_hour": guild.DeliveryHour,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert guild")
	}

	return nil
}

// GetByPlatformID возвращает сервер по идентификатору чата.
func (r *GuildRepository) GetByPlatformID(ctx context.Context, platformID int64) (*entity.Guild, error) {
	query := `
		SELECT id, platform_id, name, auto, delivery_hour
		FROM guilds
		WHERE platform_id = $1`

	var schema guildSchema
	if err := r.db.GetContext(ctx, &schema, query, platformID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.GuildNotFound, "guild not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get guild")
	}

	return schema.toDomain(), nil
}

// List возвращает все сервера.
func (r *GuildRepository) List(ctx context.Context) ([]entity.Guild, error) {
	query := `
		SELECT id, platform_id, name, auto, delivery_hour
		FROM guilds
		ORDER BY id`

	var schemas []guildSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list guilds")
	}

	guilds := make([]entity.Guild, 0, len(schemas))
	for _, s := range schemas {
		guilds = append(guilds, *s.toDomain())
	}

	return guilds, nil
}

// ListDue возвращает сервера с включённой автодоставкой на данный час.
func (r *GuildRepository) ListDue(ctx context.Context, hour int) ([]entity.Guild, error) {
	query := `
		SELECT id, platform_id, name, auto, delivery_hour
		FROM guilds
		WHERE auto = TRUE AND delivery_hour = $1
		ORDER BY id`

	var schemas []guildSchema
	if err := r.db.SelectContext(ctx, &schemas, query, hour); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list due guilds")
	}

	guilds := make([]entity.Guild, 0, len(schemas))
	for _, s := range schemas {
		guilds = append(guilds, *s.toDomain())
	}

	return guilds, nil
}

// SetAuto включает или выключает автодоставку.
func (r *GuildRepository) SetAuto(ctx context.Context, platformID int64, auto bool) error {
	query := `
		UPDATE guilds
		SET auto = $1
		WHERE platform_id = $2`

	return r.execUpdate(ctx, query, auto, platformID)
}

// SetDeliveryHour меняет час автодоставки.
func (r *GuildRepository) SetDeliveryHour(ctx context.Context, platformID int64, hour int) error {
	if hour < 0 || hour > 23 {
		return domain.NewError(errcodes.InvalidHour, fmt.Sprintf("delivery hour %d is out of range 0..23", hour))
	}

	query := `
		UPDATE guilds
		SET delivery_hour = $1
		WHERE platform_id = $2`

	return r.execUpdate(ctx, query, hour, platformID)
}

// RemoveByPlatformID удаляет сервер; привязки каналов уходят каскадом.
func (r *GuildRepository) RemoveByPlatformID(ctx context.Context, platformID int64) error {
	query := `DELETE FROM guilds WHERE platform_id = $1`

	if _, err := r.db.ExecContext(ctx, query, platformID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to delete guild")
	}

	return nil
}

func (r *GuildRepository) execUpdate(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to execute update")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.GuildNotFound, "guild not found")
	}

	return nil
}
