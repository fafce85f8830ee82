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

type ChannelRepository struct {
	db *sqlx.DB
}

// NewChannelRepository создаёт новый экземпляр репозитория.
func NewChannelRepository(db *sqlx.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *ChannelRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// CreateBatch сохраняет привязки каналов атомарно: сервер либо получает
// весь набор каналов, либо ни одного.
func (r *ChannelRepository) CreateBatch(ctx context.Context, channels []entity.Channel) error {
	if len(channels) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO channels (
				platform_id, category_id, guild_platform_id, name,
				min_retail_price, max_retail_price, store
			)
			VALUES (
				:platform_id, :category_id, :guild_platform_id, :name,
				:min_retail_price, :max_retail_price, :store
			)`

		for i, ch := range channels {
			params := map[string]any{
				"platform_id":       ch.PlatformID,
				"category_id":       ch.CategoryID,
				"guild_platform_id": ch.GuildPlatformID,
				"name":              ch.Name,
				"min_retail_price":  ch.MinRetailPrice,
				"max_retail_price":  ch.MaxRetailPrice,
				"store":             ch.Store.String(),
			}

			if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError,
					fmt.Sprintf("failed to insert channel at index %d", i))
			}
		}

		return nil
	})
}

// ListByGuild возвращает привязки каналов сервера вместе с сообщениями
// их последней доставки.
func (r *ChannelRepository) ListByGuild(ctx context.Context, guildPlatformID int64) ([]entity.Channel, error) {
	query := `
		SELECT id, platform_id, category_id, guild_platform_id, name,
		       min_retail_price, max_retail_price, store
		FROM channels
		WHERE guild_platform_id = $1
		ORDER BY id`

	var schemas []channelSchema
	if err := r.db.SelectContext(ctx, &schemas, query, guildPlatformID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list channels")
	}

	if len(schemas) == 0 {
		return []entity.Channel{}, nil
	}

	channels := make([]entity.Channel, 0, len(schemas))
	index := make(map[int64]int, len(schemas))
	for _, s := range schemas {
		index[s.ID] = len(channels)
		channels = append(channels, s.toDomain())
	}

	channelIDs := make([]int64, 0, len(channels))
	for _, ch := range channels {
		channelIDs = append(channelIDs, ch.ID)
	}

	msgQuery, args, err := sqlx.In(`
		SELECT channel_id, message_id
		FROM channel_messages
		WHERE channel_id IN (?)
		ORDER BY message_id`, channelIDs)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build messages query")
	}

	var messages []channelMessageSchema
	if err := r.db.SelectContext(ctx, &messages, r.db.Rebind(msgQuery), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list channel messages")
	}

	for _, m := range messages {
		i := index[m.ChannelID]
		channels[i].MessageIDs = append(channels[i].MessageIDs, m.MessageID)
	}

	return channels, nil
}

// UpdatePlatformID переписывает платформенный идентификатор пересозданного
// канала у той же строки. Сообщения прошлой доставки при этом забываются:
// в новом канале чистить нечего.
func (r *ChannelRepository) UpdatePlatformID(ctx context.Context, oldPlatformID, newPlatformID int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var channelID int64
		err := tx.GetContext(ctx, &channelID, `
			UPDATE channels
			SET platform_id = $1
			WHERE platform_id = $2
			RETURNING id`, newPlatformID, oldPlatformID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewError(errcodes.ChannelNotFound, "channel not found")
		}
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update platform id")
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM channel_messages WHERE channel_id = $1`, channelID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to clear channel messages")
		}

		return nil
	})
}

// ReplaceMessageIDs запоминает сообщения последней доставки канала,
// вытесняя прошлый набор.
func (r *ChannelRepository) ReplaceMessageIDs(ctx context.Context, channelID int64, messageIDs []int) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM channels WHERE id = $1)`, channelID)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check channel")
		}
		if !exists {
			return domain.NewError(errcodes.ChannelNotFound, "channel not found")
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM channel_messages WHERE channel_id = $1`, channelID); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to clear channel messages")
		}

		if len(messageIDs) == 0 {
			return nil
		}

		rows := make([]channelMessageSchema, 0, len(messageIDs))
		for _, id := range messageIDs {
			rows = append(rows, channelMessageSchema{ChannelID: channelID, MessageID: id})
		}

		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO channel_messages (channel_id, message_id)
			VALUES (:channel_id, :message_id)`, rows); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert channel messages")
		}

		return nil
	})
}
