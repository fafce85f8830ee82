package delivery

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/infrastructure/metrics"
	"deals_bot/pkg/errcodes"
)

type fakeChat struct {
	mu sync.Mutex

	// Нумерация сообщений сквозная на весь чат, как в форум-супергруппе.
	nextID int

	// Лог операций по каналам: "purge", "text:...", "card:...".
	ops map[int64][]string

	// Фактически отправленные и удалённые идентификаторы по каналам.
	sent   map[int64][]int
	purged map[int64][]int

	sendErr      map[int64]error
	created      []string
	newChannelID int64
}

func newFakeChat() *fakeChat {
	return &fakeChat{
		ops:     make(map[int64][]string),
		sent:    make(map[int64][]int),
		purged:  make(map[int64][]int),
		sendErr: make(map[int64]error),
	}
}

func (c *fakeChat) record(channelID int64, op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.ops[channelID] = append(c.ops[channelID], op)
	c.sent[channelID] = append(c.sent[channelID], c.nextID)
	return c.nextID
}

func (c *fakeChat) SendText(_ context.Context, _ int64, channelID int64, text string) (int, error) {
	if err := c.sendErr[channelID]; err != nil {
		return 0, err
	}
	return c.record(channelID, "text:"+text), nil
}

func (c *fakeChat) SendDealCard(_ context.Context, _ int64, channelID int64, deal entity.Deal) (int, error) {
	if err := c.sendErr[channelID]; err != nil {
		return 0, err
	}
	return c.record(channelID, "card:"+deal.Title), nil
}

func (c *fakeChat) Purge(_ context.Context, _ int64, channelID int64, messageIDs []int) error {
	if err := c.sendErr[channelID]; err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops[channelID] = append(c.ops[channelID], "purge")
	c.purged[channelID] = append(c.purged[channelID], messageIDs...)
	return nil
}

func (c *fakeChat) CreateChannel(_ context.Context, _ int64, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, name)
	return c.newChannelID, nil
}

type fakeChannels struct {
	mu       sync.Mutex
	channels []entity.Channel

	platformUpdates [][2]int64
	messageIDs      map[int64][]int
}

func (r *fakeChannels) ListByGuild(_ context.Context, _ int64) ([]entity.Channel, error) {
	return r.channels, nil
}

func (r *fakeChannels) UpdatePlatformID(_ context.Context, oldID, newID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platformUpdates = append(r.platformUpdates, [2]int64{oldID, newID})
	return nil
}

func (r *fakeChannels) ReplaceMessageIDs(_ context.Context, channelID int64, messageIDs []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.messageIDs == nil {
		r.messageIDs = make(map[int64][]int)
	}
	r.messageIDs[channelID] = messageIDs
	return nil
}

func newTestService(channels *fakeChannels, chat *fakeChat) (*Service, *TaskRegistry) {
	registry := NewTaskRegistry()
	svc := NewService(channels, chat, registry, metrics.NewDeliveryMetrics(prometheus.NewRegistry())).
		WithSettleDelay(0)
	return svc, registry
}

func testGuild() entity.Guild {
	return entity.Guild{ID: 1, PlatformID: -100500, Name: "test guild"}
}

func steamDeals(titles ...string) []entity.Deal {
	deals := make([]entity.Deal, 0, len(titles))
	for _, title := range titles {
		deals = append(deals, entity.Deal{Title: title, StoreID: "1", NormalPrice: 20})
	}
	return deals
}

func TestService_DeliverToGuild_PostsInOrder(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, GuildPlatformID: -100500, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29},
	}}
	svc, registry := newTestService(channels, chat)

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a", "b"))
	rq.NoError(err)

	ops := chat.ops[10]
	rq.Len(ops, 4)
	rq.Contains(ops[0], "text:")
	rq.Equal("card:a", ops[1])
	rq.Equal("card:b", ops[2])
	rq.Equal("text:That's it for today :(", ops[3])

	// Отправленные сообщения сохранены по стабильному идентификатору строки.
	rq.Equal([]int{1, 2, 3, 4}, channels.messageIDs[1])

	rq.False(registry.IsRunning(testGuild().PlatformID, TaskDeliver))
}

func TestService_DeliverToGuild_PurgesExactlyPreviousMessages(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29,
			MessageIDs: []int{3, 9}},
	}}
	svc, _ := newTestService(channels, chat)

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a"))
	rq.NoError(err)
	rq.Equal("purge", chat.ops[10][0])

	// Удаляются ровно сообщения прошлой доставки, без промежутков между ними.
	rq.Equal([]int{3, 9}, chat.purged[10])
}

func TestService_DeliverToGuild_ConcurrentChannelsKeepOwnMessages(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29},
		{ID: 2, PlatformID: 20, Name: "gog-deals", Store: entity.StoreGOG, MaxRetailPrice: 29},
	}}
	svc, _ := newTestService(channels, chat)

	batch := make([]entity.Deal, 0, 20)
	for i := range 10 {
		batch = append(batch,
			entity.Deal{Title: fmt.Sprintf("s%d", i), StoreID: "1", NormalPrice: 20},
			entity.Deal{Title: fmt.Sprintf("g%d", i), StoreID: "7", NormalPrice: 20},
		)
	}

	err := svc.DeliverToGuild(context.Background(), testGuild(), batch)
	rq.NoError(err)

	// Каналы пишут в общую нумерацию чата параллельно, их идентификаторы
	// перемежаются. За каждым каналом сохраняются ровно его сообщения.
	rq.Equal(chat.sent[10], channels.messageIDs[1])
	rq.Equal(chat.sent[20], channels.messageIDs[2])

	for _, id := range channels.messageIDs[2] {
		rq.NotContains(channels.messageIDs[1], id)
	}
}

func TestService_DeliverToGuild_EmptyChannelUntouched(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29},
		{ID: 2, PlatformID: 20, Name: "gog-deals", Store: entity.StoreGOG, MaxRetailPrice: 29},
	}}
	svc, _ := newTestService(channels, chat)

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a"))
	rq.NoError(err)
	rq.NotEmpty(chat.ops[10])
	rq.Empty(chat.ops[20])
}

func TestService_DeliverToGuild_Duplicate(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	channels := &fakeChannels{}
	svc, registry := newTestService(channels, chat)

	rq.True(registry.Acquire(testGuild().PlatformID, TaskDeliver))

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a"))
	rq.True(domain.HasCode(err, errcodes.AlreadyRunning))

	// Чужая пометка не снимается.
	rq.True(registry.IsRunning(testGuild().PlatformID, TaskDeliver))
}

func TestService_DeliverToGuild_ForbiddenIsSoft(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	chat.sendErr[10] = domain.NewError(errcodes.Forbidden, "bot was muted")
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29},
	}}
	svc, registry := newTestService(channels, chat)

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a"))
	rq.NoError(err)
	rq.False(registry.IsRunning(testGuild().PlatformID, TaskDeliver))
}

func TestService_DeliverToGuild_RecreatesMissingChannelOnce(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	chat.newChannelID = 77
	chat.sendErr[10] = domain.NewError(errcodes.ChannelNotFound, "message thread not found")
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, CategoryID: -100500, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29},
	}}
	svc, _ := newTestService(channels, chat)

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a"))
	rq.NoError(err)

	rq.Equal([]string{"steam-deals"}, chat.created)
	rq.Equal([][2]int64{{10, 77}}, channels.platformUpdates)

	// Повтор ушёл уже в новый канал.
	rq.Len(chat.ops[77], 3)
	rq.Equal([]int{1, 2, 3}, channels.messageIDs[1])
}

func TestService_DeliverToGuild_RecreationNotLooped(t *testing.T) {
	rq := require.New(t)

	chat := newFakeChat()
	chat.newChannelID = 77
	notFound := domain.NewError(errcodes.ChannelNotFound, "message thread not found")
	chat.sendErr[10] = notFound
	chat.sendErr[77] = notFound
	channels := &fakeChannels{channels: []entity.Channel{
		{ID: 1, PlatformID: 10, CategoryID: -100500, Name: "steam-deals", Store: entity.StoreSteam, MaxRetailPrice: 29},
	}}
	svc, registry := newTestService(channels, chat)

	err := svc.DeliverToGuild(context.Background(), testGuild(), steamDeals("a"))
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ChannelNotFound))

	// Пересоздание произошло ровно один раз, пометка снята.
	rq.Len(chat.created, 1)
	rq.False(registry.IsRunning(testGuild().PlatformID, TaskDeliver))
}
