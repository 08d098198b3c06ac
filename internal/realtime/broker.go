package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cwrk-planet/bizos/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fastjson"
)

// Broker доставляет события группы подключениям этого процесса и,
// если задан Redis, остальным инстансам через pub/sub.
type Broker struct {
	hub     *Hub
	rdb     *redis.Client
	channel string
	origin  string
	log     *slog.Logger
}

func NewBroker(hub *Hub, rdb *redis.Client, channel string, log *slog.Logger) *Broker {
	if log == nil {
		log = slog.Default()
	}
	return &Broker{
		hub:     hub,
		rdb:     rdb,
		channel: channel,
		origin:  uuid.NewString(),
		log:     log,
	}
}

// NewRedisClient: redis.ParseURL + Ping, как и для любого внешнего хранилища.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

type envelope struct {
	Origin string            `json:"origin"`
	Event  domain.GroupEvent `json:"event"`
}

type wireEvent struct {
	Type    string          `json:"type"`
	GroupID string          `json:"groupId"`
	Payload json.RawMessage `json:"payload"`
}

func (b *Broker) Publish(ctx context.Context, ev domain.GroupEvent) {
	b.hub.Broadcast(ev)

	if b.rdb == nil {
		return
	}
	data, err := json.Marshal(envelope{Origin: b.origin, Event: ev})
	if err != nil {
		b.log.Warn("realtime: marshal event failed", "type", ev.Type, "err", err)
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, data).Err(); err != nil {
		b.log.Warn("realtime: redis publish failed", "type", ev.Type, "group", ev.GroupID, "err", err)
	}
}

// Run слушает канал до отмены ctx. Без Redis сразу возвращает nil.
func (b *Broker) Run(ctx context.Context) error {
	if b.rdb == nil {
		return nil
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	b.log.Info("realtime: subscribed", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.deliver([]byte(msg.Payload))
		}
	}
}

func (b *Broker) deliver(data []byte) {
	// свои события уже разосланы локально в Publish
	if fastjson.GetString(data, "origin") == b.origin {
		return
	}
	var env struct {
		Event wireEvent `json:"event"`
	}
	if err := json.Unmarshal(data, &env); err != nil || env.Event.GroupID == "" {
		b.log.Debug("realtime: skip malformed event", "err", err)
		return
	}
	b.hub.Broadcast(domain.GroupEvent{
		Type:    env.Event.Type,
		GroupID: env.Event.GroupID,
		Payload: env.Event.Payload,
	})
}
