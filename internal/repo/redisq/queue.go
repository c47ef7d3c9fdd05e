// Package redisq implements the review queue on Redis with the delivery
// contract of a hosted message queue: at-least-once delivery, per-message
// visibility timeout, and explicit delete-to-ack via receipt handles. The
// queue itself knows nothing about complaints and performs no deduplication.
package redisq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var ErrEmpty = errors.New("review queue is empty")

const (
	pendingSuffix  = ":pending"
	inflightSuffix = ":inflight"
	payloadsSuffix = ":payloads"
)

// receiveScript atomically moves one pending envelope into the in-flight set
// under a fresh receipt handle with a redelivery deadline.
// KEYS: pending list, payloads hash, inflight zset. ARGV: receipt handle,
// deadline (unix milliseconds).
var receiveScript = goredis.NewScript(`
local raw = redis.call("RPOP", KEYS[1])
if not raw then
	return false
end
redis.call("HSET", KEYS[2], ARGV[1], raw)
redis.call("ZADD", KEYS[3], ARGV[2], ARGV[1])
return raw
`)

// requeueScript returns every in-flight envelope whose deadline passed back to
// the pending list. KEYS as in receiveScript. ARGV: now (unix milliseconds).
var requeueScript = goredis.NewScript(`
local expired = redis.call("ZRANGEBYSCORE", KEYS[3], "-inf", ARGV[1])
local moved = 0
for _, handle in ipairs(expired) do
	local raw = redis.call("HGET", KEYS[2], handle)
	if raw then
		redis.call("LPUSH", KEYS[1], raw)
		moved = moved + 1
	end
	redis.call("HDEL", KEYS[2], handle)
	redis.call("ZREM", KEYS[3], handle)
end
return moved
`)

type Queue struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

type Message struct {
	MessageID     string
	ReceiptHandle string
	Body          []byte
}

type envelope struct {
	MessageID string          `json:"message_id"`
	Body      json.RawMessage `json:"body"`
}

func NewQueue(client *goredis.Client, prefix string) *Queue {
	if prefix == "" {
		prefix = "review_tasks"
	}
	return &Queue{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (q *Queue) Publish(ctx context.Context, payload any) (string, error) {
	if q.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal queue payload: %w", err)
	}

	env := envelope{
		MessageID: uuid.NewString(),
		Body:      body,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal queue envelope: %w", err)
	}

	if err := q.client.LPush(ctx, q.pendingKey(), raw).Err(); err != nil {
		return "", fmt.Errorf("publish queue message: %w", err)
	}

	return env.MessageID, nil
}

// Receive hides the returned message from other consumers until the
// visibility window elapses. The receipt handle is the only capability needed
// to acknowledge the message later.
func (q *Queue) Receive(ctx context.Context, visibility time.Duration) (Message, error) {
	if q.client == nil {
		return Message{}, fmt.Errorf("redis client is nil")
	}
	if visibility <= 0 {
		return Message{}, fmt.Errorf("invalid visibility timeout")
	}

	receipt := uuid.NewString()
	deadline := q.now().Add(visibility).UnixMilli()

	result, err := receiveScript.Run(ctx, q.client,
		[]string{q.pendingKey(), q.payloadsKey(), q.inflightKey()},
		receipt, deadline,
	).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return Message{}, ErrEmpty
		}
		return Message{}, fmt.Errorf("receive queue message: %w", err)
	}

	raw, ok := result.(string)
	if !ok {
		return Message{}, fmt.Errorf("unexpected receive script result %T", result)
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Message{}, fmt.Errorf("unmarshal queue envelope: %w", err)
	}

	return Message{
		MessageID:     env.MessageID,
		ReceiptHandle: receipt,
		Body:          env.Body,
	}, nil
}

// Delete acknowledges a received message. Deleting an unknown or already
// acknowledged receipt handle is not an error.
func (q *Queue) Delete(ctx context.Context, receiptHandle string) error {
	if q.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if receiptHandle == "" {
		return fmt.Errorf("receipt handle is required")
	}

	pipe := q.client.TxPipeline()
	pipe.HDel(ctx, q.payloadsKey(), receiptHandle)
	pipe.ZRem(ctx, q.inflightKey(), receiptHandle)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete queue message: %w", err)
	}

	return nil
}

// RequeueExpired makes every in-flight message whose visibility window has
// elapsed eligible for redelivery. Returns the number of messages moved.
func (q *Queue) RequeueExpired(ctx context.Context) (int, error) {
	if q.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	result, err := requeueScript.Run(ctx, q.client,
		[]string{q.pendingKey(), q.payloadsKey(), q.inflightKey()},
		strconv.FormatInt(q.now().UnixMilli(), 10),
	).Int()
	if err != nil {
		return 0, fmt.Errorf("requeue expired messages: %w", err)
	}

	return result, nil
}

// PendingCount reports how many messages are waiting for a consumer.
func (q *Queue) PendingCount(ctx context.Context) (int64, error) {
	if q.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	count, err := q.client.LLen(ctx, q.pendingKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count pending messages: %w", err)
	}

	return count, nil
}

func (q *Queue) pendingKey() string  { return q.prefix + pendingSuffix }
func (q *Queue) inflightKey() string { return q.prefix + inflightSuffix }
func (q *Queue) payloadsKey() string { return q.prefix + payloadsSuffix }
