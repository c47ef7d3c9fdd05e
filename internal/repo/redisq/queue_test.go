package redisq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

type testTask struct {
	ComplaintID int64 `json:"complaint_id"`
	ContentID   int64 `json:"content_id"`
}

func TestPublishReceiveDelete(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	queue := NewQueue(client, "revq_test")
	ctx := context.Background()

	messageID, err := queue.Publish(ctx, testTask{ComplaintID: 7, ContentID: 11})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if messageID == "" {
		t.Fatalf("expected non-empty message id")
	}

	msg, err := queue.Receive(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if msg.MessageID != messageID {
		t.Fatalf("unexpected message id: got %s want %s", msg.MessageID, messageID)
	}
	if msg.ReceiptHandle == "" {
		t.Fatalf("expected non-empty receipt handle")
	}

	var task testTask
	if err := json.Unmarshal(msg.Body, &task); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if task.ComplaintID != 7 || task.ContentID != 11 {
		t.Fatalf("unexpected task payload: %+v", task)
	}

	pending, err := queue.PendingCount(ctx)
	if err != nil {
		t.Fatalf("pending count: %v", err)
	}
	if pending != 0 {
		t.Fatalf("expected no pending messages while one is in flight, got %d", pending)
	}

	if err := queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		t.Fatalf("delete: %v", err)
	}

	moved, err := queue.RequeueExpired(ctx)
	if err != nil {
		t.Fatalf("requeue expired: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected no requeued messages after ack, got %d", moved)
	}
}

func TestReceiveEmptyQueue(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	queue := NewQueue(client, "revq_test")

	_, err := queue.Receive(context.Background(), 10*time.Minute)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestVisibilityTimeoutRedelivery(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	queue := NewQueue(client, "revq_test")
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	queue.now = func() time.Time { return now }

	ctx := context.Background()

	messageID, err := queue.Publish(ctx, testTask{ComplaintID: 3, ContentID: 5})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	first, err := queue.Receive(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	// Inside the visibility window nothing is eligible.
	moved, err := queue.RequeueExpired(ctx)
	if err != nil {
		t.Fatalf("requeue expired: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected no requeue before deadline, got %d", moved)
	}
	if _, err := queue.Receive(ctx, 10*time.Minute); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected empty queue while message is in flight, got %v", err)
	}

	now = now.Add(11 * time.Minute)

	moved, err = queue.RequeueExpired(ctx)
	if err != nil {
		t.Fatalf("requeue expired after deadline: %v", err)
	}
	if moved != 1 {
		t.Fatalf("expected one requeued message, got %d", moved)
	}

	second, err := queue.Receive(ctx, 10*time.Minute)
	if err != nil {
		t.Fatalf("receive redelivered: %v", err)
	}
	if second.MessageID != messageID {
		t.Fatalf("expected same message id on redelivery: got %s want %s", second.MessageID, messageID)
	}
	if second.ReceiptHandle == first.ReceiptHandle {
		t.Fatalf("expected a fresh receipt handle on redelivery")
	}

	// The original receipt handle is dead; acking it must not resurface work.
	if err := queue.Delete(ctx, first.ReceiptHandle); err != nil {
		t.Fatalf("delete stale receipt: %v", err)
	}
	if err := queue.Delete(ctx, second.ReceiptHandle); err != nil {
		t.Fatalf("delete current receipt: %v", err)
	}
	moved, err = queue.RequeueExpired(ctx)
	if err != nil {
		t.Fatalf("requeue expired after ack: %v", err)
	}
	if moved != 0 {
		t.Fatalf("expected nothing left to requeue, got %d", moved)
	}
}

func TestDeleteUnknownReceiptHandle(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	queue := NewQueue(client, "revq_test")

	if err := queue.Delete(context.Background(), "no-such-receipt"); err != nil {
		t.Fatalf("expected deleting unknown receipt to be a no-op, got %v", err)
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
