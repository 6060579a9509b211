// Package redis implements the delayed-delivery mechanism for payment timeouts
// on a Redis sorted set scored by fire time.
//
// Delivery is at least once: Claim leases due tasks by pushing their score
// forward, and a task that is not acknowledged before the lease runs out is
// claimed again by the next poll.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"takeout/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "takeout:payment-timeouts"

// claimScript moves up to ARGV[2] members scored at or below ARGV[1] to the
// lease deadline ARGV[3] and returns them with their original scores.
var claimScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'WITHSCORES', 'LIMIT', 0, tonumber(ARGV[2]))
for i = 1, #due, 2 do
	redis.call('ZADD', KEYS[1], 'XX', ARGV[3], due[i])
end
return due
`)

// DelayQueue implements ports.TimeoutQueue.
type DelayQueue struct {
	client redis.UniversalClient
	key    string
	lease  time.Duration
	logger *slog.Logger
}

func NewDelayQueue(client redis.UniversalClient, key string, lease time.Duration, logger *slog.Logger) (*DelayQueue, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if key == "" {
		key = DefaultKey
	}
	if lease <= 0 {
		return nil, fmt.Errorf("lease must be positive, got %s", lease)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DelayQueue{client: client, key: key, lease: lease, logger: logger.With("component", "DelayQueue")}, nil
}

// Schedule stores the task; scheduling the same order again moves its fire time.
func (q *DelayQueue) Schedule(ctx context.Context, task ports.TimeoutTask) error {
	err := q.client.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(task.FireAt.UnixMilli()),
		Member: strconv.FormatInt(task.OrderID, 10),
	}).Err()
	if err != nil {
		return fmt.Errorf("schedule timeout for order %d: %w", task.OrderID, err)
	}
	return nil
}

// Claim leases up to limit tasks due at now. FireAt carries the scheduled time.
// Members that are not order ids are removed and left out of the result.
func (q *DelayQueue) Claim(ctx context.Context, now time.Time, limit int) ([]ports.TimeoutTask, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := claimScript.Run(ctx, q.client, []string{q.key},
		now.UnixMilli(), limit, now.Add(q.lease).UnixMilli(),
	).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("claim timeouts: %w", err)
	}

	tasks := make([]ports.TimeoutTask, 0, len(raw)/2)
	var corrupt []any
	for i := 0; i+1 < len(raw); i += 2 {
		task, parseErr := parseTask(raw[i], raw[i+1])
		if parseErr != nil {
			q.logger.ErrorContext(ctx, "Dropping corrupt timeout member", "member", raw[i], "error", parseErr)
			corrupt = append(corrupt, raw[i])
			continue
		}
		tasks = append(tasks, task)
	}

	if len(corrupt) > 0 {
		if err = q.client.ZRem(ctx, q.key, corrupt...).Err(); err != nil {
			q.logger.WarnContext(ctx, "Failed to drop corrupt timeout members", "count", len(corrupt), "error", err)
		}
	}
	return tasks, nil
}

func parseTask(member, score string) (ports.TimeoutTask, error) {
	id, err := strconv.ParseInt(member, 10, 64)
	if err != nil {
		return ports.TimeoutTask{}, err
	}
	fireAt, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return ports.TimeoutTask{}, err
	}
	return ports.TimeoutTask{OrderID: id, FireAt: time.UnixMilli(int64(fireAt))}, nil
}

// Ack removes the task so it is never delivered again.
func (q *DelayQueue) Ack(ctx context.Context, orderID int64) error {
	return q.client.ZRem(ctx, q.key, strconv.FormatInt(orderID, 10)).Err()
}

// Pending reports how many tasks are stored, leased or not.
func (q *DelayQueue) Pending(ctx context.Context) (int64, error) {
	return q.client.ZCard(ctx, q.key).Result()
}
