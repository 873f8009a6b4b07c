package widgetstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/2beens/trainingdash/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const keyPrefix = "trainingdash::widget-state::"

var (
	ErrStateNotFound = errors.New("widget state not found")
	ErrInvalidWidget = errors.New("invalid widget name")
	ErrInvalidState  = errors.New("widget state must be a JSON object")

	widgetNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
)

// State is an opaque snapshot a dashboard widget stores between sessions.
type State struct {
	Widget    string          `json:"widget"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Store struct {
	redisClient *redis.Client
	ttl         time.Duration
	now         func() time.Time
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redisClient: redisClient,
		ttl:         ttl,
		now:         time.Now,
	}
}

func stateKey(widget string) string {
	return keyPrefix + widget
}

func ValidWidgetName(widget string) bool {
	return widgetNameRe.MatchString(widget)
}

func (s *Store) Get(ctx context.Context, widget string) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.widgetstate.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("widget", widget))

	if !ValidWidgetName(widget) {
		return State{}, ErrInvalidWidget
	}

	raw, err := s.redisClient.Get(ctx, stateKey(widget)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, ErrStateNotFound
		}
		return State{}, fmt.Errorf("redis get: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("unmarshal stored state: %w", err)
	}
	return state, nil
}

// Put replaces the stored snapshot of widget and refreshes its TTL.
func (s *Store) Put(ctx context.Context, widget string, data json.RawMessage) (_ State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.widgetstate.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("widget", widget))

	if !ValidWidgetName(widget) {
		return State{}, ErrInvalidWidget
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil || object == nil {
		return State{}, ErrInvalidState
	}

	state := State{
		Widget:    widget,
		Data:      data,
		UpdatedAt: s.now().UTC(),
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return State{}, fmt.Errorf("marshal state: %w", err)
	}

	if err := s.redisClient.Set(ctx, stateKey(widget), raw, s.ttl).Err(); err != nil {
		return State{}, fmt.Errorf("redis set: %w", err)
	}
	return state, nil
}

func (s *Store) Delete(ctx context.Context, widget string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.widgetstate.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("widget", widget))

	if !ValidWidgetName(widget) {
		return ErrInvalidWidget
	}

	deleted, err := s.redisClient.Del(ctx, stateKey(widget)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if deleted == 0 {
		return ErrStateNotFound
	}
	return nil
}
