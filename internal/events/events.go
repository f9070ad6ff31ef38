// Package events publishes user lifecycle events to Kafka.
package events

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/premium_service/internal/logging"
)

const TopicUserEvents = "user_events"

const (
	TypeUserLoggedIn    = "user_logged_in"
	TypeUserUpdated     = "user_updated"
	TypeUserDeleted     = "user_deleted"
	TypePremiumConsumed = "premium_consumed"
)

const publishTimeout = 5 * time.Second

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Premium    *int64    `json:"premium,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Emitter sends events and swallows failures after logging them. A request
// never fails because of the broker.
type Emitter struct {
	Pub   Publisher
	Topic string
	Now   func() time.Time
}

func NewEmitter(pub Publisher) *Emitter {
	if pub == nil {
		pub = Nop{}
	}
	return &Emitter{Pub: pub, Topic: TopicUserEvents, Now: time.Now}
}

func (em *Emitter) UserEvent(ctx context.Context, typ string, userID int64) {
	em.emit(ctx, Event{Type: typ, UserID: userID})
}

func (em *Emitter) PremiumEvent(ctx context.Context, typ string, userID, premium int64) {
	em.emit(ctx, Event{Type: typ, UserID: userID, Premium: &premium})
}

func (em *Emitter) emit(ctx context.Context, ev Event) {
	if em == nil || em.Pub == nil {
		return
	}
	ev.ID = uuid.New()
	ev.OccurredAt = em.Now().UTC()

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := em.Pub.PublishEvent(pubCtx, em.Topic, strconv.FormatInt(ev.UserID, 10), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error",
			"topic", em.Topic, "type", ev.Type, "user_id", ev.UserID, "error", err)
		return
	}
	logging.FromContext(ctx).Debug("publish_event_success", "topic", em.Topic, "type", ev.Type, "user_id", ev.UserID)
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Err    error
	events []Recorded
}

type Recorded struct {
	Topic string
	Key   string
	Event any
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, Recorded{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}
