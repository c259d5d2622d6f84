package application

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/ports"
)

const (
	EventPoolSwap      = "POOL_SWAP"
	EventPoolJoin      = "POOL_JOIN"
	EventPoolExit      = "POOL_EXIT"
	EventPricesUpdated = "PRICES_UPDATED"
	EventAny           = ports.AnyTopic

	listenerBufferSize = 32
)

func supportedEvents() []interface{} {
	return []interface{}{
		EventPoolSwap, EventPoolJoin, EventPoolExit, EventPricesUpdated, EventAny,
	}
}

// Event is the message published for every state change of a pool.
type Event struct {
	Topic     string      `json:"event"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// PubSubService notifies pool events to the registered webhooks and to
// in-process listeners.
type PubSubService interface {
	AddWebhook(ctx context.Context, req AddWebhookRequest) (string, error)
	RemoveWebhook(ctx context.Context, id string) error
	ListWebhooks(ctx context.Context, event string) ([]WebhookInfo, error)
	// Listen returns a channel receiving the events for the given topic, or
	// all of them for EventAny. The returned func must be called to stop
	// listening. Events are dropped for listeners that don't keep up.
	Listen(topic string) (<-chan Event, func())
	Publish(topic string, data interface{})
	Close()
}

type listener struct {
	topic string
	ch    chan Event
}

type pubsubService struct {
	pubsub ports.PubSub

	lock      sync.RWMutex
	listeners map[int]listener
	nextID    int
	wg        sync.WaitGroup
}

// NewPubSubService returns a service publishing to the given webhook pubsub.
// A nil pubsub disables webhooks while in-process listeners keep working.
func NewPubSubService(pubsub ports.PubSub) PubSubService {
	return &pubsubService{
		pubsub:    pubsub,
		listeners: make(map[int]listener),
	}
}

func (s *pubsubService) AddWebhook(
	_ context.Context, req AddWebhookRequest,
) (string, error) {
	if s.pubsub == nil {
		return "", ErrWebhookManagerNotInitialized
	}
	if err := req.Validate(); err != nil {
		return "", wrapValidationErr(err)
	}
	return s.pubsub.Subscribe(req.Event, req.Endpoint, req.Secret)
}

func (s *pubsubService) RemoveWebhook(_ context.Context, id string) error {
	if s.pubsub == nil {
		return ErrWebhookManagerNotInitialized
	}
	return s.pubsub.Unsubscribe(id)
}

func (s *pubsubService) ListWebhooks(
	_ context.Context, event string,
) ([]WebhookInfo, error) {
	if s.pubsub == nil {
		return nil, ErrWebhookManagerNotInitialized
	}
	subs := s.pubsub.ListSubscriptionsForTopic(event)
	webhooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		webhooks = append(webhooks, WebhookInfo{
			ID:        sub.Id(),
			Event:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return webhooks, nil
}

func (s *pubsubService) Listen(topic string) (<-chan Event, func()) {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, listenerBufferSize)
	s.listeners[id] = listener{topic, ch}

	return ch, func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		if _, ok := s.listeners[id]; ok {
			delete(s.listeners, id)
			close(ch)
		}
	}
}

func (s *pubsubService) Publish(topic string, data interface{}) {
	event := Event{
		Topic:     topic,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	s.lock.RLock()
	for _, l := range s.listeners {
		if l.topic != EventAny && l.topic != topic {
			continue
		}
		select {
		case l.ch <- event:
		default:
			log.Debugf("pubsub: listener queue full, dropped %s event", topic)
		}
	}
	s.lock.RUnlock()

	if s.pubsub == nil {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warnf("pubsub: failed to serialize %s event", topic)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.pubsub.Publish(topic, string(message)); err != nil {
			log.WithError(err).Warnf("pubsub: failed to publish %s event", topic)
		}
	}()
}

func (s *pubsubService) Close() {
	s.wg.Wait()

	s.lock.Lock()
	for id, l := range s.listeners {
		close(l.ch)
		delete(s.listeners, id)
	}
	s.lock.Unlock()

	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			log.WithError(err).Warn("pubsub: failed to close store")
		}
	}
}
