package pubsub

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/pkg/circuitbreaker"
	"golang.org/x/sync/errgroup"
)

const (
	subscriptionsDir = "webhooks"

	requestTimeout = 15 * time.Second
)

type service struct {
	store      *store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a webhook pubsub service whose subscriptions are stored
// in a badger db under baseDbDir. An empty baseDbDir keeps them in memory.
func NewService(baseDbDir string, logger badger.Logger) (ports.PubSub, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, subscriptionsDir)
	}
	s, err := newStore(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening webhooks db: %w", err)
	}

	return &service{
		store:      s,
		httpClient: newHTTPClient(requestTimeout),
		cb:         circuitbreaker.NewCircuitBreaker("webhooks"),
	}, nil
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}
	if err := ws.store.add(*sub); err != nil {
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) Unsubscribe(id string) error {
	return ws.store.remove(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	subs := ws.listSubscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) Close() error {
	return ws.store.close()
}

func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	subs, err := ws.store.listForTopic(topic)
	if err != nil {
		log.WithError(err).Warnf("pubsub: failed to list subscriptions for %s", topic)
		return nil
	}
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic, err := ws.store.listForTopic(ports.AnyTopic)
		if err != nil {
			log.WithError(err).Warn("pubsub: failed to list subscriptions for any topic")
			return subs
		}
		subs = append(subs, subsForAnyTopic...)
	}
	return subs
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				IssuedAt: time.Now().Unix(),
				Subject:  sub.Event,
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status < 200 || status >= 300 {
			return nil, fmt.Errorf("webhook %s responded %d: %s", sub.ID, status, resp)
		}
		return nil, nil
	})

	return err
}
