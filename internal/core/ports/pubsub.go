package ports

import "errors"

const AnyTopic = "*"
const UnspecifiedTopic = ""

// ErrSubscriptionNotFound is returned by PubSub implementations when
// unsubscribing an unknown id.
var ErrSubscriptionNotFound = errors.New("subscription not found")

type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSub defines the methods of a webhook pubsub service. Subscriptions are
// persisted in an internal store that is released with Close.
type PubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id.
	Unsubscribe(id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed for
	// a certain topic. Subscriptions for AnyTopic are included unless the
	// given topic is UnspecifiedTopic, in which case all are returned.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic string, message string) error
	// Close gracefully closes the internal store.
	Close() error
}
