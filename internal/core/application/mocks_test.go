package application_test

import (
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/stationd/internal/core/ports"
)

// **** PubSub ****

type mockPubSub struct {
	mock.Mock
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)
	return args.String(0), args.Error(1)
}

func (m *mockPubSub) Unsubscribe(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockPubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

func (m *mockPubSub) Close() error {
	args := m.Called()
	return args.Error(0)
}

type mockSubscription struct {
	id, topic, endpoint string
	secured             bool
}

func (s mockSubscription) Topic() string    { return s.topic }
func (s mockSubscription) Id() string       { return s.id }
func (s mockSubscription) IsSecured() bool  { return s.secured }
func (s mockSubscription) NotifyAt() string { return s.endpoint }
