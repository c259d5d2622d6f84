package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when a request does not pass validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrPoolNotPriced is returned when an operation needs the oracle prices of
	// a pool that never received any.
	ErrPoolNotPriced = errors.New("pool prices not set")
	// ErrPricesDimension ...
	ErrPricesDimension = errors.New("number of prices does not match pool tokens")
	// ErrPoolNotEmpty is returned when dropping a pool with outstanding shares.
	ErrPoolNotEmpty = errors.New("pool has outstanding shares")
	// ErrWebhookManagerNotInitialized is returned when attempting to manage
	// webhooks without a pubsub service.
	ErrWebhookManagerNotInitialized = errors.New("webhook manager is not initialized")
	// ErrUnsupportedDBType ...
	ErrUnsupportedDBType = errors.New("db type not supported")
)

func wrapValidationErr(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
}
