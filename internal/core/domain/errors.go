package domain

import "errors"

var (
	// ErrPoolInvalidName ...
	ErrPoolInvalidName = errors.New("pool name must not be empty")
	// ErrPoolInvalidTokens is returned if a pool is created with less than 2
	// or more than 8 tokens.
	ErrPoolInvalidTokens = errors.New("pool must have between 2 and 8 tokens")
	// ErrPoolInvalidToken is returned if a token is not a valid hex address.
	ErrPoolInvalidToken = errors.New("token must be a valid hex address")
	// ErrPoolDuplicatedToken ...
	ErrPoolDuplicatedToken = errors.New("pool tokens must be distinct")
	// ErrPoolInvalidAmp ...
	ErrPoolInvalidAmp = errors.New("amplification parameter must be greater than zero")
	// ErrPoolUnknownToken is returned if a token is not part of the pool.
	ErrPoolUnknownToken = errors.New("token not found in pool")
	// ErrPoolAlreadyInitialized is returned when trying to bootstrap a pool
	// that has already been funded.
	ErrPoolAlreadyInitialized = errors.New("pool is already initialized")
	// ErrPoolNotInitialized is returned when trying to trade with or exit
	// from a pool that has never been funded.
	ErrPoolNotInitialized = errors.New("pool is not initialized")
	// ErrPoolZeroAmount ...
	ErrPoolZeroAmount = errors.New("amount must be greater than zero")
	// ErrPoolZeroShares is returned when a join would deposit tokens without
	// minting any pool share.
	ErrPoolZeroShares = errors.New("join would mint zero pool shares")
	// ErrPoolInsufficientShares is returned when an exit would burn more
	// shares than the pool supply.
	ErrPoolInsufficientShares = errors.New("not enough pool shares in supply")
	// ErrPoolUnknownRequest is returned for join or exit requests not
	// supported by the pool.
	ErrPoolUnknownRequest = errors.New("unsupported pool request")
	// ErrPoolInvalidSwapKind ...
	ErrPoolInvalidSwapKind = errors.New("swap kind must be either given in or given out")
	// ErrPoolCorruptedState is returned if the stored balances or supply
	// cannot be parsed.
	ErrPoolCorruptedState = errors.New("pool state is corrupted")

	// ErrPriceVectorEmpty ...
	ErrPriceVectorEmpty = errors.New("price vector must not be empty")
	// ErrPriceVectorInvalidPrice is returned if any price is not a positive
	// integer.
	ErrPriceVectorInvalidPrice = errors.New("prices must be positive integers")

	// ErrPoolNotFound is returned by repositories when the pool does not
	// exist.
	ErrPoolNotFound = errors.New("pool not found")
	// ErrPoolAlreadyExists ...
	ErrPoolAlreadyExists = errors.New("pool already exists")
	// ErrPricesNotFound is returned by repositories when no price vector is
	// stored for the pool.
	ErrPricesNotFound = errors.New("prices not found for pool")
)
