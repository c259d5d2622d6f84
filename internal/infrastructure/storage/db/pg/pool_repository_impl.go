package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/tdex-network/stationd/internal/core/domain"
)

const (
	insertPoolQuery = `INSERT INTO pool (
	id, name, tokens, amp, withdraw_fee_rate, balances, total_bpt, initialized, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectPoolColumns = `SELECT id, name, tokens, amp, withdraw_fee_rate, balances,
	total_bpt, initialized, created_at FROM pool`

	updatePoolQuery = `UPDATE pool SET name = $2, amp = $3, withdraw_fee_rate = $4,
	balances = $5, total_bpt = $6, initialized = $7 WHERE id = $1`

	deletePoolQuery = `DELETE FROM pool WHERE id = $1`
)

var errValueTooBig = errors.New("value exceeds the max postgres bigint")

type poolRepositoryImpl struct {
	db     *pgxpool.Pool
	execTx func(ctx context.Context, txBody func(pgx.Tx) error) error
}

func NewPoolRepositoryImpl(
	db *pgxpool.Pool,
	execTx func(ctx context.Context, txBody func(pgx.Tx) error) error,
) domain.PoolRepository {
	return &poolRepositoryImpl{db, execTx}
}

func (r *poolRepositoryImpl) AddPool(ctx context.Context, pool *domain.Pool) error {
	if pool == nil {
		return fmt.Errorf("requested pool is null")
	}
	amp, rate, err := toBigints(pool.Amp, pool.WithdrawFeeRate)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(
		ctx, insertPoolQuery,
		pool.ID, pool.Name, pool.Tokens, amp, rate,
		pool.Balances, pool.TotalBPT, pool.Initialized, pool.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrPoolAlreadyExists
		}
		return err
	}
	return nil
}

func (r *poolRepositoryImpl) GetPool(ctx context.Context, poolID string) (*domain.Pool, error) {
	row := r.db.QueryRow(ctx, selectPoolColumns+" WHERE id = $1", poolID)
	return scanPool(row)
}

func (r *poolRepositoryImpl) GetAllPools(ctx context.Context) ([]domain.Pool, error) {
	rows, err := r.db.Query(ctx, selectPoolColumns+" ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pools := make([]domain.Pool, 0)
	for rows.Next() {
		pool, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		pools = append(pools, *pool)
	}
	return pools, rows.Err()
}

// UpdatePool locks the pool row with SELECT ... FOR UPDATE for the duration
// of the transaction.
func (r *poolRepositoryImpl) UpdatePool(
	ctx context.Context,
	poolID string,
	updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, selectPoolColumns+" WHERE id = $1 FOR UPDATE", poolID)
		pool, err := scanPool(row)
		if err != nil {
			return err
		}

		updatedPool, err := updateFn(pool)
		if err != nil {
			return err
		}
		if updatedPool == nil {
			return fmt.Errorf("requested pool is null")
		}

		amp, rate, err := toBigints(updatedPool.Amp, updatedPool.WithdrawFeeRate)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			ctx, updatePoolQuery,
			poolID, updatedPool.Name, amp, rate,
			updatedPool.Balances, updatedPool.TotalBPT, updatedPool.Initialized,
		)
		return err
	})
}

// DeletePool locks the pool row like UpdatePool before running checkFn.
func (r *poolRepositoryImpl) DeletePool(
	ctx context.Context, poolID string, checkFn func(p *domain.Pool) error,
) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, selectPoolColumns+" WHERE id = $1 FOR UPDATE", poolID)
		pool, err := scanPool(row)
		if err != nil {
			return err
		}
		if checkFn != nil {
			if err := checkFn(pool); err != nil {
				return err
			}
		}

		tag, err := tx.Exec(ctx, deletePoolQuery, poolID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrPoolNotFound
		}
		return nil
	})
}

func scanPool(row pgx.Row) (*domain.Pool, error) {
	var (
		pool      domain.Pool
		amp, rate int64
	)
	if err := row.Scan(
		&pool.ID, &pool.Name, &pool.Tokens, &amp, &rate,
		&pool.Balances, &pool.TotalBPT, &pool.Initialized, &pool.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPoolNotFound
		}
		return nil, err
	}
	pool.Amp = uint64(amp)
	pool.WithdrawFeeRate = uint64(rate)
	return &pool, nil
}

func toBigints(amp, rate uint64) (int64, int64, error) {
	if amp > math.MaxInt64 || rate > math.MaxInt64 {
		return 0, 0, errValueTooBig
	}
	return int64(amp), int64(rate), nil
}
