package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/fixedpoint"
)

// PostgresStore persists wallets in PostgreSQL, one row per currency balance.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts the wallet and all of its balance rows in one transaction.
func (s *PostgresStore) Create(ctx context.Context, w Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO wallets (id, owner_id, created_at)
        VALUES ($1, $2, $3)`, walletID, w.OwnerID, w.CreatedAt.UTC()); err != nil {
		return err
	}

	for sym, bal := range w.Balances {
		if _, err := tx.Exec(ctx, `INSERT INTO wallet_balances (wallet_id, symbol, mantissa, scale)
            VALUES ($1, $2, $3, $4)`, walletID, string(sym), int64(bal.Mantissa), int32(bal.Scale)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Get fetches a wallet and its balances by identifier.
func (s *PostgresStore) Get(ctx context.Context, id string) (Wallet, error) {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, err
	}
	return s.fetch(ctx, s.db, `SELECT id, owner_id, created_at FROM wallets WHERE id = $1`, walletID)
}

// GetByOwner fetches a wallet by its owning identity.
func (s *PostgresStore) GetByOwner(ctx context.Context, ownerID string) (Wallet, error) {
	return s.fetch(ctx, s.db, `SELECT id, owner_id, created_at FROM wallets WHERE owner_id = $1`, ownerID)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *PostgresStore) fetch(ctx context.Context, q querier, query string, arg any) (Wallet, error) {
	var (
		idVal     uuid.UUID
		w         Wallet
		createdAt time.Time
	)
	if err := q.QueryRow(ctx, query, arg).Scan(&idVal, &w.OwnerID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.ID = idVal.String()
	w.CreatedAt = createdAt.UTC()

	balances, err := loadBalances(ctx, q, idVal, "")
	if err != nil {
		return Wallet{}, err
	}
	w.Balances = balances
	return w, nil
}

func loadBalances(ctx context.Context, q querier, walletID uuid.UUID, lock string) (map[currency.Symbol]fixedpoint.Decimal, error) {
	rows, err := q.Query(ctx, `SELECT symbol, mantissa, scale FROM wallet_balances
        WHERE wallet_id = $1`+lock, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[currency.Symbol]fixedpoint.Decimal)
	for rows.Next() {
		var (
			symbol   string
			mantissa int64
			scale    int32
		)
		if err := rows.Scan(&symbol, &mantissa, &scale); err != nil {
			return nil, err
		}
		sym, err := currency.Parse(symbol)
		if err != nil {
			return nil, fmt.Errorf("stored balance: %w", err)
		}
		balances[sym] = fixedpoint.New(uint64(mantissa), uint32(scale))
	}
	return balances, rows.Err()
}

// Update locks the wallet's balance rows, runs fn against the loaded state
// and writes every changed balance back inside the same transaction. Any
// error from fn rolls the whole update back.
func (s *PostgresStore) Update(ctx context.Context, id string, fn func(*Wallet) error) (Wallet, error) {
	walletID, err := uuid.Parse(id)
	if err != nil {
		return Wallet{}, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Wallet{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var (
		w         Wallet
		createdAt time.Time
	)
	if err := tx.QueryRow(ctx, `SELECT owner_id, created_at FROM wallets
        WHERE id = $1 FOR UPDATE`, walletID).Scan(&w.OwnerID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.ID = id
	w.CreatedAt = createdAt.UTC()

	before, err := loadBalances(ctx, tx, walletID, " FOR UPDATE")
	if err != nil {
		return Wallet{}, err
	}
	w.Balances = make(map[currency.Symbol]fixedpoint.Decimal, len(before))
	for sym, bal := range before {
		w.Balances[sym] = bal
	}

	if err := fn(&w); err != nil {
		return Wallet{}, err
	}

	for sym, bal := range w.Balances {
		if bal == before[sym] {
			continue
		}
		if _, err := tx.Exec(ctx, `UPDATE wallet_balances SET mantissa = $1, scale = $2
            WHERE wallet_id = $3 AND symbol = $4`, int64(bal.Mantissa), int32(bal.Scale), walletID, string(sym)); err != nil {
			return Wallet{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Wallet{}, err
	}
	return w, nil
}
