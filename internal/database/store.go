package database

import (
	"context"
	"fmt"

	"serwer-dostepu/internal/access"
	"serwer-dostepu/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
	*Queries
}

func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		pool:    pool,
		Queries: New(pool),
	}
}

func (s *PostgresStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	return s.execTx(ctx, pgx.TxOptions{}, fn)
}

func (s *PostgresStore) execTx(ctx context.Context, opts pgx.TxOptions, fn func(*Queries) error) error {
	tx, err := s.pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}

// LoadSnapshot reads the whole hierarchy inside one read-only repeatable
// read transaction, so every table is seen at the same point in time.
func (s *PostgresStore) LoadSnapshot(ctx context.Context) (*access.Snapshot, error) {
	var data access.SnapshotData
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := s.execTx(ctx, opts, func(q *Queries) error {
		var err error
		if data.Items, err = q.ListItems(ctx); err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		if data.Tags, err = q.ListVisibilityTags(ctx); err != nil {
			return fmt.Errorf("failed to list visibility tags: %w", err)
		}
		if data.Memberships, err = q.ListMemberships(ctx); err != nil {
			return fmt.Errorf("failed to list memberships: %w", err)
		}
		if data.LoginSchemas, err = q.ListItemLoginSchemas(ctx); err != nil {
			return fmt.Errorf("failed to list item login schemas: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return access.NewSnapshot(data), nil
}

func (s *PostgresStore) CreateGuest(ctx context.Context, arg CreateGuestParams) (*models.Member, error) {
	var guest *models.Member
	err := s.ExecTx(ctx, func(q *Queries) error {
		var err error
		guest, err = q.CreateGuest(ctx, arg)
		if err != nil {
			return err
		}
		_, err = q.CreateMembership(ctx, CreateMembershipParams{
			MemberID:   guest.ID,
			ItemID:     arg.ItemID,
			Permission: models.PermissionRead,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return guest, nil
}
