package trusted

import (
	"context"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/unada-gw/trustform/pkg/pg"
)

// querier is the subset of *pgxpool.Pool the store uses. A pgx.Tx fits too,
// but Insert of a known user aborts it.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const insertAllChunkSize = 1000

// PGStore keeps trusted users in the trusted_users table.
type PGStore struct {
	db querier
}

// NewPGStore wraps a pgx pool or transaction.
func NewPGStore(db querier) *PGStore {
	return &PGStore{db: db}
}

const (
	insertUserSQL = `
INSERT INTO trusted_users (facebook_id, mac_address, last_access)
VALUES ($1, $2, $3)
RETURNING facebook_id, mac_address, last_access`

	insertIfAbsentSQL = `
INSERT INTO trusted_users (facebook_id, mac_address, last_access)
VALUES ($1, $2, $3)
ON CONFLICT (facebook_id) DO NOTHING`

	updateUserSQL    = `UPDATE trusted_users SET mac_address = $2, last_access = $3 WHERE facebook_id = $1`
	selectUserSQL    = `SELECT facebook_id, mac_address, last_access FROM trusted_users`
	findByIDSQL      = selectUserSQL + ` WHERE facebook_id = $1`
	findByMACSQL     = selectUserSQL + ` WHERE mac_address = $1 ORDER BY facebook_id LIMIT 1`
	listUsersSQL     = selectUserSQL + ` ORDER BY facebook_id`
	deleteUserSQL    = `DELETE FROM trusted_users WHERE facebook_id = $1`
	deleteAllUserSQL = `DELETE FROM trusted_users`
)

// Insert keeps an existing row: a unique violation on facebook_id is
// answered with the stored record, which also covers a concurrent insert
// of the same user.
func (s *PGStore) Insert(ctx context.Context, u TrustedUser) (TrustedUser, error) {
	stored, err := scanUser(s.db.QueryRow(ctx, insertUserSQL, u.FacebookID, u.MACAddress, u.LastAccess))
	if err == nil {
		return stored, nil
	}
	if !pg.IsDuplicateKeyError(err) {
		return TrustedUser{}, fmt.Errorf("insert trusted user: %w", err)
	}
	return s.FindByID(ctx, u.FacebookID)
}

// InsertAll inserts users in chunks of insertAllChunkSize, keeping rows that
// already exist. Each chunk runs as one implicit transaction.
func (s *PGStore) InsertAll(ctx context.Context, users []TrustedUser) error {
	for chunk := range slices.Chunk(users, insertAllChunkSize) {
		batch := &pgx.Batch{}
		for _, u := range chunk {
			batch.Queue(insertIfAbsentSQL, u.FacebookID, u.MACAddress, u.LastAccess)
		}
		if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert trusted users: %w", err)
		}
	}
	return nil
}

func (s *PGStore) Update(ctx context.Context, u TrustedUser) error {
	tag, err := s.db.Exec(ctx, updateUserSQL, u.FacebookID, u.MACAddress, u.LastAccess)
	if err != nil {
		return fmt.Errorf("update trusted user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) FindByID(ctx context.Context, facebookID string) (TrustedUser, error) {
	return s.findOne(ctx, findByIDSQL, facebookID)
}

func (s *PGStore) FindByMAC(ctx context.Context, mac string) (TrustedUser, error) {
	return s.findOne(ctx, findByMACSQL, mac)
}

func (s *PGStore) List(ctx context.Context) ([]TrustedUser, error) {
	rows, err := s.db.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list trusted users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TrustedUser, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list trusted users: %w", err)
	}
	return users, nil
}

func (s *PGStore) Delete(ctx context.Context, facebookID string) error {
	tag, err := s.db.Exec(ctx, deleteUserSQL, facebookID)
	if err != nil {
		return fmt.Errorf("delete trusted user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, deleteAllUserSQL); err != nil {
		return fmt.Errorf("delete trusted users: %w", err)
	}
	return nil
}

func (s *PGStore) findOne(ctx context.Context, query string, arg string) (TrustedUser, error) {
	u, err := scanUser(s.db.QueryRow(ctx, query, arg))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return TrustedUser{}, ErrNotFound
		}
		return TrustedUser{}, fmt.Errorf("find trusted user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (TrustedUser, error) {
	var u TrustedUser
	if err := row.Scan(&u.FacebookID, &u.MACAddress, &u.LastAccess); err != nil {
		return TrustedUser{}, err
	}
	u.LastAccess = u.LastAccess.UTC()
	return u, nil
}
