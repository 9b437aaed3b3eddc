// AngelaMos | 2026
// repository.go

package garden

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/garden-api/internal/core"
)

// Account is the garden-facing view of a user row: the state blob plus the
// premium flag that gates part of the catalog.
type Account struct {
	Blob    Blob
	Premium bool
}

// Repository loads and atomically mutates per-user garden state.
type Repository interface {
	Load(ctx context.Context, userID uuid.UUID) (*Account, error)

	// Mutate runs fn against the current account inside a transaction that
	// row-locks the user, then persists the (re-normalized) result. Two
	// concurrent mutations on the same user serialize; fn returning an
	// error rolls everything back.
	Mutate(ctx context.Context, userID uuid.UUID, fn func(acct *Account) error) (*Account, error)
}

type pgRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &pgRepository{db: db}
}

type gardenRow struct {
	GardenData json.RawMessage `db:"garden_data"`
	IsPremium  bool            `db:"is_premium"`
}

func (r *pgRepository) Load(ctx context.Context, userID uuid.UUID) (*Account, error) {
	query := `
		SELECT garden_data, is_premium
		FROM users
		WHERE id = $1`

	var row gardenRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("load garden state: %w", err)
	}

	return accountFromRow(row)
}

func (r *pgRepository) Mutate(
	ctx context.Context,
	userID uuid.UUID,
	fn func(acct *Account) error,
) (*Account, error) {
	var result *Account

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT garden_data, is_premium
			FROM users
			WHERE id = $1
			FOR UPDATE`

		var row gardenRow
		if err := tx.GetContext(ctx, &row, query, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return core.ErrNotFound
			}
			return fmt.Errorf("lock garden state: %w", err)
		}

		acct, err := accountFromRow(row)
		if err != nil {
			return err
		}

		if err := fn(acct); err != nil {
			return err
		}
		acct.Blob.Normalize()

		data, err := json.Marshal(acct.Blob)
		if err != nil {
			return fmt.Errorf("marshal garden state: %w", err)
		}

		update := `
			UPDATE users
			SET garden_data = $2, updated_at = NOW()
			WHERE id = $1`

		if _, err := tx.ExecContext(ctx, update, userID, data); err != nil {
			return fmt.Errorf("persist garden state: %w", err)
		}

		result = acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func accountFromRow(row gardenRow) (*Account, error) {
	acct := &Account{Premium: row.IsPremium}

	if len(row.GardenData) > 0 {
		if err := json.Unmarshal(row.GardenData, &acct.Blob); err != nil {
			return nil, fmt.Errorf("decode garden state: %w", err)
		}
	}
	acct.Blob.Normalize()

	return acct, nil
}
