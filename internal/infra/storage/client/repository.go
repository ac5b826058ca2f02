package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/dbmetrics"
	"github.com/glamly/BSP-SchedulingService/pkg/psqlbuilder"
)

// Shared executor interface from dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository is the Postgres store for clients and their favorites.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a client repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a client together with the favorite provider ids.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at", "updated_at").
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Client
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	if c.Favorites, err = r.listFavorites(ctx, executor, id); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *Repository) listFavorites(ctx context.Context, executor DBExecutor, clientID int64) ([]int64, error) {
	query, args, err := psqlbuilder.Select("provider_id").
		From("client_favorites").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listFavorites - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listFavorites - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	favorites := make([]int64, 0)
	for rows.Next() {
		var providerID int64
		if err := rows.Scan(&providerID); err != nil {
			return nil, fmt.Errorf("%w: listFavorites - scan row: %v", ErrScanRow, err)
		}
		favorites = append(favorites, providerID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listFavorites - rows error: %v", ErrScanRow, err)
	}

	return favorites, nil
}

// AddFavorite inserts a favorite link. Adding the same provider twice is
// a no-op thanks to ON CONFLICT DO NOTHING on the composite key.
func (r *Repository) AddFavorite(ctx context.Context, clientID, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("client_favorites").
		Columns("client_id", "provider_id").
		Values(clientID, providerID).
		Suffix("ON CONFLICT (client_id, provider_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddFavorite - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddFavorite - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveFavorite deletes a favorite link. Removing an absent favorite is
// a no-op: the end state is the same.
func (r *Repository) RemoveFavorite(ctx context.Context, clientID, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("client_favorites").
		Where(squirrel.Eq{"client_id": clientID, "provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveFavorite - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveFavorite - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
