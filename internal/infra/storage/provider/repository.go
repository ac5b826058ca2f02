package provider

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glamly/BSP-SchedulingService/internal/domain"
	"github.com/glamly/BSP-SchedulingService/pkg/dbmetrics"
	"github.com/glamly/BSP-SchedulingService/pkg/psqlbuilder"
)

// Repository is the Postgres store for providers and their owned child
// collections (availability, services, reviews). The children live in
// separate tables with stable ids so a single service or review can be
// added and removed without rewriting the whole provider record.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a provider repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a provider together with the weekly availability and
// the service list. Reviews are intentionally not loaded here: they are
// unbounded and only the review-centric operations need them.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"domain",
		"description",
		"verified",
		"verification_requested_at",
		"created_at",
		"updated_at",
	).
		From("providers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Provider
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Domain,
		&p.Description,
		&p.Verified,
		&p.VerificationRequestedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	if p.Availability, err = r.loadAvailability(ctx, executor, id); err != nil {
		return nil, err
	}
	if p.Services, err = r.loadServices(ctx, executor, id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) loadAvailability(ctx context.Context, executor DBExecutor, providerID int64) (domain.WeekSchedule, error) {
	var week domain.WeekSchedule

	query, args, err := psqlbuilder.Select("weekday", "active", "open_time", "close_time").
		From("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return week, fmt.Errorf("%w: loadAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return week, fmt.Errorf("%w: loadAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var day domain.DaySchedule

		// TimeString scans NULL as the zero value, which matches an
		// inactive day with no window
		if err := rows.Scan(&weekday, &day.Active, &day.Open, &day.Close); err != nil {
			return week, fmt.Errorf("%w: loadAvailability - scan row: %v", ErrScanRow, err)
		}

		week.SetDay(time.Weekday(weekday), day)
	}

	if err := rows.Err(); err != nil {
		return week, fmt.Errorf("%w: loadAvailability - rows error: %v", ErrScanRow, err)
	}

	return week, nil
}

func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, providerID int64) ([]domain.Service, error) {
	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "duration_minutes", "price", "created_at").
		From("provider_services").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		var createdAt sql.NullTime

		if err := rows.Scan(&svc.ID, &svc.ProviderID, &svc.Name, &svc.DurationMinutes, &svc.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// ReplaceAvailability swaps the provider's whole weekly schedule.
// Callers run it inside a transaction so readers never observe a
// half-replaced week.
func (r *Repository) ReplaceAvailability(ctx context.Context, providerID int64, week domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute delete: %v", ErrExecQuery, err)
	}

	insert := psqlbuilder.Insert("provider_availability").
		Columns("provider_id", "weekday", "active", "open_time", "close_time")

	days := []struct {
		weekday time.Weekday
		day     domain.DaySchedule
	}{
		{time.Monday, week.Monday},
		{time.Tuesday, week.Tuesday},
		{time.Wednesday, week.Wednesday},
		{time.Thursday, week.Thursday},
		{time.Friday, week.Friday},
		{time.Saturday, week.Saturday},
		{time.Sunday, week.Sunday},
	}

	for _, d := range days {
		var openTime, closeTime interface{}
		if !d.day.Open.IsZero() {
			openTime = d.day.Open
		}
		if !d.day.Close.IsZero() {
			closeTime = d.day.Close
		}
		insert = insert.Values(providerID, int(d.weekday), d.day.Active, openTime, closeTime)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAvailability - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// AddService appends a service to the provider's offering.
func (r *Repository) AddService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_services").
		Columns("provider_id", "name", "duration_minutes", "price").
		Values(svc.ProviderID, svc.Name, svc.DurationMinutes, svc.Price).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddService - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	return svc, nil
}

// RemoveService deletes one service of the provider. Appointments keep
// working afterwards thanks to the denormalized service data they carry.
func (r *Repository) RemoveService(ctx context.Context, providerID, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("provider_services").
		Where(squirrel.Eq{"id": serviceID, "provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveService - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveService - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// ListReviews returns the provider's full review set, oldest first.
func (r *Repository) ListReviews(ctx context.Context, providerID int64) ([]domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "author_id", "rating", "comment", "created_at").
		From("provider_reviews").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListReviews - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReviews - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt sql.NullTime

		if err := rows.Scan(&review.ID, &review.ProviderID, &review.AuthorID, &review.Rating, &review.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListReviews - scan row: %v", ErrScanRow, err)
		}

		review.CreatedAt = createdAt.Time
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListReviews - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// AddReview appends a review. There is no update or delete counterpart:
// reviews are immutable history.
func (r *Repository) AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_reviews").
		Columns("provider_id", "author_id", "rating", "comment").
		Values(review.ProviderID, review.AuthorID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddReview - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddReview - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time
	return review, nil
}

// MarkVerificationRequested stamps the provider's verification request.
func (r *Repository) MarkVerificationRequested(ctx context.Context, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("providers").
		Set("verification_requested_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkVerificationRequested - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkVerificationRequested - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkVerificationRequested - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}
