package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/explora/travel-booking/internal/core/domain"
)

const destinationColumns = `id, name, description, region, price`

type DestinationRepository struct {
	db DB
}

func NewDestinationRepository(db DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func scanDestination(row pgx.Row) (*domain.Destination, error) {
	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Region, &d.Price); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, `SELECT `+destinationColumns+` FROM destinations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	out := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan destination: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return out, nil
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	created, err := scanDestination(r.db.QueryRow(ctx, `
		INSERT INTO destinations (name, description, region, price)
		VALUES ($1, $2, $3, $4)
		RETURNING `+destinationColumns,
		d.Name, d.Description, d.Region, d.Price))
	if err != nil {
		return nil, fmt.Errorf("insert destination: %w", err)
	}
	return created, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	d, err := scanDestination(r.db.QueryRow(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("find destination: %w", err)
	}
	return d, nil
}

// Update applies the patch in a single statement; NULL parameters keep the
// stored value.
func (r *DestinationRepository) Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	d, err := scanDestination(r.db.QueryRow(ctx, `
		UPDATE destinations SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			region      = COALESCE($4, region),
			price       = COALESCE($5, price)
		WHERE id = $1
		RETURNING `+destinationColumns,
		id, patch.Name, patch.Description, patch.Region, patch.Price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("update destination: %w", err)
	}
	return d, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return domain.ErrDestinationInUse
		}
		return fmt.Errorf("delete destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}
