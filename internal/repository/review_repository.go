package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// ReviewRepository persists satisfaction reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates the repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (id, ticket_name, reviewer, stars, feedback, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.TicketName,
		review.Reviewer,
		review.Stars,
		review.Feedback,
		review.CreatedAt,
	)
	return err
}
