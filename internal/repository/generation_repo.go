package repository

import (
	"context"
	"fmt"

	"github.com/timmy/memeforge/internal/domain"
	"gorm.io/gorm"
)

// GenerationRepository handles generation history records.
type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new GenerationRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *GenerationRepository: repository instance bound to db.
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Create inserts a new generation record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - gen: generation record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *GenerationRepository) Create(ctx context.Context, gen *domain.Generation) error {
	return r.db.WithContext(ctx).Create(gen).Error
}

// GetByID retrieves a generation record by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: generation record ID.
// Returns:
//   - *domain.Generation: record if found.
//   - error: non-nil if lookup fails.
func (r *GenerationRepository) GetByID(ctx context.Context, id string) (*domain.Generation, error) {
	var gen domain.Generation
	if err := r.db.WithContext(ctx).First(&gen, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &gen, nil
}

// List retrieves generation records newest first with pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Generation: matching records.
//   - error: non-nil if the query fails.
func (r *GenerationRepository) List(ctx context.Context, limit, offset int) ([]domain.Generation, error) {
	var gens []domain.Generation
	if err := r.db.WithContext(ctx).
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&gens).Error; err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return gens, nil
}

// CountByStatus counts generation records by status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - status: generation status to count.
// Returns:
//   - int64: number of matching records.
//   - error: non-nil if the query fails.
func (r *GenerationRepository) CountByStatus(ctx context.Context, status domain.GenerationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Generation{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
