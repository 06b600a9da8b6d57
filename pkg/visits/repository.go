// Package visits counts dashboard reads.
package visits

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Increment(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Increment(ctx context.Context) (int64, error) {
	query := `INSERT INTO page_visit (id, count, updated_at)
				VALUES (1, 1, now())
				ON CONFLICT (id) DO UPDATE SET
					count = page_visit.count + 1,
					updated_at = now()
				RETURNING count`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		err := fmt.Errorf("could not increment visit count: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r *repositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT count FROM page_visit WHERE id = 1").Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		err := fmt.Errorf("could not read visit count: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

// MemoryRepository keeps the count in process. Used when no database is
// configured; the count resets on restart.
type MemoryRepository struct {
	mu    sync.Mutex
	count int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Increment(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	return m.count, nil
}

func (m *MemoryRepository) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count, nil
}
