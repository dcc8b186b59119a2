package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemRepository keeps analyses in memory. Used when no storage DSN is
// configured and by the test suite.
type MemRepository struct {
	mu       sync.RWMutex
	analyses map[string]*Analysis
}

// InitMemRepository - ...
func InitMemRepository() *MemRepository {
	return &MemRepository{
		analyses: map[string]*Analysis{},
	}
}

// Insert - ...
func (repo *MemRepository) Insert(ctx context.Context, analysis *Analysis) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored := *analysis
	if stored.CreatedDt.IsZero() {
		stored.CreatedDt = time.Now()
	}
	repo.analyses[stored.ID] = &stored
	return nil
}

// Get - ...
func (repo *MemRepository) Get(ctx context.Context, id string) (*Analysis, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	analysis, ok := repo.analyses[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *analysis
	return &found, nil
}

// ListRecent - ...
func (repo *MemRepository) ListRecent(ctx context.Context, limit int) ([]*Analysis, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	analyses := make([]*Analysis, 0, len(repo.analyses))
	for _, analysis := range repo.analyses {
		found := *analysis
		analyses = append(analyses, &found)
	}
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedDt.After(analyses[j].CreatedDt)
	})
	if limit > 0 && len(analyses) > limit {
		analyses = analyses[:limit]
	}
	return analyses, nil
}

// CleanOldAnalyses - ...
func (repo *MemRepository) CleanOldAnalyses(ctx context.Context, expiration int) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	cutoff := time.Now().Add(-time.Duration(expiration) * time.Second)
	cleaned := 0
	for id, analysis := range repo.analyses {
		if analysis.CreatedDt.Before(cutoff) {
			delete(repo.analyses, id)
			cleaned++
		}
	}
	return cleaned, nil
}
