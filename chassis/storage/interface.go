package storage

import "context"

// Config - ...
type Config struct {
	DSN string
}

// AnalysisRepository persists completed design comparisons.
type AnalysisRepository interface {
	Insert(ctx context.Context, analysis *Analysis) error
	Get(ctx context.Context, id string) (*Analysis, error)
	ListRecent(ctx context.Context, limit int) ([]*Analysis, error)
	CleanOldAnalyses(ctx context.Context, expiration int) (int, error)
}
