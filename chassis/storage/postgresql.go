package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"
)

const schema = `
create table if not exists t_analysis (
	id text primary key,
	similarity_score double precision not null,
	summary_en text not null default '',
	summary_ar text not null default '',
	details jsonb not null default '{}',
	context text not null default '',
	image_hash_1 text not null default '',
	image_hash_2 text not null default '',
	created_dt timestamp not null default localtimestamp
);
create index if not exists t_analysis_created_index on t_analysis(created_dt);
`

// PGRepository - ...
type PGRepository struct {
	pool *pgxpool.Pool
}

// InitPGRepository - ...
func InitPGRepository(cfg Config) (*PGRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	return &PGRepository{
		pool: pool,
	}, nil
}

// EnsureSchema creates the analysis table when it does not exist yet.
func (repo *PGRepository) EnsureSchema(ctx context.Context) error {
	_, err := repo.pool.Exec(ctx, schema)
	return err
}

// Insert - ...
func (repo *PGRepository) Insert(ctx context.Context, analysis *Analysis) error {
	query := `
	insert into t_analysis(
		id, similarity_score, summary_en, summary_ar,
		details, context, image_hash_1, image_hash_2
	) values ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.pool.Exec(ctx, query,
		analysis.ID,
		analysis.SimilarityScore,
		analysis.SummaryEN,
		analysis.SummaryAR,
		analysis.Details,
		analysis.Context,
		analysis.ImageHash1,
		analysis.ImageHash2,
	)
	if err != nil {
		return err
	}
	return nil
}

// Get - ...
func (repo *PGRepository) Get(ctx context.Context, id string) (*Analysis, error) {
	var analysis Analysis
	query := `
	select id, similarity_score, summary_en, summary_ar,
		details, context, image_hash_1, image_hash_2, created_dt
	from t_analysis where id = $1`
	err := repo.pool.QueryRow(ctx, query, id).Scan(
		&analysis.ID,
		&analysis.SimilarityScore,
		&analysis.SummaryEN,
		&analysis.SummaryAR,
		&analysis.Details,
		&analysis.Context,
		&analysis.ImageHash1,
		&analysis.ImageHash2,
		&analysis.CreatedDt,
	)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

// ListRecent - ...
func (repo *PGRepository) ListRecent(ctx context.Context, limit int) ([]*Analysis, error) {
	query := `
	select id, similarity_score, summary_en, summary_ar,
		details, context, image_hash_1, image_hash_2, created_dt
	from t_analysis order by created_dt desc limit $1`
	rows, err := repo.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	analyses := []*Analysis{}
	for rows.Next() {
		var analysis Analysis
		err = rows.Scan(
			&analysis.ID,
			&analysis.SimilarityScore,
			&analysis.SummaryEN,
			&analysis.SummaryAR,
			&analysis.Details,
			&analysis.Context,
			&analysis.ImageHash1,
			&analysis.ImageHash2,
			&analysis.CreatedDt,
		)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, &analysis)
	}
	return analyses, rows.Err()
}

// CleanOldAnalyses removes records older than expiration seconds.
func (repo *PGRepository) CleanOldAnalyses(ctx context.Context, expiration int) (int, error) {
	query := `
	delete from t_analysis
	where created_dt < localtimestamp - concat($1::text, ' seconds')::INTERVAL`
	tag, err := repo.pool.Exec(ctx, query, expiration)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Close releases the connection pool.
func (repo *PGRepository) Close() {
	repo.pool.Close()
}

// ErrNotFound is returned when no analysis matches the requested id.
var ErrNotFound = errors.New("analysis not found")
