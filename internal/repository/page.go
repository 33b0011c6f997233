package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/loomworks/loomai/internal/domain"
)

type PageRepository struct {
	db dbtx
}

func NewPageRepository(pool *pgxpool.Pool) *PageRepository {
	return &PageRepository{db: pool}
}

func NewPageRepositoryWithTx(tx pgx.Tx) *PageRepository {
	return &PageRepository{db: tx}
}

func (r *PageRepository) Create(ctx context.Context, p *domain.Page) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pages (id, url, content, summary, status, snapshot_key, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.URL, p.Content, p.Summary, p.Status, nullableString(p.SnapshotKey), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PageRepository) GetByID(ctx context.Context, id string) (*domain.Page, error) {
	return r.getOne(ctx,
		`SELECT id, url, content, summary, status, snapshot_key, created_at, updated_at
		 FROM pages WHERE id = $1`, id)
}

func (r *PageRepository) GetByURL(ctx context.Context, url string) (*domain.Page, error) {
	return r.getOne(ctx,
		`SELECT id, url, content, summary, status, snapshot_key, created_at, updated_at
		 FROM pages WHERE url = $1`, url)
}

func (r *PageRepository) getOne(ctx context.Context, query string, arg any) (*domain.Page, error) {
	var p domain.Page
	var summary, snapshotKey pgtype.Text
	err := r.db.QueryRow(ctx, query, arg).
		Scan(&p.ID, &p.URL, &p.Content, &summary, &p.Status, &snapshotKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPageNotFound
		}
		return nil, err
	}
	if summary.Valid {
		p.Summary = summary.String
	}
	if snapshotKey.Valid {
		p.SnapshotKey = snapshotKey.String
	}
	return &p, nil
}

// Update rewrites page content in place. Reprocessing an already
// indexed URL goes through here so the page keeps its identity.
func (r *PageRepository) Update(ctx context.Context, p *domain.Page) error {
	p.UpdatedAt = time.Now().UTC()
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE pages SET content = $1, summary = $2, status = $3, snapshot_key = $4, updated_at = $5
		 WHERE id = $6`,
		p.Content, p.Summary, p.Status, nullableString(p.SnapshotKey), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

// MarkIndexed stores the semantic summary and embedding and flips the
// page to indexed in a single statement.
func (r *PageRepository) MarkIndexed(ctx context.Context, id, summary string, embedding []float32) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE pages SET summary = $1, embedding = $2, status = $3, updated_at = $4 WHERE id = $5`,
		summary, pgvector.NewVector(embedding), domain.PageStatusIndexed, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

func (r *PageRepository) UpdateStatus(ctx context.Context, id string, status domain.PageStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE pages SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

func (r *PageRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

// SearchNearest returns up to limit indexed pages ordered by L2
// distance from the query vector.
func (r *PageRepository) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]domain.RawResult, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT url, embedding <-> $1 AS distance
		 FROM pages
		 WHERE status = $2 AND embedding IS NOT NULL
		 ORDER BY distance ASC
		 LIMIT $3`,
		pgvector.NewVector(embedding), domain.PageStatusIndexed, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.RawResult, 0)
	for rows.Next() {
		var r domain.RawResult
		if err := rows.Scan(&r.URL, &r.Distance); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (r *PageRepository) CountIndexed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM pages WHERE status = $1 AND embedding IS NOT NULL`,
		domain.PageStatusIndexed,
	).Scan(&count)
	return count, err
}
