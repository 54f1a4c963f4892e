// Package evalstore persists charity evaluations between report runs so the
// evaluation service is not re-queried for payees scored recently.
package evalstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"donare/internal/charapi"
	"donare/internal/log"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed evaluation cache.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the cached evaluation for a payee when it is younger than
// maxAge. A cache miss returns (nil, nil).
func (s *Store) Get(ctx context.Context, payeeID string, maxAge time.Duration) (*charapi.Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT organization_name, alignment_score, outstanding, acceptable,
		       unacceptable, grade, summary, fetched_at
		FROM evaluations WHERE payee_id = ?`, payeeID)

	var (
		e         charapi.Evaluation
		alignment sql.NullInt64
		fetchedAt time.Time
	)
	err := row.Scan(&e.OrganizationName, &alignment, &e.Outstanding,
		&e.Acceptable, &e.Unacceptable, &e.Grade, &e.Summary, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query evaluation: %w", err)
	}
	if time.Since(fetchedAt) > maxAge {
		return nil, nil
	}

	e.PayeeID = payeeID
	if alignment.Valid {
		v := int(alignment.Int64)
		e.AlignmentScore = &v
	}
	return &e, nil
}

// Put inserts or replaces the cached evaluation for a payee.
func (s *Store) Put(ctx context.Context, e *charapi.Evaluation) error {
	var alignment sql.NullInt64
	if e.AlignmentScore != nil {
		alignment = sql.NullInt64{Int64: int64(*e.AlignmentScore), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
			(payee_id, organization_name, alignment_score, outstanding,
			 acceptable, unacceptable, grade, summary, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(payee_id) DO UPDATE SET
			organization_name = excluded.organization_name,
			alignment_score   = excluded.alignment_score,
			outstanding       = excluded.outstanding,
			acceptable        = excluded.acceptable,
			unacceptable      = excluded.unacceptable,
			grade             = excluded.grade,
			summary           = excluded.summary,
			fetched_at        = excluded.fetched_at`,
		e.PayeeID, e.OrganizationName, alignment, e.Outstanding,
		e.Acceptable, e.Unacceptable, e.Grade, e.Summary, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store evaluation: %w", err)
	}
	return nil
}

// CachingEvaluator wraps an Evaluator with the store. Lookups hit the cache
// first; fresh results are written back. Cache errors degrade to direct
// evaluation with a warning.
type CachingEvaluator struct {
	inner  charapi.Evaluator
	store  *Store
	maxAge time.Duration
	logger *log.Logger
}

var _ charapi.Evaluator = (*CachingEvaluator)(nil)

func NewCachingEvaluator(inner charapi.Evaluator, store *Store, maxAge time.Duration, logger *log.Logger) *CachingEvaluator {
	return &CachingEvaluator{inner: inner, store: store, maxAge: maxAge, logger: logger}
}

func (c *CachingEvaluator) Evaluate(ctx context.Context, payeeID string) (*charapi.Evaluation, error) {
	cached, err := c.store.Get(ctx, payeeID, c.maxAge)
	if err != nil {
		c.logger.Warn("Evaluation cache read failed", log.FieldPayeeID, payeeID, log.FieldError, err)
	}
	if cached != nil {
		return cached, nil
	}

	e, err := c.inner.Evaluate(ctx, payeeID)
	if err != nil {
		return nil, err
	}
	if putErr := c.store.Put(ctx, e); putErr != nil {
		c.logger.Warn("Evaluation cache write failed", log.FieldPayeeID, payeeID, log.FieldError, putErr)
	}
	return e, nil
}

func (c *CachingEvaluator) BatchEvaluate(ctx context.Context, payeeIDs []string) (map[string]*charapi.Evaluation, error) {
	out := make(map[string]*charapi.Evaluation, len(payeeIDs))
	for _, id := range payeeIDs {
		e, err := c.Evaluate(ctx, id)
		if err != nil {
			c.logger.Warn("Evaluation failed, omitting payee", log.FieldPayeeID, id, log.FieldError, err)
			continue
		}
		out[id] = e
	}
	return out, nil
}
