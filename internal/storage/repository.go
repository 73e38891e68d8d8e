package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"financial-twin/internal/assessment"
)

// Record is one persisted assessment.
type Record struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	RiskScore      float64         `json:"risk_score"`
	RiskCategory   string          `json:"risk_category"`
	Recommendation string          `json:"recommendation"`
	Result         json.RawMessage `json:"result"`
}

// Repository provides database operations for assessment history.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the assessments table if it does not exist.
func (r *Repository) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS assessments (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			risk_score DOUBLE PRECISION NOT NULL,
			risk_category TEXT NOT NULL,
			recommendation TEXT NOT NULL,
			result JSONB NOT NULL
		)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create assessments table: %w", err)
	}
	return nil
}

// Save persists a completed assessment and returns the stored record.
func (r *Repository) Save(a *assessment.Assessment) (*Record, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assessment: %w", err)
	}

	rec := &Record{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		RiskScore:      a.RiskScore,
		RiskCategory:   a.RiskCategory,
		Recommendation: a.Recommendation,
		Result:         payload,
	}

	query := `
		INSERT INTO assessments (id, created_at, risk_score, risk_category, recommendation, result)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(query, rec.ID, rec.CreatedAt, rec.RiskScore, rec.RiskCategory, rec.Recommendation, rec.Result); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	return rec, nil
}

// Recent returns the most recent assessments, newest first.
func (r *Repository) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, created_at, risk_score, risk_category, recommendation, result
		FROM assessments
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.RiskScore, &rec.RiskCategory, &rec.Recommendation, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
