// Package history persists assessment results to sqlite and serves the
// aggregate views backing the dashboard.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the sqlite connection with pooling and prepared
// statements.
type Store struct {
	*sql.DB
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// AssessmentRecord is one persisted scoring result. Raw employee
// attributes are never stored, only derived outputs.
type AssessmentRecord struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Department       string    `json:"department"`
	RiskLevel        string    `json:"risk_level"`
	LeaveProbability float64   `json:"leave_probability"`
	WillLeave        bool      `json:"will_leave"`
	Mode             string    `json:"mode"`
	CreatedAt        time.Time `json:"created_at"`
}

// UsageStats summarizes assessment volume for the dashboard.
type UsageStats struct {
	TotalAssessments int64   `json:"total_assessments"`
	HighRiskCount    int64   `json:"high_risk_count"`
	MediumRiskCount  int64   `json:"medium_risk_count"`
	LowRiskCount     int64   `json:"low_risk_count"`
	AverageRisk      float64 `json:"average_risk"`
	AssessmentsToday int64   `json:"assessments_today"`
}

// DepartmentRisk aggregates risk per department.
type DepartmentRisk struct {
	Department    string  `json:"department"`
	Assessments   int64   `json:"assessments"`
	AverageRisk   float64 `json:"average_risk"`
	HighRiskCount int64   `json:"high_risk_count"`
}

// NewStore opens the assessment database under dataDir, creating the
// directory and schema when missing.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "attrition_insight.db")

	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &Store{
		DB:       db,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Assessment store initialized", "path", dbPath)

	return store, nil
}

// migrate creates the necessary tables
func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			department TEXT,
			risk_level TEXT NOT NULL,
			leave_probability REAL NOT NULL,
			will_leave BOOLEAN NOT NULL,
			mode TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_department ON assessments(department)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_risk_level ON assessments(risk_level)`,
	}

	for _, query := range queries {
		if _, err := s.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (s *Store) initPreparedStatements() error {
	statements := map[string]string{
		"insert_assessment": `INSERT INTO assessments (
			id, username, department, risk_level, leave_probability,
			will_leave, mode, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,

		"recent_assessments": `SELECT id, username, department, risk_level,
			leave_probability, will_leave, mode, created_at
			FROM assessments ORDER BY created_at DESC LIMIT ?`,
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for name, query := range statements {
		stmt, err := s.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		s.prepared[name] = stmt
	}

	return nil
}

func (s *Store) stmt(name string) (*sql.Stmt, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stmt, ok := s.prepared[name]
	if !ok {
		return nil, fmt.Errorf("unknown prepared statement: %s", name)
	}
	return stmt, nil
}

// SaveAssessment persists one scored result and returns its id.
func (s *Store) SaveAssessment(username, department, riskLevel string, leaveProbability float64, willLeave bool, mode string) (string, error) {
	stmt, err := s.stmt("insert_assessment")
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = stmt.Exec(id, username, department, riskLevel, leaveProbability, willLeave, mode, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save assessment: %w", err)
	}

	return id, nil
}

// RecentAssessments returns the latest records, newest first.
func (s *Store) RecentAssessments(limit int) ([]AssessmentRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	stmt, err := s.stmt("recent_assessments")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var records []AssessmentRecord
	for rows.Next() {
		var r AssessmentRecord
		if err := rows.Scan(&r.ID, &r.Username, &r.Department, &r.RiskLevel,
			&r.LeaveProbability, &r.WillLeave, &r.Mode, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetUsageStats returns assessment volume and risk totals.
func (s *Store) GetUsageStats() (*UsageStats, error) {
	stats := &UsageStats{}

	err := s.QueryRow(`SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN risk_level = 'high' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN risk_level = 'medium' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN risk_level = 'low' THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(leave_probability), 0)
		FROM assessments`).Scan(
		&stats.TotalAssessments,
		&stats.HighRiskCount,
		&stats.MediumRiskCount,
		&stats.LowRiskCount,
		&stats.AverageRisk,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage stats: %w", err)
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	err = s.QueryRow(`SELECT COUNT(*) FROM assessments WHERE created_at >= ?`, dayStart).
		Scan(&stats.AssessmentsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}

	return stats, nil
}

// GetDepartmentRisk aggregates risk per department, highest average
// first. Records without a department are grouped under "unspecified".
func (s *Store) GetDepartmentRisk() ([]DepartmentRisk, error) {
	rows, err := s.Query(`SELECT
		CASE WHEN department = '' THEN 'unspecified' ELSE department END,
		COUNT(*),
		AVG(leave_probability),
		SUM(CASE WHEN risk_level = 'high' THEN 1 ELSE 0 END)
		FROM assessments
		GROUP BY 1
		ORDER BY 3 DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query department risk: %w", err)
	}
	defer rows.Close()

	var result []DepartmentRisk
	for rows.Next() {
		var d DepartmentRisk
		if err := rows.Scan(&d.Department, &d.Assessments, &d.AverageRisk, &d.HighRiskCount); err != nil {
			return nil, fmt.Errorf("failed to scan department risk: %w", err)
		}
		result = append(result, d)
	}

	return result, rows.Err()
}

// Close releases prepared statements and the underlying connection.
func (s *Store) Close() error {
	s.mutex.Lock()
	for _, stmt := range s.prepared {
		stmt.Close()
	}
	s.prepared = make(map[string]*sql.Stmt)
	s.mutex.Unlock()

	return s.DB.Close()
}
