// Package store writes and reads the SQLite artifact. This is deliberately
// not a storage engine: one transaction writes the whole dataset, and
// LoadDataset reads it back for re-summarizing. Analysts get a file they
// can point any sqlite client at.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"claimforge/internal/logging"
	"claimforge/internal/types"
)

// Store wraps the SQLite database holding one generated dataset.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the SQLite database at the given path.
func Open(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("opened sqlite artifact at %s", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS run_info (
		seed INTEGER NOT NULL,
		generated_at TEXT NOT NULL,
		start_month TEXT NOT NULL DEFAULT '',
		end_month TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS providers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL,
		region TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		sex TEXT NOT NULL,
		plan_type TEXT NOT NULL,
		risk_tier TEXT NOT NULL,
		provider_id TEXT NOT NULL REFERENCES providers(id),
		enrollment_month TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_patients_provider ON patients(provider_id);

	CREATE TABLE IF NOT EXISTS capitation (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		provider_id TEXT NOT NULL REFERENCES providers(id),
		month TEXT NOT NULL,
		amount_cents INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_capitation_provider ON capitation(provider_id);
	CREATE INDEX IF NOT EXISTS idx_capitation_month ON capitation(month);

	CREATE TABLE IF NOT EXISTS claims (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients(id),
		provider_id TEXT NOT NULL REFERENCES providers(id),
		month TEXT NOT NULL,
		service_date TEXT NOT NULL,
		claim_type TEXT NOT NULL,
		status TEXT NOT NULL,
		billed_cents INTEGER NOT NULL,
		allowed_cents INTEGER NOT NULL,
		paid_cents INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_claims_provider ON claims(provider_id);
	CREATE INDEX IF NOT EXISTS idx_claims_month ON claims(month);
	CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveDataset writes the full dataset in one transaction, replacing any
// previous contents.
func (s *Store) SaveDataset(ds *types.Dataset) error {
	timer := logging.StartTimer(logging.CategoryStore, "SaveDataset")
	defer timer.StopWithInfo()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"run_info", "claims", "capitation", "patients", "providers"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	var startMonth, endMonth string
	if len(ds.Months) > 0 {
		startMonth = string(ds.Months[0])
		endMonth = string(ds.Months[len(ds.Months)-1])
	}
	if _, err := tx.Exec("INSERT INTO run_info (seed, generated_at, start_month, end_month) VALUES (?, ?, ?, ?)",
		ds.Seed, ds.Generated, startMonth, endMonth); err != nil {
		return fmt.Errorf("failed to insert run_info: %w", err)
	}

	provStmt, err := tx.Prepare("INSERT INTO providers (id, name, specialty, region) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer provStmt.Close()
	for _, p := range ds.Providers {
		if _, err := provStmt.Exec(p.ID, p.Name, p.Specialty, p.Region); err != nil {
			return fmt.Errorf("failed to insert provider %s: %w", p.ID, err)
		}
	}

	patStmt, err := tx.Prepare(`INSERT INTO patients
		(id, name, age, sex, plan_type, risk_tier, provider_id, enrollment_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer patStmt.Close()
	for _, p := range ds.Patients {
		if _, err := patStmt.Exec(p.ID, p.Name, p.Age, p.Sex, p.PlanType,
			p.RiskTier, p.ProviderID, string(p.EnrollmentMonth)); err != nil {
			return fmt.Errorf("failed to insert patient %s: %w", p.ID, err)
		}
	}

	capStmt, err := tx.Prepare(`INSERT INTO capitation
		(id, patient_id, provider_id, month, amount_cents) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer capStmt.Close()
	for _, c := range ds.Capitation {
		if _, err := capStmt.Exec(c.ID, c.PatientID, c.ProviderID,
			string(c.Month), int64(c.Amount)); err != nil {
			return fmt.Errorf("failed to insert capitation %s: %w", c.ID, err)
		}
	}

	clmStmt, err := tx.Prepare(`INSERT INTO claims
		(id, patient_id, provider_id, month, service_date, claim_type, status,
		 billed_cents, allowed_cents, paid_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer clmStmt.Close()
	for _, c := range ds.Claims {
		if _, err := clmStmt.Exec(c.ID, c.PatientID, c.ProviderID, string(c.Month),
			c.ServiceDate, c.ClaimType, c.Status,
			int64(c.Billed), int64(c.Allowed), int64(c.Paid)); err != nil {
			return fmt.Errorf("failed to insert claim %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logging.Store("saved dataset: %d providers, %d patients, %d payments, %d claims",
		len(ds.Providers), len(ds.Patients), len(ds.Capitation), len(ds.Claims))
	return nil
}

// LoadDataset reads the dataset back out of the artifact.
func (s *Store) LoadDataset() (*types.Dataset, error) {
	timer := logging.StartTimer(logging.CategoryStore, "LoadDataset")
	defer timer.Stop()

	ds := &types.Dataset{}

	var startMonth, endMonth string
	row := s.db.QueryRow("SELECT seed, generated_at, start_month, end_month FROM run_info LIMIT 1")
	if err := row.Scan(&ds.Seed, &ds.Generated, &startMonth, &endMonth); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("artifact at %s holds no dataset", s.path)
		}
		return nil, fmt.Errorf("failed to read run_info: %w", err)
	}
	if startMonth != "" {
		ds.Months = types.MonthRange(types.Month(startMonth), types.Month(endMonth))
	}

	rows, err := s.db.Query("SELECT id, name, specialty, region FROM providers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p types.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &p.Region); err != nil {
			return nil, err
		}
		ds.Providers = append(ds.Providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	patRows, err := s.db.Query(`SELECT id, name, age, sex, plan_type, risk_tier,
		provider_id, enrollment_month FROM patients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer patRows.Close()
	for patRows.Next() {
		var p types.Patient
		var month string
		if err := patRows.Scan(&p.ID, &p.Name, &p.Age, &p.Sex, &p.PlanType,
			&p.RiskTier, &p.ProviderID, &month); err != nil {
			return nil, err
		}
		p.EnrollmentMonth = types.Month(month)
		ds.Patients = append(ds.Patients, p)
	}
	if err := patRows.Err(); err != nil {
		return nil, err
	}

	capRows, err := s.db.Query(`SELECT id, patient_id, provider_id, month,
		amount_cents FROM capitation ORDER BY month, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query capitation: %w", err)
	}
	defer capRows.Close()
	for capRows.Next() {
		var c types.CapitationPayment
		var month string
		var amount int64
		if err := capRows.Scan(&c.ID, &c.PatientID, &c.ProviderID, &month, &amount); err != nil {
			return nil, err
		}
		c.Month = types.Month(month)
		c.Amount = types.Cents(amount)
		ds.Capitation = append(ds.Capitation, c)
	}
	if err := capRows.Err(); err != nil {
		return nil, err
	}

	clmRows, err := s.db.Query(`SELECT id, patient_id, provider_id, month,
		service_date, claim_type, status, billed_cents, allowed_cents, paid_cents
		FROM claims ORDER BY month, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer clmRows.Close()
	for clmRows.Next() {
		var c types.Claim
		var month string
		var billed, allowed, paid int64
		if err := clmRows.Scan(&c.ID, &c.PatientID, &c.ProviderID, &month,
			&c.ServiceDate, &c.ClaimType, &c.Status, &billed, &allowed, &paid); err != nil {
			return nil, err
		}
		c.Month = types.Month(month)
		c.Billed = types.Cents(billed)
		c.Allowed = types.Cents(allowed)
		c.Paid = types.Cents(paid)
		ds.Claims = append(ds.Claims, c)
	}
	if err := clmRows.Err(); err != nil {
		return nil, err
	}

	logging.Store("loaded dataset: %d providers, %d patients, %d payments, %d claims",
		len(ds.Providers), len(ds.Patients), len(ds.Capitation), len(ds.Claims))
	return ds, nil
}
