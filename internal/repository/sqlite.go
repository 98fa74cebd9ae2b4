package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/scoreboard/internal/models"
)

// idAlphabet is used for generated programme and result ids
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const idLength = 12

// Repository provides data access methods
type Repository struct {
	db    *sql.DB
	tx    *sql.Tx
	newID func() (string, error)
}

// querier is the subset of *sql.DB and *sql.Tx the data methods use
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection; :memory: databases also
	// need it so every query sees the same database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db, newID: generateID}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func generateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) conn() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// WithTx runs fn against a repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise. Calling
// WithTx on a repository that is already inside a transaction reuses it.
func (r *Repository) WithTx(ctx context.Context, fn func(FullRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Repository{db: r.db, tx: tx, newID: r.newID}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			code TEXT PRIMARY KEY COLLATE NOCASE,
			name TEXT NOT NULL,
			color TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			chest_number TEXT PRIMARY KEY COLLATE NOCASE,
			name TEXT NOT NULL,
			team_code TEXT,
			section TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS programmes (
			id TEXT PRIMARY KEY,
			code TEXT,
			name TEXT NOT NULL,
			category TEXT,
			subcategory TEXT,
			section TEXT,
			position_type TEXT,
			required_participants INTEGER DEFAULT 0
		)`,
		// No foreign key on programme_id: a result may reference a programme
		// that was never loaded or has been removed.
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			programme_id TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'pending',
			winners TEXT NOT NULL DEFAULT '{}',
			first_points INTEGER DEFAULT 0,
			second_points INTEGER DEFAULT 0,
			third_points INTEGER DEFAULT 0,
			programme_name TEXT,
			programme_category TEXT,
			section TEXT,
			position_type TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_team ON candidates(team_code)`,
		`CREATE INDEX IF NOT EXISTS idx_results_status ON results(status)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	defaultSettings := map[string]string{
		"festival_name": "Arts & Sports Fest",
	}

	for key, value := range defaultSettings {
		_, err := r.db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value)
		if err != nil {
			return err
		}
	}

	return nil
}

// isConstraintError reports whether err is a sqlite UNIQUE/PRIMARY KEY violation
func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	return stderrors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// ==================== Team Methods ====================

// ListTeams returns all teams in insertion order
func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.conn().QueryContext(ctx, `SELECT code, name, COALESCE(color, '') FROM teams ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.Code, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam retrieves a team by code (case-insensitive)
func (r *Repository) GetTeam(ctx context.Context, code string) (*models.Team, error) {
	var t models.Team
	err := r.conn().QueryRowContext(ctx, `SELECT code, name, COALESCE(color, '') FROM teams WHERE code = ?`, code).
		Scan(&t.Code, &t.Name, &t.Color)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTeam inserts a team, returning ErrDuplicate if the code is taken
func (r *Repository) CreateTeam(ctx context.Context, team models.Team) error {
	_, err := r.conn().ExecContext(ctx, `INSERT INTO teams (code, name, color) VALUES (?, ?, ?)`,
		team.Code, team.Name, team.Color)
	if isConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// UpsertTeam inserts a team or replaces its name and color
func (r *Repository) UpsertTeam(ctx context.Context, team models.Team) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO teams (code, name, color) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, color = excluded.color
	`, team.Code, team.Name, team.Color)
	return err
}

// ==================== Candidate Methods ====================

// ListCandidates returns all candidates in insertion order
func (r *Repository) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := r.conn().QueryContext(ctx, `
		SELECT chest_number, name, COALESCE(team_code, ''), COALESCE(section, '')
		FROM candidates ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var section string
		if err := rows.Scan(&c.ChestNumber, &c.Name, &c.Team, &section); err != nil {
			return nil, err
		}
		c.Section = models.Section(section)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// GetCandidate retrieves a candidate by chest number (case-insensitive)
func (r *Repository) GetCandidate(ctx context.Context, chestNumber string) (*models.Candidate, error) {
	var c models.Candidate
	var section string
	err := r.conn().QueryRowContext(ctx, `
		SELECT chest_number, name, COALESCE(team_code, ''), COALESCE(section, '')
		FROM candidates WHERE chest_number = ?
	`, chestNumber).Scan(&c.ChestNumber, &c.Name, &c.Team, &section)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Section = models.Section(section)
	return &c, nil
}

// CreateCandidate inserts a candidate, returning ErrDuplicate if the chest number is taken
func (r *Repository) CreateCandidate(ctx context.Context, candidate models.Candidate) error {
	_, err := r.conn().ExecContext(ctx, `INSERT INTO candidates (chest_number, name, team_code, section) VALUES (?, ?, ?, ?)`,
		candidate.ChestNumber, candidate.Name, candidate.Team, string(candidate.Section))
	if isConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// UpsertCandidate inserts a candidate or replaces its details
func (r *Repository) UpsertCandidate(ctx context.Context, candidate models.Candidate) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO candidates (chest_number, name, team_code, section) VALUES (?, ?, ?, ?)
		ON CONFLICT(chest_number) DO UPDATE SET
			name = excluded.name, team_code = excluded.team_code, section = excluded.section
	`, candidate.ChestNumber, candidate.Name, candidate.Team, string(candidate.Section))
	return err
}

// ==================== Programme Methods ====================

const programmeColumns = `id, COALESCE(code, ''), name, COALESCE(category, ''), COALESCE(subcategory, ''),
	COALESCE(section, ''), COALESCE(position_type, ''), COALESCE(required_participants, 0)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgramme(row rowScanner) (models.Programme, error) {
	var p models.Programme
	var id, category, subcategory, section, positionType string
	err := row.Scan(&id, &p.Code, &p.Name, &category, &subcategory, &section, &positionType, &p.RequiredParticipants)
	if err != nil {
		return p, err
	}
	p.ID = models.ID(id)
	p.Category = models.Category(category)
	p.Subcategory = models.Subcategory(subcategory)
	p.Section = models.Section(section)
	p.PositionType = models.PositionType(positionType)
	return p, nil
}

// ListProgrammes returns all programmes in insertion order
func (r *Repository) ListProgrammes(ctx context.Context) ([]models.Programme, error) {
	rows, err := r.conn().QueryContext(ctx, `SELECT `+programmeColumns+` FROM programmes ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programmes := []models.Programme{}
	for rows.Next() {
		p, err := scanProgramme(rows)
		if err != nil {
			return nil, err
		}
		programmes = append(programmes, p)
	}
	return programmes, rows.Err()
}

// GetProgramme retrieves a programme by id
func (r *Repository) GetProgramme(ctx context.Context, id models.ID) (*models.Programme, error) {
	row := r.conn().QueryRowContext(ctx, `SELECT `+programmeColumns+` FROM programmes WHERE id = ?`,
		models.NormalizeID(string(id)).String())
	p, err := scanProgramme(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProgramme inserts a programme. An empty id is replaced by a generated one.
func (r *Repository) CreateProgramme(ctx context.Context, programme models.Programme) (models.ID, error) {
	id := models.NormalizeID(string(programme.ID))
	if id.IsZero() {
		generated, err := r.newID()
		if err != nil {
			return "", fmt.Errorf("generate programme id: %w", err)
		}
		id = models.ID(generated)
	}

	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO programmes (id, code, name, category, subcategory, section, position_type, required_participants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id.String(), programme.Code, programme.Name, string(programme.Category), string(programme.Subcategory),
		string(programme.Section), string(programme.PositionType), programme.RequiredParticipants)
	if isConstraintError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpsertProgramme inserts a programme or replaces every field but its id
func (r *Repository) UpsertProgramme(ctx context.Context, programme models.Programme) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO programmes (id, code, name, category, subcategory, section, position_type, required_participants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code, name = excluded.name, category = excluded.category,
			subcategory = excluded.subcategory, section = excluded.section,
			position_type = excluded.position_type, required_participants = excluded.required_participants
	`, models.NormalizeID(string(programme.ID)).String(), programme.Code, programme.Name, string(programme.Category),
		string(programme.Subcategory), string(programme.Section), string(programme.PositionType), programme.RequiredParticipants)
	return err
}

// ==================== Result Methods ====================

// winnerSlots is the JSON document stored in results.winners
type winnerSlots struct {
	FirstPlace       []models.WinnerEntry `json:"first_place,omitempty"`
	SecondPlace      []models.WinnerEntry `json:"second_place,omitempty"`
	ThirdPlace       []models.WinnerEntry `json:"third_place,omitempty"`
	FirstPlaceTeams  []models.WinnerEntry `json:"first_place_teams,omitempty"`
	SecondPlaceTeams []models.WinnerEntry `json:"second_place_teams,omitempty"`
	ThirdPlaceTeams  []models.WinnerEntry `json:"third_place_teams,omitempty"`
}

func encodeWinners(res models.Result) (string, error) {
	b, err := json.Marshal(winnerSlots{
		FirstPlace:       res.FirstPlace,
		SecondPlace:      res.SecondPlace,
		ThirdPlace:       res.ThirdPlace,
		FirstPlaceTeams:  res.FirstPlaceTeams,
		SecondPlaceTeams: res.SecondPlaceTeams,
		ThirdPlaceTeams:  res.ThirdPlaceTeams,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const resultColumns = `id, programme_id, status, winners, COALESCE(first_points, 0), COALESCE(second_points, 0),
	COALESCE(third_points, 0), COALESCE(programme_name, ''), COALESCE(programme_category, ''),
	COALESCE(section, ''), COALESCE(position_type, ''), COALESCE(updated_at, '')`

func scanResult(row rowScanner) (models.Result, error) {
	var res models.Result
	var id, programmeID, status, winners, category, section, positionType string
	err := row.Scan(&id, &programmeID, &status, &winners, &res.FirstPoints, &res.SecondPoints, &res.ThirdPoints,
		&res.ProgrammeName, &category, &section, &positionType, &res.UpdatedAt)
	if err != nil {
		return res, err
	}

	var slots winnerSlots
	if err := json.Unmarshal([]byte(winners), &slots); err != nil {
		return res, fmt.Errorf("decode winners for result %s: %w", id, err)
	}

	res.ID = models.ID(id)
	res.ProgrammeID = models.ID(programmeID)
	res.Status = models.Status(status)
	res.ProgrammeCategory = models.Category(category)
	res.Section = models.Section(section)
	res.PositionType = models.PositionType(positionType)
	res.FirstPlace = slots.FirstPlace
	res.SecondPlace = slots.SecondPlace
	res.ThirdPlace = slots.ThirdPlace
	res.FirstPlaceTeams = slots.FirstPlaceTeams
	res.SecondPlaceTeams = slots.SecondPlaceTeams
	res.ThirdPlaceTeams = slots.ThirdPlaceTeams
	return res, nil
}

// ListResults returns every result in insertion order, whatever its status
func (r *Repository) ListResults(ctx context.Context) ([]models.Result, error) {
	rows, err := r.conn().QueryContext(ctx, `SELECT `+resultColumns+` FROM results ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.Result{}
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// GetResult retrieves a result by id
func (r *Repository) GetResult(ctx context.Context, id models.ID) (*models.Result, error) {
	row := r.conn().QueryRowContext(ctx, `SELECT `+resultColumns+` FROM results WHERE id = ?`,
		models.NormalizeID(string(id)).String())
	res, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetResultByProgramme retrieves the result recorded for a programme
func (r *Repository) GetResultByProgramme(ctx context.Context, programmeID models.ID) (*models.Result, error) {
	row := r.conn().QueryRowContext(ctx, `SELECT `+resultColumns+` FROM results WHERE programme_id = ?`,
		models.NormalizeID(string(programmeID)).String())
	res, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateResult inserts a result. An empty id is replaced by a generated one
// and an empty status defaults to pending. A second result for the same
// programme returns ErrDuplicate.
func (r *Repository) CreateResult(ctx context.Context, res models.Result) (models.ID, error) {
	id := models.NormalizeID(string(res.ID))
	if id.IsZero() {
		generated, err := r.newID()
		if err != nil {
			return "", fmt.Errorf("generate result id: %w", err)
		}
		id = models.ID(generated)
	}
	if res.Status == "" {
		res.Status = models.StatusPending
	}

	winners, err := encodeWinners(res)
	if err != nil {
		return "", err
	}

	_, err = r.conn().ExecContext(ctx, `
		INSERT INTO results (id, programme_id, status, winners, first_points, second_points, third_points,
			programme_name, programme_category, section, position_type, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id.String(), models.NormalizeID(string(res.ProgrammeID)).String(), string(res.Status), winners,
		res.FirstPoints, res.SecondPoints, res.ThirdPoints, res.ProgrammeName, string(res.ProgrammeCategory),
		string(res.Section), string(res.PositionType), timestamp())
	if isConstraintError(err) {
		return "", ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateResult replaces the status, winners and display caches of an existing result
func (r *Repository) UpdateResult(ctx context.Context, res models.Result) error {
	winners, err := encodeWinners(res)
	if err != nil {
		return err
	}

	out, err := r.conn().ExecContext(ctx, `
		UPDATE results SET status = ?, winners = ?, first_points = ?, second_points = ?, third_points = ?,
			programme_name = ?, programme_category = ?, section = ?, position_type = ?, updated_at = ?
		WHERE id = ?
	`, string(res.Status), winners, res.FirstPoints, res.SecondPoints, res.ThirdPoints, res.ProgrammeName,
		string(res.ProgrammeCategory), string(res.Section), string(res.PositionType), timestamp(),
		models.NormalizeID(string(res.ID)).String())
	if err != nil {
		return err
	}
	return requireOneRow(out)
}

// UpsertResult inserts or fully replaces a result keyed by id. Used when
// loading snapshots, where ids and statuses come from the file.
func (r *Repository) UpsertResult(ctx context.Context, res models.Result) error {
	if _, err := r.GetResult(ctx, res.ID); err == ErrNotFound {
		_, err := r.CreateResult(ctx, res)
		return err
	} else if err != nil {
		return err
	}
	return r.UpdateResult(ctx, res)
}

// DeleteResult removes a result
func (r *Repository) DeleteResult(ctx context.Context, id models.ID) error {
	out, err := r.conn().ExecContext(ctx, `DELETE FROM results WHERE id = ?`, models.NormalizeID(string(id)).String())
	if err != nil {
		return err
	}
	return requireOneRow(out)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.conn().QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.conn().ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ==================== Stats Methods ====================

// Stats counts the stored records
type Stats struct {
	Teams            int `json:"teams"`
	Candidates       int `json:"candidates"`
	Programmes       int `json:"programmes"`
	Results          int `json:"results"`
	PendingResults   int `json:"pending_results"`
	CheckedResults   int `json:"checked_results"`
	PublishedResults int `json:"published_results"`
}

// GetStats returns record counts for the admin dashboard
func (r *Repository) GetStats(ctx context.Context) (Stats, error) {
	var s Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM teams`, &s.Teams},
		{`SELECT COUNT(*) FROM candidates`, &s.Candidates},
		{`SELECT COUNT(*) FROM programmes`, &s.Programmes},
		{`SELECT COUNT(*) FROM results`, &s.Results},
	}
	for _, c := range counts {
		if err := r.conn().QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, err
		}
	}

	rows, err := r.conn().QueryContext(ctx, `SELECT status, COUNT(*) FROM results GROUP BY status`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Stats{}, err
		}
		switch models.Status(status) {
		case models.StatusPending:
			s.PendingResults = n
		case models.StatusChecked:
			s.CheckedResults = n
		case models.StatusPublished:
			s.PublishedResults = n
		}
	}
	return s, rows.Err()
}

// validTables defines which tables can be safely cleared
var validTables = map[string]bool{
	"teams": true, "candidates": true, "programmes": true, "results": true, "settings": true,
}

// ClearTable clears all data from a table
// Only allows clearing whitelisted tables to prevent SQL injection
func (r *Repository) ClearTable(ctx context.Context, table string) error {
	if !validTables[table] {
		return ErrInvalidTable
	}

	_, err := r.conn().ExecContext(ctx, "DELETE FROM "+table)
	return err
}
