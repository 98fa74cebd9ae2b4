package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Repository{db: db, newID: generateID}, mock
}

// TestListTeams_ScanError tests row scanning error
func TestListTeams_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"code", "name"}).AddRow("AQS", "Aquarius")
	mock.ExpectQuery("SELECT (.+) FROM teams").WillReturnRows(rows)

	if _, err := repo.ListTeams(context.Background()); err == nil {
		t.Error("expected error from column count mismatch, got nil")
	}
}

func TestListTeams_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM teams").WillReturnError(errors.New("database is locked"))

	if _, err := repo.ListTeams(context.Background()); err == nil {
		t.Error("expected query error, got nil")
	}
}

func TestListCandidates_RowError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"chest_number", "name", "team_code", "section"}).
		AddRow("AQS001", "Anwar", "AQS", "senior").
		RowError(0, errors.New("disk I/O error"))
	mock.ExpectQuery("SELECT (.+) FROM candidates").WillReturnRows(rows)

	if _, err := repo.ListCandidates(context.Background()); err == nil {
		t.Error("expected row error, got nil")
	}
}

// TestListProgrammes_ScanError tests a non-numeric required_participants value
func TestListProgrammes_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "category", "subcategory", "section", "position_type", "required_participants"}).
		AddRow("p1", "A01", "Song", "arts", "stage", "senior", "individual", "many")
	mock.ExpectQuery("SELECT (.+) FROM programmes").WillReturnRows(rows)

	if _, err := repo.ListProgrammes(context.Background()); err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

// TestListResults_CorruptWinners tests that an undecodable winners column is reported
func TestListResults_CorruptWinners(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "programme_id", "status", "winners", "first_points", "second_points",
		"third_points", "programme_name", "programme_category", "section", "position_type", "updated_at"}).
		AddRow("r1", "p1", "published", "{not json", 0, 0, 0, "", "", "", "", "")
	mock.ExpectQuery("SELECT (.+) FROM results").WillReturnRows(rows)

	if _, err := repo.ListResults(context.Background()); err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestGetResult_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM results WHERE id").WillReturnError(errors.New("boom"))

	_, err := repo.GetResult(context.Background(), "r1")
	if err == nil || err == ErrNotFound {
		t.Errorf("expected raw query error, got %v", err)
	}
}

func TestUpdateResult_RowsAffectedError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE results").WillReturnResult(sqlmock.NewErrorResult(errors.New("no rows info")))

	if err := repo.UpdateResult(context.Background(), sampleResult()); err == nil {
		t.Error("expected rows affected error, got nil")
	}
}

func TestDeleteResult_ExecError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM results").WillReturnError(errors.New("readonly database"))

	if err := repo.DeleteResult(context.Background(), "r1"); err == nil {
		t.Error("expected exec error, got nil")
	}
}

func TestGetStats_CountError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))

	if _, err := repo.GetStats(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestGetStats_StatusScanError(t *testing.T) {
	repo, mock := newMockRepo(t)
	for i := 0; i < 4; i++ {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	}
	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).AddRow("published", "lots"))

	if _, err := repo.GetStats(context.Background()); err == nil {
		t.Error("expected scan error, got nil")
	}
}

func TestMigrate_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS teams").WillReturnError(errors.New("disk full"))

	if err := repo.migrate(); err == nil {
		t.Error("expected migrate error, got nil")
	}
}

func TestWithTx_BeginError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err := repo.WithTx(context.Background(), func(FullRepository) error {
		called = true
		return nil
	})
	if err == nil {
		t.Error("expected begin error, got nil")
	}
	if called {
		t.Error("expected callback to be skipped when begin fails")
	}
}

func TestWithTx_CommitError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk I/O error"))

	if err := repo.WithTx(context.Background(), func(FullRepository) error { return nil }); err == nil {
		t.Error("expected commit error, got nil")
	}
}
