package sales

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCompanies(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "city", "phone"}).
		AddRow(int64(1), "Acme", "Riga", "+371 1").
		AddRow(int64(2), "Umbrella", "Tallinn", "+372 2")
	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*city,\s*phone\s+FROM\s+companies\s+ORDER\s+BY\s+name`).
		WillReturnRows(rows)

	got, err := repo.Companies(context.Background())
	if err != nil {
		t.Fatalf("Companies error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Acme" || got[1].City != "Tallinn" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCompanies_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*name,\s*city,\s*phone\s+FROM\s+companies`).
		WillReturnError(errors.New("boom"))

	if _, err := repo.Companies(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCompanyContracts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "company_id", "number", "title", "amount", "status", "signed_at"}).
		AddRow(int64(10), int64(1), "C-10", "Support", 900.5, "signed", "2025-05-01")
	mock.ExpectQuery(`SELECT\s+id,\s*company_id,\s*number,\s*title,\s*amount::float8,\s*status,\s*COALESCE\(signed_at::text,\s*''\)\s+FROM\s+contracts\s+WHERE\s+company_id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.CompanyContracts(context.Background(), 1)
	if err != nil {
		t.Fatalf("CompanyContracts error: %v", err)
	}
	if len(got) != 1 || got[0].Number != "C-10" || got[0].Amount != 900.5 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCompanyContracts_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "company_id", "number", "title", "amount", "status", "signed_at"})
	mock.ExpectQuery(`FROM\s+contracts`).WithArgs(int64(99)).WillReturnRows(rows)

	got, err := repo.CompanyContracts(context.Background(), 99)
	if err != nil {
		t.Fatalf("CompanyContracts error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestDailyFollowUp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"day", "new_leads", "meetings", "revenue"}).
		AddRow("2025-09-01", 3, 2, 1500.5).
		AddRow("2025-08-31", 1, 0, 0.0)
	mock.ExpectQuery(`SELECT\s+day::text,\s*new_leads,\s*meetings,\s*revenue::float8\s+FROM\s+daily_follow_up\s+ORDER\s+BY\s+day\s+DESC`).
		WillReturnRows(rows)

	got, err := repo.DailyFollowUp(context.Background())
	if err != nil {
		t.Fatalf("DailyFollowUp error: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2025-09-01" || got[0].NewLeads != 3 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
