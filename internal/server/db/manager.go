// Package db wires the server's PostgreSQL storage: connection, repository
// construction, and embedded goose migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avdeyev/bizdash/internal/server/migrations"
	"github.com/avdeyev/bizdash/internal/server/repositories/sales"
	"github.com/avdeyev/bizdash/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Sales() sales.Repository
}

type PostgresRepositoryManager struct {
	db    *sql.DB
	users users.Repository
	sales sales.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Sales() sales.Repository {
	return m.sales
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:    db,
		users: users.NewPostgresRepository(db),
		sales: sales.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
