package sales

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avdeyev/bizdash/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Companies(ctx context.Context) ([]models.Company, error) {
	query :=
		`SELECT id, name, city, phone FROM companies
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CompanyContracts(ctx context.Context, companyID int64) ([]models.Contract, error) {
	query :=
		`SELECT id, company_id, number, title, amount::float8, status, COALESCE(signed_at::text, '')
		 FROM contracts
		 WHERE company_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Number, &c.Title, &c.Amount, &c.Status, &c.SignedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DailyFollowUp(ctx context.Context) ([]models.FollowUpEntry, error) {
	query :=
		`SELECT day::text, new_leads, meetings, revenue::float8 FROM daily_follow_up
		 ORDER BY day DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.FollowUpEntry
	for rows.Next() {
		var e models.FollowUpEntry
		if err := rows.Scan(&e.Date, &e.NewLeads, &e.Meetings, &e.Revenue); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
