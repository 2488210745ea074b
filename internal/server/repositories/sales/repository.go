package sales

import (
	"context"

	"github.com/avdeyev/bizdash/internal/server/models"
)

type Repository interface {
	Companies(ctx context.Context) ([]models.Company, error)
	CompanyContracts(ctx context.Context, companyID int64) ([]models.Contract, error)
	DailyFollowUp(ctx context.Context) ([]models.FollowUpEntry, error)
}
