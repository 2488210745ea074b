package services

import (
	"context"
	"fmt"
)

// Company is a sales account as listed by the API.
type Company struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

// Contract is a signed agreement belonging to a company.
type Contract struct {
	ID       int64   `json:"id"`
	Number   string  `json:"number"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	SignedAt string  `json:"signed_at"`
}

// FollowUpEntry is one day of the sales daily follow-up report.
type FollowUpEntry struct {
	Date     string  `json:"date"`
	NewLeads int     `json:"new_leads"`
	Meetings int     `json:"meetings"`
	Revenue  float64 `json:"revenue"`
}

// APIReader is the read-only slice of the gateway the dashboard needs.
type APIReader interface {
	Get(ctx context.Context, path string, out any) error
}

// DashboardService fetches dashboard data through the gateway. The business
// payloads are opaque to the session core; any error classification already
// happened by the time a page sees the result.
type DashboardService struct {
	client APIReader
}

func NewDashboardService(client APIReader) *DashboardService {
	return &DashboardService{client: client}
}

func (s *DashboardService) Companies(ctx context.Context) ([]Company, error) {
	var out []Company
	if err := s.client.Get(ctx, "/api/sales/companies", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) CompanyContracts(ctx context.Context, companyID int64) ([]Contract, error) {
	var out []Contract
	path := fmt.Sprintf("/api/sales/companies/%d/contracts", companyID)
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) DailyFollowUp(ctx context.Context) ([]FollowUpEntry, error) {
	var out []FollowUpEntry
	if err := s.client.Get(ctx, "/api/sales/daily-follow-up", &out); err != nil {
		return nil, err
	}
	return out, nil
}
