package api

import (
	"net/http"
	"strconv"

	"github.com/avdeyev/bizdash/internal/server/models"
)

type companyResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Phone string `json:"phone"`
}

type contractResponse struct {
	ID       int64   `json:"id"`
	Number   string  `json:"number"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	SignedAt string  `json:"signed_at"`
}

type followUpResponse struct {
	Date     string  `json:"date"`
	NewLeads int     `json:"new_leads"`
	Meetings int     `json:"meetings"`
	Revenue  float64 `json:"revenue"`
}

func (h *Handler) handleCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.sales.Companies(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "company list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	resp := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		resp = append(resp, companyResponse{ID: c.ID, Name: c.Name, City: c.City, Phone: c.Phone})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCompanyContracts(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no such company")
		return
	}

	contracts, err := h.sales.CompanyContracts(r.Context(), companyID)
	if err != nil {
		h.log.Error(r.Context(), "contract list failed", "company_id", companyID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	resp := make([]contractResponse, 0, len(contracts))
	for _, c := range contracts {
		resp = append(resp, toContractResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toContractResponse(c models.Contract) contractResponse {
	return contractResponse{
		ID:       c.ID,
		Number:   c.Number,
		Title:    c.Title,
		Amount:   c.Amount,
		Status:   c.Status,
		SignedAt: c.SignedAt,
	}
}

func (h *Handler) handleDailyFollowUp(w http.ResponseWriter, r *http.Request) {
	entries, err := h.sales.DailyFollowUp(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "daily follow-up failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	resp := make([]followUpResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, followUpResponse{Date: e.Date, NewLeads: e.NewLeads, Meetings: e.Meetings, Revenue: e.Revenue})
	}
	writeJSON(w, http.StatusOK, resp)
}
