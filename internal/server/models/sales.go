package models

// Company is a sales account.
type Company struct {
	ID    int64
	Name  string
	City  string
	Phone string
}

// Contract is an agreement belonging to a company. SignedAt is empty for
// drafts.
type Contract struct {
	ID        int64
	CompanyID int64
	Number    string
	Title     string
	Amount    float64
	Status    string
	SignedAt  string
}

// FollowUpEntry is one day of the sales daily follow-up report.
type FollowUpEntry struct {
	Date     string
	NewLeads int
	Meetings int
	Revenue  float64
}
