package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/avdeyev/bizdash/internal/client/api"
	"github.com/avdeyev/bizdash/internal/client/router"
)

// pageError folds a data-fetch failure into the page render. A session
// expiry is swallowed: by the time it reaches a page, the gateway has
// already cleared the session and the guards have put the login page up.
func pageError(w io.Writer, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return nil
	}
	var nerr *api.NetworkError
	if errors.As(err, &nerr) {
		fmt.Fprintf(w, "Could not load data: %s. Try again.\n", nerr.Error())
		return nil
	}
	return err
}

func (a *App) loginPage(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "== Sign in ==")
	fmt.Fprintln(w, "You are signed out. Use the 'login' command to sign in.")
	return nil
}

func (a *App) dailyFollowUpPage(ctx context.Context, w io.Writer) error {
	entries, err := a.dashboard.DailyFollowUp(ctx)
	if err != nil {
		return pageError(w, err)
	}

	fmt.Fprintln(w, "== Sales / Daily follow-up ==")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tNEW LEADS\tMEETINGS\tREVENUE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", e.Date, e.NewLeads, e.Meetings, e.Revenue)
	}
	return tw.Flush()
}

func (a *App) companiesPage(ctx context.Context, w io.Writer) error {
	companies, err := a.dashboard.Companies(ctx)
	if err != nil {
		return pageError(w, err)
	}

	fmt.Fprintln(w, "== Sales / Companies ==")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tPHONE")
	for _, c := range companies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.City, c.Phone)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w, "(use 'contracts <id>' to open a company's contracts)")
	return nil
}

func (a *App) contractsPage(companyID int64) router.RenderFunc {
	return func(ctx context.Context, w io.Writer) error {
		contracts, err := a.dashboard.CompanyContracts(ctx, companyID)
		if err != nil {
			return pageError(w, err)
		}

		fmt.Fprintf(w, "== Sales / Company %d / Contracts ==\n", companyID)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNUMBER\tTITLE\tAMOUNT\tSTATUS\tSIGNED")
		for _, c := range contracts {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
				c.ID, c.Number, c.Title, c.Amount, c.Status, c.SignedAt)
		}
		return tw.Flush()
	}
}

// placeholderPage covers the dashboard sections whose content is outside the
// client core; they still sit behind the private guard.
func placeholderPage(title string) router.RenderFunc {
	return func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, "== %s ==\n(nothing here yet)\n", title)
		return nil
	}
}
