package service

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"payment-gateway/internal/domain"
)

// ReportSummary aggregates transaction counts by terminal status.
type ReportSummary struct {
	Total       int       `json:"total"`
	Successful  int       `json:"successful"`
	Failed      int       `json:"failed"`
	Pending     int       `json:"pending"`
	Refunded    int       `json:"refunded"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ReportGenerator renders transaction reports from the store. It consumes
// only ListAll; the core flows never touch it.
type ReportGenerator struct {
	store domain.TransactionStore
}

func NewReportGenerator(store domain.TransactionStore) *ReportGenerator {
	return &ReportGenerator{store: store}
}

// Summary counts transactions per status.
func (g *ReportGenerator) Summary() (*ReportSummary, error) {
	all, err := g.store.ListAll()
	if err != nil {
		return nil, err
	}

	summary := &ReportSummary{Total: len(all), GeneratedAt: time.Now()}
	for _, t := range all {
		switch t.Status {
		case domain.StatusSuccess:
			summary.Successful++
		case domain.StatusFailed:
			summary.Failed++
		case domain.StatusPending:
			summary.Pending++
		case domain.StatusRefunded:
			summary.Refunded++
		}
	}
	return summary, nil
}

// WriteReport renders the transaction table and summary as plain text.
func (g *ReportGenerator) WriteReport(w io.Writer) error {
	all, err := g.store.ListAll()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Transaction Report")
	fmt.Fprintln(w, "==================")

	if len(all) == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return nil
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TXID\tMETHOD\tPAYER\tAMOUNT\tSTATUS")
	for _, t := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Method, t.Payer.Name, t.Amount.String(), t.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary, err := g.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d  Successful: %d  Failed: %d  Pending: %d  Refunded: %d\n",
		summary.Total, summary.Successful, summary.Failed, summary.Pending, summary.Refunded)
	fmt.Fprintf(w, "Generated at %s\n", summary.GeneratedAt.Format(time.RFC3339))
	return nil
}
