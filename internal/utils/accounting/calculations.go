package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance folds the full entry sequence: Σ(amount if credit else −amount).
// The result does not depend on entry order.
func Balance(entries []domain.LedgerEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}
	return balance
}

// PayrollOutstanding is the placeholder outstanding estimate: rate × Σ payroll debits.
func PayrollOutstanding(entries []domain.LedgerEntry, rate decimal.Decimal) decimal.Decimal {
	payroll := decimal.Zero
	for _, e := range entries {
		if e.Type == domain.Debit && e.Category == domain.CategoryPayroll {
			payroll = payroll.Add(e.Amount)
		}
	}
	return payroll.Mul(rate)
}

// SortByDateDesc orders entries newest first. Entries with identical dates keep their input order.
func SortByDateDesc(entries []domain.LedgerEntry) []domain.LedgerEntry {
	sorted := make([]domain.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// CategoryBreakdown partitions entries by category. When since is set only entries dated on or
// after it are counted.
func CategoryBreakdown(entries []domain.LedgerEntry, since *time.Time) map[domain.Category]domain.CategoryTotals {
	breakdown := make(map[domain.Category]domain.CategoryTotals)
	for _, e := range entries {
		if since != nil && e.Date.Before(*since) {
			continue
		}
		totals, ok := breakdown[e.Category]
		if !ok {
			totals = domain.CategoryTotals{
				Category: e.Category,
				Label:    e.Category.Label(),
				Credits:  decimal.Zero,
				Debits:   decimal.Zero,
			}
		}
		if e.Type == domain.Credit {
			totals.Credits = totals.Credits.Add(e.Amount)
		} else {
			totals.Debits = totals.Debits.Add(e.Amount)
		}
		totals.Net = totals.Credits.Sub(totals.Debits)
		totals.Count++
		breakdown[e.Category] = totals
	}
	return breakdown
}

// SortedBreakdown flattens a breakdown, known categories first in display order, unknown ones
// after them alphabetically.
func SortedBreakdown(breakdown map[domain.Category]domain.CategoryTotals) []domain.CategoryTotals {
	rows := make([]domain.CategoryTotals, 0, len(breakdown))
	for _, c := range domain.KnownCategories() {
		if totals, ok := breakdown[c]; ok {
			rows = append(rows, totals)
		}
	}
	unknown := make([]domain.CategoryTotals, 0)
	for c, totals := range breakdown {
		if !c.IsKnown() {
			unknown = append(unknown, totals)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Category < unknown[j].Category })
	return append(rows, unknown...)
}

// CashFlow totals entries dated within [now − windowDays, now].
func CashFlow(entries []domain.LedgerEntry, now time.Time, windowDays int) domain.CashFlow {
	from := now.AddDate(0, 0, -windowDays)
	flow := domain.CashFlow{
		WindowDays:   windowDays,
		From:         from,
		To:           now,
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}
	for _, e := range entries {
		if e.Date.Before(from) || e.Date.After(now) {
			continue
		}
		if e.Type == domain.Credit {
			flow.TotalCredits = flow.TotalCredits.Add(e.Amount)
		} else {
			flow.TotalDebits = flow.TotalDebits.Add(e.Amount)
		}
	}
	flow.NetFlow = flow.TotalCredits.Sub(flow.TotalDebits)
	return flow
}

// PendingAdvances sums the amounts of advances not yet repaid.
func PendingAdvances(advances []domain.Advance) decimal.Decimal {
	pending := decimal.Zero
	for _, a := range advances {
		if !a.Repaid {
			pending = pending.Add(a.Amount)
		}
	}
	return pending
}
