package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/totals"
)

// Entry is a listed invoice with its derived amounts.
type Entry struct {
	domain.Invoice
	Totals totals.Totals `json:"totals"`
}

type Counts struct {
	Pending int `json:"pending"`
	Paid    int `json:"paid"`
	Total   int `json:"total"`
}

// Grouped splits the collection the way the invoice list shows it.
type Grouped struct {
	Pending []Entry `json:"pending"`
	Paid    []Entry `json:"paid"`
	Counts  Counts  `json:"counts"`
}

// ListGrouped returns unpaid invoices by due date, earliest first, and
// paid invoices by paid date, latest first. Missing dates sort last.
func (s *Service) ListGrouped(ctx context.Context) Grouped {
	out := Grouped{Pending: []Entry{}, Paid: []Entry{}}
	for _, inv := range s.store.List(ctx) {
		e := Entry{Invoice: inv, Totals: totals.Of(inv)}
		if inv.IsPaid {
			out.Paid = append(out.Paid, e)
		} else {
			out.Pending = append(out.Pending, e)
		}
	}

	slices.SortStableFunc(out.Pending, func(a, b Entry) int {
		return compareDates(domain.Deref(a.DueDate), domain.Deref(b.DueDate), false)
	})
	slices.SortStableFunc(out.Paid, func(a, b Entry) int {
		return compareDates(domain.Deref(a.PaidDate), domain.Deref(b.PaidDate), true)
	})

	out.Counts = Counts{
		Pending: len(out.Pending),
		Paid:    len(out.Paid),
		Total:   len(out.Pending) + len(out.Paid),
	}
	return out
}

// compareDates orders YYYY-MM-DD strings, keeping empty values last in
// both directions.
func compareDates(a, b string, desc bool) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	if desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}
