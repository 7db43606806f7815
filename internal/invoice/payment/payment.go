// Package payment implements the one-way unpaid to paid transition.
package payment

import (
	"context"
	"strings"

	"github.com/qmuntal/stateless"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

type State string

const (
	StateUnpaid State = "unpaid"
	StatePaid   State = "paid"
)

const triggerMarkPaid = "mark_paid"

// Request carries the payment details entered by the user.
type Request struct {
	PaidDate  string `json:"paidDate"`
	Indicator string `json:"paidIndicator"`
}

// StateOf reports the payment state of inv.
func StateOf(inv domain.Invoice) State {
	if inv.IsPaid {
		return StatePaid
	}
	return StateUnpaid
}

func newMachine(initial State) *stateless.StateMachine {
	machine := stateless.NewStateMachine(initial)
	machine.Configure(StateUnpaid).
		Permit(triggerMarkPaid, StatePaid)
	machine.Configure(StatePaid)
	return machine
}

// CanMarkPaid reports whether inv still accepts a payment.
func CanMarkPaid(inv domain.Invoice) bool {
	return StateOf(inv) == StateUnpaid
}

// MarkPaid validates req against inv and returns the patch that records
// the payment. Nothing is mutated; the caller applies the patch.
func MarkPaid(ctx context.Context, inv domain.Invoice, req Request) (domain.Patch, error) {
	date := strings.TrimSpace(req.PaidDate)
	if date == "" {
		return domain.Patch{}, domain.ErrPaidDateRequired
	}
	if _, err := domain.ParseDate(date); err != nil {
		return domain.Patch{}, domain.ErrInvalidPaidDate
	}
	indicator, err := domain.ParsePaidIndicator(req.Indicator)
	if err != nil {
		return domain.Patch{}, err
	}

	machine := newMachine(StateOf(inv))
	if err := machine.FireCtx(ctx, triggerMarkPaid); err != nil {
		return domain.Patch{}, domain.ErrAlreadyPaid
	}

	paid := true
	paidDate := domain.StringPtr(date)
	return domain.Patch{
		IsPaid:        &paid,
		PaidDate:      &paidDate,
		PaidIndicator: &indicator,
	}, nil
}
