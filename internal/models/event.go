package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentOutcome string

const (
	OutcomePaid                PaymentOutcome = "paid"
	OutcomeInsufficientBalance PaymentOutcome = "insufficient_balance"
)

type PaymentEvent struct {
	ID          string          `json:"id"`
	Outcome     PaymentOutcome  `json:"outcome"`
	Component   string          `json:"component"`
	PaymentArea string          `json:"paymentArea"`
	ItemID      int64           `json:"itemId"`
	UserID      int64           `json:"userId"`
	PaymentID   int64           `json:"paymentId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

type Summary struct {
	Paid          int             `json:"paid"`
	Declined      int             `json:"declined"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalDeclined decimal.Decimal `json:"totalDeclined"`
}

// PaymentsSummary is keyed by component.
type PaymentsSummary map[string]*Summary
