package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const GatewayName = "wallet"

type Payable struct {
	Component   string          `json:"component"`
	PaymentArea string          `json:"paymentArea"`
	ItemID      int64           `json:"itemId"`
	AccountID   int64           `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

type Payment struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"accountId"`
	Component   string          `json:"component"`
	PaymentArea string          `json:"paymentArea"`
	ItemID      int64           `json:"itemId"`
	UserID      int64           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Gateway     string          `json:"gateway"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProcessResult is the wire result of paygw_wallet_process. URL and Reason are
// always encoded, empty when not applicable.
type ProcessResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Reason  string `json:"reason"`
}

type Entitlement struct {
	Component   string    `json:"component"`
	PaymentArea string    `json:"paymentArea"`
	ItemID      int64     `json:"itemId"`
	PaymentID   int64     `json:"paymentId"`
	UserID      int64     `json:"userId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}
