package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// TransactionCategory tags why the balance moved.
type TransactionCategory string

const (
	CategoryOther   TransactionCategory = "other"
	CategoryTopUp   TransactionCategory = "topup"
	CategoryRefund  TransactionCategory = "refund"
	CategoryPayment TransactionCategory = "payment"
)

type Transaction struct {
	ID            string              `json:"id"`
	UserID        int64               `json:"userId"`
	Type          TransactionType     `json:"type"`
	Category      TransactionCategory `json:"category"`
	Amount        decimal.Decimal     `json:"amount"`
	BalanceBefore decimal.Decimal     `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal     `json:"balanceAfter"`
	Reference     int64               `json:"reference"`
	Description   string              `json:"description"`
	CreatedAt     time.Time           `json:"createdAt"`
}
