package payment

import (
	"context"
	"errors"
	"sync"

	"francoggm/paygw-wallet/internal/app/auth"
	"francoggm/paygw-wallet/internal/models"

	"github.com/shopspring/decimal"
)

type fakePayables struct {
	payables     map[string]*models.Payable
	granting     map[string]bool
	DeliverFunc  func(paymentID, userID int64) error
	GetCalls     int
	DeliverCalls int
	Delivered    []int64
}

func newFakePayables(payables ...*models.Payable) *fakePayables {
	f := &fakePayables{
		payables: make(map[string]*models.Payable),
		granting: map[string]bool{"enrol_wallet": true, "auth_wallet": true, "availability_wallet": true},
	}
	for _, payable := range payables {
		f.payables[payable.Component+"/"+payable.PaymentArea] = payable
	}
	return f
}

var errNoPayable = errors.New("payable not found")

func (f *fakePayables) GetPayable(_ context.Context, component, paymentArea string, itemID int64) (*models.Payable, error) {
	f.GetCalls++
	payable, ok := f.payables[component+"/"+paymentArea]
	if !ok || payable.ItemID != itemID {
		return nil, errNoPayable
	}
	return payable, nil
}

func (f *fakePayables) DeliverOrder(_ context.Context, _, _ string, _, paymentID, userID int64) error {
	f.DeliverCalls++
	if f.DeliverFunc != nil {
		if err := f.DeliverFunc(paymentID, userID); err != nil {
			return err
		}
	}
	f.Delivered = append(f.Delivered, paymentID)
	return nil
}

func (f *fakePayables) SuccessURL(_ context.Context, component, paymentArea string, itemID int64) (string, error) {
	return "https://lms.test/payment/success?component=" + component, nil
}

func (f *fakePayables) GrantsWallet(component string) bool {
	return f.granting[component]
}

type fakeLedger struct {
	mu           sync.Mutex
	balances     map[int64]decimal.Decimal
	DebitCalls   int
	Descriptions []string
}

func newFakeLedger(userID int64, balance string) *fakeLedger {
	return &fakeLedger{
		balances: map[int64]decimal.Decimal{userID: decimal.RequireFromString(balance)},
	}
}

func (l *fakeLedger) Balance(_ context.Context, userID int64) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

func (l *fakeLedger) Debit(_ context.Context, userID int64, amount decimal.Decimal, category models.TransactionCategory, _ int64, description string) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.DebitCalls++
	l.Descriptions = append(l.Descriptions, description)
	before := l.balances[userID]
	l.balances[userID] = before.Sub(amount)
	return &models.Transaction{UserID: userID, Type: models.TransactionDebit, Category: category, Amount: amount, BalanceBefore: before, BalanceAfter: l.balances[userID]}, nil
}

type fakeRecorder struct {
	payments []*models.Payment
}

func (r *fakeRecorder) SavePayment(_ context.Context, payment *models.Payment) (int64, error) {
	payment.ID = int64(len(r.payments) + 1)
	r.payments = append(r.payments, payment)
	return payment.ID, nil
}

type fakePublisher struct {
	events []*models.PaymentEvent
}

func (p *fakePublisher) Publish(event *models.PaymentEvent) {
	p.events = append(p.events, event)
}

func userContext(userID int64) context.Context {
	return auth.WithUserID(context.Background(), userID)
}
