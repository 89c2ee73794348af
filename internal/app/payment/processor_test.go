package payment

import (
	"context"
	"errors"
	"testing"

	"francoggm/paygw-wallet/internal/app/auth"
	"francoggm/paygw-wallet/internal/lang"
	"francoggm/paygw-wallet/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUser = int64(7)

func quizPayable(amount string) *models.Payable {
	return &models.Payable{
		Component:   "mod_quiz",
		PaymentArea: "quizfee",
		ItemID:      42,
		AccountID:   3,
		Amount:      decimal.RequireFromString(amount),
		Currency:    "USD",
	}
}

func quizParams() Params {
	return Params{
		Component:   "mod_quiz",
		PaymentArea: "quizfee",
		ItemID:      42,
		Description: "Quiz entry fee",
	}
}

type harness struct {
	processor *Processor
	payables  *fakePayables
	ledger    *fakeLedger
	recorder  *fakeRecorder
	events    *fakePublisher
}

func newHarness(amount, balance string) *harness {
	h := &harness{
		payables: newFakePayables(quizPayable(amount)),
		ledger:   newFakeLedger(testUser, balance),
		recorder: &fakeRecorder{},
		events:   &fakePublisher{},
	}
	h.processor = NewProcessor(
		zap.NewNop(),
		auth.ContextPrincipal{},
		h.payables,
		h.ledger,
		h.recorder,
		lang.NewManager(),
		WithContextValidator(auth.SystemContext{GuestUserID: 1}),
		WithEventPublisher(h.events),
	)
	return h
}

func (h *harness) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	balance, err := h.ledger.Balance(context.Background(), testUser)
	require.NoError(t, err)
	return balance
}

func TestProcessPaymentSufficientBalance(t *testing.T) {
	h := newHarness("75.00", "100.00")

	result, err := h.processor.ProcessPayment(userContext(testUser), quizParams())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.URL)
	assert.Empty(t, result.Reason)
	assert.True(t, h.balance(t).Equal(decimal.RequireFromString("25.00")))

	require.Len(t, h.recorder.payments, 1)
	payment := h.recorder.payments[0]
	assert.Equal(t, testUser, payment.UserID)
	assert.Equal(t, int64(3), payment.AccountID)
	assert.Equal(t, "USD", payment.Currency)
	assert.Equal(t, "wallet", payment.Gateway)
	assert.True(t, payment.Amount.Equal(decimal.RequireFromString("75")))

	assert.Equal(t, 1, h.payables.DeliverCalls)
	assert.Equal(t, []int64{payment.ID}, h.payables.Delivered)
	assert.Equal(t, []string{"Quiz entry fee"}, h.ledger.Descriptions)

	require.Len(t, h.events.events, 1)
	assert.Equal(t, models.OutcomePaid, h.events.events[0].Outcome)
	assert.Equal(t, payment.ID, h.events.events[0].PaymentID)
}

func TestProcessPaymentInsufficientBalance(t *testing.T) {
	h := newHarness("75.00", "50.00")

	result, err := h.processor.ProcessPayment(userContext(testUser), quizParams())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "You do not have enough balance in your wallet to complete this payment.", result.Reason)
	assert.Empty(t, result.URL)

	assert.True(t, h.balance(t).Equal(decimal.RequireFromString("50.00")))
	assert.Zero(t, h.ledger.DebitCalls)
	assert.Empty(t, h.recorder.payments)
	assert.Zero(t, h.payables.DeliverCalls)

	require.Len(t, h.events.events, 1)
	assert.Equal(t, models.OutcomeInsufficientBalance, h.events.events[0].Outcome)
}

func TestProcessPaymentExactBalance(t *testing.T) {
	h := newHarness("75.00", "75.00")

	result, err := h.processor.ProcessPayment(userContext(testUser), quizParams())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, h.balance(t).IsZero())
	assert.Len(t, h.recorder.payments, 1)
}

func TestProcessPaymentIsNotIdempotent(t *testing.T) {
	h := newHarness("30.00", "100.00")
	ctx := userContext(testUser)

	first, err := h.processor.ProcessPayment(ctx, quizParams())
	require.NoError(t, err)
	second, err := h.processor.ProcessPayment(ctx, quizParams())
	require.NoError(t, err)

	assert.True(t, first.Success)
	assert.True(t, second.Success)
	assert.Equal(t, 2, h.ledger.DebitCalls)
	assert.Len(t, h.recorder.payments, 2)
	assert.Equal(t, 2, h.payables.DeliverCalls)
	assert.True(t, h.balance(t).Equal(decimal.RequireFromString("40.00")))
}

func TestProcessPaymentDeliveryFailureKeepsDebit(t *testing.T) {
	h := newHarness("75.00", "100.00")
	deliveryErr := errors.New("enrolment plugin disabled")
	h.payables.DeliverFunc = func(int64, int64) error { return deliveryErr }

	result, err := h.processor.ProcessPayment(userContext(testUser), quizParams())
	require.ErrorIs(t, err, deliveryErr)
	assert.Nil(t, result)

	// No compensating credit is issued.
	assert.True(t, h.balance(t).Equal(decimal.RequireFromString("25.00")))
	assert.Len(t, h.recorder.payments, 1)
	assert.Empty(t, h.events.events)
}

func TestProcessPaymentUnknownPayable(t *testing.T) {
	h := newHarness("75.00", "100.00")
	params := quizParams()
	params.ItemID = 43

	_, err := h.processor.ProcessPayment(userContext(testUser), params)
	require.ErrorIs(t, err, errNoPayable)
	assert.Zero(t, h.ledger.DebitCalls)
}

func TestProcessPaymentRefusesWalletGrantingComponents(t *testing.T) {
	for _, component := range []string{"enrol_wallet", "auth_wallet", "availability_wallet"} {
		t.Run(component, func(t *testing.T) {
			h := newHarness("75.00", "100.00")
			params := quizParams()
			params.Component = component

			result, err := h.processor.ProcessPayment(userContext(testUser), params)
			require.NoError(t, err)

			assert.False(t, result.Success)
			assert.Equal(t, "The wallet cannot be used to pay for wallet credit.", result.Reason)
			assert.Zero(t, h.payables.GetCalls)
			assert.Zero(t, h.ledger.DebitCalls)
		})
	}
}

func TestProcessPaymentRequiresLogin(t *testing.T) {
	h := newHarness("75.00", "100.00")

	_, err := h.processor.ProcessPayment(context.Background(), quizParams())
	require.ErrorIs(t, err, ErrRequireLogin)
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)

	_, err = h.processor.ProcessPayment(userContext(1), quizParams())
	require.ErrorIs(t, err, ErrRequireLogin)
	assert.ErrorIs(t, err, auth.ErrGuestAccess)

	assert.Zero(t, h.payables.GetCalls)
}

func TestProcessPaymentRejectsMalformedParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"uppercase component", func(p *Params) { p.Component = "Mod_Quiz" }, "component"},
		{"empty component", func(p *Params) { p.Component = "" }, "component"},
		{"module with underscore", func(p *Params) { p.Component = "mod_quiz_extra" }, "component"},
		{"double underscore", func(p *Params) { p.Component = "local__x" }, "component"},
		{"area with space", func(p *Params) { p.PaymentArea = "quiz fee" }, "paymentarea"},
		{"area trailing underscore", func(p *Params) { p.PaymentArea = "quizfee_" }, "paymentarea"},
		{"zero item", func(p *Params) { p.ItemID = 0 }, "itemid"},
		{"negative item", func(p *Params) { p.ItemID = -4 }, "itemid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness("75.00", "100.00")
			params := quizParams()
			tt.mutate(&params)

			_, err := h.processor.ProcessPayment(userContext(testUser), params)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Contains(t, err.Error(), tt.field)
			assert.Zero(t, h.payables.GetCalls)
		})
	}
}

func TestProcessPaymentStripsMarkupFromDescription(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"<b>Quiz</b> entry fee<script>alert(1)</script>", "Quiz entry fee"},
		{`Fish & Chips "deluxe" <b>x</b>`, `Fish & Chips "deluxe" x`},
		{"Tom's <i>quiz</i>", "Tom's quiz"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h := newHarness("10.00", "100.00")
			params := quizParams()
			params.Description = tt.description

			_, err := h.processor.ProcessPayment(userContext(testUser), params)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, h.ledger.Descriptions)
		})
	}
}

func TestProcessPaymentFreeItem(t *testing.T) {
	h := newHarness("0.00", "0.00")

	result, err := h.processor.ProcessPayment(userContext(testUser), quizParams())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.URL)
	assert.Zero(t, h.ledger.DebitCalls)
	assert.True(t, h.balance(t).IsZero())
	require.Len(t, h.recorder.payments, 1)
	assert.True(t, h.recorder.payments[0].Amount.IsZero())
	assert.Equal(t, 1, h.payables.DeliverCalls)
}

func TestValidComponent(t *testing.T) {
	assert.True(t, ValidComponent("mod_quiz"))
	assert.True(t, ValidComponent("enrol_fee"))
	assert.True(t, ValidComponent("core_payment"))
	assert.True(t, ValidComponent("local_my_plugin"))
	assert.False(t, ValidComponent("mod_my_plugin"))
	assert.False(t, ValidComponent("1mod"))
	assert.False(t, ValidComponent("mod_"))
}

func TestValidArea(t *testing.T) {
	assert.True(t, ValidArea("quizfee"))
	assert.True(t, ValidArea("fee_2"))
	assert.False(t, ValidArea("fee__2"))
	assert.False(t, ValidArea("_fee"))
	assert.False(t, ValidArea("f"))
}
