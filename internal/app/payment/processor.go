// Package payment settles payables from the user's wallet balance.
package payment

import (
	"context"
	"fmt"
	"time"

	"francoggm/paygw-wallet/internal/lang"
	"francoggm/paygw-wallet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Principal resolves the authenticated user of a request.
type Principal interface {
	CurrentUser(ctx context.Context) (int64, error)
}

type ContextValidator interface {
	ValidateContext(ctx context.Context, userID int64) error
}

// Payables dispatches to the service provider of the component that owns the
// item being bought.
type Payables interface {
	GetPayable(ctx context.Context, component, paymentArea string, itemID int64) (*models.Payable, error)
	DeliverOrder(ctx context.Context, component, paymentArea string, itemID, paymentID, userID int64) error
	SuccessURL(ctx context.Context, component, paymentArea string, itemID int64) (string, error)
	GrantsWallet(component string) bool
}

// Ledger is the only place the wallet balance changes.
type Ledger interface {
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Debit(ctx context.Context, userID int64, amount decimal.Decimal, category models.TransactionCategory, reference int64, description string) (*models.Transaction, error)
}

type PaymentRecorder interface {
	SavePayment(ctx context.Context, payment *models.Payment) (int64, error)
}

type Translator interface {
	Get(ctx context.Context, key, component string, a any) string
}

type EventPublisher interface {
	Publish(event *models.PaymentEvent)
}

type Option func(*Processor)

func WithContextValidator(validator ContextValidator) Option {
	return func(p *Processor) {
		p.access = validator
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(p *Processor) {
		p.events = publisher
	}
}

type Processor struct {
	logger    *zap.Logger
	params    *ParamValidator
	principal Principal
	access    ContextValidator
	payables  Payables
	ledger    Ledger
	payments  PaymentRecorder
	strings   Translator
	events    EventPublisher
}

func NewProcessor(logger *zap.Logger, principal Principal, payables Payables, ledger Ledger, payments PaymentRecorder, translator Translator, opts ...Option) *Processor {
	p := &Processor{
		logger:    logger,
		params:    NewParamValidator(),
		principal: principal,
		payables:  payables,
		ledger:    ledger,
		payments:  payments,
		strings:   translator,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessPayment pays for (component, area, item) with the current user's
// wallet.
//
// An insufficient balance is a result with Success false, not an error.
// Errors are returned for malformed input, access failures and any failure of
// the collaborators. Debit, payment record and delivery are separate steps:
// when delivery fails the debit and the payment record stay in place.
// Repeated calls are not deduplicated and debit again.
func (p *Processor) ProcessPayment(ctx context.Context, params Params) (*models.ProcessResult, error) {
	params, err := p.params.Clean(params)
	if err != nil {
		return nil, err
	}

	userID, err := p.principal.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequireLogin, err)
	}
	if p.access != nil {
		if err := p.access.ValidateContext(ctx, userID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRequireLogin, err)
		}
	}

	log := p.logger.With(
		zap.String("component", params.Component),
		zap.String("payment_area", params.PaymentArea),
		zap.Int64("item_id", params.ItemID),
		zap.Int64("user_id", userID),
	)

	if p.payables.GrantsWallet(params.Component) {
		log.Warn("Refusing to pay for wallet credit with the wallet")
		return &models.ProcessResult{
			Success: false,
			Reason:  p.strings.Get(ctx, "walletnotforwallet", lang.Component, nil),
		}, nil
	}

	payable, err := p.payables.GetPayable(ctx, params.Component, params.PaymentArea, params.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payable: %w", err)
	}

	balance, err := p.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet balance: %w", err)
	}

	if payable.Amount.GreaterThan(balance) {
		log.Info("Wallet balance too low",
			zap.String("amount", payable.Amount.String()),
			zap.String("balance", balance.String()),
		)
		p.publish(models.OutcomeInsufficientBalance, params, userID, 0, payable)

		return &models.ProcessResult{
			Success: false,
			Reason:  p.strings.Get(ctx, "noenoughbalance", lang.Component, nil),
		}, nil
	}

	// Free items are recorded and delivered without touching the ledger.
	if !payable.Amount.IsZero() {
		if _, err := p.ledger.Debit(ctx, userID, payable.Amount, models.CategoryOther, 0, params.Description); err != nil {
			return nil, fmt.Errorf("failed to debit wallet: %w", err)
		}
	}

	paymentID, err := p.payments.SavePayment(ctx, &models.Payment{
		AccountID:   payable.AccountID,
		Component:   params.Component,
		PaymentArea: params.PaymentArea,
		ItemID:      params.ItemID,
		UserID:      userID,
		Amount:      payable.Amount,
		Currency:    payable.Currency,
		Gateway:     models.GatewayName,
	})
	if err != nil {
		log.Error("Wallet debited but payment record failed", zap.String("amount", payable.Amount.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if err := p.payables.DeliverOrder(ctx, params.Component, params.PaymentArea, params.ItemID, paymentID, userID); err != nil {
		log.Error("Wallet debited but delivery failed", zap.Int64("payment_id", paymentID), zap.Error(err))
		return nil, fmt.Errorf("failed to deliver order: %w", err)
	}

	successURL, err := p.payables.SuccessURL(ctx, params.Component, params.PaymentArea, params.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get success url: %w", err)
	}

	log.Info("Payment processed",
		zap.Int64("payment_id", paymentID),
		zap.String("amount", payable.Amount.String()),
		zap.String("currency", payable.Currency),
	)
	p.publish(models.OutcomePaid, params, userID, paymentID, payable)

	return &models.ProcessResult{
		Success: true,
		URL:     successURL,
	}, nil
}

func (p *Processor) publish(outcome models.PaymentOutcome, params Params, userID, paymentID int64, payable *models.Payable) {
	if p.events == nil {
		return
	}

	p.events.Publish(&models.PaymentEvent{
		ID:          uuid.NewString(),
		Outcome:     outcome,
		Component:   params.Component,
		PaymentArea: params.PaymentArea,
		ItemID:      params.ItemID,
		UserID:      userID,
		PaymentID:   paymentID,
		Amount:      payable.Amount,
		Currency:    payable.Currency,
		OccurredAt:  time.Now().UTC(),
	})
}
