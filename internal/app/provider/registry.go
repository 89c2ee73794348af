// Package provider dispatches payment callbacks to the component that owns
// the item being paid for.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"francoggm/paygw-wallet/internal/models"
)

var (
	ErrUnknownComponent = errors.New("component does not support payments")
	ErrPayableNotFound  = errors.New("payable not found")
)

// ServiceProvider is implemented by every component that sells items through
// the payment subsystem.
type ServiceProvider interface {
	Payable(ctx context.Context, paymentArea string, itemID int64) (*models.Payable, error)
	SuccessURL(ctx context.Context, paymentArea string, itemID int64) (string, error)
	DeliverOrder(ctx context.Context, paymentArea string, itemID, paymentID, userID int64) error
}

// WalletGranter marks providers whose items top up the wallet. Such items can
// never be paid for with the wallet.
type WalletGranter interface {
	GrantsWalletCredit() bool
}

type Registry struct {
	mu        sync.RWMutex
	providers map[string]ServiceProvider
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]ServiceProvider),
	}
}

func (r *Registry) Register(component string, provider ServiceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[component] = provider
}

func (r *Registry) provider(component string) (ServiceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[component]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, component)
	}
	return provider, nil
}

func (r *Registry) GetPayable(ctx context.Context, component, paymentArea string, itemID int64) (*models.Payable, error) {
	provider, err := r.provider(component)
	if err != nil {
		return nil, err
	}

	payable, err := provider.Payable(ctx, paymentArea, itemID)
	if err != nil {
		return nil, err
	}

	payable.Component = component
	payable.PaymentArea = paymentArea
	payable.ItemID = itemID
	return payable, nil
}

func (r *Registry) DeliverOrder(ctx context.Context, component, paymentArea string, itemID, paymentID, userID int64) error {
	provider, err := r.provider(component)
	if err != nil {
		return err
	}
	return provider.DeliverOrder(ctx, paymentArea, itemID, paymentID, userID)
}

func (r *Registry) SuccessURL(ctx context.Context, component, paymentArea string, itemID int64) (string, error) {
	provider, err := r.provider(component)
	if err != nil {
		return "", err
	}
	return provider.SuccessURL(ctx, paymentArea, itemID)
}

// GrantsWallet reports whether the component's provider carries the wallet
// granting marker. Unknown components do not.
func (r *Registry) GrantsWallet(component string) bool {
	provider, err := r.provider(component)
	if err != nil {
		return false
	}

	granter, ok := provider.(WalletGranter)
	return ok && granter.GrantsWalletCredit()
}

// WalletGrantingComponents lists the registered components carrying the
// marker, sorted.
func (r *Registry) WalletGrantingComponents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	components := []string{}
	for component, provider := range r.providers {
		if granter, ok := provider.(WalletGranter); ok && granter.GrantsWalletCredit() {
			components = append(components, component)
		}
	}

	sort.Strings(components)
	return components
}
