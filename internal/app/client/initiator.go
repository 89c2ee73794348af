// Package client starts wallet payments on behalf of a user interface.
package client

import (
	"context"
	"errors"

	"francoggm/paygw-wallet/internal/app/external"
	"francoggm/paygw-wallet/internal/app/payment"
	"francoggm/paygw-wallet/internal/lang"
	"francoggm/paygw-wallet/internal/models"
)

var (
	ErrWalletNotForWallet = errors.New("wallet cannot pay for wallet credit")
	ErrPaymentDeclined    = errors.New("payment declined")
)

// PaymentError carries the localized reason shown to the user.
type PaymentError struct {
	Reason string
	Err    error
}

func (e *PaymentError) Error() string {
	return e.Reason
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// Caller invokes a remote function and decodes its data into out.
type Caller interface {
	Call(ctx context.Context, method string, args any, out any) error
}

type GrantChecker interface {
	GrantsWallet(component string) bool
}

// OptionRemover takes the wallet off the list of payment options offered for
// the current item.
type OptionRemover interface {
	RemoveWalletOption()
}

type Navigator interface {
	Navigate(url string) error
}

type Translator interface {
	Get(ctx context.Context, key, component string, a any) string
}

type Initiator struct {
	caller    Caller
	grants    GrantChecker
	options   OptionRemover
	navigator Navigator
	strings   Translator
}

func NewInitiator(caller Caller, grants GrantChecker, options OptionRemover, navigator Navigator, translator Translator) *Initiator {
	return &Initiator{
		caller:    caller,
		grants:    grants,
		options:   options,
		navigator: navigator,
		strings:   translator,
	}
}

// Process pays for an item with the wallet and, on success, navigates to the
// returned URL. The returned message is the localized success notice.
//
// Wallet granting components never reach the server. Declined payments and
// transport failures are returned as errors and are not retried.
func (i *Initiator) Process(ctx context.Context, component, paymentArea string, itemID int64, description string) (string, error) {
	if i.grants.GrantsWallet(component) {
		i.options.RemoveWalletOption()
		return "", &PaymentError{
			Reason: i.strings.Get(ctx, "walletnotforwallet", lang.Component, nil),
			Err:    ErrWalletNotForWallet,
		}
	}

	var result models.ProcessResult
	err := i.caller.Call(ctx, external.ProcessFunction, payment.Params{
		Component:   component,
		PaymentArea: paymentArea,
		ItemID:      itemID,
		Description: description,
	}, &result)
	if err != nil {
		return "", err
	}

	if !result.Success {
		reason := result.Reason
		if reason == "" {
			reason = i.strings.Get(ctx, "paymentfailed", lang.Component, nil)
		}
		return "", &PaymentError{Reason: reason, Err: ErrPaymentDeclined}
	}

	message := i.strings.Get(ctx, "paymentsuccessfull", lang.Component, result.URL)
	if err := i.navigator.Navigate(result.URL); err != nil {
		return message, err
	}

	return message, nil
}

// GrantSet is a fixed set of wallet granting components.
type GrantSet map[string]struct{}

var DefaultWalletGrantingComponents = []string{"enrol_wallet", "auth_wallet", "availability_wallet"}

func NewGrantSet(components ...string) GrantSet {
	set := make(GrantSet, len(components))
	for _, component := range components {
		set[component] = struct{}{}
	}
	return set
}

func (s GrantSet) GrantsWallet(component string) bool {
	_, ok := s[component]
	return ok
}
