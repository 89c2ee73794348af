package external

import (
	"context"
	"encoding/json"
	"fmt"

	"francoggm/paygw-wallet/internal/app/gateway"
	"francoggm/paygw-wallet/internal/app/payment"
	"francoggm/paygw-wallet/internal/models"

	"github.com/bytedance/sonic"
)

const (
	ProcessFunction     = "paygw_wallet_process"
	GatewayInfoFunction = "paygw_wallet_get_gateway_info"
)

type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, params payment.Params) (*models.ProcessResult, error)
}

type GatewayDescriber interface {
	Info(ctx context.Context) *gateway.Info
}

type WalletGrantingLister interface {
	WalletGrantingComponents() []string
}

type GatewayInfo struct {
	Name                     string   `json:"name"`
	DisplayName              string   `json:"displayname"`
	Description              string   `json:"description"`
	SupportedCurrencies      []string `json:"supportedcurrencies"`
	WalletGrantingComponents []string `json:"walletgrantingcomponents"`
}

// NewProcessFunction declares paygw_wallet_process.
//
// Arguments are component, paymentarea, itemid and description. The result
// always carries success, url and reason.
func NewProcessFunction(processor PaymentProcessor) *Function {
	return &Function{
		Name:          ProcessFunction,
		Description:   "Pay for a payable item with the wallet balance",
		Type:          TypeWrite,
		Ajax:          true,
		LoginRequired: true,
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var wire processArgs
			if err := decodeArgs(args, &wire); err != nil {
				return nil, err
			}
			params, err := wire.params()
			if err != nil {
				return nil, err
			}
			return processor.ProcessPayment(ctx, params)
		},
	}
}

// NewGatewayInfoFunction declares paygw_wallet_get_gateway_info, which lets
// clients learn the supported currencies and which components grant wallet
// credit before they offer the wallet as a payment option.
func NewGatewayInfoFunction(describer GatewayDescriber, components WalletGrantingLister) *Function {
	return &Function{
		Name:          GatewayInfoFunction,
		Description:   "Describe the wallet payment gateway",
		Type:          TypeRead,
		Ajax:          true,
		LoginRequired: true,
		Handler: func(ctx context.Context, _ json.RawMessage) (any, error) {
			info := describer.Info(ctx)
			return &GatewayInfo{
				Name:                     info.Name,
				DisplayName:              info.DisplayName,
				Description:              info.Description,
				SupportedCurrencies:      info.SupportedCurrencies,
				WalletGrantingComponents: components.WalletGrantingComponents(),
			}, nil
		},
	}
}

// processArgs tells a missing argument apart from an empty one. Every
// argument of paygw_wallet_process is required, description included.
type processArgs struct {
	Component   *string `json:"component"`
	PaymentArea *string `json:"paymentarea"`
	ItemID      *int64  `json:"itemid"`
	Description *string `json:"description"`
}

func (a processArgs) params() (payment.Params, error) {
	for _, arg := range []struct {
		name    string
		present bool
	}{
		{"component", a.Component != nil},
		{"paymentarea", a.PaymentArea != nil},
		{"itemid", a.ItemID != nil},
		{"description", a.Description != nil},
	} {
		if !arg.present {
			return payment.Params{}, fmt.Errorf("%w: missing %s", payment.ErrInvalidParameter, arg.name)
		}
	}

	return payment.Params{
		Component:   *a.Component,
		PaymentArea: *a.PaymentArea,
		ItemID:      *a.ItemID,
		Description: *a.Description,
	}, nil
}

func decodeArgs(args json.RawMessage, out any) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing arguments", payment.ErrInvalidParameter)
	}
	if err := sonic.Unmarshal(args, out); err != nil {
		return fmt.Errorf("%w: %w", payment.ErrInvalidParameter, err)
	}
	return nil
}
