// Package gateway describes the wallet as a payment gateway to the payment
// subsystem.
package gateway

import (
	"context"
	"strings"

	"francoggm/paygw-wallet/internal/lang"
	"francoggm/paygw-wallet/internal/models"

	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	// CurrencyPlugin and CurrencySetting locate the wallet currency in the
	// settings store. The wallet enrolment plugin owns it.
	CurrencyPlugin  = "enrol_wallet"
	CurrencySetting = "currency"
)

type SettingReader interface {
	Setting(ctx context.Context, plugin, name string) (string, error)
}

type Info struct {
	Name                string   `json:"name"`
	DisplayName         string   `json:"displayname"`
	Description         string   `json:"description"`
	SupportedCurrencies []string `json:"supportedcurrencies"`
}

type Gateway struct {
	logger   *zap.Logger
	settings SettingReader
	strings  *lang.Manager
}

func New(logger *zap.Logger, settings SettingReader, strings *lang.Manager) *Gateway {
	return &Gateway{
		logger:   logger,
		settings: settings,
		strings:  strings,
	}
}

func (g *Gateway) Name() string {
	return models.GatewayName
}

// SupportedCurrencies returns the single configured wallet currency, or an
// empty list when none is configured. The payment subsystem will not offer
// the gateway for any currency in that case.
func (g *Gateway) SupportedCurrencies(ctx context.Context) []string {
	value, err := g.settings.Setting(ctx, CurrencyPlugin, CurrencySetting)
	if err != nil {
		g.logger.Warn("Failed to read wallet currency", zap.Error(err))
		return []string{}
	}

	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return []string{}
	}

	unit, err := currency.ParseISO(value)
	if err != nil {
		g.logger.Warn("Ignoring invalid wallet currency", zap.String("currency", value))
		return []string{}
	}

	return []string{unit.String()}
}

// AddConfigurationToGatewayForm adds nothing; the gateway has no per-account
// settings.
func (g *Gateway) AddConfigurationToGatewayForm(form map[string]any) {}

// ValidateGatewayForm never reports errors.
func (g *Gateway) ValidateGatewayForm(data map[string]any, files map[string]any, errors map[string]string) {}

func (g *Gateway) Info(ctx context.Context) *Info {
	return &Info{
		Name:                g.Name(),
		DisplayName:         g.strings.Get(ctx, "gatewayname", lang.Component, nil),
		Description:         g.strings.Get(ctx, "gatewaydescription", lang.Component, nil),
		SupportedCurrencies: g.SupportedCurrencies(ctx),
	}
}
