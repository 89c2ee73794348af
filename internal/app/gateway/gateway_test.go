package gateway

import (
	"context"
	"errors"
	"testing"

	"francoggm/paygw-wallet/internal/lang"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSettings struct {
	values map[string]string
	err    error
}

func (f fakeSettings) Setting(_ context.Context, plugin, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[plugin+"/"+name], nil
}

func newGateway(settings SettingReader) *Gateway {
	return New(zap.NewNop(), settings, lang.NewManager())
}

func TestSupportedCurrencies(t *testing.T) {
	tests := []struct {
		name     string
		settings fakeSettings
		want     []string
	}{
		{"configured", fakeSettings{values: map[string]string{"enrol_wallet/currency": "USD"}}, []string{"USD"}},
		{"lower case", fakeSettings{values: map[string]string{"enrol_wallet/currency": " eur "}}, []string{"EUR"}},
		{"unset", fakeSettings{}, []string{}},
		{"invalid", fakeSettings{values: map[string]string{"enrol_wallet/currency": "dollars"}}, []string{}},
		{"read error", fakeSettings{err: errors.New("connection refused")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newGateway(tt.settings).SupportedCurrencies(context.Background())
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGatewayFormIsNoop(t *testing.T) {
	g := newGateway(fakeSettings{})

	form := map[string]any{}
	g.AddConfigurationToGatewayForm(form)
	assert.Empty(t, form)

	errs := map[string]string{}
	g.ValidateGatewayForm(map[string]any{"anything": 1}, nil, errs)
	assert.Empty(t, errs)
}

func TestInfo(t *testing.T) {
	g := newGateway(fakeSettings{values: map[string]string{"enrol_wallet/currency": "USD"}})

	info := g.Info(context.Background())
	assert.Equal(t, "wallet", info.Name)
	assert.Equal(t, "Wallet", info.DisplayName)
	assert.NotEmpty(t, info.Description)
	assert.Equal(t, []string{"USD"}, info.SupportedCurrencies)
}
