package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestGetEnglish(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	assert.Equal(t, "You do not have enough balance in your wallet to complete this payment.", m.Get(ctx, "noenoughbalance", Component, nil))
	assert.Equal(t, "Payment successful. You will be redirected to https://lms.test/x", m.Get(ctx, "paymentsuccessfull", Component, "https://lms.test/x"))
	assert.Equal(t, "[[nosuchkey]]", m.Get(ctx, "nosuchkey", Component, nil))
	assert.Equal(t, "[[pluginname]]", m.Get(ctx, "pluginname", "enrol_wallet", nil))
}

func TestGetFallsBackToEnglish(t *testing.T) {
	m := NewManager()
	m.AddPack(language.French, Component, map[string]string{
		"noenoughbalance": "Solde insuffisant.",
	})

	ctx := WithLanguage(context.Background(), language.French)
	assert.Equal(t, "Solde insuffisant.", m.Get(ctx, "noenoughbalance", Component, nil))
	assert.Equal(t, "Pay with wallet", m.Get(ctx, "pluginname", Component, nil))
}

func TestNamedPlaceholders(t *testing.T) {
	m := NewManager()
	m.AddPack(language.English, "local_test", map[string]string{
		"greeting": "Hello {$a->first} {$a->last}",
	})

	got := m.Get(context.Background(), "greeting", "local_test", map[string]string{"first": "Ada", "last": "Lovelace"})
	assert.Equal(t, "Hello Ada Lovelace", got)
}

func TestMatch(t *testing.T) {
	m := NewManager()
	m.AddPack(language.German, Component, map[string]string{"pluginname": "Mit Guthaben bezahlen"})

	assert.Equal(t, language.German, m.Match("de-DE,de;q=0.9,en;q=0.5"))
	assert.Equal(t, language.English, m.Match("ja"))
	assert.Equal(t, language.English, m.Match(""))
	assert.Equal(t, language.English, m.Match("@@@"))
}
