package provider

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"francoggm/paygw-wallet/internal/app/storage"
	"francoggm/paygw-wallet/internal/models"
)

type PayableReader interface {
	GetPayable(ctx context.Context, component, paymentArea string, itemID int64) (*models.Payable, error)
}

type EntitlementWriter interface {
	Grant(ctx context.Context, entitlement *models.Entitlement) error
}

// StoredProvider serves a component whose prices live in the payable store.
// Delivery records an entitlement; the success page is on the site itself.
type StoredProvider struct {
	component    string
	siteURL      string
	payables     PayableReader
	entitlements EntitlementWriter
}

func NewStoredProvider(component, siteURL string, payables PayableReader, entitlements EntitlementWriter) *StoredProvider {
	return &StoredProvider{
		component:    component,
		siteURL:      siteURL,
		payables:     payables,
		entitlements: entitlements,
	}
}

func (p *StoredProvider) Payable(ctx context.Context, paymentArea string, itemID int64) (*models.Payable, error) {
	payable, err := p.payables.GetPayable(ctx, p.component, paymentArea, itemID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrPayableNotFound
	}
	return payable, err
}

func (p *StoredProvider) SuccessURL(_ context.Context, paymentArea string, itemID int64) (string, error) {
	return SuccessURL(p.siteURL, p.component, paymentArea, itemID), nil
}

func (p *StoredProvider) DeliverOrder(ctx context.Context, paymentArea string, itemID, paymentID, userID int64) error {
	return p.entitlements.Grant(ctx, &models.Entitlement{
		Component:   p.component,
		PaymentArea: paymentArea,
		ItemID:      itemID,
		PaymentID:   paymentID,
		UserID:      userID,
	})
}

// SuccessURL builds the site's generic payment success page for an item.
func SuccessURL(siteURL, component, paymentArea string, itemID int64) string {
	query := url.Values{}
	query.Set("component", component)
	query.Set("paymentarea", paymentArea)
	query.Set("itemid", strconv.FormatInt(itemID, 10))

	return siteURL + "/payment/success?" + query.Encode()
}

// WalletGrantingProvider wraps a provider and adds the wallet granting
// marker.
type WalletGrantingProvider struct {
	ServiceProvider
}

func (WalletGrantingProvider) GrantsWalletCredit() bool {
	return true
}
