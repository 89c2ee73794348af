package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"francoggm/paygw-wallet/internal/models"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

type webhookPayable struct {
	AccountID int64           `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

type webhookSuccessURL struct {
	URL string `json:"url"`
}

type webhookDelivery struct {
	PaymentArea string `json:"paymentarea"`
	ItemID      int64  `json:"itemid"`
	PaymentID   int64  `json:"paymentid"`
	UserID      int64  `json:"userid"`
}

// WebhookProvider reaches a component that runs as a separate service.
//
//	GET  {base}/payable?paymentarea=&itemid=
//	GET  {base}/successurl?paymentarea=&itemid=
//	POST {base}/deliver
type WebhookProvider struct {
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
}

func NewWebhookProvider(baseURL string, timeout time.Duration) *WebhookProvider {
	return &WebhookProvider{
		baseURL: baseURL,
		timeout: timeout,
		client:  &fasthttp.Client{},
	}
}

func (p *WebhookProvider) Payable(ctx context.Context, paymentArea string, itemID int64) (*models.Payable, error) {
	var body webhookPayable
	status, err := p.do(ctx, http.MethodGet, p.itemURL("/payable", paymentArea, itemID), nil, &body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrPayableNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("payable request failed with status code: %d", status)
	}

	return &models.Payable{
		AccountID: body.AccountID,
		Amount:    body.Amount,
		Currency:  body.Currency,
	}, nil
}

func (p *WebhookProvider) SuccessURL(ctx context.Context, paymentArea string, itemID int64) (string, error) {
	var body webhookSuccessURL
	status, err := p.do(ctx, http.MethodGet, p.itemURL("/successurl", paymentArea, itemID), nil, &body)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("success url request failed with status code: %d", status)
	}
	if body.URL == "" {
		return "", fmt.Errorf("success url request returned an empty url")
	}

	return body.URL, nil
}

func (p *WebhookProvider) DeliverOrder(ctx context.Context, paymentArea string, itemID, paymentID, userID int64) error {
	payload, err := sonic.Marshal(webhookDelivery{
		PaymentArea: paymentArea,
		ItemID:      itemID,
		PaymentID:   paymentID,
		UserID:      userID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}

	status, err := p.do(ctx, http.MethodPost, p.baseURL+"/deliver", payload, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("delivery request failed with status code: %d", status)
	}

	return nil
}

func (p *WebhookProvider) itemURL(path, paymentArea string, itemID int64) string {
	query := url.Values{}
	query.Set("paymentarea", paymentArea)
	query.Set("itemid", strconv.FormatInt(itemID, 10))

	return p.baseURL + path + "?" + query.Encode()
}

// do decodes a 200 response into out when out is not nil and returns the
// status code.
func (p *WebhookProvider) do(ctx context.Context, method, uri string, payload []byte, out any) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if payload != nil {
		req.SetBody(payload)
	}

	if err := p.client.DoDeadline(req, resp, deadline(ctx, p.timeout)); err != nil {
		return 0, fmt.Errorf("failed to call %s: %w", uri, err)
	}

	statusCode := resp.StatusCode()
	if statusCode == http.StatusOK && out != nil {
		if err := sonic.Unmarshal(resp.Body(), out); err != nil {
			return 0, fmt.Errorf("failed to decode response from %s: %w", uri, err)
		}
	}

	return statusCode, nil
}

func deadline(ctx context.Context, timeout time.Duration) time.Time {
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}
