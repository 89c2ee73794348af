package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"francoggm/paygw-wallet/internal/app/external"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

const servicePath = "/lib/ajax/service.php"

type ajaxCall struct {
	Index      int    `json:"index"`
	MethodName string `json:"methodname"`
	Args       any    `json:"args"`
}

type ajaxResponse struct {
	Error     bool                `json:"error"`
	Data      json.RawMessage     `json:"data"`
	Exception *external.Exception `json:"exception"`
}

// RemoteError is an exception raised by the remote function.
type RemoteError struct {
	Message   string
	ErrorCode string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.ErrorCode)
}

// AjaxClient calls remote functions through the batched ajax endpoint with
// the user's session.
type AjaxClient struct {
	baseURL      string
	sessionToken string
	timeout      time.Duration
	client       *fasthttp.Client
}

func NewAjaxClient(baseURL, sessionToken string, timeout time.Duration) *AjaxClient {
	return &AjaxClient{
		baseURL:      baseURL,
		sessionToken: sessionToken,
		timeout:      timeout,
		client:       &fasthttp.Client{},
	}
}

func (c *AjaxClient) Call(ctx context.Context, method string, args any, out any) error {
	if args == nil {
		args = struct{}{}
	}

	payload, err := sonic.Marshal([]ajaxCall{{Index: 0, MethodName: method, Args: args}})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.baseURL + servicePath)
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	if c.sessionToken != "" {
		req.Header.SetCookie("MoodleSession", c.sessionToken)
	}
	req.SetBody(payload)

	d := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		d = ctxDeadline
	}
	if err := c.client.DoDeadline(req, resp, d); err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	var responses []ajaxResponse
	if err := sonic.Unmarshal(resp.Body(), &responses); err != nil {
		return fmt.Errorf("failed to decode response of %s (status %d): %w", method, resp.StatusCode(), err)
	}
	if len(responses) == 0 {
		return fmt.Errorf("empty response from %s", method)
	}

	response := responses[0]
	if response.Error {
		if response.Exception == nil {
			return &RemoteError{Message: "unknown error", ErrorCode: "generalexceptionmessage"}
		}
		return &RemoteError{Message: response.Exception.Message, ErrorCode: response.Exception.ErrorCode}
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(response.Data, out); err != nil {
		return fmt.Errorf("failed to decode data of %s: %w", method, err)
	}
	return nil
}

// FetchGatewayInfo asks the server which currencies it supports and which
// components grant wallet credit.
func FetchGatewayInfo(ctx context.Context, caller Caller) (*external.GatewayInfo, error) {
	var info external.GatewayInfo
	if err := caller.Call(ctx, external.GatewayInfoFunction, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
