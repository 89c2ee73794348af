// Package external declares the functions that clients may call remotely and
// maps their failures onto wire error codes.
package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"francoggm/paygw-wallet/internal/app/auth"
	"francoggm/paygw-wallet/internal/app/payment"
)

type FunctionType string

const (
	TypeRead  FunctionType = "read"
	TypeWrite FunctionType = "write"
)

var (
	ErrUnknownFunction = errors.New("web service is not available")
	ErrNotAjax         = errors.New("function is not available through ajax")
)

type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type Function struct {
	Name          string
	Description   string
	Type          FunctionType
	Ajax          bool
	LoginRequired bool
	Handler       Handler
}

type Registry struct {
	functions map[string]*Function
}

func NewRegistry(functions ...*Function) *Registry {
	r := &Registry{
		functions: make(map[string]*Function),
	}
	for _, fn := range functions {
		r.Register(fn)
	}
	return r
}

func (r *Registry) Register(fn *Function) {
	r.functions[fn.Name] = fn
}

func (r *Registry) Lookup(name string) (*Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Names lists the registered functions in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CallAjax runs a function on behalf of a browser request. Functions not
// flagged for ajax are refused, as are anonymous calls to functions that
// require a login.
func (r *Registry) CallAjax(ctx context.Context, name string, args json.RawMessage) (any, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	if !fn.Ajax {
		return nil, fmt.Errorf("%w: %s", ErrNotAjax, name)
	}
	if fn.LoginRequired && auth.UserIDFromContext(ctx) <= 0 {
		return nil, fmt.Errorf("%w: %w", payment.ErrRequireLogin, auth.ErrNotLoggedIn)
	}

	return fn.Handler(ctx, args)
}

type Exception struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorcode"`
}

// NewException translates a function failure into the error shape returned
// to clients.
func NewException(err error) *Exception {
	switch {
	case errors.Is(err, payment.ErrInvalidParameter):
		return &Exception{Message: err.Error(), ErrorCode: "invalidparameter"}
	case errors.Is(err, payment.ErrRequireLogin),
		errors.Is(err, auth.ErrNotLoggedIn),
		errors.Is(err, auth.ErrGuestAccess):
		return &Exception{Message: err.Error(), ErrorCode: "requireloginerror"}
	case errors.Is(err, ErrUnknownFunction), errors.Is(err, ErrNotAjax):
		return &Exception{Message: err.Error(), ErrorCode: "servicenotavailable"}
	default:
		return &Exception{Message: err.Error(), ErrorCode: "generalexceptionmessage"}
	}
}
