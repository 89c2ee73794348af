// Package storage keeps the gateway state in Redis: wallet balances, payables,
// payment records, entitlements, sessions, plugin settings and payment events.
package storage

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

const keyPrefix = "paygw_wallet:"

var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConcurrentUpdate    = errors.New("balance changed concurrently, retries exhausted")
)

func key(parts ...any) string {
	k := keyPrefix
	for i, part := range parts {
		if i > 0 {
			k += ":"
		}
		k += fmt.Sprint(part)
	}
	return k
}

func marshal(v any) ([]byte, error) {
	return sonic.ConfigFastest.Marshal(v)
}

func unmarshal(data string, v any) error {
	return sonic.ConfigFastest.UnmarshalFromString(data, v)
}

func itemIDString(id int64) string {
	return strconv.FormatInt(id, 10)
}
