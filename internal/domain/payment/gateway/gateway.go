package gateway

import (
	"context"
	"net/http"
	"time"
)

const (
	ProviderMomo    = "momo"
	ProviderZaloPay = "zalopay"
)

// CreateResult is what a provider hands back when a payment is created.
type CreateResult struct {
	// OrderPaymentID is the provider-side transaction id. It is stored on the
	// order so the asynchronous callback can be matched back.
	OrderPaymentID string
	PayURL         string
}

// CallbackResult is the verified outcome of a provider callback.
type CallbackResult struct {
	OrderPaymentID string
	Success        bool
}

// Gateway abstracts a payment provider. Implementations must verify the
// callback signature before reporting anything about the payload.
type Gateway interface {
	Name() string
	CreatePayment(ctx context.Context, orderID string, amount int64, orderInfo string) (*CreateResult, error)
	VerifyCallback(body []byte) (*CallbackResult, error)
	QueryStatus(ctx context.Context, orderPaymentID string) (map[string]interface{}, error)
}

// httpClient is shared by the providers. Provider endpoints occasionally
// stall; the timeout keeps checkout from hanging on them.
var httpClient = &http.Client{Timeout: 30 * time.Second}
