package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace_api/internal/pkg/config"
	"marketplace_api/pkg/apperrors"
)

type momoGateway struct {
	cfg config.MomoConfig

	// ipnURL is where the provider posts the payment result.
	ipnURL string
}

func NewMomoGateway(cfg config.MomoConfig, serverSite string) Gateway {
	return &momoGateway{
		cfg:    cfg,
		ipnURL: serverSite + "/api/v1/payments/momo/callback",
	}
}

func (g *momoGateway) Name() string { return ProviderMomo }

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IpnURL      string `json:"ipnUrl"`
	Lang        string `json:"lang"`
	RequestType string `json:"requestType"`
	AutoCapture bool   `json:"autoCapture"`
	ExtraData   string `json:"extraData"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
	OrderID    string `json:"orderId"`
}

// momoCallback is the IPN body. Field order does not matter for JSON but the
// signature string below is position sensitive.
type momoCallback struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

func (g *momoGateway) CreatePayment(ctx context.Context, orderID string, amount int64, orderInfo string) (*CreateResult, error) {
	now := time.Now().UnixMilli()
	requestID := fmt.Sprintf("%s%d", g.cfg.PartnerCode, now)
	paymentOrderID := fmt.Sprintf("%s%d", g.cfg.PartnerCode, now)

	// The internal order id rides along in extraData so the callback can be
	// matched without a provider-side lookup.
	extraData := base64.StdEncoding.EncodeToString([]byte(orderID))

	rawSignature := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		g.cfg.AccessKey, amount, extraData, g.ipnURL, paymentOrderID, orderInfo,
		g.cfg.PartnerCode, g.cfg.RedirectURL, requestID, g.cfg.RequestType)

	payload := momoCreateRequest{
		PartnerCode: g.cfg.PartnerCode,
		RequestID:   requestID,
		Amount:      amount,
		OrderID:     paymentOrderID,
		OrderInfo:   orderInfo,
		RedirectURL: g.cfg.RedirectURL,
		IpnURL:      g.ipnURL,
		Lang:        g.cfg.Language,
		RequestType: g.cfg.RequestType,
		AutoCapture: g.cfg.AutoCapture,
		ExtraData:   extraData,
		Signature:   signHex(rawSignature, g.cfg.SecretKey),
	}

	var resp momoCreateResponse
	if err := g.post(ctx, g.cfg.Endpoint, payload, &resp); err != nil {
		return nil, err
	}
	if resp.ResultCode != 0 {
		return nil, apperrors.NotAcceptable(fmt.Sprintf("Momo refused the payment: %s", resp.Message))
	}

	return &CreateResult{OrderPaymentID: paymentOrderID, PayURL: resp.PayURL}, nil
}

func (g *momoGateway) VerifyCallback(body []byte) (*CallbackResult, error) {
	var cb momoCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, apperrors.BadRequest("Malformed callback payload")
	}

	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		g.cfg.AccessKey, cb.Amount, cb.ExtraData, cb.Message, cb.OrderID, cb.OrderInfo,
		cb.OrderType, cb.PartnerCode, cb.PayType, cb.RequestID, cb.ResponseTime,
		cb.ResultCode, cb.TransID)

	expected := signHex(raw, g.cfg.SecretKey)
	if !hmac.Equal([]byte(expected), []byte(cb.Signature)) {
		return nil, apperrors.Forbidden("Invalid callback signature")
	}

	return &CallbackResult{
		OrderPaymentID: cb.OrderID,
		Success:        cb.ResultCode == 0,
	}, nil
}

func (g *momoGateway) QueryStatus(ctx context.Context, orderPaymentID string) (map[string]interface{}, error) {
	requestID := fmt.Sprintf("%s%d", g.cfg.PartnerCode, time.Now().UnixMilli())

	raw := fmt.Sprintf("accessKey=%s&orderId=%s&partnerCode=%s&requestId=%s",
		g.cfg.AccessKey, orderPaymentID, g.cfg.PartnerCode, requestID)

	payload := map[string]interface{}{
		"partnerCode": g.cfg.PartnerCode,
		"requestId":   requestID,
		"orderId":     orderPaymentID,
		"lang":        g.cfg.Language,
		"signature":   signHex(raw, g.cfg.SecretKey),
	}

	var result map[string]interface{}
	if err := g.post(ctx, g.cfg.QueryURL, payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *momoGateway) post(ctx context.Context, url string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("momo request: %w", err)
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func signHex(data, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
