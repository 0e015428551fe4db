package gateway

import (
	"context"
	"crypto/hmac"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketplace_api/internal/pkg/config"
	"marketplace_api/pkg/apperrors"
)

type zaloPayGateway struct {
	cfg         config.ZaloPayConfig
	callbackURL string
}

func NewZaloPayGateway(cfg config.ZaloPayConfig, serverSite string) Gateway {
	return &zaloPayGateway{
		cfg:         cfg,
		callbackURL: serverSite + "/api/v1/payments/zalopay/callback",
	}
}

func (g *zaloPayGateway) Name() string { return ProviderZaloPay }

type zaloPayCreateResponse struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	OrderURL      string `json:"order_url"`
	ZpTransToken  string `json:"zp_trans_token"`
}

type zaloPayCallbackBody struct {
	Data string `json:"data"`
	Mac  string `json:"mac"`
	Type int    `json:"type"`
}

type zaloPayCallbackData struct {
	AppID      int    `json:"app_id"`
	AppTransID string `json:"app_trans_id"`
	Amount     int64  `json:"amount"`
	EmbedData  string `json:"embed_data"`
}

func (g *zaloPayGateway) CreatePayment(ctx context.Context, orderID string, amount int64, orderInfo string) (*CreateResult, error) {
	now := time.Now()
	// Provider convention: YYMMDD prefix, unique suffix.
	appTransID := fmt.Sprintf("%s_%d", now.Format("060102"), rand.Intn(1000000))
	appTime := now.UnixMilli()

	embedData, _ := json.Marshal(map[string]string{
		"redirecturl": g.cfg.RedirectURL,
		"orderId":     orderID,
	})
	item := "[]"

	// mac covers app_id|app_trans_id|app_user|amount|app_time|embed_data|item
	// with key1.
	raw := fmt.Sprintf("%d|%s|%s|%d|%d|%s|%s",
		g.cfg.AppID, appTransID, g.cfg.AppUser, amount, appTime, embedData, item)

	form := url.Values{}
	form.Set("app_id", strconv.Itoa(g.cfg.AppID))
	form.Set("app_user", g.cfg.AppUser)
	form.Set("app_time", strconv.FormatInt(appTime, 10))
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("app_trans_id", appTransID)
	form.Set("embed_data", string(embedData))
	form.Set("item", item)
	form.Set("description", orderInfo)
	form.Set("callback_url", g.callbackURL)
	form.Set("mac", signHex(raw, g.cfg.Key1))

	var resp zaloPayCreateResponse
	if err := g.postForm(ctx, g.cfg.Endpoint, form, &resp); err != nil {
		return nil, err
	}
	if resp.ReturnCode != 1 {
		return nil, apperrors.NotAcceptable(fmt.Sprintf("ZaloPay refused the payment: %s", resp.ReturnMessage))
	}

	return &CreateResult{OrderPaymentID: appTransID, PayURL: resp.OrderURL}, nil
}

func (g *zaloPayGateway) VerifyCallback(body []byte) (*CallbackResult, error) {
	var cb zaloPayCallbackBody
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, apperrors.BadRequest("Malformed callback payload")
	}

	// The mac is computed with key2 over the raw data string, not the parsed
	// fields.
	expected := signHex(cb.Data, g.cfg.Key2)
	if !hmac.Equal([]byte(expected), []byte(cb.Mac)) {
		return nil, apperrors.Forbidden("Invalid callback signature")
	}

	var data zaloPayCallbackData
	if err := json.Unmarshal([]byte(cb.Data), &data); err != nil {
		return nil, apperrors.BadRequest("Malformed callback data")
	}

	// ZaloPay only calls back on successful payments.
	return &CallbackResult{OrderPaymentID: data.AppTransID, Success: true}, nil
}

func (g *zaloPayGateway) QueryStatus(ctx context.Context, orderPaymentID string) (map[string]interface{}, error) {
	raw := fmt.Sprintf("%d|%s|%s", g.cfg.AppID, orderPaymentID, g.cfg.Key1)

	form := url.Values{}
	form.Set("app_id", strconv.Itoa(g.cfg.AppID))
	form.Set("app_trans_id", orderPaymentID)
	form.Set("mac", signHex(raw, g.cfg.Key1))

	var result map[string]interface{}
	if err := g.postForm(ctx, g.cfg.QueryURL, form, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *zaloPayGateway) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("zalopay request: %w", err)
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
