package stripe_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	stripegw "takeout/internal/adapters/out/stripe"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"
)

const webhookSecret = "whsec_test"

type recordedCall struct {
	Path           string
	IdempotencyKey string
	Form           map[string]string
}

type stubAPI struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
	body   string
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	form := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}

	s.mu.Lock()
	s.calls = append(s.calls, recordedCall{
		Path:           r.URL.Path,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		Form:           form,
	})
	status, body := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *stubAPI) lastCall(t *testing.T) recordedCall {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.calls)
	return s.calls[len(s.calls)-1]
}

func newGateway(t *testing.T, api *stubAPI) *stripegw.Gateway {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	gw, err := stripegw.NewGateway(stripegw.Config{
		SecretKey:     "sk_test_123",
		WebhookSecret: webhookSecret,
		Currency:      "cny",
		BaseURL:       srv.URL,
	})
	require.NoError(t, err)
	return gw
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func TestNewGateway_RequiresSecrets(t *testing.T) {
	_, err := stripegw.NewGateway(stripegw.Config{WebhookSecret: webhookSecret})
	require.Error(t, err)

	_, err = stripegw.NewGateway(stripegw.Config{SecretKey: "sk"})
	require.Error(t, err)
}

func TestGateway_CreatePrepay(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      ports.Prepay
		wantErrIs error
	}{
		{
			name:   "open intent yields the client secret",
			status: http.StatusOK,
			body:   `{"id":"pi_1","object":"payment_intent","status":"requires_payment_method","client_secret":"pi_1_secret"}`,
			want:   ports.Prepay{Token: "pi_1_secret", TransactionID: "pi_1"},
		},
		{
			name:      "replayed succeeded intent means already paid",
			status:    http.StatusOK,
			body:      `{"id":"pi_1","object":"payment_intent","status":"succeeded","client_secret":"pi_1_secret"}`,
			wantErrIs: ports.ErrAlreadyPaid,
		},
		{
			name:      "api error is a gateway error",
			status:    http.StatusBadRequest,
			body:      `{"error":{"type":"invalid_request_error","message":"bad amount"}}`,
			wantErrIs: ports.ErrGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{status: tt.status, body: tt.body}
			gw := newGateway(t, api)

			got, err := gw.CreatePrepay(t.Context(), ports.PrepayRequest{
				OrderNumber: "20240101120000000001",
				Amount:      money(t, "27.00"),
				Description: "Takeout order 20240101120000000001",
				PayerID:     "42",
			})

			call := api.lastCall(t)
			assert.Equal(t, "/v1/payment_intents", call.Path)
			assert.Equal(t, "prepay-20240101120000000001", call.IdempotencyKey)
			assert.Equal(t, "2700", call.Form["amount"])
			assert.Equal(t, "cny", call.Form["currency"])
			assert.Equal(t, "20240101120000000001", call.Form["metadata[order_number]"])

			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGateway_Refund(t *testing.T) {
	t.Run("refund is keyed by refund number", func(t *testing.T) {
		api := &stubAPI{status: http.StatusOK, body: `{"id":"re_1","object":"refund","status":"succeeded"}`}
		gw := newGateway(t, api)

		id, err := gw.Refund(t.Context(), ports.RefundRequest{
			TransactionID: "pi_1",
			OrderNumber:   "n1",
			RefundNumber:  "r1",
			Total:         money(t, "25.00"),
			Amount:        money(t, "25.00"),
		})

		require.NoError(t, err)
		assert.Equal(t, "re_1", id)
		call := api.lastCall(t)
		assert.Equal(t, "/v1/refunds", call.Path)
		assert.Equal(t, "refund-r1", call.IdempotencyKey)
		assert.Equal(t, "pi_1", call.Form["payment_intent"])
		assert.Equal(t, "2500", call.Form["amount"])
	})

	t.Run("failed refund is a gateway error", func(t *testing.T) {
		api := &stubAPI{status: http.StatusOK, body: `{"id":"re_2","object":"refund","status":"failed"}`}
		gw := newGateway(t, api)

		_, err := gw.Refund(t.Context(), ports.RefundRequest{
			TransactionID: "pi_1", OrderNumber: "n1", RefundNumber: "r2",
			Total: money(t, "25.00"), Amount: money(t, "25.00"),
		})

		require.ErrorIs(t, err, ports.ErrGateway)
	})

	t.Run("amount above total never reaches the api", func(t *testing.T) {
		api := &stubAPI{status: http.StatusOK}
		gw := newGateway(t, api)

		_, err := gw.Refund(t.Context(), ports.RefundRequest{
			TransactionID: "pi_1", OrderNumber: "n1", RefundNumber: "r3",
			Total: money(t, "10.00"), Amount: money(t, "25.00"),
		})

		require.ErrorIs(t, err, ports.ErrGateway)
		assert.Empty(t, api.calls)
	})
}

func signedEvent(t *testing.T, eventType string, intent map[string]any) ([]byte, string) {
	t.Helper()
	return signedEventAt(t, stripe.APIVersion, eventType, intent)
}

func signedEventAt(t *testing.T, apiVersion, eventType string, intent map[string]any) ([]byte, string) {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":          "evt_1",
		"object":      "event",
		"type":        eventType,
		"api_version": apiVersion,
		"data":        map[string]any{"object": intent},
	})
	require.NoError(t, err)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: webhookSecret})
	return signed.Payload, signed.Header
}

func TestGateway_ParseCapture(t *testing.T) {
	gw := newGateway(t, &stubAPI{status: http.StatusOK})
	intent := map[string]any{
		"id":              "pi_9",
		"object":          "payment_intent",
		"amount_received": 2550,
		"metadata":        map[string]string{"order_number": "n9"},
	}

	t.Run("succeeded intent", func(t *testing.T) {
		payload, header := signedEvent(t, "payment_intent.succeeded", intent)

		got, err := gw.ParseCapture(payload, header)

		require.NoError(t, err)
		assert.Equal(t, "n9", got.OrderNumber)
		assert.Equal(t, "pi_9", got.TransactionID)
		assert.Equal(t, "25.50", got.Amount.String())
	})

	t.Run("event from an older api version", func(t *testing.T) {
		payload, header := signedEventAt(t, "2020-08-27", "payment_intent.succeeded", intent)

		got, err := gw.ParseCapture(payload, header)

		require.NoError(t, err)
		assert.Equal(t, "n9", got.OrderNumber)
		assert.Equal(t, "25.50", got.Amount.String())
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		payload, header := signedEvent(t, "payment_intent.created", intent)

		_, err := gw.ParseCapture(payload, header)

		require.ErrorIs(t, err, ports.ErrEventIgnored)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		payload, _ := signedEvent(t, "payment_intent.succeeded", intent)

		_, err := gw.ParseCapture(payload, fmt.Sprintf("t=%d,v1=deadbeef", 1))

		require.Error(t, err)
		assert.NotErrorIs(t, err, ports.ErrEventIgnored)
	})

	t.Run("intent without order number", func(t *testing.T) {
		payload, header := signedEvent(t, "payment_intent.succeeded", map[string]any{
			"id": "pi_x", "object": "payment_intent", "amount_received": 100,
		})

		_, err := gw.ParseCapture(payload, header)

		require.Error(t, err)
	})
}
