package verifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehendu098/ghost/wallet/pkg/account"
	"github.com/snehendu098/ghost/wallet/pkg/sign"
	"github.com/snehendu098/ghost/wallet/pkg/verifier"
)

const (
	vectorViewKey = "AViewKey1oUHFc3G2ioQ1w2uPne162XPpWJ3gbWizmrqiSjmpuyaP"
	vectorAddress = "aleo1lakxjm562uz3ekufmtnma56m6k4utmg82tgv55zt4tymn8e9v5fq6gsgun"
)

type testEnv struct {
	handler  http.Handler
	registry *prometheus.Registry
	metrics  *verifier.Metrics
	pk       *account.PrivateKey
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := verifier.NewMetricsWithRegistry(registry)
	srv := verifier.NewServer(verifier.Config{}, nil, metrics)

	pk, err := account.PrivateKeyFromSeed(12345)
	require.NoError(t, err)

	return &testEnv{handler: srv.Handler(), registry: registry, metrics: metrics, pk: pk}
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestVerify(t *testing.T) {
	env := setup(t)
	msg := []byte("hello aleo")
	sig := env.pk.Sign(msg)
	addr := env.pk.Address().String()

	other, err := account.PrivateKeyFromSeed(54321)
	require.NoError(t, err)

	tampered := append([]byte(nil), sig...)
	tampered[40] ^= 0x01

	tests := []struct {
		name  string
		req   verifier.VerifyRequest
		valid bool
	}{
		{"own signature", verifier.VerifyRequest{Address: addr, Message: string(msg), Signature: hexutil.Encode(sig)}, true},
		{"hex message", verifier.VerifyRequest{Address: addr, Message: hexutil.Encode(msg), Encoding: "hex", Signature: hexutil.Encode(sig)}, true},
		{"other message", verifier.VerifyRequest{Address: addr, Message: "hello", Signature: hexutil.Encode(sig)}, false},
		{"other address", verifier.VerifyRequest{Address: other.Address().String(), Message: string(msg), Signature: hexutil.Encode(sig)}, false},
		{"tampered signature", verifier.VerifyRequest{Address: addr, Message: string(msg), Signature: hexutil.Encode(tampered)}, false},
		{"truncated signature", verifier.VerifyRequest{Address: addr, Message: string(msg), Signature: hexutil.Encode(sig[:64])}, false},
		{"unparseable signature", verifier.VerifyRequest{Address: addr, Message: string(msg), Signature: "not-hex"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.post(t, verifier.PathVerify, tt.req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			resp := decode[verifier.VerifyResponse](t, rec)
			assert.Equal(t, tt.valid, resp.Valid)
			_, err := uuid.Parse(resp.RequestID)
			assert.NoError(t, err)
			assert.Equal(t, resp.RequestID, rec.Header().Get("X-Request-ID"))
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.VerifyRequests.WithLabelValues("valid")))
	assert.Equal(t, 5.0, testutil.ToFloat64(env.metrics.VerifyRequests.WithLabelValues("invalid")))
}

func TestVerify_BadRequests(t *testing.T) {
	env := setup(t)
	sig := hexutil.Encode(env.pk.Sign([]byte("m")))

	tests := []struct {
		name      string
		body      any
		errSubstr string
		kind      string
	}{
		{
			name:      "missing address",
			body:      map[string]string{"message": "m", "signature": sig},
			errSubstr: "required",
		},
		{
			name:      "bad address checksum",
			body:      verifier.VerifyRequest{Address: vectorAddress[:len(vectorAddress)-1] + "q", Message: "m", Signature: sig},
			errSubstr: "invalid checksum",
			kind:      "checksum",
		},
		{
			name:      "wrong prefix",
			body:      verifier.VerifyRequest{Address: "btc1" + vectorAddress[4:], Message: "m", Signature: sig},
			errSubstr: "invalid prefix",
			kind:      "prefix",
		},
		{
			name:      "unknown encoding",
			body:      verifier.VerifyRequest{Address: vectorAddress, Message: "m", Encoding: "base64", Signature: sig},
			errSubstr: "oneof",
		},
		{
			name:      "bad hex message",
			body:      verifier.VerifyRequest{Address: vectorAddress, Message: "zz", Encoding: "hex", Signature: sig},
			errSubstr: "invalid hex message",
		},
		{
			name:      "unknown field",
			body:      map[string]string{"address": vectorAddress, "message": "m", "signature": sig, "extra": "x"},
			errSubstr: "unknown field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.post(t, verifier.PathVerify, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[verifier.ErrorResponse](t, rec)
			assert.Contains(t, resp.Error, tt.errSubstr)
			assert.NotEmpty(t, resp.RequestID)
			if tt.kind != "" {
				assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.DecodeErrors.WithLabelValues(tt.kind)))
			}
		})
	}

	assert.Equal(t, float64(len(tests)), testutil.ToFloat64(env.metrics.VerifyRequests.WithLabelValues("bad_request")))
}

func TestVerify_MethodAndBodyLimits(t *testing.T) {
	env := setup(t)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, verifier.PathVerify, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	huge := `{"address":"` + strings.Repeat("a", 70<<10) + `"}`
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, verifier.PathVerify, strings.NewReader(huge)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify_KeepsCallerRequestID(t *testing.T) {
	env := setup(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, verifier.PathDerive, strings.NewReader(`{"view_key":"`+vectorViewKey+`"}`))
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[verifier.DeriveResponse](t, rec).RequestID)
}

func TestDerive(t *testing.T) {
	env := setup(t)

	rec := env.post(t, verifier.PathDerive, verifier.DeriveRequest{ViewKey: vectorViewKey})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, vectorAddress, decode[verifier.DeriveResponse](t, rec).Address)

	rec = env.post(t, verifier.PathDerive, verifier.DeriveRequest{ViewKey: "AViewKey1nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[verifier.ErrorResponse](t, rec)
	assert.Contains(t, resp.Error, "view key")
	assert.NotContains(t, resp.Error, "AViewKey1nope")
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.DecodeErrors.WithLabelValues("length")))

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.DeriveRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.DeriveRequests.WithLabelValues("bad_request")))
}

func TestRecover(t *testing.T) {
	env := setup(t)
	signer := sign.NewAleoSignerFromKey(env.pk)
	sig, err := signer.Sign([]byte("recover me"))
	require.NoError(t, err)

	rec := env.post(t, verifier.PathRecover, verifier.RecoverRequest{Message: "recover me", Signature: sig.String()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, env.pk.Address().String(), decode[verifier.RecoverResponse](t, rec).Address)

	rec = env.post(t, verifier.PathRecover, verifier.RecoverRequest{Message: "other", Signature: sig.String()})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.post(t, verifier.PathRecover, verifier.RecoverRequest{Message: "x", Signature: "0x0102"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsHandler(t *testing.T) {
	env := setup(t)
	env.post(t, verifier.PathDerive, verifier.DeriveRequest{ViewKey: vectorViewKey})

	rec := httptest.NewRecorder()
	verifier.MetricsHandler(env.registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, verifier.PathMetrics, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wallet_derive_requests_total{result="ok"} 1`)
	assert.Contains(t, rec.Body.String(), "wallet_http_request_duration_seconds")
}

func TestHealth(t *testing.T) {
	env := setup(t)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, verifier.PathHealth, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	registry := prometheus.NewRegistry()
	srv := verifier.NewServer(verifier.Config{
		ListenAddr:        "127.0.0.1:0",
		MetricsListenAddr: "127.0.0.1:0",
	}, nil, verifier.NewMetricsWithRegistry(registry))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, registry) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
