package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/qainfo/pkg/controller/http"
)

const testSigningSecret = "test-signing-secret"

// computeSlackSignature computes the Slack signature for testing
func computeSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return "v0=" + hex.EncodeToString(h.Sum(nil))
}

func signatureHeader(signingSecret, timestamp, body string) http.Header {
	header := http.Header{}
	header.Set("X-Slack-Request-Timestamp", timestamp)
	header.Set("X-Slack-Signature", computeSlackSignature(signingSecret, timestamp, body))
	return header
}

// signedRequest builds a request signed with testSigningSecret
func signedRequest(t *testing.T, path, contentType string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", computeSlackSignature(testSigningSecret, timestamp, string(body)))
	return req
}

// Test core signature verification function
func TestVerifySlackSignature(t *testing.T) {
	body := []byte(`{"type":"url_verification","challenge":"test"}`)
	now := strconv.FormatInt(time.Now().Unix(), 10)

	t.Run("valid signature", func(t *testing.T) {
		header := signatureHeader(testSigningSecret, now, string(body))
		gt.NoError(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("invalid signature", func(t *testing.T) {
		header := http.Header{}
		header.Set("X-Slack-Request-Timestamp", now)
		header.Set("X-Slack-Signature", "v0=invalid_signature")
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("missing timestamp", func(t *testing.T) {
		header := signatureHeader(testSigningSecret, "123456", string(body))
		header.Del("X-Slack-Request-Timestamp")
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("missing signature", func(t *testing.T) {
		header := http.Header{}
		header.Set("X-Slack-Request-Timestamp", now)
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("timestamp too old", func(t *testing.T) {
		old := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
		header := signatureHeader(testSigningSecret, old, string(body))
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("invalid timestamp format", func(t *testing.T) {
		header := signatureHeader(testSigningSecret, "not-a-number", string(body))
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := signatureHeader("wrong-secret", now, string(body))
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})

	t.Run("different body", func(t *testing.T) {
		header := signatureHeader(testSigningSecret, now, "different body")
		gt.Error(t, httpctrl.VerifySlackSignature(testSigningSecret, header, body))
	})
}

// Test middleware
func TestSlackSignatureMiddleware(t *testing.T) {
	body := []byte(`{"type":"url_verification","challenge":"test"}`)

	t.Run("calls next handler with restored body", func(t *testing.T) {
		req := signedRequest(t, "/hooks/slack/event", "application/json", body)
		rec := httptest.NewRecorder()

		var receivedBody []byte
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error
			receivedBody, err = io.ReadAll(r.Body)
			gt.NoError(t, err).Required()
			w.WriteHeader(http.StatusOK)
		})

		httpctrl.SlackSignatureMiddleware(testSigningSecret)(next).ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, string(receivedBody)).Equal(string(body))
	})

	t.Run("rejects invalid signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
		req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Unix(), 10))
		req.Header.Set("X-Slack-Signature", "v0=invalid")
		rec := httptest.NewRecorder()

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		httpctrl.SlackSignatureMiddleware(testSigningSecret)(next).ServeHTTP(rec, req)

		gt.Bool(t, nextCalled).False()
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func TestSlackEventHandler_URLVerification(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	body, err := json.Marshal(map[string]any{
		"type":      "url_verification",
		"challenge": "test-challenge-token",
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, signedRequest(t, "/hooks/slack/event", "application/json", body))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("test-challenge-token")
}

func TestSlackEventHandler_CallbackEvent(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	body, err := json.Marshal(map[string]any{
		"token":      "verification-token",
		"team_id":    "T123",
		"api_app_id": "A123",
		"type":       "event_callback",
		"event": map[string]any{
			"type":     "app_mention",
			"user":     "U123",
			"text":     "<@UBOT> hello",
			"ts":       "1234567890.123456",
			"channel":  "C123",
			"event_ts": "1234567890.123456",
		},
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, signedRequest(t, "/hooks/slack/event", "application/json", body))
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	uc.wait(t)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	gt.Array(t, uc.events).Length(1).Required()
	gt.Value(t, uc.events[0].TeamID).Equal("T123")
}

func TestSlackHooks_RequireSignature(t *testing.T) {
	uc := newMockUseCase()
	server := httpctrl.New(httpctrl.WithSlack(uc, testSigningSecret))

	for _, path := range []string{"/hooks/slack/event", "/hooks/slack/command", "/hooks/slack/interaction"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte("text=help")))
			req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(time.Now().Unix(), 10))
			req.Header.Set("X-Slack-Signature", "v0=invalid")
			rec := httptest.NewRecorder()

			server.ServeHTTP(rec, req)
			gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
		})
	}
}

func TestServer_Root(t *testing.T) {
	server := httpctrl.New()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("qainfo is running")
}
