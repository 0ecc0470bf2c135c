package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/releasegpt/pkg/controller/http"
	"github.com/m-mizutani/releasegpt/pkg/usecase"
	"github.com/m-mizutani/releasegpt/pkg/utils/async"
)

// generateSignature generates HMAC-SHA256 signature for testing
func generateSignature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func releaseEvent(action, repo string) []byte {
	payload, _ := json.Marshal(map[string]any{
		"action":     action,
		"release":    map[string]any{"id": 1, "tag_name": "v2.4.0"},
		"repository": map[string]any{"full_name": repo},
		"sender":     map[string]any{"login": "testuser"},
	})
	return payload
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	env := newTestEnv(t, nil)
	handler := controller.NewWebhookHandler(testSecret, usecase.NewWebhook(env.uc.Project, env.uc.Export, async.New()))

	tests := []struct {
		name           string
		signature      func(payload []byte) string
		wantStatusCode int
	}{
		{
			name:           "Valid signature",
			signature:      func(payload []byte) string { return generateSignature(testSecret, payload) },
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Signature without prefix",
			signature:      func(payload []byte) string { return generateSignature(testSecret, payload)[len("sha256="):] },
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Signature with another secret",
			signature:      func(payload []byte) string { return generateSignature("other", payload) },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Invalid signature",
			signature:      func(payload []byte) string { return "sha256=invalid" },
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "Missing signature",
			signature:      func(payload []byte) string { return "" },
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := releaseEvent("created", "team/other")

			req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-GitHub-Event", "release")
			req.Header.Set("X-GitHub-Delivery", "test-delivery")
			req.Header.Set("X-Hub-Signature-256", tt.signature(payload))

			w := httptest.NewRecorder()
			handler.Handle(w, req)

			gt.Number(t, w.Code).Equal(tt.wantStatusCode)
		})
	}
}

func TestWebhookHandler_EventParsing(t *testing.T) {
	tests := []struct {
		name           string
		eventType      string
		payload        []byte
		wantStatusCode int
		wantPublished  int
	}{
		{
			name:           "Release published for a bound repository",
			eventType:      "release",
			payload:        releaseEvent("published", "team/skyroute-service"),
			wantStatusCode: http.StatusOK,
			wantPublished:  1,
		},
		{
			name:           "Release published for an unbound repository",
			eventType:      "release",
			payload:        releaseEvent("published", "someone/else"),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Release edited",
			eventType:      "release",
			payload:        releaseEvent("edited", "team/skyroute-service"),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Ping",
			eventType:      "ping",
			payload:        []byte(`{"zen":"Design for failure.","hook_id":1}`),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Pull request event is ignored",
			eventType:      "pull_request",
			payload:        []byte(`{"action":"opened","pull_request":{"id":1},"repository":{"full_name":"team/skyroute-service"}}`),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "Malformed payload",
			eventType:      "release",
			payload:        []byte(`{"action":`),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "Release without repository",
			eventType:      "release",
			payload:        []byte(`{"action":"published","release":{"tag_name":"v1"}}`),
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)

			req := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-GitHub-Event", tt.eventType)
			req.Header.Set("X-GitHub-Delivery", "test-delivery")
			req.Header.Set("X-Hub-Signature-256", generateSignature(testSecret, tt.payload))

			w := httptest.NewRecorder()
			env.server.Handler.ServeHTTP(w, req)
			gt.Number(t, w.Code).Equal(tt.wantStatusCode)

			if tt.wantStatusCode == http.StatusOK {
				var response map[string]string
				gt.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				gt.Value(t, response["status"]).Equal("success")
			}

			env.wait(t)
			gt.Number(t, env.publisher.count()).Equal(tt.wantPublished)
		})
	}
}

func TestWebhookHandler_DisabledWithoutSecret(t *testing.T) {
	env := newTestEnv(t, nil, controller.WithWebhookSecret(""))

	w := env.do(t, http.MethodPost, "/hooks/github", `{}`)
	gt.Number(t, w.Code).Equal(http.StatusNotFound)
}

func TestWebhookHandler_Integration(t *testing.T) {
	env := newTestEnv(t, nil)

	ts := httptest.NewServer(env.server.Handler)
	defer ts.Close()

	payload := releaseEvent("released", "team/skyroute-service")

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/hooks/github", bytes.NewReader(payload))
	gt.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "release")
	req.Header.Set("X-GitHub-Delivery", "integration-test")
	req.Header.Set("X-Hub-Signature-256", generateSignature(testSecret, payload))

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	env.wait(t)
	gt.Number(t, env.publisher.count()).Equal(1)
}
