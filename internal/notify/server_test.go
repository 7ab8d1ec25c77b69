package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type senderFunc func(ctx context.Context, req Request) error

func (f senderFunc) Send(ctx context.Context, req Request) error { return f(ctx, req) }

func serve(t *testing.T, sender Sender, method, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, SendPath, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(sender, zap.NewNop()).ServeHTTP(rec, req)
	return rec.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestHandler_Success(t *testing.T) {
	var got Request
	sender := senderFunc(func(_ context.Context, req Request) error {
		got = req
		return nil
	})

	resp := serve(t, sender, http.MethodPost,
		`{"userId":"user-2","title":"Hi","content":"there","link":"/issues/issue-1"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"message":"Notification sent successfully"}`, readBody(t, resp))
	assert.Equal(t, Request{UserID: "user-2", Title: "Hi", Content: "there", Link: "/issues/issue-1"}, got)
}

func TestHandler_SenderError(t *testing.T) {
	sender := senderFunc(func(context.Context, Request) error {
		return errors.New("failed to look up recipient: recipient not found: user-9")
	})

	resp := serve(t, sender, http.MethodPost, `{"userId":"user-9","title":"Hi"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"failed to look up recipient: recipient not found: user-9"}`, readBody(t, resp))
}

func TestHandler_BadJSON(t *testing.T) {
	called := false
	sender := senderFunc(func(context.Context, Request) error {
		called = true
		return nil
	})

	resp := serve(t, sender, http.MethodPost, `{not json`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "failed to decode json")
	assert.False(t, called)
}

func TestHandler_Preflight(t *testing.T) {
	resp := serve(t, senderFunc(func(context.Context, Request) error { return nil }), http.MethodOptions, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "apikey")
}

func TestHandler_WrongMethod(t *testing.T) {
	resp := serve(t, senderFunc(func(context.Context, Request) error { return nil }), http.MethodGet, "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
