package notify

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_Notify(t *testing.T) {
	var got Request
	srv := httptest.NewServer(NewHandler(senderFunc(func(_ context.Context, req Request) error {
		got = req
		return nil
	}), zap.NewNop()))
	defer srv.Close()

	err := NewClient(srv.URL+"/").Notify(context.Background(), Request{UserID: "user-2", Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, Request{UserID: "user-2", Title: "Hi"}, got)
}

func TestClient_Notify_RelayError(t *testing.T) {
	srv := httptest.NewServer(NewHandler(senderFunc(func(context.Context, Request) error {
		return errors.New("failed to send email: resend API error: status 500")
	}), zap.NewNop()))
	defer srv.Close()

	err := NewClient(srv.URL).Notify(context.Background(), Request{UserID: "user-2", Title: "Hi"})
	assert.EqualError(t, err, "relay: failed to send email: resend API error: status 500")
}

func TestClient_Notify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	err := NewClient(url).Notify(context.Background(), Request{UserID: "user-2", Title: "Hi"})
	assert.ErrorContains(t, err, "send notification")
}

func TestNop_Notify(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Notify(context.Background(), Request{}))
}
