package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *FileProvider {
	t.Helper()
	return &FileProvider{Path: filepath.Join(t.TempDir(), "bugsquash", "session")}
}

func TestFileProvider_SaveAndGetToken(t *testing.T) {
	session := newSession(t)
	require.NoError(t, session.Save("jwt-123"))

	token, err := session.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "jwt-123", token)
}

func TestFileProvider_GetToken_Missing(t *testing.T) {
	session := newSession(t)

	token, err := session.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Empty(t, token)
}

func TestFileProvider_GetToken_Empty(t *testing.T) {
	session := newSession(t)
	require.NoError(t, session.Save("   "))

	_, err := session.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileProvider_Clear(t *testing.T) {
	session := newSession(t)
	require.NoError(t, session.Save("jwt-123"))

	require.NoError(t, session.Clear())
	_, err := os.Stat(session.Path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	assert.NoError(t, session.Clear())
}

func TestEnvProvider_GetToken_Success(t *testing.T) {
	t.Setenv(TokenEnvVar, "env-token")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestEnvProvider_GetToken_Missing(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), TokenEnvVar)
}

func TestGetToken_PrefersFile(t *testing.T) {
	t.Setenv(TokenEnvVar, "env-token")
	session := newSession(t)
	require.NoError(t, session.Save("file-token"))

	token, err := getToken(session, &EnvProvider{})
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}

func TestGetToken_FallbackToEnv(t *testing.T) {
	t.Setenv(TokenEnvVar, "env-token")

	token, err := getToken(newSession(t), &EnvProvider{})
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestGetToken_BothFail(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	token, err := getToken(newSession(t), &EnvProvider{})
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Contains(t, err.Error(), "Sign in")
}

func TestSignOut_RevokesAndClears(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	var gotPath, gotAuth, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	session := newSession(t)
	require.NoError(t, session.Save("jwt-123"))

	err := signOut(context.Background(), srv.Client(), session, srv.URL, "anon")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/logout", gotPath)
	assert.Equal(t, "Bearer jwt-123", gotAuth)
	assert.Equal(t, "anon", gotKey)

	_, err = session.GetToken()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSignOut_BackendFailureStillClears(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	session := newSession(t)
	require.NoError(t, session.Save("jwt-123"))

	err := signOut(context.Background(), srv.Client(), session, srv.URL, "anon")
	assert.ErrorContains(t, err, "sign-out failed")

	_, statErr := os.Stat(session.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSignOut_NoSession(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := signOut(context.Background(), srv.Client(), newSession(t), srv.URL, "anon")
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestTokenProvider_Interface(t *testing.T) {
	var _ TokenProvider = &FileProvider{}
	var _ TokenProvider = &EnvProvider{}
}
