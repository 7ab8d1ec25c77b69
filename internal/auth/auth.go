// Package auth manages the session token BugSquash uses against the hosted
// backend and signs the user out. Authentication itself is delegated to the
// backend; this package only finds, forgets, and revokes the token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// TokenEnvVar is the environment variable consulted when no session file exists.
const TokenEnvVar = "BUGSQUASH_ACCESS_TOKEN"

// ErrNoToken indicates that no provider could supply a session token.
var ErrNoToken = errors.New("no session token available")

// TokenProvider defines the interface for obtaining a session access token.
type TokenProvider interface {
	GetToken() (string, error)
}

// FileProvider reads the token from a session file written at sign-in.
type FileProvider struct {
	Path string
}

// DefaultSessionPath returns the session file location in the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "bugsquash", "session"), nil
}

// GetToken returns the trimmed contents of the session file.
func (f *FileProvider) GetToken() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: no session file at %s", ErrNoToken, f.Path)
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: session file %s is empty", ErrNoToken, f.Path)
	}
	return token, nil
}

// Save writes token to the session file, creating its directory.
func (f *FileProvider) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (f *FileProvider) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// EnvProvider obtains tokens from the BUGSQUASH_ACCESS_TOKEN environment variable.
type EnvProvider struct{}

// GetToken reads the BUGSQUASH_ACCESS_TOKEN environment variable.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return "", fmt.Errorf("%w: %s environment variable not set or empty", ErrNoToken, TokenEnvVar)
	}
	return token, nil
}

// GetToken tries the session file first, then the environment.
func GetToken() (string, error) {
	path, err := DefaultSessionPath()
	if err != nil {
		return (&EnvProvider{}).GetToken()
	}
	return getToken(&FileProvider{Path: path}, &EnvProvider{})
}

func getToken(providers ...TokenProvider) (string, error) {
	var errs []error
	for _, p := range providers {
		token, err := p.GetToken()
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}

	return "", fmt.Errorf(
		"failed to obtain session token (%w).\n"+
			"Please either:\n"+
			"  1. Sign in to BugSquash so a session file is written, or\n"+
			"  2. Set the %s environment variable with an access token",
		errors.Join(errs...), TokenEnvVar,
	)
}

// SignOut revokes the current session at the backend and forgets it locally.
func SignOut(ctx context.Context, baseURL, apiKey string) error {
	path, err := DefaultSessionPath()
	if err != nil {
		return err
	}
	return signOut(ctx, http.DefaultClient, &FileProvider{Path: path}, baseURL, apiKey)
}

// signOut posts to {baseURL}/auth/v1/logout. The session file is removed even
// when the backend call fails, so the user is never left half signed in.
func signOut(ctx context.Context, client *http.Client, session *FileProvider, baseURL, apiKey string) error {
	token, err := getToken(session, &EnvProvider{})
	if err != nil {
		// Nothing to revoke.
		return session.Clear()
	}

	revokeErr := revoke(ctx, client, baseURL, apiKey, token)
	if err := session.Clear(); err != nil {
		return errors.Join(revokeErr, err)
	}
	return revokeErr
}

func revoke(ctx context.Context, client *http.Client, baseURL, apiKey, token string) error {
	if baseURL == "" {
		return errors.New("supabase URL is not configured")
	}

	url := strings.TrimRight(baseURL, "/") + "/auth/v1/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build sign-out request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sign-out request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sign-out failed: %s", resp.Status)
	}
	return nil
}
