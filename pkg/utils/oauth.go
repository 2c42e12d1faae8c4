package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/duty-roster/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".duty-roster/tokens"
	tokenFilePerms = 0600 // Read/write for owner only
	tokenDirPerms  = 0700 // Read/write/execute for owner only
)

// ScopeSheets grants read/write access to spreadsheets (staff source and roster publishing)
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	if oauthCfg == nil || oauthCfg.Secrets() == nil {
		return nil, errors.New("oauth client config has neither an installed nor a web section")
	}

	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	// Override redirect URI to use our local server
	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// TokenManager obtains OAuth tokens for one environment.
// Tokens are cached in memory, persisted under TokenDir and refreshed when expired.
// Safe for concurrent use; only one browser flow runs at a time.
type TokenManager struct {
	oauthConfig *oauth2.Config
	env         string
	logger      *zap.Logger

	// TokenDir is where tokens are persisted; defaults to ~/.duty-roster/tokens
	TokenDir string

	mu     sync.Mutex
	cached *oauth2.Token
}

// NewTokenManager creates a TokenManager for the given environment
func NewTokenManager(oauthConfig *oauth2.Config, env string, logger *zap.Logger) (*TokenManager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &TokenManager{
		oauthConfig: oauthConfig,
		env:         env,
		logger:      logger,
		TokenDir:    filepath.Join(homeDir, tokenDirName),
	}, nil
}

// Token returns a valid token, running the browser authorization flow if nothing usable is stored
func (m *TokenManager) Token(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil && m.cached.Valid() {
		return m.cached, nil
	}

	fileToken, err := m.LoadToken()
	if err != nil {
		m.logger.Warn("Failed to load stored token", zap.Error(err))
	}

	if fileToken != nil {
		if fileToken.Valid() {
			m.cached = fileToken
			return fileToken, nil
		}

		if fileToken.RefreshToken != "" {
			refreshed, err := m.oauthConfig.TokenSource(ctx, fileToken).Token()
			if err == nil {
				m.logger.Debug("Token refreshed")
				if err := m.SaveToken(refreshed); err != nil {
					m.logger.Warn("Failed to save refreshed token", zap.Error(err))
				}
				m.cached = refreshed
				return refreshed, nil
			}
			m.logger.Info("Stored token could not be refreshed, starting OAuth flow", zap.Error(err))
		}
	}

	authURL := m.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx, fmt.Sprintf(":%d", AuthPort))
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := m.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := m.SaveToken(token); err != nil {
		m.logger.Warn("Failed to save token", zap.Error(err))
	}

	m.cached = token
	return token, nil
}

// Clear drops the in-memory token and deletes the stored one
func (m *TokenManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = nil
	return m.DeleteToken()
}

func (m *TokenManager) tokenPath() string {
	return filepath.Join(m.TokenDir, fmt.Sprintf("token-%s.json", m.env))
}

// LoadToken reads the stored token. Returns nil without error if none is stored.
func (m *TokenManager) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(m.tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// SaveToken persists the token with owner-only permissions
func (m *TokenManager) SaveToken(token *oauth2.Token) error {
	if err := os.MkdirAll(m.TokenDir, tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(m.tokenPath(), data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// DeleteToken removes the stored token if present
func (m *TokenManager) DeleteToken() error {
	if err := os.Remove(m.tokenPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// listenForAuthCallback starts a local HTTP server on addr and waits for the OAuth callback
func listenForAuthCallback(ctx context.Context, addr string) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return serveAuthCallback(ctx, listener)
}

func serveAuthCallback(ctx context.Context, listener net.Listener) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			select {
			case errChan <- fmt.Errorf("no authorization code received"):
			default:
			}
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Authorization Successful</title></head>
<body><h1>Authorization successful!</h1><p>You can close this window and return to the roster tool.</p></body></html>`)

		select {
		case codeChan <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- fmt.Errorf("server error: %w", err):
			default:
			}
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error

	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}

	return code, nil
}
