// Package oauth manages the single OAuth2 credential used to access the character sheet.
//
// The first run uses the authorization code grant, with a human in the loop to approve
// access and hand back the code. The refresh token is then kept in a store.Store and every
// later run mints a fresh access token from it with the refresh token grant.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"golang.org/x/oauth2"

	"github.com/uhppoted/pathfinder-sheets/store"
)

const (
	DefaultExchangeTimeout = 30 * time.Second
	DefaultPromptTimeout   = 5 * time.Minute

	// refresh attempts per Load: the first try plus one automatic retry
	refreshAttempts = 2
)

// Credential is an access token and the refresh token it was derived from.
type Credential struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

// Valid returns true if the access token is set and not expired at now. A zero expiry
// never expires.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.AccessToken == "" {
		return false
	}

	return c.Expiry.IsZero() || now.Before(c.Expiry)
}

// CodeSource is the human in the loop: it presents the authorization URL and blocks until
// the user supplies the authorization code, or ctx is done.
type CodeSource interface {
	Code(ctx context.Context, authURL, state string) (string, error)
}

// CodeSourceFunc adapts a function to a CodeSource.
type CodeSourceFunc func(ctx context.Context, authURL, state string) (string, error)

func (f CodeSourceFunc) Code(ctx context.Context, authURL, state string) (string, error) {
	return f(ctx, authURL, state)
}

// Manager owns the credential lifecycle: authorize, exchange, persist, load and refresh.
type Manager struct {
	config          *oauth2.Config
	store           store.Store
	codes           CodeSource
	log             glog.Logger
	exchangeTimeout time.Duration
	promptTimeout   time.Duration
	storeAccess     bool

	mu    sync.Mutex
	token *oauth2.Token
}

// Option configures a Manager.
type Option func(*Manager)

// WithCodeSource sets the interactive step used by Authorize.
func WithCodeSource(codes CodeSource) Option {
	return func(m *Manager) {
		m.codes = codes
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger glog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.log = logger
		}
	}
}

// WithExchangeTimeout bounds each call to the token endpoint.
func WithExchangeTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.exchangeTimeout = timeout
		}
	}
}

// WithPromptTimeout bounds the wait for the user to supply an authorization code.
func WithPromptTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.promptTimeout = timeout
		}
	}
}

// WithStoreAccessToken also persists the short-lived access token and its expiry.
func WithStoreAccessToken(enabled bool) Option {
	return func(m *Manager) {
		m.storeAccess = enabled
	}
}

// NewManager returns an unauthenticated Manager for the OAuth2 client configuration,
// persisting to kv.
func NewManager(config *oauth2.Config, kv store.Store, options ...Option) (*Manager, error) {
	if config == nil {
		return nil, fmt.Errorf("oauth: client configuration is required")
	}

	if kv == nil {
		return nil, fmt.Errorf("oauth: credential store is required")
	}

	m := Manager{
		config:          config,
		store:           kv,
		log:             glog.Nop(),
		exchangeTimeout: DefaultExchangeTimeout,
		promptTimeout:   DefaultPromptTimeout,
	}

	for _, option := range options {
		option(&m)
	}

	return &m, nil
}

// AuthCodeURL returns the URL the user opens to grant access. Offline access and a forced
// consent prompt ensure the provider issues a refresh token.
func (m *Manager) AuthCodeURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Authorize runs the interactive authorization code flow. It blocks until the CodeSource
// returns a code or the prompt timeout expires, then exchanges the code for tokens.
func (m *Manager) Authorize(ctx context.Context) (*Credential, error) {
	if m.codes == nil {
		return nil, authorizationFailed(fmt.Errorf("no authorization code source configured"))
	}

	state, err := newState()
	if err != nil {
		return nil, authorizationFailed(err)
	}

	url := m.AuthCodeURL(state)

	m.log.Debug("waiting for authorization code", "timeout", m.promptTimeout)

	prompt, cancel := context.WithTimeout(ctx, m.promptTimeout)
	defer cancel()

	code, err := m.codes.Code(prompt, url, state)
	if err != nil {
		if errors.Is(prompt.Err(), context.DeadlineExceeded) {
			return nil, authorizationFailed(fmt.Errorf("timed out waiting for authorization code (%v)", err))
		}

		return nil, authorizationFailed(err)
	}

	return m.Exchange(ctx, code)
}

// Exchange trades an authorization code for an access and refresh token. Network failures
// are returned to the caller and never retried.
func (m *Manager) Exchange(ctx context.Context, code string) (*Credential, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, authorizationFailed(fmt.Errorf("authorization code is required"))
	}

	exchange, cancel := context.WithTimeout(ctx, m.exchangeTimeout)
	defer cancel()

	token, err := m.config.Exchange(exchange, code)
	if err != nil {
		var rejected *oauth2.RetrieveError
		if errors.As(err, &rejected) {
			return nil, authorizationFailed(err)
		}

		return nil, providerUnavailable(err)
	}

	if token.RefreshToken == "" {
		return nil, authorizationFailed(fmt.Errorf("identity provider did not issue a refresh token"))
	}

	m.setToken(token)
	m.log.Info("authorized", "expiry", token.Expiry)

	return fromToken(token), nil
}

// Save writes the credential to the store in a single transaction.
func (m *Manager) Save(ctx context.Context, credential *Credential) error {
	if credential == nil || credential.RefreshToken == "" {
		return ErrNothingToPersist
	}

	err := m.store.Update(ctx, func(tx store.Tx) error {
		if err := tx.Set(store.RefreshToken, credential.RefreshToken); err != nil {
			return err
		}

		if !m.storeAccess || credential.AccessToken == "" {
			for _, k := range []string{store.AccessToken, store.TokenType, store.TokenExpiry} {
				if err := tx.Delete(k); err != nil {
					return err
				}
			}

			return nil
		}

		expiry := ""
		if !credential.Expiry.IsZero() {
			expiry = credential.Expiry.UTC().Format(time.RFC3339)
		}

		if err := tx.Set(store.AccessToken, credential.AccessToken); err != nil {
			return err
		}

		if err := tx.Set(store.TokenType, credential.TokenType); err != nil {
			return err
		}

		return tx.Set(store.TokenExpiry, expiry)
	})

	if err != nil {
		return persistenceFailure(err)
	}

	m.log.Debug("credential saved", "access-token", m.storeAccess)

	return nil
}

// Persist saves the credential currently held in memory.
func (m *Manager) Persist(ctx context.Context) error {
	return m.Save(ctx, m.Credential())
}

// Load reads the refresh token from the store and immediately exchanges it for a fresh
// access token. A transport failure is retried once; a rejection by the provider is not.
// Any failure leaves the Manager unauthenticated.
func (m *Manager) Load(ctx context.Context) (*Credential, error) {
	var refresh string
	var ok bool

	err := m.store.View(ctx, func(tx store.Tx) (err error) {
		refresh, ok, err = tx.Get(store.RefreshToken)
		return
	})

	if err != nil {
		m.setToken(nil)
		return nil, persistenceFailure(err)
	}

	if !ok || strings.TrimSpace(refresh) == "" {
		m.setToken(nil)
		m.log.Info("no stored refresh token")
		return nil, ErrAbsentCredential
	}

	token, err := m.refresh(ctx, refresh)
	if err != nil {
		m.setToken(nil)
		return nil, err
	}

	m.setToken(token)

	if token.RefreshToken != refresh || m.storeAccess {
		if token.RefreshToken != refresh {
			m.log.Info("identity provider rotated the refresh token")
		}

		if err := m.Save(ctx, fromToken(token)); err != nil {
			m.setToken(nil)
			return nil, err
		}
	}

	return fromToken(token), nil
}

// Credential returns a copy of the credential held in memory, or nil if unauthenticated.
func (m *Manager) Credential() *Credential {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil {
		return nil
	}

	return fromToken(m.token)
}

// Authenticated returns true if the Manager holds a credential.
func (m *Manager) Authenticated() bool {
	return m.Credential() != nil
}

// TokenSource returns a token source that refreshes the access token when it expires and
// persists any rotated refresh token. Each refresh is bounded by the exchange timeout.
func (m *Manager) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token == nil {
		return nil, ErrAbsentCredential
	}

	client := &http.Client{Timeout: m.exchangeTimeout}
	if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && c != nil {
		bounded := *c
		bounded.Timeout = m.exchangeTimeout
		client = &bounded
	}

	exchange := context.WithValue(ctx, oauth2.HTTPClient, client)

	return &persistingTokenSource{
		ctx:     ctx,
		manager: m,
		source:  m.config.TokenSource(exchange, token),
		refresh: token.RefreshToken,
	}, nil
}

// Client returns an HTTP client that authenticates every request with the credential.
func (m *Manager) Client(ctx context.Context) (*http.Client, error) {
	ts, err := m.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	return oauth2.NewClient(ctx, ts), nil
}

func (m *Manager) refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	var last error

	for attempt := 1; attempt <= refreshAttempts; attempt++ {
		token, err := m.exchangeRefresh(ctx, refreshToken)
		if err == nil {
			if token.RefreshToken == "" {
				token.RefreshToken = refreshToken
			}

			m.log.Debug("access token refreshed", "attempt", attempt, "expiry", token.Expiry)
			return token, nil
		}

		if rejected(err) {
			m.log.Warn("refresh token rejected", "error", err)
			return nil, invalidCredential(err)
		}

		last = err
		m.log.Warn("refresh attempt failed", "attempt", attempt, "error", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, providerUnavailable(last)
}

func (m *Manager) exchangeRefresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	exchange, cancel := context.WithTimeout(ctx, m.exchangeTimeout)
	defer cancel()

	return m.config.TokenSource(exchange, &oauth2.Token{RefreshToken: refreshToken}).Token()
}

func (m *Manager) setToken(token *oauth2.Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// persistingTokenSource tracks refreshes made by the underlying oauth2 token source.
type persistingTokenSource struct {
	ctx     context.Context
	manager *Manager
	source  oauth2.TokenSource

	mu      sync.Mutex
	refresh string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		if rejected(err) {
			s.manager.setToken(nil)
			return nil, invalidCredential(err)
		}

		return nil, err
	}

	s.manager.setToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.RefreshToken != "" && token.RefreshToken != s.refresh {
		if err := s.manager.Save(s.ctx, fromToken(token)); err != nil {
			return nil, err
		}

		s.refresh = token.RefreshToken
	}

	return token, nil
}

// rejected returns true for token endpoint responses that mean the grant itself is bad,
// as opposed to the provider being unreachable or failing.
func rejected(err error) bool {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return false
	}

	if re.Response != nil && re.Response.StatusCode >= http.StatusInternalServerError {
		return false
	}

	return true
}

func fromToken(token *oauth2.Token) *Credential {
	return &Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
		Expiry:       token.Expiry,
	}
}

func newState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state (%v)", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
