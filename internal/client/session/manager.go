package session

import (
	"context"
	"sync"

	"github.com/promogpt/promoctl/internal/client/api"
	"github.com/promogpt/promoctl/internal/client/credentials"
	"github.com/promogpt/promoctl/internal/client/models"
	"github.com/promogpt/promoctl/internal/logging"
)

// TokenVerifier resolves a stored token to its canonical user record.
// Satisfied by *Verifier; tests substitute fakes.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// TokenSink receives the session token so outbound requests can carry it.
// Satisfied by *transport.Authorizer.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// Manager is the single owner of session state. Consumers read snapshots
// via Current or Subscribe; nothing outside this package mutates the state.
type Manager struct {
	store    credentials.Store
	verifier TokenVerifier
	api      api.Client
	tokens   TokenSink
	log      logging.Logger

	mu        sync.Mutex
	cur       Session
	gen       uint64 // bumped on logout; in-flight results from older generations are discarded
	inFlight  bool
	listeners map[int]Listener
	nextID    int
}

func NewManager(store credentials.Store, verifier TokenVerifier, apiClient api.Client, tokens TokenSink, log logging.Logger) *Manager {
	return &Manager{
		store:     store,
		verifier:  verifier,
		api:       apiClient,
		tokens:    tokens,
		log:       log,
		cur:       Session{Status: StatusAnonymous},
		listeners: make(map[int]Listener),
	}
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Subscribe registers fn for state transitions and returns a cancel func.
// fn is not called with the current state; read Current first if needed.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Bootstrap restores the session from the credential store. With no stored
// token the session settles to anonymous without any network call. With one,
// exactly one verification call is made: success yields authenticated with
// the canonical user, failure clears the store and settles to anonymous.
// Either outcome is a normal boot, so Bootstrap only returns an error for
// context cancellation.
func (m *Manager) Bootstrap(ctx context.Context) error {
	cred, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "could not read stored credentials", "error", err)
	}
	if cred == nil {
		m.transition(Session{Status: StatusAnonymous})
		return nil
	}

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()
	if !m.transitionIf(gen, Session{Status: StatusVerifying, Token: cred.Token}) {
		return ctx.Err()
	}

	user, err := m.verifier.Verify(ctx, cred.Token)

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if m.stale(gen) {
			m.log.Debug(ctx, "discarding verification result from a superseded session")
			return nil
		}
		m.log.Info(ctx, "stored session rejected, starting anonymous", "error", err)
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.log.Warn(ctx, "could not clear stored credentials", "error", cerr)
		}
		m.transitionIf(gen, Session{Status: StatusAnonymous})
		return nil
	}

	if !m.transitionIf(gen, Session{Status: StatusAuthenticated, Token: cred.Token, User: user}) {
		m.log.Debug(ctx, "discarding verification result from a superseded session")
		return ctx.Err()
	}
	// Refresh the cached record with the canonical one.
	if serr := m.store.Save(ctx, cred.Token, user); serr != nil {
		m.log.Warn(ctx, "could not refresh stored credentials", "error", serr)
	}
	m.log.Info(ctx, "session restored", "email", user.Email)
	return nil
}

// Login exchanges credentials for a token. On failure the session is left
// exactly as it was and the error is surfaced to the caller. Overlapping
// calls get ErrBusy.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, func(ctx context.Context) (*api.AuthResult, error) {
		return m.api.Login(ctx, email, password)
	})
}

// Register creates an account; a successful registration yields the same
// token+user shape and the same transition as a login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	return m.authenticate(ctx, func(ctx context.Context) (*api.AuthResult, error) {
		return m.api.Register(ctx, req)
	})
}

func (m *Manager) authenticate(ctx context.Context, exchange func(context.Context) (*api.AuthResult, error)) error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrBusy
	}
	m.inFlight = true
	gen := m.gen
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	res, err := exchange(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !m.transitionIf(gen, Session{Status: StatusAuthenticated, Token: res.Token, User: res.User}) {
		m.log.Debug(ctx, "discarding authentication result from a superseded attempt")
		return ctx.Err()
	}
	if err := m.store.Save(ctx, res.Token, res.User); err != nil {
		m.log.Warn(ctx, "could not persist credentials", "error", err)
	}
	m.log.Info(ctx, "authenticated", "email", res.User.Email)
	return nil
}

// Logout clears the stored credentials and resets to anonymous. Safe to
// call from any state, any number of times.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.gen++
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "could not clear stored credentials", "error", err)
	}
	m.transition(Session{Status: StatusAnonymous})
	return nil
}

// HandleUnauthorized is wired to the transport's 401 hook. A rejection is
// only meaningful while authenticated: boot-time verification failures are
// handled by Bootstrap itself, and a failed login never had a session to
// lose.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	authenticated := m.cur.Status == StatusAuthenticated
	m.mu.Unlock()
	if !authenticated {
		return
	}

	ctx := context.Background()
	m.log.Info(ctx, "session expired, logging out")
	_ = m.Logout(ctx)
}

// transition unconditionally swaps the state and notifies listeners
// outside the lock.
func (m *Manager) transition(next Session) {
	m.mu.Lock()
	fns := m.swapLocked(next)
	m.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

// transitionIf swaps the state only if no logout has superseded the
// operation that started at gen. The check and the swap happen under one
// lock, so a logout can never land between them and be overwritten.
func (m *Manager) transitionIf(gen uint64, next Session) bool {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return false
	}
	fns := m.swapLocked(next)
	m.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return true
}

// swapLocked installs next and returns the listeners to notify. The token
// sink is updated in the same critical section so sink and state never
// disagree. Caller holds m.mu.
func (m *Manager) swapLocked(next Session) []Listener {
	m.cur = next
	if next.Token != "" {
		m.tokens.SetToken(next.Token)
	} else {
		m.tokens.ClearToken()
	}
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return fns
}

// stale reports whether the generation recorded at the start of an async
// operation has been superseded by a logout.
func (m *Manager) stale(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen != gen
}
