package auth

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/UShishir5355t/real-estate-mvp/utils"
)

// Gateway holds one signed-in session and tells subscribers when it changes.
// Safe for concurrent use.
type Gateway struct {
	provider IdentityProvider

	mu        sync.RWMutex
	session   *Session
	nextID    int
	listeners map[int]func(*User)
}

func NewGateway(provider IdentityProvider) *Gateway {
	return &Gateway{
		provider:  provider,
		listeners: map[int]func(*User){},
	}
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*User, error) {
	session, err := SignIn(ctx, g.provider, email, password)
	if err != nil {
		utils.Logger.WithFields(logrus.Fields{
			"email": email,
			"code":  err.(*Error).Code,
		}).Warn("sign-in failed")
		return nil, err
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	user := session.User
	g.notify(&user)
	return &user, nil
}

// Logout signs out of the provider. The local session is kept if the
// provider call fails.
func (g *Gateway) Logout(ctx context.Context) error {
	g.mu.RLock()
	session := g.session
	g.mu.RUnlock()
	if session == nil {
		return nil
	}

	if err := g.provider.SignOut(ctx, session); err != nil {
		return err
	}

	g.mu.Lock()
	if g.session == session {
		g.session = nil
	}
	g.mu.Unlock()

	g.notify(nil)
	return nil
}

func (g *Gateway) CurrentUser() *User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return nil
	}
	user := g.session.User
	return &user
}

func (g *Gateway) IsAuthenticated() bool {
	return g.CurrentUser() != nil
}

// IDToken returns the provider token of the current session.
func (g *Gateway) IDToken(ctx context.Context) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session == nil {
		return "", ErrNotAuthenticated
	}
	if !g.session.ExpiresAt.IsZero() && time.Now().After(g.session.ExpiresAt) {
		return "", ErrNotAuthenticated
	}
	return g.session.IDToken, nil
}

// OnAuthStateChange calls cb right away with the current user (nil when
// signed out) and again after every login and logout. The returned func
// removes the subscription; calling it more than once is a no-op.
func (g *Gateway) OnAuthStateChange(cb func(*User)) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = cb
	var current *User
	if g.session != nil {
		user := g.session.User
		current = &user
	}
	g.mu.Unlock()

	cb(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.listeners, id)
			g.mu.Unlock()
		})
	}
}

func (g *Gateway) notify(user *User) {
	g.mu.RLock()
	listeners := make([]func(*User), 0, len(g.listeners))
	for _, cb := range g.listeners {
		listeners = append(listeners, cb)
	}
	g.mu.RUnlock()

	for _, cb := range listeners {
		if user == nil {
			cb(nil)
			continue
		}
		u := *user
		cb(&u)
	}
}
