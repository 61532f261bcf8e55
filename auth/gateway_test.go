package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UShishir5355t/real-estate-mvp/auth"
)

type fakeProvider struct {
	signInErr  error
	signOutErr error
	signOuts   int
}

func (p *fakeProvider) SignIn(_ context.Context, email, _ string) (*auth.Session, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return &auth.Session{
		User:      auth.User{UID: "uid-1", Email: email, Role: "admin"},
		IDToken:   "id-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (p *fakeProvider) SignOut(context.Context, *auth.Session) error {
	p.signOuts++
	return p.signOutErr
}

type recorder struct {
	mu    sync.Mutex
	calls []*auth.User
}

func (r *recorder) cb(u *auth.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, u)
}

func TestLogin_MapsProviderCodes(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{auth.CodeUserNotFound, "No user found with this email address."},
		{auth.CodeWrongPassword, "Incorrect password."},
		{auth.CodeInvalidEmail, "Invalid email address."},
		{auth.CodeUserDisabled, "This user account has been disabled."},
		{auth.CodeTooManyRequests, "Too many failed login attempts. Please try again later."},
		{auth.CodeNetworkFailed, "Network error. Please check your connection."},
		{auth.CodeInvalidCredential, "Invalid email or password."},
		{"auth/quota-exceeded", "An error occurred during authentication."},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			g := auth.NewGateway(&fakeProvider{signInErr: &auth.ProviderError{Code: tc.code}})
			_, err := g.Login(context.Background(), "a@example.com", "pw")
			require.Error(t, err)
			assert.EqualError(t, err, tc.want)

			var authErr *auth.Error
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tc.code, authErr.Code)
			assert.False(t, g.IsAuthenticated())
		})
	}
}

func TestLogin_UncodedFailureGetsGenericMessage(t *testing.T) {
	cause := errors.New("boom")
	g := auth.NewGateway(&fakeProvider{signInErr: cause})
	_, err := g.Login(context.Background(), "a@example.com", "pw")
	assert.EqualError(t, err, auth.DefaultErrorMessage)
	assert.ErrorIs(t, err, cause)
}

func TestLoginLogout(t *testing.T) {
	p := &fakeProvider{}
	g := auth.NewGateway(p)
	ctx := context.Background()

	_, err := g.IDToken(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	user, err := g.Login(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.True(t, g.IsAuthenticated())
	assert.Equal(t, "uid-1", g.CurrentUser().UID)

	token, err := g.IDToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "id-token", token)

	require.NoError(t, g.Logout(ctx))
	assert.Nil(t, g.CurrentUser())
	assert.Equal(t, 1, p.signOuts)

	// signing out twice does not reach the provider again
	require.NoError(t, g.Logout(ctx))
	assert.Equal(t, 1, p.signOuts)
}

func TestLogout_ProviderFailureKeepsSession(t *testing.T) {
	p := &fakeProvider{}
	g := auth.NewGateway(p)
	ctx := context.Background()
	_, err := g.Login(ctx, "admin@example.com", "pw")
	require.NoError(t, err)

	p.signOutErr = errors.New("offline")
	assert.Error(t, g.Logout(ctx))
	assert.True(t, g.IsAuthenticated())
}

func TestOnAuthStateChange(t *testing.T) {
	g := auth.NewGateway(&fakeProvider{})
	ctx := context.Background()

	var r recorder
	unsubscribe := g.OnAuthStateChange(r.cb)
	require.Len(t, r.calls, 1)
	assert.Nil(t, r.calls[0], "fires immediately with the signed-out state")

	_, err := g.Login(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	require.Len(t, r.calls, 2)
	assert.Equal(t, "admin@example.com", r.calls[1].Email)

	require.NoError(t, g.Logout(ctx))
	require.Len(t, r.calls, 3)
	assert.Nil(t, r.calls[2])

	unsubscribe()
	unsubscribe()
	_, err = g.Login(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Len(t, r.calls, 3)
}

func TestOnAuthStateChange_SubscribeWhileSignedIn(t *testing.T) {
	g := auth.NewGateway(&fakeProvider{})
	_, err := g.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)

	var r recorder
	defer g.OnAuthStateChange(r.cb)()
	require.Len(t, r.calls, 1)
	require.NotNil(t, r.calls[0])
	assert.Equal(t, "uid-1", r.calls[0].UID)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Incorrect password.", auth.ErrorMessage(auth.CodeWrongPassword))
	assert.Equal(t, auth.DefaultErrorMessage, auth.ErrorMessage(""))
}
