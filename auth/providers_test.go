package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/UShishir5355t/real-estate-mvp/auth"
	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/testhelpers"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

func identityToolkitServer(t *testing.T, handler http.HandlerFunc) *auth.IdentityToolkitProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := auth.NewIdentityToolkitProvider(context.Background(), "test-key",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return p
}

func apiError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    400,
			"message": message,
			"errors":  []map[string]string{{"message": message, "domain": "global", "reason": "invalid"}},
		},
	})
}

func TestIdentityToolkitProvider_SignIn(t *testing.T) {
	p := identityToolkitServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "verifyPassword")
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@example.com", body["email"])
		assert.Equal(t, true, body["returnSecureToken"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"localId":      "firebase-uid",
			"email":        "admin@example.com",
			"idToken":      "firebase-id-token",
			"refreshToken": "refresh",
			"expiresIn":    "3600",
		})
	})

	session, err := auth.SignIn(context.Background(), p, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", session.User.UID)
	assert.Equal(t, models.RoleAdmin, session.User.Role)
	assert.Equal(t, "firebase-id-token", session.IDToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestIdentityToolkitProvider_ErrorCodes(t *testing.T) {
	cases := map[string]string{
		"EMAIL_NOT_FOUND":  "No user found with this email address.",
		"INVALID_PASSWORD": "Incorrect password.",
		"USER_DISABLED":    "This user account has been disabled.",
		"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled": "Too many failed login attempts. Please try again later.",
		"INVALID_LOGIN_CREDENTIALS": "Invalid email or password.",
		"OPERATION_NOT_ALLOWED":     auth.DefaultErrorMessage,
	}
	for reason, want := range cases {
		reason, want := reason, want
		t.Run(reason, func(t *testing.T) {
			p := identityToolkitServer(t, func(w http.ResponseWriter, r *http.Request) {
				apiError(w, reason)
			})
			_, err := auth.SignIn(context.Background(), p, "admin@example.com", "pw")
			assert.EqualError(t, err, want)
		})
	}
}

func TestIdentityToolkitProvider_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := auth.NewIdentityToolkitProvider(context.Background(), "test-key",
		option.WithEndpoint(url+"/"),
		option.WithHTTPClient(http.DefaultClient),
	)
	require.NoError(t, err)

	_, err = auth.SignIn(context.Background(), p, "admin@example.com", "pw")
	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.CodeNetworkFailed, authErr.Code)
}

func newLocalProvider(t *testing.T) (*auth.LocalProvider, *testhelpers.UserRepository) {
	t.Helper()
	users := testhelpers.NewUserRepository()
	tokens, err := utils.NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Email: "Admin@Example.com", PasswordHash: hash, Name: "Admin",
	}))
	require.NoError(t, users.Create(context.Background(), &models.User{
		Email: "gone@example.com", PasswordHash: hash, Role: models.RoleUser, Disabled: true,
	}))
	return auth.NewLocalProvider(users, tokens), users
}

func TestLocalProvider(t *testing.T) {
	p, users := newLocalProvider(t)
	ctx := context.Background()

	session, err := auth.SignIn(ctx, p, "admin@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.User.Role)
	assert.NotEmpty(t, session.IDToken)

	codeOf := func(err error) string {
		var authErr *auth.Error
		require.ErrorAs(t, err, &authErr)
		return authErr.Code
	}

	_, err = auth.SignIn(ctx, p, "admin@example.com", "wrong")
	assert.Equal(t, auth.CodeWrongPassword, codeOf(err))
	assert.EqualError(t, err, "Incorrect password.")

	_, err = auth.SignIn(ctx, p, "nobody@example.com", "x")
	assert.Equal(t, auth.CodeUserNotFound, codeOf(err))

	_, err = auth.SignIn(ctx, p, "not-an-email", "x")
	assert.Equal(t, auth.CodeInvalidEmail, codeOf(err))

	_, err = auth.SignIn(ctx, p, "gone@example.com", "correct horse")
	assert.Equal(t, auth.CodeUserDisabled, codeOf(err))

	users.Err = errors.New("server selection timeout")
	_, err = auth.SignIn(ctx, p, "admin@example.com", "correct horse")
	assert.Equal(t, auth.CodeNetworkFailed, codeOf(err))
}
