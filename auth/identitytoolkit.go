package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

// Identity Toolkit error reasons and the codes they are reported as.
var identityToolkitCodes = map[string]string{
	"EMAIL_NOT_FOUND":             CodeUserNotFound,
	"INVALID_PASSWORD":            CodeWrongPassword,
	"INVALID_EMAIL":               CodeInvalidEmail,
	"MISSING_EMAIL":               CodeInvalidEmail,
	"USER_DISABLED":               CodeUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": CodeTooManyRequests,
	"INVALID_LOGIN_CREDENTIALS":   CodeInvalidCredential,
}

// IdentityToolkitProvider signs in Firebase email/password accounts through
// the Identity Toolkit REST API. Every Firebase account is a panel admin.
type IdentityToolkitProvider struct {
	svc *identitytoolkit.Service
}

func NewIdentityToolkitProvider(ctx context.Context, apiKey string, opts ...option.ClientOption) (*IdentityToolkitProvider, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &IdentityToolkitProvider{svc: svc}, nil
}

func (p *IdentityToolkitProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := p.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, &ProviderError{Code: identityToolkitCode(err), Err: err}
	}

	session := &Session{
		User: User{
			UID:         resp.LocalId,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
			Role:        models.RoleAdmin,
		},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return session, nil
}

// SignOut has nothing to revoke server side; ID tokens simply expire.
func (p *IdentityToolkitProvider) SignOut(context.Context, *Session) error {
	return nil
}

// identityToolkitCode maps an API failure to an auth code. Anything that
// is not an API error response is treated as a network failure.
func identityToolkitCode(err error) string {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return CodeNetworkFailed
	}
	reason := apiErr.Message
	if i := strings.IndexAny(reason, " :"); i >= 0 {
		reason = reason[:i]
	}
	if code, ok := identityToolkitCodes[reason]; ok {
		return code
	}
	return "auth/" + strings.ToLower(strings.ReplaceAll(reason, "_", "-"))
}
