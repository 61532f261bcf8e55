package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/repositories"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

var validate = validator.New()

// LocalProvider checks bcrypt password hashes stored in the users collection.
// The session token is an application JWT.
type LocalProvider struct {
	users  repositories.UserRepository
	tokens *utils.JWTManager
}

func NewLocalProvider(users repositories.UserRepository, tokens *utils.JWTManager) *LocalProvider {
	return &LocalProvider{users: users, tokens: tokens}
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, &ProviderError{Code: CodeInvalidEmail, Err: err}
	}

	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &ProviderError{Code: CodeUserNotFound, Err: err}
		}
		return nil, &ProviderError{Code: CodeNetworkFailed, Err: err}
	}
	if user.Disabled {
		return nil, &ProviderError{Code: CodeUserDisabled}
	}
	if err := utils.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, &ProviderError{Code: CodeWrongPassword, Err: err}
	}

	role := user.Role
	if role == "" {
		role = models.RoleAdmin
	}
	token, expiresAt, err := p.tokens.Generate(user.ID, user.Email, role)
	if err != nil {
		return nil, err
	}
	return &Session{
		User: User{
			UID:         user.ID,
			Email:       user.Email,
			DisplayName: user.Name,
			Role:        role,
		},
		IDToken:   token,
		ExpiresAt: expiresAt,
	}, nil
}

func (p *LocalProvider) SignOut(context.Context, *Session) error {
	return nil
}
