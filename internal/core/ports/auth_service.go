package ports

import "context"

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisteredUser is the summary returned after registration. It deliberately
// excludes the id, role and password hash.
type RegisteredUser struct {
	Username string
	Email    string
}

// TokenPair is returned on successful login. Tokens are stateless; nothing is
// stored server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// AuthService defines the credential use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisteredUser, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
}
