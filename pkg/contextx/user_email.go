package contextx

import (
	"context"
	"fmt"
	"strings"
)

// UserEmail identifies the authenticated customer. Values are stored
// normalized (trimmed, lower-case).
type UserEmail string

type contextKeyUserEmail struct{}

func NewUserEmail(raw string) UserEmail {
	return UserEmail(strings.ToLower(strings.TrimSpace(raw)))
}

func (u UserEmail) String() string {
	return string(u)
}

func WithUserEmail(ctx context.Context, email UserEmail) context.Context {
	return context.WithValue(ctx, contextKeyUserEmail{}, email)
}

func UserEmailFromContext(ctx context.Context) (UserEmail, error) {
	email, ok := ctx.Value(contextKeyUserEmail{}).(UserEmail)
	if !ok {
		return "", fmt.Errorf("user email: %w", ErrNoValue)
	}

	return email, nil
}
