package commands

import (
	"context"
	"log/slog"

	"chatcart/internal/pkg/errs"
	"chatcart/internal/pkg/jwt"
	"chatcart/internal/pkg/password"
)

var ErrInvalidPIN = errs.New("invalid admin pin")

// AuthCommands exchanges the store owner's PIN for an admin token.
type AuthCommands interface {
	Login(ctx context.Context, pin string) (string, error)
}

type authCommandsImpl struct {
	pinHash    string
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewAuthCommands(pinHash string, jwtService *jwt.Service, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		pinHash:    pinHash,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (u *authCommandsImpl) Login(_ context.Context, pin string) (string, error) {
	if err := password.ComparePIN(u.pinHash, pin); err != nil {
		u.logger.Warn("admin login rejected")
		return "", errs.Mark(err, ErrInvalidPIN)
	}

	token, err := u.jwtService.GenerateToken(jwt.RoleAdmin)
	if err != nil {
		return "", errs.Wrap(err, "generate admin token")
	}
	return token, nil
}
