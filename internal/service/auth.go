package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/webkit/internal/server"
)

// AuthService configures the Clerk SDK. Session verification itself happens
// in middleware.AuthMiddleware.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.Disabled {
		s.Logger.Warn().Msg("authentication disabled, every route is public")
	} else {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}

	return &AuthService{
		server: s,
	}
}

// Enabled reports whether routes are gated by Clerk.
func (a *AuthService) Enabled() bool {
	return !a.server.Config.Auth.Disabled
}
