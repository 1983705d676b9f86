// Package service holds the operations the handlers call that need more
// than a pure function: third-party keys, outbound HTTP, metrics.
package service

import (
	"github.com/deppfellow/webkit/internal/server"
)

type Services struct {
	Auth     *AuthService
	Download *DownloadService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Auth:     NewAuthService(s),
		Download: NewDownloadService(s),
	}
}
