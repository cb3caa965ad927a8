package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/form-builder/internal/server"
)

// AuthService configures the Clerk SDK. Session verification in the auth
// middleware and user lookups in the job handlers both use the key set
// here.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
