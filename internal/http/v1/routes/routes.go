package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	avatarhandler "github.com/janisto/avatar-service/internal/http/v1/avatar"
	profilehandler "github.com/janisto/avatar-service/internal/http/v1/profile"
	"github.com/janisto/avatar-service/internal/platform/auth"
	"github.com/janisto/avatar-service/internal/service/avatarsession"
	profilesvc "github.com/janisto/avatar-service/internal/service/profile"
)

// Register wires all HTTP routes into the provided API router.
func Register(
	api huma.API,
	verifier auth.Verifier,
	profileService profilesvc.Service,
	sessions *avatarsession.Manager,
	remover avatarhandler.Remover,
) {
	prefix := apiPrefix(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	profilehandler.Register(api, profileService, prefix)
	avatarhandler.Register(api, sessions, remover, prefix)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
