package middleware

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/utils"
	"Dishcovery-Backend/pkg/jwt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		IdentityMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		corsOrigins         string
		allowIdentityHeader bool
	}
)

func NewMiddleware() Middleware {
	allowHeader := utils.GetConfig("ALLOW_IDENTITY_HEADER") == "true"
	if allowHeader {
		log.Warnf("ALLOW_IDENTITY_HEADER is on: the unauthenticated %s header is trusted as caller identity", domain.HeaderUserID)
	}
	return &middleware{
		corsOrigins:         utils.GetConfig("CORS_ORIGINS"),
		allowIdentityHeader: allowHeader,
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := m.corsOrigins
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: strings.Join([]string{
			fiber.HeaderOrigin,
			fiber.HeaderContentType,
			fiber.HeaderAccept,
			fiber.HeaderAuthorization,
			domain.HeaderUserID,
		}, ", "),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// IdentityMiddleware resolves the caller from a bearer token, or from the
// X-User-Id header when that is enabled. Requests without either go through
// anonymously; a credential that is present but bad is rejected.
func (m *middleware) IdentityMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := domain.Caller{}

		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
			}
			userID, err := jwtService.GetUserIDByToken(strings.TrimSpace(token))
			if err != nil {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
			}
			caller.UserID = userID
		} else if m.allowIdentityHeader {
			if raw := strings.TrimSpace(c.Get(domain.HeaderUserID)); raw != "" {
				id, err := strconv.ParseUint(raw, 10, 64)
				if err != nil || id == 0 {
					return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrInvalidUserID)
				}
				caller.UserID = uint(id)
			}
		}

		c.Locals(domain.LocalsCaller, caller)
		return c.Next()
	}
}

// CallerFrom returns the identity IdentityMiddleware stored on the request.
func CallerFrom(c *fiber.Ctx) domain.Caller {
	caller, _ := c.Locals(domain.LocalsCaller).(domain.Caller)
	return caller
}
