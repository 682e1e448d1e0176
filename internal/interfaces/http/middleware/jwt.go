package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shcya/backend/internal/infrastructure/auth"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTSubjectKey = "jwt_subject"
	AuthHeaderKey = "Authorization"
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// Roles, when set, must intersect the token's roles
	Roles []string
	// OnError replaces the default 401/403 response
	OnError func(c *gin.Context, err error)
	Logger  *zap.Logger
}

// ErrInsufficientRole is reported when the token lacks every required role
var ErrInsufficientRole = errors.New("insufficient role")

// JWTAuthMiddleware guards back-office routes for staff and admins
func JWTAuthMiddleware(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: jwtService,
		Roles:      []string{auth.RoleStaff, auth.RoleAdmin},
		Logger:     logger,
	})
}

// JWTAuthMiddlewareWithConfig creates JWT authentication middleware with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, err := auth.ExtractBearer(c.GetHeader(AuthHeaderKey))
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			handleAuthError(c, cfg, err)
			return
		}
		if len(cfg.Roles) > 0 && !claims.HasAnyRole(cfg.Roles...) {
			handleAuthError(c, cfg, ErrInsufficientRole)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTSubjectKey, claims.Subject)

		ctx, _ := logger.WithActor(c.Request.Context(), logger.FromContext(c.Request.Context()), actorOf(claims))
		c.Request = c.Request.WithContext(ctx)

		cfg.Logger.Debug("JWT authentication successful",
			zap.String("subject", claims.Subject),
			zap.Strings("roles", claims.Roles),
		)
		c.Next()
	}
}

// RequireRoles rejects requests whose token carries none of roles. It must
// run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleAuthError(c, JWTMiddlewareConfig{Logger: zap.NewNop()}, auth.ErrMissingToken)
			return
		}
		if !claims.HasAnyRole(roles...) {
			handleAuthError(c, JWTMiddlewareConfig{Logger: zap.NewNop()}, ErrInsufficientRole)
			return
		}
		c.Next()
	}
}

// actorOf names the staff member in logs: email when present, else subject
func actorOf(claims *auth.Claims) string {
	if claims.Email != "" {
		return claims.Email
	}
	return claims.Subject
}

func handleAuthError(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		c.Abort()
		return
	}

	cfg.Logger.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)

	status := http.StatusUnauthorized
	code := dto.ErrCodeUnauthorized
	message := "Authentication required"

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Token is not yet valid"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	case errors.Is(err, ErrInsufficientRole):
		status, code, message = http.StatusForbidden, dto.ErrCodeForbidden, "Staff access required"
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTSubject retrieves the token subject from context
func GetJWTSubject(c *gin.Context) string {
	return c.GetString(JWTSubjectKey)
}
