package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-ledger/internal/config"
	"github.com/BruksfildServices01/clinic-ledger/internal/domain/access"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware validates the bearer token and loads the user it names.
// The role always comes from the users table, so role changes and deleted
// accounts take effect on tokens that were issued earlier.
func AuthMiddleware(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Respond(c, httperr.ErrUnauthorized("invalid_token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Respond(c, httperr.ErrUnauthorized("invalid_token"))
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			httperr.Respond(c, httperr.ErrUnauthorized("invalid_token"))
			return
		}

		var user models.User
		err = db.WithContext(c.Request.Context()).
			Select("id", "role").
			First(&user, uint(sub)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.ErrUnauthorized("invalid_token"))
			return
		}
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		role, ok := access.ParseRole(user.Role)
		if !ok {
			httperr.Respond(c, httperr.ErrForbidden("invalid_role"))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// CurrentUser returns the authenticated user id and role.
func CurrentUser(c *gin.Context) (uint, access.Role) {
	return c.GetUint(ContextUserID), c.MustGet(ContextUserRole).(access.Role)
}
