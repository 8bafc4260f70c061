package middleware

import (
	"strings"

	"himpunan-cms/config"
	"himpunan-cms/helper"
	"himpunan-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const contextClaims = "claims"

var httpHelper = helper.NewHTTPHelper()

type Claims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpHelper.SendUnauthorizedError(c, "authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			httpHelper.SendUnauthorizedError(c, "bearer token required")
			c.Abort()
			return
		}

		claims := &Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return cfg.JWTSecret, nil
		})

		if err != nil || !token.Valid {
			httpHelper.SendUnauthorizedError(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(contextClaims, *claims)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", string(claims.Role))

		c.Next()
	}
}

// Caller returns the authenticated claims stored by AuthMiddleware.
func Caller(c *gin.Context) (Claims, bool) {
	v, exists := c.Get(contextClaims)
	if !exists {
		return Claims{}, false
	}

	claims, ok := v.(Claims)
	return claims, ok
}
