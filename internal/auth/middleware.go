package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CookieName is the cookie the login endpoint stores the token in.
const CookieName = "jwt_token"

const contextClaims = "vending-auth-claims"

// Middleware aborts requests without a valid token with HTTP 401.
//
// The token is read from the Authorization header as bearer token,
// falling back to the CookieName cookie.
func Middleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Auth")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrTokenInvalid.Error()})
			return
		}

		c.Set(contextClaims, claims)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", ErrTokenInvalid
		}
		return strings.TrimSpace(token), nil
	}

	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie == "" {
		return "", ErrTokenMissing
	}

	return cookie, nil
}

// ClaimsFrom returns the claims of the authenticated request.
func ClaimsFrom(c *gin.Context) (*Claims, error) {
	v, ok := c.Get(contextClaims)
	if !ok {
		return nil, ErrTokenMissing
	}

	claims, ok := v.(*Claims)
	if !ok {
		return nil, errors.New("authentication claims have an unexpected type")
	}

	return claims, nil
}

// UserIDFrom returns the ID of the authenticated user.
func UserIDFrom(c *gin.Context) (uuid.UUID, error) {
	claims, err := ClaimsFrom(c)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID()
}
