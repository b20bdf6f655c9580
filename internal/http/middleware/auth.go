// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the token annotator: a best-effort decoder that turns
// an optional "Authorization: Bearer <token>" header into a request-scoped
// identity context. It is explicitly not an access-control mechanism — a
// missing, malformed, expired or badly signed token never rejects the
// request; it only downgrades the caller to an anonymous identity. Handlers
// use the identity solely to scope vendor queries by owning user/org.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vendstack/vendor-api/internal/domain"
)

// identityKey is the Gin context key under which the identity context is stored.
const identityKey = "identity"

// TokenUser is the user object embedded in the token payload.
type TokenUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	OrgID *int   `json:"org_id"`
}

// Claims is the JWT claim set carried by API tokens: a nested user object
// plus the registered claims (expiry, issued-at, ...).
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// Authenticate returns the token annotator middleware.
//
// Behavior:
//   - No Authorization header, or one without a Bearer token: the request
//     proceeds with the zero (anonymous) identity.
//   - A Bearer token that verifies against secret (HMAC only): the decoded
//     user id, email, name, role and org id are attached as the identity.
//   - Any verification failure: logged at debug level, request proceeds
//     anonymously. Decoding failure is never a rejection.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := domain.Identity{}

		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			claims, err := parseToken(secret, token)
			if err != nil {
				LoggerFrom(c).Debug().Err(err).Msg("ignoring invalid bearer token")
			} else {
				uid := claims.User.ID
				identity = domain.Identity{
					UserID: &uid,
					OrgID:  claims.User.OrgID,
					Email:  claims.User.Email,
					Name:   claims.User.Name,
					Role:   claims.User.Role,
				}
			}
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity context attached by Authenticate. When
// the annotator did not run (or the value has an unexpected type) it returns
// the anonymous identity, so callers never need a nil check.
func IdentityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{}
}

// bearerToken extracts the credential from an Authorization header value in
// "Bearer <token>" form, returning "" when the header is absent or uses a
// different scheme.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// parseToken verifies tokenStr against secret and returns the claims. Only
// HMAC signing methods are accepted.
func parseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
