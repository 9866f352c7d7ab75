package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session
// token.
const SessionCookie = "catalog_session"

// sessionTTL bounds how long a login stays valid.
const sessionTTL = 24 * time.Hour

type sessionClaims struct {
	Username string       `json:"username"`
	Role     catalog.Role `json:"role"`
	UserID   int64        `json:"uid"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(account catalog.Account) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: account.Username,
		Role:     account.Role,
		UserID:   account.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("server: sign session token: %w", err)
	}
	return signed, nil
}

func (s *Server) parseToken(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("server: unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("server: invalid session token")
	}
	return claims, nil
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

const claimsKey = "session.claims"

// withSession resolves the session cookie, if any, and stashes the claims on
// the request context. Anonymous requests pass through untouched.
func (s *Server) withSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err == nil && raw != "" {
			if claims, err := s.parseToken(raw); err == nil {
				c.Set(claimsKey, claims)
			}
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) (*sessionClaims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*sessionClaims)
	return claims, ok
}

// requireAuth rejects anonymous requests.
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// requireAdmin rejects sessions that are not admins.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if claims.Role != catalog.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func isAdmin(c *gin.Context) bool {
	claims, ok := sessionFrom(c)
	return ok && claims.Role == catalog.RoleAdmin
}
