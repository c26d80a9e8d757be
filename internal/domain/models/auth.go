package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims issued by the identity provider.
type AuthClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}
