package testutil

import (
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/comedor/lunch-orders-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer string, scopes []string) *validator.ValidatedClaims {
	scopeString := ""
	for i, scope := range scopes {
		if i > 0 {
			scopeString += " "
		}
		scopeString += scope
	}

	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: scopeString,
		},
	}
}

// MockAuthMiddleware returns a middleware that seeds the Gin context the
// same way the real session gatekeeper does, without validating anything.
func MockAuthMiddleware(auth0ID, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Set("access_token", accessToken)
		c.Set("validated_claims", MockValidatedClaims(auth0ID, "https://testing.example.com/", nil))
		c.Next()
	}
}
