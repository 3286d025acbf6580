package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/okanv/likeledger/internal/ledger"
	"github.com/okanv/likeledger/internal/repositories"
)

// FirebaseAuth verifies Firebase ID tokens directly and mints a signer for
// the ledger address registered against the token's UID. Alternative to
// SignerAuth for clients that skip the local token exchange.
func FirebaseAuth(authClient *auth.Client, accountRepo repositories.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			idToken := tokenParts[1]

			token, err := authClient.VerifyIDToken(context.Background(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			account, err := accountRepo.GetAccountByFirebaseUID(token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No account registered for this Firebase user")
			}

			c.Set(SignerContextKey, ledger.NewSigner(ledger.Address(account.Address)))

			return next(c)
		}
	}
}
