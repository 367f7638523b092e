package middleware

import (
	"context"
	"net/http"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
	"github.com/Shubham-7300/Portfolio-Backend/internal/models"
	"github.com/Shubham-7300/Portfolio-Backend/internal/services"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFinder is the slice of the credential store the gate needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string, withPassword bool) (*models.User, error)
}

// Authenticator guards routes that require a logged-in user. It resolves the
// session cookie to a user record and attaches it to the request context, or
// rejects the request before the handler runs.
type Authenticator struct {
	Tokens *services.TokenService
	Users  UserFinder
}

func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(services.SessionCookieName)
		if err != nil || cookie.Value == "" {
			apperr.WriteError(w, apperr.New(apperr.KindUnauthenticated, "Authentication failed! Token not found."))
			return
		}

		userID, err := a.Tokens.Verify(cookie.Value)
		if err != nil {
			apperr.WriteError(w, err)
			return
		}

		user, err := a.Users.FindByID(r.Context(), userID, false)
		if err != nil {
			apperr.WriteError(w, apperr.Wrap(apperr.KindInternal, "Authentication error! Please try again later.", err))
			return
		}
		if user == nil {
			// Token was valid but the account is gone.
			apperr.WriteError(w, apperr.New(apperr.KindUserNotFound, "User not found! Authentication failed."))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// UserFromContext returns the user the gate attached, or nil on ungated routes.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
