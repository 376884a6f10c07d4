package http

import (
	"net/http"

	"github.com/attendhub/attend-backend-go/internal/domain/auth"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// currentUser resolves the authenticated user behind the request. The
// token only proves identity; role and department always come from the
// store so revoked or reassigned users cannot act on stale claims.
func currentUser(r *http.Request, users user.UserRepository) (user.User, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.User{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.User{}, auth.ErrInvalidToken
	}

	u, err := users.GetByID(r.Context(), userID)
	if err != nil {
		return user.User{}, auth.ErrInvalidToken
	}
	if !u.IsActive {
		return user.User{}, auth.ErrUserInactive
	}
	return u, nil
}
