package middleware

import (
	"net/http"

	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireApprover restricts a route to roles that sit in an approval
// chain: department head, vice president or general manager.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverRoleNeeded)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverRoleNeeded)
			return
		}

		u := user.User{Role: user.Role(roleStr)}
		if !u.CanApprove() {
			response.HandleError(w, user.ErrApproverRoleNeeded)
			return
		}

		next.ServeHTTP(w, r)
	})
}
