package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, response.ErrInvalidToken)
			return
		}

		if !id.IsAdmin {
			response.HandleError(w, employee.ErrPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeRequired rejects tokens that carry no employee_id claim.
func EmployeeRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, response.ErrInvalidToken)
			return
		}

		if id.EmployeeID == "" {
			response.HandleError(w, response.ErrEmployeeClaimless)
			return
		}

		next.ServeHTTP(w, r)
	})
}
