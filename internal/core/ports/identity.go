package ports

import "github.com/myproject/todo-management/internal/core/domain"

// Caller is the request-scoped identity established by the auth middleware.
// It is passed explicitly into every service call that needs authorization;
// there is no process-wide security context.
type Caller struct {
	Username string
	Role     string
}

func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}
