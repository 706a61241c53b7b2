package auth

// Session identifies the caller of an operation. It is built once per request
// from the bearer token and handed to every service call that needs it.
type Session struct {
	EmployeeID string `json:"employeeId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

func SessionFromClaims(claims *Claims) Session {
	return Session{EmployeeID: claims.EmployeeID, Email: claims.Email, Role: claims.Role}
}

func (s Session) Can(permission string) bool {
	return HasPermission(s.Role, permission)
}

// IsPrivileged is true for roles that see every employee's records.
func (s Session) IsPrivileged() bool {
	return s.Role == RoleAdmin || s.Role == RoleHR
}

func (s Session) IsManager() bool {
	return s.Role == RoleManager
}
