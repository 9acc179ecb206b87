package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is the authenticated caller of a request.
type Session struct {
	UserID int64
	Email  string
	Role   string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
