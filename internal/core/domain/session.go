package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type (
	User struct {
		ID    string
		Name  string
		Email string
		Role  string
	}

	// A Session is the client identity established by the auth flow.
	// The zero value is an anonymous session.
	Session struct {
		User  User
		Token string
		Role  string
	}
)

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
