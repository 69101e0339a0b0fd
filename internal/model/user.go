package model

// User is the authenticated student's identity, supplied by the auth
// collaborator through a signed token. It is never persisted here.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Fallback literals attached to a report when no user is present.
const (
	AnonymousName  = "Anonymous"
	AnonymousEmail = "N/A"
)

// DisplayName returns the user's name, or the anonymous fallback when the
// user is nil or has no name.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return AnonymousName
	}
	return u.Name
}

// ContactEmail returns the user's email, or the fallback literal when the
// user is nil or has no email.
func (u *User) ContactEmail() string {
	if u == nil || u.Email == "" {
		return AnonymousEmail
	}
	return u.Email
}
