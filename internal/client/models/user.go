// Package models defines the records exchanged with the PromoGPT backend.
package models

// User is the canonical account record returned by the identity endpoints.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
	IsVerified bool   `json:"is_verified,omitempty"`
}

// FullName returns "First Last" with missing parts dropped.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
