package model

// User is a demo account. Password is only read from fixtures and never serialized.
type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Password string `json:"-" masq:"secret"`
}

// Credentials is a demo login request
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}
