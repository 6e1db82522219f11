package models

// User is a login identity used by the authentication collaborator.
// PasswordHash holds an encoded argon2id hash, never the password itself.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Password is only populated on inbound login requests and is never
	// persisted.
	Password string `json:"password,omitempty"`

	// PasswordHash is the stored argon2id encoding of the password.
	PasswordHash string `json:"-"`

	// Role is the role granted to the user at authentication time.
	Role Role `json:"role,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Actor returns the governance identity of the user.
func (u User) Actor() Actor {
	return Actor{ID: u.UserID, Role: u.Role}
}
