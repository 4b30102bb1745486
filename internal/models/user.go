package models

// User represents a registered account.
//
// The user key is an opaque string minted at registration; every other
// entity references it by value. The services never look inside it.
type User struct {
	// ID is the unique user key.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`

	IsActive bool `json:"is_active"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`

	// JoinedGroups is the ordered list of group keys the user has
	// joined. Appended on every successful join, so a user who joins
	// the same group twice appears twice.
	JoinedGroups []string `json:"joined_groups"`
}
