package usermanager

import (
	"context"
	"io"
)

// User represents an individual user account on the system.
type User struct {
	Username string // user login name
	UID      int    // user ID
	GID      int    // group ID
	Comment  string // user full name or comment
	HomeDir  string // user home directory
	Shell    string // user's shell
}

// UserManager encompasses operations related to user management.
type UserManager interface {
	// Fetches the details of a user based on username
	GetUser(ctx context.Context, username string) (User, error)

	// Reports whether an account with exactly this name exists
	Exists(ctx context.Context, username string) bool

	// Returns the login name of the session running the commands
	CurrentUser(ctx context.Context) (string, error)

	// Adds a new user with a home directory and login shell
	Create(ctx context.Context, username string) error

	// Deletes a user together with home directory and mail spool
	Delete(ctx context.Context, username string) error

	// Writes the raw account directory listing to w
	List(ctx context.Context, w io.Writer) error

	// Lists all users
	ListUsers(ctx context.Context) ([]User, error)
}
