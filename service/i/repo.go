package i

import (
	"context"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts a new user.
	// Returns dmn.ErrUsernameConflict if the username is taken.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns dmn.ErrUserNotFound if there is no such user.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns dmn.ErrUserNotFound if there is no such user.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}

// MazeRepo persists saved mazes.
type MazeRepo interface {
	Save(ctx context.Context, record *dmn.MazeRecord) error

	// ByID returns dmn.ErrMazeNotFound if there is no such maze.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// ByOwner lists the owner's mazes, newest first.
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error)

	// Delete removes a maze. Returns dmn.ErrMazeNotFound if nothing was removed.
	Delete(ctx context.Context, id uuid.UUID) error
}
