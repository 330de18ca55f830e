package cart

import "context"

// Repository defines all database operations for carts.
type Repository interface {

	// Append one committed entry to a user's cart, creating the cart
	// if none exists.
	Append(ctx context.Context, userID string, entry *Entry) error

	// Read a user's full cart. A user with no cart gets an empty one,
	// not an error.
	Get(ctx context.Context, userID string) ([]Entry, float64, error)

	// Remove one entry by ID.
	Remove(ctx context.Context, userID string, entryID string) error

	// Drop the whole cart.
	Clear(ctx context.Context, userID string) error
}
