// Package delivery defines the contract for transport servers.
package delivery

import "context"

// Delivery is a transport front end (HTTP today) that serves until its
// context or lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
