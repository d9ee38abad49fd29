// Package store is the document store boundary. There are two write paths
// with deliberately different guarantees: RunTransaction is atomic and
// conflict-checked and is the only path allowed to decrement stock; the
// direct methods are plain last-write-wins reads/writes used by the admin
// console, the storefront pages and the chat. Routing a stock decrement
// through the direct path reintroduces oversell risk, so don't.
package store

import (
	"context"
	"errors"

	"boutiqueapi/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("store: document not found")
	// ErrConflict is returned when a transaction is aborted because a
	// concurrent write touched a document it read. The caller may safely
	// retry: every attempt re-reads inside a fresh transaction.
	ErrConflict = errors.New("store: transaction conflict")
	// ErrExists is returned when creating a document that already exists.
	ErrExists = errors.New("store: document already exists")
)

// Tx is the view a transaction body gets. All reads observe a consistent
// snapshot; all writes are buffered and commit together or not at all.
type Tx interface {
	GetProduct(id string) (*models.Product, error)
	PutProduct(p *models.Product) error
	CreateOrder(o *models.Order) error
}

// Store is a document store with multi-document transactions.
type Store interface {
	// RunTransaction runs fn atomically. If fn returns an error nothing is
	// committed. A conflicting concurrent write aborts the whole attempt
	// with ErrConflict.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error

	// NewID returns a fresh unique document id.
	NewID() string

	GetProduct(ctx context.Context, id string) (*models.Product, error)
	PutProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, category string) ([]models.Product, error)

	GetOrder(ctx context.Context, id string) (*models.Order, error)
	PutOrder(ctx context.Context, o *models.Order) error
	ListOrders(ctx context.Context, status string) ([]models.Order, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	AddMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
	ListChats(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
