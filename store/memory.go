package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"boutiqueapi/models"
)

// Memory is an in-memory Store used in development and tests. Transactions
// use optimistic concurrency: each read records the document's version, and
// commit validates the whole read set under the write lock. A stale read
// aborts the commit with ErrConflict and applies nothing.
type Memory struct {
	mu       sync.RWMutex
	products map[string]models.Product
	versions map[string]uint64 // product id -> version, bumped on every write
	orders   map[string]models.Order
	users    map[string]models.User // keyed by username
	messages []models.Message
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		products: make(map[string]models.Product),
		versions: make(map[string]uint64),
		orders:   make(map[string]models.Order),
		users:    make(map[string]models.User),
	}
}

func cloneProduct(p models.Product) models.Product {
	if p.SizeStock != nil {
		m := make(map[string]int, len(p.SizeStock))
		for k, v := range p.SizeStock {
			m[k] = v
		}
		p.SizeStock = m
	}
	return p
}

type memTx struct {
	s           *Memory
	reads       map[string]uint64
	productPuts map[string]models.Product
	orderPuts   []models.Order
}

func (t *memTx) GetProduct(id string) (*models.Product, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	// Record the version even for a missing document so a concurrent create
	// still conflicts with this transaction.
	t.reads[id] = t.s.versions[id]
	p, ok := t.s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (t *memTx) PutProduct(p *models.Product) error {
	t.productPuts[p.ID] = cloneProduct(*p)
	return nil
}

func (t *memTx) CreateOrder(o *models.Order) error {
	t.orderPuts = append(t.orderPuts, *o)
	return nil
}

// RunTransaction runs fn with buffered writes and commits only if no product
// read by fn has been written in the meantime.
func (s *Memory) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{
		s:           s,
		reads:       make(map[string]uint64),
		productPuts: make(map[string]models.Product),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range tx.reads {
		if s.versions[id] != v {
			return ErrConflict
		}
	}
	for id, p := range tx.productPuts {
		s.products[id] = p
		s.versions[id]++
	}
	for _, o := range tx.orderPuts {
		s.orders[o.ID] = o
	}
	return nil
}

// NewID returns a fresh unique document id.
func (s *Memory) NewID() string {
	return uuid.NewString()
}

func (s *Memory) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

// PutProduct is the unconstrained admin write path: last write wins, but the
// version bump makes any in-flight transaction that read this product abort.
func (s *Memory) PutProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(*p)
	s.versions[p.ID]++
	return nil
}

func (s *Memory) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	s.versions[id]++
	return nil
}

func (s *Memory) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *Memory) PutOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = *o
	return nil
}

func (s *Memory) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return ErrExists
	}
	s.users[u.Username] = *u
	return nil
}

func (s *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *Memory) AddMessage(ctx context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *m)
	return nil
}

func (s *Memory) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) ListChats(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, m := range s.messages {
		if !seen[m.ChatID] {
			seen[m.ChatID] = true
			out = append(out, m.ChatID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Memory) Close() error {
	return nil
}
