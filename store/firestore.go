package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"boutiqueapi/models"
)

const (
	colProducts = "products"
	colOrders   = "orders"
	colUsers    = "users"
	colMessages = "messages"
)

// Firestore is the hosted production backend. Firestore's transaction
// primitive already provides the conflict detection the contract requires;
// MaxAttempts(1) turns off the driver's internal retry loop so a conflict
// abort surfaces as ErrConflict and retry policy stays with the caller.
type Firestore struct {
	client *firestore.Client
}

// OpenFirestore connects to the given project.
func OpenFirestore(ctx context.Context, projectID string) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &Firestore{client: client}, nil
}

type fsTx struct {
	f *Firestore
	t *firestore.Transaction
}

func (t *fsTx) GetProduct(id string) (*models.Product, error) {
	snap, err := t.t.Get(t.f.client.Collection(colProducts).Doc(id))
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

func (t *fsTx) PutProduct(p *models.Product) error {
	return t.t.Set(t.f.client.Collection(colProducts).Doc(p.ID), p)
}

func (t *fsTx) CreateOrder(o *models.Order) error {
	return t.t.Create(t.f.client.Collection(colOrders).Doc(o.ID), o)
}

func (f *Firestore) RunTransaction(ctx context.Context, fn func(tx Tx) error) error {
	err := f.client.RunTransaction(ctx, func(ctx context.Context, t *firestore.Transaction) error {
		return fn(&fsTx{f: f, t: t})
	}, firestore.MaxAttempts(1))
	if status.Code(err) == codes.Aborted {
		return ErrConflict
	}
	return err
}

func (f *Firestore) NewID() string {
	return f.client.Collection(colOrders).NewDoc().ID
}

func (f *Firestore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	snap, err := f.client.Collection(colProducts).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := snap.DataTo(&p); err != nil {
		return nil, err
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

func (f *Firestore) PutProduct(ctx context.Context, p *models.Product) error {
	_, err := f.client.Collection(colProducts).Doc(p.ID).Set(ctx, p)
	return err
}

func (f *Firestore) DeleteProduct(ctx context.Context, id string) error {
	ref := f.client.Collection(colProducts).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func (f *Firestore) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := f.client.Collection(colProducts).Query
	if category != "" {
		q = q.Where("category", "==", category)
	}
	it := q.Documents(ctx)
	defer it.Stop()
	var out []models.Product
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var p models.Product
		if err := snap.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = snap.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

func (f *Firestore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	snap, err := f.client.Collection(colOrders).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var o models.Order
	if err := snap.DataTo(&o); err != nil {
		return nil, err
	}
	o.ID = snap.Ref.ID
	return &o, nil
}

func (f *Firestore) PutOrder(ctx context.Context, o *models.Order) error {
	_, err := f.client.Collection(colOrders).Doc(o.ID).Set(ctx, o)
	return err
}

func (f *Firestore) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	q := f.client.Collection(colOrders).OrderBy("createdAt", firestore.Desc)
	if status != "" {
		q = f.client.Collection(colOrders).Where("status", "==", status).OrderBy("createdAt", firestore.Desc)
	}
	it := q.Documents(ctx)
	defer it.Stop()
	var out []models.Order
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var o models.Order
		if err := snap.DataTo(&o); err != nil {
			return nil, err
		}
		o.ID = snap.Ref.ID
		out = append(out, o)
	}
	return out, nil
}

// CreateUser uses the username as the document id, so a duplicate
// registration fails on the store side rather than by check-then-write.
func (f *Firestore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := f.client.Collection(colUsers).Doc(u.Username).Create(ctx, u)
	if status.Code(err) == codes.AlreadyExists {
		return ErrExists
	}
	return err
}

func (f *Firestore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	snap, err := f.client.Collection(colUsers).Doc(username).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return nil, err
	}
	u.ID = snap.Ref.ID
	return &u, nil
}

func (f *Firestore) AddMessage(ctx context.Context, m *models.Message) error {
	_, err := f.client.Collection(colMessages).Doc(m.ID).Create(ctx, m)
	return err
}

func (f *Firestore) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	it := f.client.Collection(colMessages).
		Where("chatId", "==", chatID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer it.Stop()
	var out []models.Message
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var m models.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		m.ID = snap.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

func (f *Firestore) ListChats(ctx context.Context) ([]string, error) {
	it := f.client.Collection(colMessages).Documents(ctx)
	defer it.Stop()
	seen := make(map[string]bool)
	var out []string
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var m models.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, err
		}
		if !seen[m.ChatID] {
			seen[m.ChatID] = true
			out = append(out, m.ChatID)
		}
	}
	return out, nil
}

func (f *Firestore) Ping(ctx context.Context) error {
	it := f.client.Collection(colProducts).Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
