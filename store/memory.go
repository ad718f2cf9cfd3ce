package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nambikkai-store/models"
)

// NewMemoryStores returns stores backed by process memory. Entities are
// kept in insertion order, so "newest first" listings iterate backwards.
func NewMemoryStores() *Stores {
	return &Stores{
		Products: &memoryProductStore{},
		Carts:    &memoryCartStore{carts: map[primitive.ObjectID]*models.Cart{}},
		Orders:   &memoryOrderStore{},
		Users:    &memoryUserStore{},
		Members:  &memoryAdminMemberStore{},
		Txn:      &memoryTxnRunner{},
	}
}

type memoryProductStore struct {
	mu       sync.RWMutex
	products []*models.Product
}

func cloneProduct(p *models.Product) *models.Product {
	out := *p
	out.Reviews = append([]models.Review(nil), p.Reviews...)
	return &out
}

func (s *memoryProductStore) Insert(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products = append(s.products, cloneProduct(p))
	return nil
}

func (s *memoryProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryProductStore) Find(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Product{}
	for i := len(s.products) - 1; i >= 0; i-- {
		p := s.products[i]
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, *cloneProduct(p))
	}
	return out, nil
}

func (s *memoryProductStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.products {
		if existing.ID == p.ID {
			p.UpdatedAt = time.Now().UTC()
			s.products[i] = cloneProduct(p)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryProductStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

type memoryCartStore struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func cloneCart(c *models.Cart) *models.Cart {
	out := *c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return &out
}

func (s *memoryCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCart(cart), nil
}

func (s *memoryCartStore) Insert(ctx context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.carts[c.UserID] = cloneCart(c)
	return nil
}

func (s *memoryCartStore) Update(ctx context.Context, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.carts[c.UserID]
	if !ok || existing.Version != c.Version {
		return ErrVersionConflict
	}
	c.UpdatedAt = time.Now().UTC()
	c.Version++
	s.carts[c.UserID] = cloneCart(c)
	return nil
}

type memoryOrderStore struct {
	mu     sync.RWMutex
	orders []*models.Order
}

func cloneOrder(o *models.Order) *models.Order {
	out := *o
	out.Items = append([]models.OrderItem(nil), o.Items...)
	return &out
}

func (s *memoryOrderStore) Insert(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, cloneOrder(o))
	return nil
}

func (s *memoryOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, *cloneOrder(s.orders[i]))
		}
	}
	return out, nil
}

func (s *memoryOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, *cloneOrder(s.orders[i]))
	}
	return out, nil
}

func (s *memoryOrderStore) FindRecent(ctx context.Context, limit int64) ([]models.Order, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *memoryOrderStore) Update(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.ID == o.ID {
			existing.Status = o.Status
			existing.PaymentStatus = o.PaymentStatus
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryOrderStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.orders)), nil
}

type memoryUserStore struct {
	mu    sync.RWMutex
	users []*models.User
}

func (s *memoryUserStore) Insert(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	copied := *u
	s.users = append(s.users, &copied)
	return nil
}

func (s *memoryUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) CountByRole(ctx context.Context, role string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memoryAdminMemberStore struct {
	mu      sync.RWMutex
	members []*models.AdminMember
}

func (s *memoryAdminMemberStore) Insert(ctx context.Context, m *models.AdminMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	copied := *m
	s.members = append(s.members, &copied)
	return nil
}

func (s *memoryAdminMemberStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryAdminMemberStore) FindByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.AdminMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.AdminMember{}
	for i := len(s.members) - 1; i >= 0; i-- {
		if s.members[i].AdminID == adminID {
			out = append(out, *s.members[i])
		}
	}
	return out, nil
}

func (s *memoryAdminMemberStore) Update(ctx context.Context, m *models.AdminMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.ID == m.ID {
			existing.Role = m.Role
			existing.Permissions = m.Permissions
			existing.IsActive = m.IsActive
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoryAdminMemberStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.members {
		if m.ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// memoryTxnRunner serializes transactions under one mutex. Rollback is
// not simulated; tests that need failure injection wrap the stores.
type memoryTxnRunner struct {
	mu sync.Mutex
}

func (r *memoryTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(ctx)
}
