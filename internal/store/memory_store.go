package store

import (
	"sort"
	"sync"
	"time"

	"github.com/fjod/go_checkout/internal/clock"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore implements Store with in-memory maps guarded by one mutex.
// Carts that are not touched for the TTL are dropped by a background loop.
type MemoryStore struct {
	mu        sync.RWMutex
	products  map[string]*domain.Product // name -> product
	customers map[string]*domain.Customer
	carts     map[string]*CartSession

	clock    clock.Clock
	cartTTL  time.Duration
	interval time.Duration

	stopCleanup chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

// NewMemoryStore creates the store and starts idle-cart cleanup.
// A non-positive cartTTL disables expiry.
func NewMemoryStore(clk clock.Clock, cartTTL, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		products:    make(map[string]*domain.Product),
		customers:   make(map[string]*domain.Customer),
		carts:       make(map[string]*CartSession),
		clock:       clk,
		cartTTL:     cartTTL,
		interval:    cleanupInterval,
		stopCleanup: make(chan struct{}),
	}

	if cartTTL > 0 && cleanupInterval > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}

	return s
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireCarts()
		case <-s.stopCleanup:
			return
		}
	}
}

// expireCarts drops carts idle longer than the TTL and returns how many were dropped
func (s *MemoryStore) expireCarts() int {
	if s.cartTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	expired := 0
	for id, session := range s.carts {
		if now.Sub(session.touchedAt) > s.cartTTL {
			delete(s.carts, id)
			expired++
		}
	}
	return expired
}

func (s *MemoryStore) AddProduct(p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.Name]; exists {
		return ErrProductExists
	}
	s.products[p.Name] = p
	return nil
}

func (s *MemoryStore) Product(name string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[name]
	if !exists {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *MemoryStore) Products() []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (s *MemoryStore) CreateCustomer(balance decimal.Decimal) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.customers[id] = domain.NewCustomer(balance)
	return id
}

func (s *MemoryStore) CustomerBalance(id string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.customers[id]
	if !exists {
		return decimal.Zero, ErrCustomerNotFound
	}
	return c.Balance(), nil
}

func (s *MemoryStore) CreateCart(cart *service.Cart, output *report.Recorder) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	session := &CartSession{
		ID:        uuid.NewString(),
		Cart:      cart,
		Output:    output,
		CreatedAt: now,
		touchedAt: now,
	}
	s.carts[session.ID] = session
	return session.ID
}

func (s *MemoryStore) WithCart(id string, fn func(*CartSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.carts[id]
	if !exists {
		return ErrCartNotFound
	}
	session.touchedAt = s.clock.Now()

	return fn(session)
}

func (s *MemoryStore) WithCartAndCustomer(cartID, customerID string, fn func(*CartSession, *domain.Customer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.carts[cartID]
	if !exists {
		return ErrCartNotFound
	}
	customer, exists := s.customers[customerID]
	if !exists {
		return ErrCustomerNotFound
	}
	session.touchedAt = s.clock.Now()

	return fn(session, customer)
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCleanup)
	})
	s.wg.Wait()
	return nil
}
