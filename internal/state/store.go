// Package state is the application-state orchestrator: the single in-memory
// source of truth for the running session and the only writer of the
// persistent store. Every mutation the surfaces invoke lives here.
package state

import (
	"errors"
	"log"
	"sync"
	"time"

	"lumina/internal/domain"
	"lumina/internal/localcache"
	"lumina/internal/repos"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotAuthenticated  = errors.New("not authenticated")
)

const (
	cacheKeyCart    = "cart"
	cacheKeySession = "session"

	defaultNotifyTTL    = 5 * time.Second
	defaultPaymentDelay = 2 * time.Second
)

type Options struct {
	NotifyTTL    time.Duration // transient notification lifetime
	PaymentDelay time.Duration // simulated gateway roundtrip
}

// Store holds the authoritative in-memory snapshot. One mutex serializes all
// mutations; in-memory state changes first, the durable write follows, so a
// crash between the two loses at most that one record's durable copy.
type Store struct {
	mu sync.Mutex

	products []domain.Product
	users    []domain.User
	orders   []domain.Order
	coupons  []domain.Coupon

	cart     []domain.CartItem
	user     *domain.User
	cartOpen bool

	notifications []domain.Notification

	notifyTTL    time.Duration
	paymentDelay time.Duration

	db       *sqlx.DB
	prodRepo *repos.ProductRepo
	userRepo *repos.UserRepo
	ordRepo  *repos.OrderRepo
	coupRepo *repos.CouponRepo
	cache    *localcache.Cache
}

func New(db *sqlx.DB, cache *localcache.Cache, opts Options) *Store {
	if opts.NotifyTTL <= 0 {
		opts.NotifyTTL = defaultNotifyTTL
	}
	if opts.PaymentDelay <= 0 {
		opts.PaymentDelay = defaultPaymentDelay
	}
	return &Store{
		notifyTTL:    opts.NotifyTTL,
		paymentDelay: opts.PaymentDelay,
		db:           db,
		prodRepo:     repos.NewProductRepo(db),
		userRepo:     repos.NewUserRepo(db),
		ordRepo:      repos.NewOrderRepo(db),
		coupRepo:     repos.NewCouponRepo(db),
		cache:        cache,
	}
}

// Load runs the startup protocol: seed, load every collection, hydrate the
// cart and the session marker. A failure surfaces one error notification and
// leaves the state empty; the application keeps running.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		log.Printf("[state] load failed: %v", err)
		s.products, s.users, s.orders, s.coupons = nil, nil, nil, nil
		s.cart, s.user = nil, nil
		s.pushNotification(domain.NotifyError, "Failed to load data from database.")
	}
}

func (s *Store) load() error {
	if err := repos.Seed(s.db); err != nil {
		return err
	}

	var err error
	if s.products, err = s.prodRepo.All(); err != nil {
		return err
	}
	if s.users, err = s.userRepo.All(); err != nil {
		return err
	}
	if s.orders, err = s.ordRepo.All(); err != nil {
		return err
	}
	if s.coupons, err = s.coupRepo.All(); err != nil {
		return err
	}

	var cart []domain.CartItem
	if err := s.cache.Get(cacheKeyCart, &cart); err == nil {
		s.cart = cart
	} else if !errors.Is(err, localcache.ErrNoEntry) {
		log.Printf("[state] cart cache unreadable: %v", err)
	}

	// A session marker whose user no longer exists just means logged out.
	var userID string
	if err := s.cache.Get(cacheKeySession, &userID); err == nil {
		for i := range s.users {
			if s.users[i].ID == userID {
				u := s.users[i]
				s.user = &u
				break
			}
		}
	}
	return nil
}

// ---------- Read accessors (copies, so callers cannot bypass mutations) ----------

func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...)
}

func (s *Store) Order(id string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

func (s *Store) UserOrders(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) Coupons() []domain.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Coupon(nil), s.coupons...)
}

func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func isNotFound(err error) bool { return errors.Is(err, repos.ErrNotFound) }

func isConflict(err error) bool { return errors.Is(err, repos.ErrConflict) }
