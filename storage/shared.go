package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"go-storefront/models"
)

// Persisted keys, shared by the storefront and admin controllers.
const (
	KeyProducts   = "products"
	KeyOrders     = "orders"
	KeySettings   = "settings"
	KeyLastUpdate = "last_update"
	cartKeyPrefix = "cart:"
)

const defaultPollInterval = 3 * time.Second

// Shared is the single source of truth for products, orders and settings.
//
// Reads never fail: absent or unreadable values yield the empty collection or
// the default settings. In strict mode those failures panic instead. Writes
// replace a whole collection and advance the last-update timestamp.
//
// Read-modify-write operations are serialized within one Shared. Separate
// processes writing the same backend are last-write-wins and may assign the
// same id.
type Shared struct {
	kv     KV
	mu     sync.Mutex
	strict bool
	now    func() time.Time
	broker *Broker
}

// Option configures a Shared.
type Option func(*Shared)

// WithStrict makes read failures panic rather than fall back to defaults.
func WithStrict(strict bool) Option {
	return func(s *Shared) { s.strict = strict }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Shared) { s.now = now }
}

// NewShared wraps kv.
func NewShared(kv KV, opts ...Option) *Shared {
	s := &Shared{
		kv:     kv,
		now:    time.Now,
		broker: NewBroker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time from the configured clock.
func (s *Shared) Now() time.Time { return s.now() }

// Subscribe returns a channel receiving each new last-update timestamp
// written through s.
func (s *Shared) Subscribe() (<-chan int64, func()) {
	return s.broker.Subscribe()
}

func (s *Shared) fail(err error) {
	if s.strict {
		panic(err)
	}
	log.Printf("storage: %v", err)
}

// load decodes key into dst and reports whether a usable value was found.
func (s *Shared) load(ctx context.Context, key string, dst any) bool {
	ok, err := s.loadForWrite(ctx, key, dst)
	if err != nil {
		s.fail(err)
		return false
	}
	return ok
}

// loadForWrite is load for read-modify-write operations. A backend error is
// returned so the caller aborts instead of overwriting what it could not read.
// Absent or undecodable values still count as not found.
func (s *Shared) loadForWrite(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.fail(fmt.Errorf("decode %s: %w", key, err))
		return false, nil
	}
	return true, nil
}

func (s *Shared) store(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return err
	}
	return nil
}

// save stores a shared collection and advances the last-update timestamp.
// Once the collection is stored the write has happened, so a failure to
// advance the timestamp is only logged.
func (s *Shared) save(ctx context.Context, key string, v any) error {
	if err := s.store(ctx, key, v); err != nil {
		return err
	}
	s.touch(ctx)
	return nil
}

// touch advances last_update and notifies local subscribers even when the
// backend write of the timestamp fails.
func (s *Shared) touch(ctx context.Context) {
	ts := s.now().UnixMilli()
	prev, err := s.lastUpdate(ctx)
	if err != nil {
		log.Printf("storage: %v", err)
	}
	if ts <= prev {
		ts = prev + 1
	}
	if err := s.kv.Set(ctx, KeyLastUpdate, strconv.FormatInt(ts, 10)); err != nil {
		log.Printf("storage: write %s: %v", KeyLastUpdate, err)
	}
	s.broker.Publish(ts)
}

// LastUpdate returns the last-modified timestamp in Unix milliseconds, or 0
// if nothing was ever written.
func (s *Shared) LastUpdate(ctx context.Context) int64 {
	ts, err := s.lastUpdate(ctx)
	if err != nil {
		s.fail(err)
		return 0
	}
	return ts
}

func (s *Shared) lastUpdate(ctx context.Context) (int64, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLastUpdate)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", KeyLastUpdate, err)
	}
	if !ok {
		return 0, nil
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", KeyLastUpdate, err)
	}
	return ts, nil
}

// HasNewData reports whether anything was written after since.
func (s *Shared) HasNewData(ctx context.Context, since int64) bool {
	return s.LastUpdate(ctx) > since
}

// WaitForChange blocks until the last-update timestamp moves past since. It
// wakes on writes made through s and polls the backend every interval to see
// writes made by other processes. It returns false if ctx ends first.
//
// Polls are not bound to ctx's deadline, so the end of the wait is never
// reported as a backend read failure.
func (s *Shared) WaitForChange(ctx context.Context, since int64, interval time.Duration) (int64, bool) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ch, cancel := s.Subscribe()
	defer cancel()

	poll := context.WithoutCancel(ctx)
	if ts := s.LastUpdate(poll); ts > since {
		return ts, true
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case ts := <-ch:
			if ts > since {
				return ts, true
			}
		case <-ticker.C:
			if ctx.Err() != nil {
				return since, false
			}
			if ts := s.LastUpdate(poll); ts > since {
				return ts, true
			}
		case <-ctx.Done():
			return since, false
		}
	}
}

// Products

func (s *Shared) GetProducts(ctx context.Context) []models.Product {
	var products []models.Product
	if !s.load(ctx, KeyProducts, &products) || products == nil {
		return []models.Product{}
	}
	return products
}

// productsForWrite reads the catalog for a read-modify-write.
func (s *Shared) productsForWrite(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	ok, err := s.loadForWrite(ctx, KeyProducts, &products)
	if err != nil {
		return nil, err
	}
	if !ok || products == nil {
		return []models.Product{}, nil
	}
	return products, nil
}

func (s *Shared) SetProducts(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, KeyProducts, products)
}

// GetProduct looks a product up by id.
func (s *Shared) GetProduct(ctx context.Context, id int) (models.Product, bool) {
	for _, p := range s.GetProducts(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// AddProduct assigns the next id to p and appends it.
func (s *Shared) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.productsForWrite(ctx)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = models.NextProductID(products)
	products = append(products, p)
	if err := s.save(ctx, KeyProducts, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct merges patch into the product with the given id. It reports
// false if there is no such product.
func (s *Shared) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.productsForWrite(ctx)
	if err != nil {
		return false, err
	}
	for i := range products {
		if products[i].ID == id {
			patch.Apply(&products[i])
			return true, s.save(ctx, KeyProducts, products)
		}
	}
	return false, nil
}

// DeleteProduct reports whether a product was removed.
func (s *Shared) DeleteProduct(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.productsForWrite(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return false, nil
	}
	return true, s.save(ctx, KeyProducts, kept)
}

// Orders

func (s *Shared) GetOrders(ctx context.Context) []models.Order {
	var orders []models.Order
	if !s.load(ctx, KeyOrders, &orders) || orders == nil {
		return []models.Order{}
	}
	return orders
}

// ordersForWrite reads the orders for a read-modify-write.
func (s *Shared) ordersForWrite(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	ok, err := s.loadForWrite(ctx, KeyOrders, &orders)
	if err != nil {
		return nil, err
	}
	if !ok || orders == nil {
		return []models.Order{}, nil
	}
	return orders, nil
}

func (s *Shared) SetOrders(ctx context.Context, orders []models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, KeyOrders, orders)
}

// GetOrder looks an order up by id.
func (s *Shared) GetOrder(ctx context.Context, id int) (models.Order, bool) {
	for _, o := range s.GetOrders(ctx) {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// AddOrder assigns id, order number and creation time, defaults the status
// to "new" and appends the order.
func (s *Shared) AddOrder(ctx context.Context, o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.ordersForWrite(ctx)
	if err != nil {
		return models.Order{}, err
	}
	now := s.now()
	o.ID = models.NextOrderID(orders)
	o.OrderNumber = models.OrderNumber(now.Year(), o.ID)
	o.CreatedAt = now
	if o.Status == "" {
		o.Status = models.StatusNew
	}
	orders = append(orders, o)
	if err := s.save(ctx, KeyOrders, orders); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// UpdateOrderStatus overwrites the status of an order. Any status value is
// accepted. It reports false if there is no such order.
func (s *Shared) UpdateOrderStatus(ctx context.Context, id int, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.ordersForWrite(ctx)
	if err != nil {
		return false, err
	}
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			return true, s.save(ctx, KeyOrders, orders)
		}
	}
	return false, nil
}

// DeleteOrder reports whether an order was removed.
func (s *Shared) DeleteOrder(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders, err := s.ordersForWrite(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(orders) {
		return false, nil
	}
	return true, s.save(ctx, KeyOrders, kept)
}

// Settings

// GetSettings returns the stored settings. Fields missing from the stored
// record keep their default values.
func (s *Shared) GetSettings(ctx context.Context) models.Settings {
	settings := models.DefaultSettings()
	if !s.load(ctx, KeySettings, &settings) {
		return models.DefaultSettings()
	}
	return settings
}

func (s *Shared) SetSettings(ctx context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, KeySettings, settings)
}

func (s *Shared) hasKey(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return ok, nil
}

// Carts returns the per-browser cart store backed by the same KV.
func (s *Shared) Carts() *Carts {
	return &Carts{shared: s}
}
