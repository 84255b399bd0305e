package storage

import (
	"context"
	"testing"
	"time"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns the same instant on every call so that timestamp
// monotonicity is exercised by the storage layer itself.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestShared(t *testing.T) *Shared {
	t.Helper()
	return NewShared(NewMemoryKV(), WithStrict(true),
		WithClock(fixedClock(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))))
}

func TestGetOnEmptyStorage(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)

	assert.Equal(t, []models.Product{}, s.GetProducts(ctx))
	assert.Equal(t, []models.Order{}, s.GetOrders(ctx))
	assert.Equal(t, models.DefaultSettings(), s.GetSettings(ctx))
	assert.Equal(t, int64(0), s.LastUpdate(ctx))
}

func TestCorruptValuesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyProducts, "{not json"))
	require.NoError(t, kv.Set(ctx, KeyOrders, `{"id":1}`))
	require.NoError(t, kv.Set(ctx, KeySettings, "[]"))
	require.NoError(t, kv.Set(ctx, KeyLastUpdate, "yesterday"))
	s := NewShared(kv)

	assert.Equal(t, []models.Product{}, s.GetProducts(ctx))
	assert.Equal(t, []models.Order{}, s.GetOrders(ctx))
	assert.Equal(t, models.DefaultSettings(), s.GetSettings(ctx))
	assert.Equal(t, int64(0), s.LastUpdate(ctx))
}

func TestStrictModePanicsOnCorruptValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyProducts, "{not json"))
	s := NewShared(kv, WithStrict(true))

	assert.Panics(t, func() { s.GetProducts(ctx) })
}

func TestAddProductAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)

	var ids []int
	for i := 0; i < 5; i++ {
		p, err := s.AddProduct(ctx, models.Product{Name: "p", ID: 99})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)

	ok, err := s.DeleteProduct(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.DeleteProduct(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)

	p, err := s.AddProduct(ctx, models.Product{Name: "after delete"})
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
}

func TestUpdateProductStockZeroIsNotPurchasable(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)
	p, err := s.AddProduct(ctx, models.Product{Name: "Oud", Price: 95, Stock: 4, Available: true})
	require.NoError(t, err)

	stock := 0
	ok, err := s.UpdateProduct(ctx, p.ID, models.ProductPatch{Stock: &stock})
	require.NoError(t, err)
	require.True(t, ok)

	got, found := s.GetProduct(ctx, p.ID)
	require.True(t, found)
	assert.True(t, got.Available)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.Purchasable())
	assert.Equal(t, "Oud", got.Name)
	assert.Equal(t, 95.0, got.Price)
}

func TestUpdateUnknownProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)
	before := s.LastUpdate(ctx)

	name := "ghost"
	ok, err := s.UpdateProduct(ctx, 42, models.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, s.LastUpdate(ctx))
}

func TestAddOrderFillsGeneratedFields(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)

	first, err := s.AddOrder(ctx, models.Order{Customer: models.Customer{Name: "A", Phone: "1"}})
	require.NoError(t, err)
	second, err := s.AddOrder(ctx, models.Order{Status: models.StatusProcessing})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "ORD-2026-0001", first.OrderNumber)
	assert.Equal(t, models.StatusNew, first.Status)
	assert.Equal(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC), first.CreatedAt)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, models.StatusProcessing, second.Status)
	assert.Len(t, s.GetOrders(ctx), 2)
}

func TestOrderSnapshotSurvivesProductChanges(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)
	p, err := s.AddProduct(ctx, models.Product{Name: "Amber", Price: 95, Stock: 3, Available: true})
	require.NoError(t, err)

	cart, err := models.Cart{}.Add(p)
	require.NoError(t, err)
	order, err := s.AddOrder(ctx, models.NewOrder(models.Customer{Name: "A", Phone: "1"}, "", "", cart, s.GetSettings(ctx)))
	require.NoError(t, err)

	price := 10.0
	_, err = s.UpdateProduct(ctx, p.ID, models.ProductPatch{Price: &price})
	require.NoError(t, err)
	_, err = s.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)

	got, ok := s.GetOrder(ctx, order.ID)
	require.True(t, ok)
	assert.Equal(t, []models.LineItem{{ProductID: p.ID, Name: "Amber", Price: 95, Quantity: 1}}, got.Items)
}

func TestUpdateOrderStatusAcceptsAnyValue(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)
	o, err := s.AddOrder(ctx, models.Order{})
	require.NoError(t, err)

	for _, status := range []string{models.StatusCompleted, models.StatusNew, "on-hold"} {
		ok, err := s.UpdateOrderStatus(ctx, o.ID, status)
		require.NoError(t, err)
		require.True(t, ok)
		got, _ := s.GetOrder(ctx, o.ID)
		assert.Equal(t, status, got.Status)
	}

	ok, err := s.UpdateOrderStatus(ctx, 77, models.StatusCompleted)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteUnknownOrderLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)
	_, err := s.AddOrder(ctx, models.Order{Customer: models.Customer{Name: "A"}})
	require.NoError(t, err)
	_, err = s.AddOrder(ctx, models.Order{Customer: models.Customer{Name: "B"}})
	require.NoError(t, err)
	before := s.GetOrders(ctx)

	ok, err := s.DeleteOrder(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, s.GetOrders(ctx))

	ok, err = s.DeleteOrder(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, s.GetOrders(ctx), 1)
	assert.Equal(t, "B", s.GetOrders(ctx)[0].Customer.Name)
}

func TestHasNewData(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)

	writes := []func() error{
		func() error { return s.SetProducts(ctx, []models.Product{{ID: 1, Name: "a"}}) },
		func() error { return s.SetOrders(ctx, []models.Order{{ID: 1}}) },
		func() error { return s.SetSettings(ctx, models.DefaultSettings()) },
	}
	for _, write := range writes {
		before := s.LastUpdate(ctx)
		require.NoError(t, write())
		after := s.LastUpdate(ctx)

		assert.True(t, s.HasNewData(ctx, before))
		assert.False(t, s.HasNewData(ctx, after))
		assert.Greater(t, after, before)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestShared(t)
	settings := models.Settings{
		StoreName:             "Dar Al Oud",
		Currency:              "AED",
		DeliveryFee:           25.5,
		DeliveryTime:          "same day",
		DeliveryArea:          "Dubai",
		ContactNumber:         "+971 50 000 0000",
		FreeShippingThreshold: 0,
		WelcomeText:           "Hello",
		FooterText:            "Bye",
	}

	require.NoError(t, s.SetSettings(ctx, settings))
	assert.Equal(t, settings, s.GetSettings(ctx))
}

func TestPartialSettingsKeepDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeySettings, `{"currency":"USD"}`))
	s := NewShared(kv, WithStrict(true))

	got := s.GetSettings(ctx)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, models.DefaultSettings().DeliveryFee, got.DeliveryFee)
}

func TestWaitForChangeWakesOnWrite(t *testing.T) {
	ctx := context.Background()
	s := NewShared(NewMemoryKV(), WithStrict(true))
	since := s.LastUpdate(ctx)

	done := make(chan int64, 1)
	go func() {
		ts, _ := s.WaitForChange(ctx, since, time.Hour)
		done <- ts
	}()
	require.Eventually(t, func() bool { return s.broker.Subscribers() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, s.SetOrders(ctx, []models.Order{{ID: 1}}))
	select {
	case ts := <-done:
		assert.Equal(t, s.LastUpdate(ctx), ts)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForChange did not return after write")
	}
}

func TestWaitForChangeSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	reader := NewShared(kv, WithStrict(true))
	writer := NewShared(kv, WithStrict(true))
	since := reader.LastUpdate(ctx)

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = writer.SetProducts(ctx, []models.Product{{ID: 1}})
	}()

	ts, ok := reader.WaitForChange(ctx, since, 5*time.Millisecond)
	assert.True(t, ok)
	assert.Greater(t, ts, since)
}

func TestWaitForChangeTimesOut(t *testing.T) {
	s := NewShared(NewMemoryKV(), WithStrict(true))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ts, ok := s.WaitForChange(ctx, 0, time.Hour)
	assert.False(t, ok)
	assert.Equal(t, int64(0), ts)
	assert.Equal(t, 0, s.broker.Subscribers())
}

func TestWritesAbortWhenCollectionUnreadable(t *testing.T) {
	ctx := context.Background()
	kv := newFaultyKV()
	s := NewShared(kv, WithStrict(true),
		WithClock(fixedClock(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))))
	for i := 0; i < 3; i++ {
		_, err := s.AddOrder(ctx, models.Order{Customer: models.Customer{Name: "Sara"}})
		require.NoError(t, err)
		_, err = s.AddProduct(ctx, models.Product{Name: "Oud"})
		require.NoError(t, err)
	}

	kv.failGet(KeyOrders, 1)
	_, err := s.AddOrder(ctx, models.Order{Customer: models.Customer{Name: "Noura"}})
	assert.ErrorIs(t, err, errConnReset)
	kv.failGet(KeyOrders, 1)
	_, err = s.UpdateOrderStatus(ctx, 1, "done")
	assert.ErrorIs(t, err, errConnReset)
	kv.failGet(KeyOrders, 1)
	_, err = s.DeleteOrder(ctx, 1)
	assert.ErrorIs(t, err, errConnReset)

	kv.failGet(KeyProducts, 1)
	_, err = s.AddProduct(ctx, models.Product{Name: "Musk"})
	assert.ErrorIs(t, err, errConnReset)
	name := "Renamed"
	kv.failGet(KeyProducts, 1)
	_, err = s.UpdateProduct(ctx, 1, models.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, errConnReset)
	kv.failGet(KeyProducts, 1)
	_, err = s.DeleteProduct(ctx, 1)
	assert.ErrorIs(t, err, errConnReset)

	orders := s.GetOrders(ctx)
	require.Len(t, orders, 3)
	assert.Equal(t, models.StatusNew, orders[0].Status)
	products := s.GetProducts(ctx)
	require.Len(t, products, 3)
	assert.Equal(t, "Oud", products[0].Name)

	o, err := s.AddOrder(ctx, models.Order{Customer: models.Customer{Name: "Noura"}})
	require.NoError(t, err)
	assert.Equal(t, 4, o.ID)
	assert.Equal(t, "ORD-2026-0004", o.OrderNumber)
}

func TestFailedLastUpdateWriteKeepsData(t *testing.T) {
	ctx := context.Background()
	kv := newFaultyKV()
	s := NewShared(kv, WithStrict(true))
	ch, cancel := s.Subscribe()
	defer cancel()

	kv.failSet(KeyLastUpdate)
	p, err := s.AddProduct(ctx, models.Product{Name: "Amber"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Len(t, s.GetProducts(ctx), 1)

	select {
	case ts := <-ch:
		assert.Greater(t, ts, int64(0))
	case <-time.After(time.Second):
		t.Fatal("write was not published")
	}
}

func TestWaitForChangeDeadlineIsNotAReadFailure(t *testing.T) {
	s := NewShared(newFaultyKV(), WithStrict(true))
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Millisecond)
		assert.NotPanics(t, func() {
			_, ok := s.WaitForChange(ctx, 0, time.Millisecond)
			assert.False(t, ok)
		})
		cancel()
	}
}
