package services

import (
	"errors"
	"testing"

	"oesters_backend/internal/models"
)

// fakeStore is an in-memory sessions.Store for service tests.
type fakeStore struct {
	carts   map[string]*models.Cart
	backups map[string][]models.OrderBackup

	saveErr error
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:   map[string]*models.Cart{},
		backups: map[string][]models.OrderBackup{},
	}
}

func (f *fakeStore) LoadCart(sessionID string) (*models.Cart, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if cart, ok := f.carts[sessionID]; ok {
		copied := *cart
		copied.Lines = append([]models.CartLine(nil), cart.Lines...)
		return &copied, nil
	}
	return &models.Cart{}, nil
}

func (f *fakeStore) SaveCart(sessionID string, cart *models.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[sessionID] = cart
	return nil
}

func (f *fakeStore) DeleteCart(sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

func (f *fakeStore) AppendOrderBackup(sessionID string, backup models.OrderBackup) error {
	f.backups[sessionID] = append(f.backups[sessionID], backup)
	return nil
}

func (f *fakeStore) LoadOrderBackups(sessionID string) ([]models.OrderBackup, error) {
	return f.backups[sessionID], nil
}

func (f *fakeStore) Close() error { return nil }

// fakeCatalog serves menu items from a fixed map. Only the methods the cart
// path touches are implemented.
type fakeCatalog struct {
	CatalogService
	items map[string]*models.MenuItem
}

func (f *fakeCatalog) GetMenuItem(id string) (*models.MenuItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, ErrMenuItemNotFound
}

func newCartFixture(items ...*models.MenuItem) (CartService, *fakeStore) {
	catalog := &fakeCatalog{items: map[string]*models.MenuItem{}}
	for _, item := range items {
		catalog.items[item.ID] = item
	}
	store := newFakeStore()
	return NewCartService(catalog, store), store
}

func TestAddToCartMergesIdenticalSelections(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	opts := models.SelectionOptions{Variation: "Wintermelon", Addons: []string{"Pearls"}}
	if _, err := svc.AddToCart("s1", item.ID, opts); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := svc.AddToCart("s1", item.ID, opts)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected identical selections to merge into one line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Errorf("expected merged quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestAddToCartKeepsFirstAddPriceOnMerge(t *testing.T) {
	item := milkTeaItem()
	svc, store := newCartFixture(item)

	opts := models.SelectionOptions{Variation: "Wintermelon"}
	if _, err := svc.AddToCart("s1", item.ID, opts); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	// The catalog price changes between the two adds.
	item.Variations[0].Price = 999

	cart, err := svc.AddToCart("s1", item.ID, opts)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if cart.Lines[0].FinalPrice != 89 {
		t.Errorf("merge must keep the first-add price 89, got %v", cart.Lines[0].FinalPrice)
	}
	if got := store.carts["s1"].Lines[0].FinalPrice; got != 89 {
		t.Errorf("persisted snapshot must keep the first-add price, got %v", got)
	}
}

func TestAddToCartDistinctAddonOrderStaysSeparate(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	if _, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon", Addons: []string{"Pearls", "Cream Cheese"}}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon", Addons: []string{"Cream Cheese", "Pearls"}})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Errorf("addon order is part of line identity; expected 2 lines, got %d", len(cart.Lines))
	}
}

func TestAddToCartRejectsOutOfStock(t *testing.T) {
	item := milkTeaItem()
	item.OutOfStock = true
	svc, store := newCartFixture(item)

	_, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon"})
	if !errors.Is(err, ErrItemOutOfStock) {
		t.Fatalf("expected ErrItemOutOfStock, got %v", err)
	}
	if _, ok := store.carts["s1"]; ok {
		t.Error("a rejected add must not persist a cart")
	}
}

func TestAddToCartUnknownItem(t *testing.T) {
	svc, _ := newCartFixture()
	if _, err := svc.AddToCart("s1", "missing", models.SelectionOptions{}); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestAddToCartWritesThrough(t *testing.T) {
	item := milkTeaItem()
	svc, store := newCartFixture(item)

	if _, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	persisted, ok := store.carts["s1"]
	if !ok || len(persisted.Lines) != 1 {
		t.Fatalf("expected the cart to be written through on add, got %+v", persisted)
	}
}

func TestAddToCartPersistFailureSurfaces(t *testing.T) {
	item := milkTeaItem()
	catalog := &fakeCatalog{items: map[string]*models.MenuItem{item.ID: item}}
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	svc := NewCartService(catalog, store)

	if _, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err == nil {
		t.Fatal("expected an error when the snapshot write fails")
	}
}

func TestDecrementFloorsAtOne(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	cart, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lineID := cart.Lines[0].CartLineID

	cart, err = svc.Decrement("s1", lineID)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Errorf("decrement at quantity 1 must stay at 1, got %d", cart.Lines[0].Quantity)
	}
}

func TestDecrementLowersQuantity(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	cart, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon", Quantity: 3})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err = svc.Decrement("s1", cart.Lines[0].CartLineID)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if cart.Lines[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestDecrementUnknownLineIsNoOp(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	if _, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err := svc.Decrement("s1", "no-such-line")
	if err != nil {
		t.Fatalf("decrement of unknown line should not fail: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Errorf("unknown line decrement must leave the cart unchanged, got %+v", cart.Lines)
	}
}

func TestDeleteLineRemovesRegardlessOfQuantity(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	cart, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon", Quantity: 5})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err = svc.DeleteLine("s1", cart.Lines[0].CartLineID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("expected an empty cart after delete, got %d lines", len(cart.Lines))
	}
}

func TestClearCartEmptiesSession(t *testing.T) {
	item := milkTeaItem()
	svc, store := newCartFixture(item)

	if _, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.ClearCart("s1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok := store.carts["s1"]; ok {
		t.Error("expected the persisted cart to be removed")
	}
	cart, err := svc.GetCart("s1")
	if err != nil {
		t.Fatalf("get after clear failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("expected an empty cart, got %d lines", len(cart.Lines))
	}
}

func TestCartAggregates(t *testing.T) {
	item := milkTeaItem()
	svc, _ := newCartFixture(item)

	if _, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Wintermelon", Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err := svc.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if got := cart.Total(); got != 2*89+99 {
		t.Errorf("expected total %v, got %v", 2*89+99, got)
	}
	if got := cart.Count(); got != 3 {
		t.Errorf("expected item count 3, got %d", got)
	}
}
