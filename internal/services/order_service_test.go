package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"oesters_backend/internal/messenger"
	"oesters_backend/internal/models"
	"oesters_backend/internal/repositories"
)

// fakeOrderRepo records created orders in memory.
type fakeOrderRepo struct {
	orders    map[int64]*models.Order
	nextID    int64
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*models.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) CreateOrder(order *models.Order) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	order.ID = f.nextID
	f.nextID++
	copied := *order
	f.orders[order.ID] = &copied
	return order.ID, nil
}

func (f *fakeOrderRepo) GetOrderByID(orderID int64) (*models.Order, error) {
	if order, ok := f.orders[orderID]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrderRepo) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	var orders []models.Order
	for _, o := range f.orders {
		if filters.Status != nil && o.Status != *filters.Status {
			continue
		}
		orders = append(orders, *o)
	}
	return orders, len(orders), nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(orderID int64, newStatus string, updatedAt time.Time) error {
	order, ok := f.orders[orderID]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Status = newStatus
	order.UpdatedAt = updatedAt
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(orderID int64) (int64, error) {
	if _, ok := f.orders[orderID]; !ok {
		return 0, repositories.ErrNotFound
	}
	delete(f.orders, orderID)
	return 1, nil
}

type orderFixture struct {
	svc   OrderService
	repo  *fakeOrderRepo
	store *fakeStore
	cart  CartService
}

func newOrderFixture(t *testing.T, items ...*models.MenuItem) *orderFixture {
	t.Helper()
	catalog := &fakeCatalog{items: map[string]*models.MenuItem{}}
	for _, item := range items {
		catalog.items[item.ID] = item
	}
	store := newFakeStore()
	cart := NewCartService(catalog, store)
	repo := newFakeOrderRepo()
	links := messenger.NewLinkBuilder("https://m.me/oesterscafeandresto")
	return &orderFixture{
		svc:   NewOrderService(repo, cart, store, links, "₱"),
		repo:  repo,
		store: store,
		cart:  cart,
	}
}

func dineInRequest() CheckoutRequest {
	return CheckoutRequest{
		OrderType:     models.OrderTypeDineIn,
		PaymentMethod: "Cash/COD",
		CustomerDetails: models.CustomerDetails{
			Name:        "Ana",
			TableNumber: "7",
		},
	}
}

func TestCheckoutValidationOrder(t *testing.T) {
	fx := newOrderFixture(t)

	cases := []struct {
		name string
		req  CheckoutRequest
		want error
	}{
		{
			name: "order type checked first",
			req:  CheckoutRequest{PaymentMethod: "Cash/COD"},
			want: ErrOrderTypeRequired,
		},
		{
			name: "dine-in needs name and table",
			req: CheckoutRequest{
				OrderType:       models.OrderTypeDineIn,
				PaymentMethod:   "Cash/COD",
				CustomerDetails: models.CustomerDetails{Name: "Ana"},
			},
			want: ErrMissingDineInDetails,
		},
		{
			name: "pickup needs name, phone and time",
			req: CheckoutRequest{
				OrderType:       models.OrderTypePickup,
				PaymentMethod:   "Cash/COD",
				CustomerDetails: models.CustomerDetails{Name: "Ana", Phone: "0917"},
			},
			want: ErrMissingPickupDetails,
		},
		{
			name: "delivery needs name, phone and address",
			req: CheckoutRequest{
				OrderType:       models.OrderTypeDelivery,
				PaymentMethod:   "Cash/COD",
				CustomerDetails: models.CustomerDetails{Name: "Ana", Phone: "0917"},
			},
			want: ErrMissingDeliveryDetails,
		},
		{
			name: "custom type needs a name",
			req: CheckoutRequest{
				OrderType:     "curbside",
				PaymentMethod: "Cash/COD",
			},
			want: ErrMissingCustomerName,
		},
		{
			name: "payment method checked after customer details",
			req: CheckoutRequest{
				OrderType:       models.OrderTypeDineIn,
				CustomerDetails: models.CustomerDetails{Name: "Ana", TableNumber: "7"},
			},
			want: ErrPaymentMethodRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Checkout("s1", tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	item := milkTeaItem()
	fx := newOrderFixture(t, item)

	if _, err := fx.cart.AddToCart("s1", item.ID, models.SelectionOptions{
		Variation: "Wintermelon",
		Flavors:   []string{"Extra Sweet"},
		Addons:    []string{"Pearls"},
		Quantity:  2,
	}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	result, err := fx.svc.Checkout("s1", dineInRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if result.Order.ID == 0 {
		t.Error("expected the persisted order to carry an ID")
	}
	if result.Order.Status != StatusPending {
		t.Errorf("expected status %q, got %q", StatusPending, result.Order.Status)
	}
	// 89 + 5 + 15 per unit, two units.
	if result.Order.TotalAmount != 218 {
		t.Errorf("expected total 218, got %v", result.Order.TotalAmount)
	}

	wantLine := "Milk Tea (x2) - Wintermelon [Extra Sweet] + Pearls"
	if len(result.Order.Items) != 1 || result.Order.Items[0] != wantLine {
		t.Errorf("expected item description %q, got %v", wantLine, result.Order.Items)
	}

	for _, fragment := range []string{
		"Hello! I'd like to place an order:",
		"Order Type: DINE-IN",
		"Payment Method: Cash/COD",
		"Name: Ana",
		"Table Number: 7",
		wantLine,
		"TOTAL AMOUNT: ₱218",
		"Thank you!",
	} {
		if !strings.Contains(result.Message, fragment) {
			t.Errorf("message missing %q:\n%s", fragment, result.Message)
		}
	}

	if !strings.HasPrefix(result.MessengerURL, "https://m.me/oesterscafeandresto?text=") {
		t.Errorf("unexpected deep link %q", result.MessengerURL)
	}
	if strings.Contains(result.MessengerURL, "+") {
		t.Errorf("deep link must encode spaces as %%20, got %q", result.MessengerURL)
	}

	cart, err := fx.cart.GetCart("s1")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Error("expected the cart to be cleared after a successful checkout")
	}

	backups, err := fx.store.LoadOrderBackups("s1")
	if err != nil {
		t.Fatalf("load backups failed: %v", err)
	}
	if len(backups) != 1 || backups[0].ID != result.Order.ID {
		t.Errorf("expected one backup mirroring the order, got %+v", backups)
	}
}

func TestCheckoutFractionalTotalRendering(t *testing.T) {
	item := &models.MenuItem{ID: "item-1", Name: "Halo-Halo", Price: 110.5}
	item.Resolve("Desserts")
	fx := newOrderFixture(t, item)

	if _, err := fx.cart.AddToCart("s1", item.ID, models.SelectionOptions{}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	result, err := fx.svc.Checkout("s1", dineInRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !strings.Contains(result.Message, "TOTAL AMOUNT: ₱110.5\n") {
		t.Errorf("expected a bare fractional amount, got:\n%s", result.Message)
	}
}

func TestCheckoutLandmarkBecomesNotesForNonDelivery(t *testing.T) {
	item := milkTeaItem()
	fx := newOrderFixture(t, item)
	if _, err := fx.cart.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	req := dineInRequest()
	req.CustomerDetails.Landmark = "no onions please"
	result, err := fx.svc.Checkout("s1", req)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !strings.Contains(result.Message, "Notes: no onions please") {
		t.Errorf("expected the landmark to render as notes, got:\n%s", result.Message)
	}

	// Delivery keeps the landmark as a landmark line.
	if _, err := fx.cart.AddToCart("s2", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	deliveryReq := CheckoutRequest{
		OrderType:     models.OrderTypeDelivery,
		PaymentMethod: "Cash/COD",
		CustomerDetails: models.CustomerDetails{
			Name: "Ben", Phone: "0917", Address: "12 Mabini St", Landmark: "blue gate",
		},
	}
	result, err = fx.svc.Checkout("s2", deliveryReq)
	if err != nil {
		t.Fatalf("delivery checkout failed: %v", err)
	}
	if !strings.Contains(result.Message, "Landmark: blue gate") {
		t.Errorf("expected a landmark line for delivery, got:\n%s", result.Message)
	}
	if strings.Contains(result.Message, "Notes:") {
		t.Errorf("delivery must not duplicate the landmark as notes:\n%s", result.Message)
	}
}

func TestCheckoutPersistFailureKeepsCart(t *testing.T) {
	item := milkTeaItem()
	fx := newOrderFixture(t, item)
	fx.repo.createErr = errors.New("connection refused")

	if _, err := fx.cart.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	_, err := fx.svc.Checkout("s1", dineInRequest())
	if !errors.Is(err, ErrOrderPersistFailed) {
		t.Fatalf("expected ErrOrderPersistFailed, got %v", err)
	}

	cart, err := fx.cart.GetCart("s1")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Error("a failed persist must leave the cart intact")
	}
	backups, _ := fx.store.LoadOrderBackups("s1")
	if len(backups) != 0 {
		t.Error("a failed persist must not mirror a backup")
	}
}

func TestDescribeCartLinesFormats(t *testing.T) {
	lines := []models.CartLine{
		{ItemName: "Burger", Quantity: 1},
		{
			ItemName:          "Milk Tea",
			Quantity:          3,
			SelectedVariation: &models.Variation{Name: "Okinawa", Price: 99},
			SelectedFlavors:   []string{"Less Sugar", "Extra Sweet"},
			SelectedAddons:    []models.Addon{{Name: "Pearls"}, {Name: "Cream Cheese"}},
		},
	}

	got := DescribeCartLines(lines)
	want := []string{
		"Burger (x1)",
		"Milk Tea (x3) - Okinawa [Less Sugar, Extra Sweet] + Pearls, Cream Cheese",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d descriptions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("description %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	item := milkTeaItem()
	fx := newOrderFixture(t, item)
	if _, err := fx.cart.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	result, err := fx.svc.Checkout("s1", dineInRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// Any status may move to any other, including backwards.
	for _, status := range []string{StatusPreparing, StatusCompleted, StatusPending, StatusCancelled} {
		order, err := fx.svc.UpdateOrderStatus(result.Order.ID, status)
		if err != nil {
			t.Fatalf("status change to %q failed: %v", status, err)
		}
		if order.Status != status {
			t.Errorf("expected status %q, got %q", status, order.Status)
		}
	}

	if _, err := fx.svc.UpdateOrderStatus(result.Order.ID, "Shipped"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Errorf("expected ErrInvalidOrderStatus for an unknown status, got %v", err)
	}
	if _, err := fx.svc.UpdateOrderStatus(999, StatusReady); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDeleteOrder(t *testing.T) {
	item := milkTeaItem()
	fx := newOrderFixture(t, item)
	if _, err := fx.cart.AddToCart("s1", item.ID, models.SelectionOptions{Variation: "Okinawa"}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	result, err := fx.svc.Checkout("s1", dineInRequest())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if err := fx.svc.DeleteOrder(result.Order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := fx.svc.GetOrderByID(result.Order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound after delete, got %v", err)
	}
	if err := fx.svc.DeleteOrder(result.Order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound on double delete, got %v", err)
	}
}
