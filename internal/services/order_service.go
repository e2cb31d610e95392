package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oesters_backend/internal/messenger"
	"oesters_backend/internal/models"
	"oesters_backend/internal/repositories"
	"oesters_backend/internal/sessions"
	"oesters_backend/pkg/utils"
)

// Validation errors carry the user-facing message directly.
var (
	ErrOrderTypeRequired      = errors.New("please select an order type")
	ErrPaymentMethodRequired  = errors.New("please select a payment method")
	ErrMissingDineInDetails   = errors.New("please provide your name and table number")
	ErrMissingPickupDetails   = errors.New("please provide name, phone number, and pickup time")
	ErrMissingDeliveryDetails = errors.New("please provide name, phone number, and delivery address")
	ErrMissingCustomerName    = errors.New("please provide your name")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrOrderPersistFailed     = errors.New("there was an error saving your order, please try again")
)

// Order status constants. Transitions are admin-driven and unconstrained:
// any status may move to any other.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// CheckoutRequest is the customer's submission payload.
type CheckoutRequest struct {
	OrderType       string                 `json:"order_type"`
	PaymentMethod   string                 `json:"payment_method"`
	CustomerDetails models.CustomerDetails `json:"customer_details"`
}

// CheckoutResult carries everything the storefront needs after a successful
// submission: the persisted order, the formatted message, and the chat deep
// link the client should navigate to.
type CheckoutResult struct {
	Order        *models.Order `json:"order"`
	Message      string        `json:"message"`
	MessengerURL string        `json:"messenger_url"`
}

// OrderService validates, serializes and dispatches completed orders, and
// serves the admin order history.
type OrderService interface {
	Checkout(sessionID string, req CheckoutRequest) (*CheckoutResult, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrderStatus(orderID int64, newStatus string) (*models.Order, error)
	DeleteOrder(orderID int64) error
}

type orderService struct {
	orderRepo repositories.OrderRepository
	cartSvc   CartService
	store     sessions.Store
	links     *messenger.LinkBuilder
	currency  string
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartSvc CartService,
	store sessions.Store,
	links *messenger.LinkBuilder,
	currency string,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartSvc:   cartSvc,
		store:     store,
		links:     links,
		currency:  currency,
	}
}

// Checkout runs the full submission workflow. Validation failures and the
// order-store write failure leave the cart untouched; only a fully
// persisted order clears it. The backup mirror and the message handoff are
// best-effort conveniences, not transactional steps.
func (s *orderService) Checkout(sessionID string, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	cart, err := s.cartSvc.GetCart(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}

	itemDetails := DescribeCartLines(cart.Lines)

	order := &models.Order{
		OrderType:       req.OrderType,
		PaymentMethod:   req.PaymentMethod,
		CustomerDetails: req.CustomerDetails,
		Items:           itemDetails,
		TotalAmount:     cart.Total(),
		Status:          StatusPending,
	}

	if _, err := s.orderRepo.CreateOrder(order); err != nil {
		utils.LogError(err, "Order persistence failed during checkout")
		return nil, ErrOrderPersistFailed
	}

	now := time.Now()
	backup := models.OrderBackup{Order: *order, LocalID: now.UnixMilli(), Timestamp: now}
	if err := s.store.AppendOrderBackup(sessionID, backup); err != nil {
		utils.LogWarn(err, "Failed to mirror order backup to session store")
	}

	message := s.buildOrderMessage(req, itemDetails, order.TotalAmount)

	if err := s.cartSvc.ClearCart(sessionID); err != nil {
		utils.LogWarn(err, "Failed to clear cart after successful checkout")
	}

	return &CheckoutResult{
		Order:        order,
		Message:      message,
		MessengerURL: s.links.DeepLink(message),
	}, nil
}

// validateCheckout enforces the submission rules in order: order type
// first, then the type's required fields, then the payment method. The
// first failure wins and nothing is mutated.
func validateCheckout(req CheckoutRequest) error {
	if req.OrderType == "" {
		return ErrOrderTypeRequired
	}

	d := req.CustomerDetails
	switch req.OrderType {
	case models.OrderTypeDineIn:
		if d.Name == "" || d.TableNumber == "" {
			return ErrMissingDineInDetails
		}
	case models.OrderTypePickup:
		if d.Name == "" || d.Phone == "" || d.PickupTime == "" {
			return ErrMissingPickupDetails
		}
	case models.OrderTypeDelivery:
		if d.Name == "" || d.Phone == "" || d.Address == "" {
			return ErrMissingDeliveryDetails
		}
	default:
		// Admin-defined custom types only require a name.
		if d.Name == "" {
			return ErrMissingCustomerName
		}
	}

	if req.PaymentMethod == "" {
		return ErrPaymentMethodRequired
	}
	return nil
}

// DescribeCartLines flattens cart lines into the human-readable strings
// stored on the order and relayed in the chat message:
// "{name} (x{qty})" + " - {variation}" + " [{flavors}]" + " + {addons}".
func DescribeCartLines(lines []models.CartLine) []string {
	descriptions := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		fmt.Fprintf(&b, "%s (x%d)", line.ItemName, line.Quantity)
		if line.SelectedVariation != nil {
			fmt.Fprintf(&b, " - %s", line.SelectedVariation.Name)
		}
		if len(line.SelectedFlavors) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(line.SelectedFlavors, ", "))
		}
		if len(line.SelectedAddons) > 0 {
			names := make([]string, len(line.SelectedAddons))
			for i, addon := range line.SelectedAddons {
				names[i] = addon.Name
			}
			fmt.Fprintf(&b, " + %s", strings.Join(names, ", "))
		}
		descriptions = append(descriptions, b.String())
	}
	return descriptions
}

// buildOrderMessage renders the text handed to the chat channel. Customer
// lines depend on the order type; for non-delivery orders the landmark
// field doubles as free-text notes.
func (s *orderService) buildOrderMessage(req CheckoutRequest, itemDetails []string, total float64) string {
	d := req.CustomerDetails

	var customerInfo strings.Builder
	customerInfo.WriteString("Name: " + d.Name)
	switch req.OrderType {
	case models.OrderTypeDineIn:
		customerInfo.WriteString("\nTable Number: " + d.TableNumber)
	case models.OrderTypePickup:
		customerInfo.WriteString("\nPhone: " + d.Phone)
		customerInfo.WriteString("\nPickup Time: " + d.PickupTime)
	case models.OrderTypeDelivery:
		customerInfo.WriteString("\nPhone: " + d.Phone)
		customerInfo.WriteString("\nAddress: " + d.Address)
		customerInfo.WriteString("\nLandmark: " + d.Landmark)
	}
	if req.OrderType != models.OrderTypeDelivery && d.Landmark != "" {
		customerInfo.WriteString("\nNotes: " + d.Landmark)
	}

	return fmt.Sprintf(`Hello! I'd like to place an order:

Order Type: %s
Payment Method: %s

Customer Details:
%s

Item Details:
%s

TOTAL AMOUNT: %s%s

Thank you!`,
		strings.ToUpper(req.OrderType),
		req.PaymentMethod,
		customerInfo.String(),
		strings.Join(itemDetails, "\n"),
		s.currency,
		utils.FormatAmount(total),
	)
}

// --- Admin order history ---

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID int64, newStatus string) (*models.Order, error) {
	if !isValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, newStatus)
	}

	err := s.orderRepo.UpdateOrderStatus(orderID, newStatus, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return s.GetOrderByID(orderID)
}

func (s *orderService) DeleteOrder(orderID int64) error {
	_, err := s.orderRepo.DeleteOrder(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func isValidOrderStatus(status string) bool {
	switch status {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
