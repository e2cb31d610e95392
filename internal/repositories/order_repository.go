package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"oesters_backend/internal/models"
)

// OrderRepository defines the database operations for submitted orders.
// The item descriptions are stored as a text array, customer details as JSONB.
type OrderRepository interface {
	CreateOrder(order *models.Order) (int64, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	UpdateOrderStatus(orderID int64, newStatus string, updatedAt time.Time) error
	DeleteOrder(orderID int64) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(order *models.Order) (int64, error) {
	query := `INSERT INTO orders
	            (order_type, payment_method, customer_details, items, total_amount, status,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = time.Now()
	}

	detailsJSON, err := json.Marshal(order.CustomerDetails)
	if err != nil {
		return 0, fmt.Errorf("%w: encoding customer details: %v", ErrDatabaseError, err)
	}

	err = r.db.QueryRow(query,
		order.OrderType, order.PaymentMethod, detailsJSON, pq.Array(order.Items),
		order.TotalAmount, order.Status, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	row := r.db.QueryRow(
		`SELECT id, order_type, payment_method, customer_details, items, total_amount, status,
		        created_at, updated_at
		 FROM orders
		 WHERE id = $1`, orderID)

	order, err := scanOrder(row, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT id, order_type, payment_method, customer_details, items, total_amount, status,
               created_at, updated_at,
               COUNT(*) OVER() as total_count
        FROM orders
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("created_at BETWEEN $%d AND $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		order, err := scanOrder(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *order)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

// scanOrder reads one order row. totalCount is scanned additionally when
// non-nil (list queries carry a window count column).
func scanOrder(row rowScanner, totalCount *int) (*models.Order, error) {
	var o models.Order
	var detailsJSON []byte
	var items pq.StringArray

	dest := []interface{}{
		&o.ID, &o.OrderType, &o.PaymentMethod, &detailsJSON, &items, &o.TotalAmount, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &o.CustomerDetails); err != nil {
			return nil, fmt.Errorf("decoding customer details for order %d: %w", o.ID, err)
		}
	}
	o.Items = []string(items)
	return &o, nil
}

func (r *orderRepository) UpdateOrderStatus(orderID int64, newStatus string, updatedAt time.Time) error {
	result, err := r.db.Exec(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		newStatus, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for order status update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(orderID int64) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected for deleting order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}
