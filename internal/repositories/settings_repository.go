package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"oesters_backend/internal/models"
)

// SettingsRepository defines the database operations for payment methods,
// order types and the single-row store settings.
type SettingsRepository interface {
	GetPaymentMethods(activeOnly bool) ([]models.PaymentMethod, error)
	CreatePaymentMethod(method *models.PaymentMethod) error
	UpdatePaymentMethod(method *models.PaymentMethod) error
	DeletePaymentMethod(id string) error

	GetOrderTypes(activeOnly bool) ([]models.OrderTypeOption, error)
	UpsertOrderType(orderType *models.OrderTypeOption) error
	DeleteOrderType(id string) error

	GetStoreSettings() (*models.StoreSettings, error)
	UpsertStoreSettings(settings *models.StoreSettings) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// --- Payment methods ---

func (r *settingsRepository) GetPaymentMethods(activeOnly bool) ([]models.PaymentMethod, error) {
	query := `SELECT id, name, account_name, account_number, qr_url, is_active FROM payment_methods`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payment methods: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.AccountName, &m.AccountNumber, &m.QRURL, &m.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanning payment method: %v", ErrDatabaseError, err)
		}
		methods = append(methods, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment method rows: %v", ErrDatabaseError, err)
	}
	return methods, nil
}

func (r *settingsRepository) CreatePaymentMethod(method *models.PaymentMethod) error {
	err := r.db.QueryRow(
		`INSERT INTO payment_methods (name, account_name, account_number, qr_url, is_active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		method.Name, method.AccountName, method.AccountNumber, method.QRURL, method.IsActive,
	).Scan(&method.ID)
	if err != nil {
		return fmt.Errorf("%w: creating payment method: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *settingsRepository) UpdatePaymentMethod(method *models.PaymentMethod) error {
	result, err := r.db.Exec(
		`UPDATE payment_methods
		 SET name = $1, account_name = $2, account_number = $3, qr_url = $4, is_active = $5
		 WHERE id = $6`,
		method.Name, method.AccountName, method.AccountNumber, method.QRURL, method.IsActive, method.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating payment method %s: %v", ErrDatabaseError, method.ID, err)
	}
	return requireRowAffected(result)
}

func (r *settingsRepository) DeletePaymentMethod(id string) error {
	result, err := r.db.Exec(`DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting payment method %s: %v", ErrDatabaseError, id, err)
	}
	return requireRowAffected(result)
}

// --- Order types ---

func (r *settingsRepository) GetOrderTypes(activeOnly bool) ([]models.OrderTypeOption, error) {
	query := `SELECT id, name, is_active FROM order_types`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order types: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	types := []models.OrderTypeOption{}
	for rows.Next() {
		var t models.OrderTypeOption
		if err := rows.Scan(&t.ID, &t.Name, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%w: scanning order type: %v", ErrDatabaseError, err)
		}
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order type rows: %v", ErrDatabaseError, err)
	}
	return types, nil
}

// UpsertOrderType inserts the order type or updates name/active state when
// the ID already exists (built-in types keep their well-known IDs).
func (r *settingsRepository) UpsertOrderType(orderType *models.OrderTypeOption) error {
	if orderType.ID == "" {
		err := r.db.QueryRow(
			`INSERT INTO order_types (name, is_active) VALUES ($1, $2) RETURNING id`,
			orderType.Name, orderType.IsActive,
		).Scan(&orderType.ID)
		if err != nil {
			return fmt.Errorf("%w: creating order type: %v", ErrDatabaseError, err)
		}
		return nil
	}

	_, err := r.db.Exec(
		`INSERT INTO order_types (id, name, is_active) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, is_active = EXCLUDED.is_active`,
		orderType.ID, orderType.Name, orderType.IsActive,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting order type %s: %v", ErrDatabaseError, orderType.ID, err)
	}
	return nil
}

func (r *settingsRepository) DeleteOrderType(id string) error {
	result, err := r.db.Exec(`DELETE FROM order_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting order type %s: %v", ErrDatabaseError, id, err)
	}
	return requireRowAffected(result)
}

// --- Store settings ---

func (r *settingsRepository) GetStoreSettings() (*models.StoreSettings, error) {
	var s models.StoreSettings
	var banners pq.StringArray
	err := r.db.QueryRow(
		`SELECT id, store_name, address, contact, open_time, close_time, manual_status,
		        logo_url, COALESCE(banner_images, '{}'), updated_at
		 FROM store_settings
		 ORDER BY id
		 LIMIT 1`,
	).Scan(&s.ID, &s.StoreName, &s.Address, &s.Contact, &s.OpenTime, &s.CloseTime, &s.ManualStatus,
		&s.LogoURL, &banners, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting store settings: %v", ErrDatabaseError, err)
	}
	s.BannerImages = []string(banners)
	return &s, nil
}

// UpsertStoreSettings writes the single settings row, creating it on first
// save.
func (r *settingsRepository) UpsertStoreSettings(settings *models.StoreSettings) error {
	settings.UpdatedAt = time.Now()
	err := r.db.QueryRow(
		`INSERT INTO store_settings
		    (id, store_name, address, contact, open_time, close_time, manual_status,
		     logo_url, banner_images, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		    store_name = EXCLUDED.store_name, address = EXCLUDED.address,
		    contact = EXCLUDED.contact, open_time = EXCLUDED.open_time,
		    close_time = EXCLUDED.close_time, manual_status = EXCLUDED.manual_status,
		    logo_url = EXCLUDED.logo_url, banner_images = EXCLUDED.banner_images,
		    updated_at = EXCLUDED.updated_at
		 RETURNING id`,
		settings.StoreName, settings.Address, settings.Contact, settings.OpenTime,
		settings.CloseTime, settings.ManualStatus, settings.LogoURL,
		pq.Array(settings.BannerImages), settings.UpdatedAt,
	).Scan(&settings.ID)
	if err != nil {
		return fmt.Errorf("%w: upserting store settings: %v", ErrDatabaseError, err)
	}
	return nil
}

func requireRowAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
