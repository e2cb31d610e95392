package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"oesters_backend/internal/models"
)

// CatalogRepository defines the database operations for categories and
// menu items. Option lists (variations, flavors, addons) live in JSONB
// columns and are (de)serialized here.
type CatalogRepository interface {
	GetCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	ReorderCategories(executor SQLExecutor, categories []models.Category) error
	DeleteCategory(id string) error
	CountItemsInCategory(categoryID string) (int, error)

	GetMenuItems() ([]models.MenuItem, error)
	GetMenuItemByID(id string) (*models.MenuItem, error)
	CreateMenuItem(item *models.MenuItem) error
	UpdateMenuItem(item *models.MenuItem) error
	DeleteMenuItem(id string) (int64, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Categories ---

func (r *catalogRepository) GetCategories() ([]models.Category, error) {
	categories := []models.Category{}
	rows, err := r.db.Query(`SELECT id, name, sort_order FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *catalogRepository) GetCategoryByID(id string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(`SELECT id, name, sort_order FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category %s: %v", ErrDatabaseError, id, err)
	}
	return &c, nil
}

func (r *catalogRepository) CreateCategory(category *models.Category) error {
	err := r.db.QueryRow(
		`INSERT INTO categories (name, sort_order) VALUES ($1, $2) RETURNING id`,
		category.Name, category.SortOrder,
	).Scan(&category.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: category name %q", ErrDuplicateKey, category.Name)
		}
		return fmt.Errorf("%w: creating category: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *catalogRepository) UpdateCategory(category *models.Category) error {
	result, err := r.db.Exec(
		`UPDATE categories SET name = $1, sort_order = $2 WHERE id = $3`,
		category.Name, category.SortOrder, category.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating category %s: %v", ErrDatabaseError, category.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for category update: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderCategories rewrites the sort_order of every passed category.
// Runs inside the caller's transaction so a partial reorder never lands.
func (r *catalogRepository) ReorderCategories(executor SQLExecutor, categories []models.Category) error {
	for _, c := range categories {
		if _, err := executor.Exec(`UPDATE categories SET sort_order = $1 WHERE id = $2`, c.SortOrder, c.ID); err != nil {
			return fmt.Errorf("%w: reordering category %s: %v", ErrDatabaseError, c.ID, err)
		}
	}
	return nil
}

func (r *catalogRepository) DeleteCategory(id string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting category %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for category delete: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *catalogRepository) CountItemsInCategory(categoryID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM menu_items WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting items in category %s: %v", ErrDatabaseError, categoryID, err)
	}
	return count, nil
}

// --- Menu items ---

const menuItemColumns = `id, category_id, name, description, price, promo_price, image,
	COALESCE(variations, '[]'), COALESCE(flavors, '[]'), COALESCE(addons, '[]'),
	allow_multiple, out_of_stock, sort_order`

func (r *catalogRepository) GetMenuItems() ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	rows, err := r.db.Query(`SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *catalogRepository) GetMenuItemByID(id string) (*models.MenuItem, error) {
	row := r.db.QueryRow(`SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, err
	}
	return item, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var description, image sql.NullString
	var variationsJSON, flavorsJSON, addonsJSON []byte

	err := row.Scan(
		&item.ID, &item.CategoryID, &item.Name, &description, &item.Price, &item.PromoPrice, &image,
		&variationsJSON, &flavorsJSON, &addonsJSON,
		&item.AllowMultiple, &item.OutOfStock, &item.SortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
	}

	if description.Valid {
		item.Description = description.String
	}
	if image.Valid {
		item.Image = image.String
	}
	if err := json.Unmarshal(variationsJSON, &item.Variations); err != nil {
		return nil, fmt.Errorf("%w: decoding variations for item %s: %v", ErrDatabaseError, item.ID, err)
	}
	if err := json.Unmarshal(flavorsJSON, &item.Flavors); err != nil {
		return nil, fmt.Errorf("%w: decoding flavors for item %s: %v", ErrDatabaseError, item.ID, err)
	}
	if err := json.Unmarshal(addonsJSON, &item.Addons); err != nil {
		return nil, fmt.Errorf("%w: decoding addons for item %s: %v", ErrDatabaseError, item.ID, err)
	}
	return &item, nil
}

func (r *catalogRepository) CreateMenuItem(item *models.MenuItem) error {
	variationsJSON, flavorsJSON, addonsJSON, err := marshalOptionLists(item)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(
		`INSERT INTO menu_items
		    (category_id, name, description, price, promo_price, image,
		     variations, flavors, addons, allow_multiple, out_of_stock, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		item.CategoryID, item.Name, models.NewNullString(item.Description), item.Price, item.PromoPrice,
		models.NewNullString(item.Image), variationsJSON, flavorsJSON, addonsJSON,
		item.AllowMultiple, item.OutOfStock, item.SortOrder,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: creating menu item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *catalogRepository) UpdateMenuItem(item *models.MenuItem) error {
	variationsJSON, flavorsJSON, addonsJSON, err := marshalOptionLists(item)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		`UPDATE menu_items SET
		    category_id = $1, name = $2, description = $3, price = $4, promo_price = $5,
		    image = $6, variations = $7, flavors = $8, addons = $9,
		    allow_multiple = $10, out_of_stock = $11, sort_order = $12
		 WHERE id = $13`,
		item.CategoryID, item.Name, models.NewNullString(item.Description), item.Price, item.PromoPrice,
		models.NewNullString(item.Image), variationsJSON, flavorsJSON, addonsJSON,
		item.AllowMultiple, item.OutOfStock, item.SortOrder, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating menu item %s: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for menu item update: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *catalogRepository) DeleteMenuItem(id string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting menu item %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected for menu item delete: %v", ErrDatabaseError, err)
	}
	if rowsAffected == 0 {
		return 0, ErrNotFound
	}
	return rowsAffected, nil
}

func marshalOptionLists(item *models.MenuItem) ([]byte, []byte, []byte, error) {
	variationsJSON, err := json.Marshal(orEmptyVariations(item.Variations))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: encoding variations: %v", ErrDatabaseError, err)
	}
	flavorsJSON, err := json.Marshal(orEmptyFlavors(item.Flavors))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: encoding flavors: %v", ErrDatabaseError, err)
	}
	addonsJSON, err := json.Marshal(orEmptyAddons(item.Addons))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: encoding addons: %v", ErrDatabaseError, err)
	}
	return variationsJSON, flavorsJSON, addonsJSON, nil
}

func orEmptyVariations(v []models.Variation) []models.Variation {
	if v == nil {
		return []models.Variation{}
	}
	return v
}

func orEmptyFlavors(f []models.Flavor) []models.Flavor {
	if f == nil {
		return []models.Flavor{}
	}
	return f
}

func orEmptyAddons(a []models.Addon) []models.Addon {
	if a == nil {
		return []models.Addon{}
	}
	return a
}
