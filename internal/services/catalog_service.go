package services

import (
	"database/sql"
	"errors"
	"fmt"

	"oesters_backend/internal/models"
	"oesters_backend/internal/repositories"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNotEmpty = errors.New("cannot delete category because it has products")
)

// CatalogService serves read-only catalog snapshots to the storefront and
// CRUD operations to the admin back-office. Items leave this layer with
// their selection mode and pricing mode already resolved, so downstream
// code never re-derives them.
type CatalogService interface {
	GetCategories() ([]models.Category, error)
	GetMenuItems() ([]models.MenuItem, error)
	GetMenuItem(id string) (*models.MenuItem, error)

	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	ReorderCategories(orderedIDs []string) ([]models.Category, error)
	DeleteCategory(id string) error

	CreateMenuItem(item *models.MenuItem) error
	UpdateMenuItem(item *models.MenuItem) error
	DeleteMenuItem(id string) error
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
	db          *sql.DB // for reorder transactions
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(catalogRepo repositories.CatalogRepository, db *sql.DB) CatalogService {
	return &catalogService{catalogRepo: catalogRepo, db: db}
}

func (s *catalogService) GetCategories() ([]models.Category, error) {
	categories, err := s.catalogRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) GetMenuItems() ([]models.MenuItem, error) {
	categories, err := s.catalogRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for resolution: %w", err)
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	items, err := s.catalogRepo.GetMenuItems()
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	for i := range items {
		items[i].Resolve(categoryNames[items[i].CategoryID])
	}
	return items, nil
}

func (s *catalogService) GetMenuItem(id string) (*models.MenuItem, error) {
	item, err := s.catalogRepo.GetMenuItemByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item %s: %w", id, err)
	}

	categoryName := ""
	if category, err := s.catalogRepo.GetCategoryByID(item.CategoryID); err == nil {
		categoryName = category.Name
	}
	item.Resolve(categoryName)
	return item, nil
}

func (s *catalogService) CreateCategory(category *models.Category) error {
	if category.SortOrder == 0 {
		existing, err := s.catalogRepo.GetCategories()
		if err != nil {
			return fmt.Errorf("failed to determine category sort order: %w", err)
		}
		category.SortOrder = len(existing)
	}
	if err := s.catalogRepo.CreateCategory(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *catalogService) UpdateCategory(category *models.Category) error {
	err := s.catalogRepo.UpdateCategory(category)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// ReorderCategories rewrites sort_order to match the given ID sequence.
// IDs not present in the catalog are ignored.
func (s *catalogService) ReorderCategories(orderedIDs []string) ([]models.Category, error) {
	categories, err := s.catalogRepo.GetCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories for reorder: %w", err)
	}

	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	reordered := make([]models.Category, 0, len(orderedIDs))
	for idx, id := range orderedIDs {
		c, ok := byID[id]
		if !ok {
			continue
		}
		c.SortOrder = idx
		reordered = append(reordered, c)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start reorder transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.catalogRepo.ReorderCategories(tx, reordered); err != nil {
		return nil, fmt.Errorf("failed to reorder categories: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category reorder: %w", err)
	}
	return reordered, nil
}

func (s *catalogService) DeleteCategory(id string) error {
	count, err := s.catalogRepo.CountItemsInCategory(id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	err = s.catalogRepo.DeleteCategory(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *catalogService) CreateMenuItem(item *models.MenuItem) error {
	if _, err := s.catalogRepo.GetCategoryByID(item.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to verify category: %w", err)
	}
	if err := s.catalogRepo.CreateMenuItem(item); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (s *catalogService) UpdateMenuItem(item *models.MenuItem) error {
	err := s.catalogRepo.UpdateMenuItem(item)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteMenuItem(id string) error {
	_, err := s.catalogRepo.DeleteMenuItem(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}
