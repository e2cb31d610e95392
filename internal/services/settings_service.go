package services

import (
	"errors"
	"fmt"

	"oesters_backend/internal/models"
	"oesters_backend/internal/repositories"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrOrderTypeNotFound     = errors.New("order type not found")
)

// SettingsService serves payment methods, order types and store settings.
// The storefront reads active entries only; the admin surface sees and
// manages everything.
type SettingsService interface {
	GetPaymentMethods(activeOnly bool) ([]models.PaymentMethod, error)
	CreatePaymentMethod(method *models.PaymentMethod) error
	UpdatePaymentMethod(method *models.PaymentMethod) error
	DeletePaymentMethod(id string) error

	GetOrderTypes(activeOnly bool) ([]models.OrderTypeOption, error)
	SaveOrderType(orderType *models.OrderTypeOption) error
	DeleteOrderType(id string) error

	GetStoreSettings() (*models.StoreSettings, error)
	SaveStoreSettings(settings *models.StoreSettings) error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetPaymentMethods(activeOnly bool) ([]models.PaymentMethod, error) {
	methods, err := s.settingsRepo.GetPaymentMethods(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment methods: %w", err)
	}
	return methods, nil
}

func (s *settingsService) CreatePaymentMethod(method *models.PaymentMethod) error {
	if err := s.settingsRepo.CreatePaymentMethod(method); err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

func (s *settingsService) UpdatePaymentMethod(method *models.PaymentMethod) error {
	err := s.settingsRepo.UpdatePaymentMethod(method)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentMethodNotFound
		}
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return nil
}

func (s *settingsService) DeletePaymentMethod(id string) error {
	err := s.settingsRepo.DeletePaymentMethod(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPaymentMethodNotFound
		}
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return nil
}

// GetOrderTypes returns the configured fulfillment channels. When none are
// configured yet, the storefront still needs the three built-ins, so they
// are served as defaults without touching the database.
func (s *settingsService) GetOrderTypes(activeOnly bool) ([]models.OrderTypeOption, error) {
	types, err := s.settingsRepo.GetOrderTypes(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get order types: %w", err)
	}
	if len(types) == 0 {
		return defaultOrderTypes(), nil
	}
	return types, nil
}

func defaultOrderTypes() []models.OrderTypeOption {
	return []models.OrderTypeOption{
		{ID: models.OrderTypeDineIn, Name: "Dine-in", IsActive: true},
		{ID: models.OrderTypePickup, Name: "Take Out", IsActive: true},
		{ID: models.OrderTypeDelivery, Name: "Delivery", IsActive: true},
	}
}

func (s *settingsService) SaveOrderType(orderType *models.OrderTypeOption) error {
	if err := s.settingsRepo.UpsertOrderType(orderType); err != nil {
		return fmt.Errorf("failed to save order type: %w", err)
	}
	return nil
}

func (s *settingsService) DeleteOrderType(id string) error {
	err := s.settingsRepo.DeleteOrderType(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderTypeNotFound
		}
		return fmt.Errorf("failed to delete order type: %w", err)
	}
	return nil
}

// GetStoreSettings returns the single settings row, or an empty default
// when the store has never been configured.
func (s *settingsService) GetStoreSettings() (*models.StoreSettings, error) {
	settings, err := s.settingsRepo.GetStoreSettings()
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.StoreSettings{BannerImages: []string{}}, nil
		}
		return nil, fmt.Errorf("failed to get store settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) SaveStoreSettings(settings *models.StoreSettings) error {
	if err := s.settingsRepo.UpsertStoreSettings(settings); err != nil {
		return fmt.Errorf("failed to save store settings: %w", err)
	}
	return nil
}
