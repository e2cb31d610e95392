package handlers

import (
	"errors"
	"net/http"

	"oesters_backend/internal/models"
	"oesters_backend/internal/services"
	"oesters_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// cashOnDelivery is the fixed payment option the storefront always offers.
// It is not stored; configured methods appear after it.
var cashOnDelivery = models.PaymentMethod{ID: "cash", Name: "Cash/COD", IsActive: true}

// SettingsHandler serves store configuration: payment methods, order types
// and the store settings row.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// GetPublicPaymentMethods returns the checkout payment options: Cash/COD
// first, then the active configured methods.
func (h *SettingsHandler) GetPublicPaymentMethods(c *gin.Context) {
	methods, err := h.settingsService.GetPaymentMethods(true)
	if err != nil {
		utils.LogError(err, "GetPublicPaymentMethods: Error from settingsService.GetPaymentMethods")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment methods.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, append([]models.PaymentMethod{cashOnDelivery}, methods...))
}

// GetPaymentMethods returns every configured method for the admin surface.
func (h *SettingsHandler) GetPaymentMethods(c *gin.Context) {
	methods, err := h.settingsService.GetPaymentMethods(false)
	if err != nil {
		utils.LogError(err, "GetPaymentMethods: Error from settingsService.GetPaymentMethods")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment methods.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, methods)
}

// CreatePaymentMethod handles admin creation of a payment method.
func (h *SettingsHandler) CreatePaymentMethod(c *gin.Context) {
	var method models.PaymentMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.settingsService.CreatePaymentMethod(&method); err != nil {
		utils.LogError(err, "CreatePaymentMethod: Error from settingsService.CreatePaymentMethod")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create payment method.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, method)
}

// UpdatePaymentMethod handles admin edits to a payment method.
func (h *SettingsHandler) UpdatePaymentMethod(c *gin.Context) {
	var method models.PaymentMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	method.ID = c.Param("id")

	if err := h.settingsService.UpdatePaymentMethod(&method); err != nil {
		if errors.Is(err, services.ErrPaymentMethodNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment method not found.", err.Error()))
			return
		}
		utils.LogError(err, "UpdatePaymentMethod: Error from settingsService.UpdatePaymentMethod")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update payment method.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, method)
}

// DeletePaymentMethod handles admin deletion of a payment method.
func (h *SettingsHandler) DeletePaymentMethod(c *gin.Context) {
	err := h.settingsService.DeletePaymentMethod(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPaymentMethodNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment method not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeletePaymentMethod: Error from settingsService.DeletePaymentMethod")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete payment method.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted successfully"})
}

// GetPublicOrderTypes returns the active fulfillment channels for checkout.
func (h *SettingsHandler) GetPublicOrderTypes(c *gin.Context) {
	h.respondOrderTypes(c, true)
}

// GetOrderTypes returns every fulfillment channel for the admin surface.
func (h *SettingsHandler) GetOrderTypes(c *gin.Context) {
	h.respondOrderTypes(c, false)
}

func (h *SettingsHandler) respondOrderTypes(c *gin.Context, activeOnly bool) {
	types, err := h.settingsService.GetOrderTypes(activeOnly)
	if err != nil {
		utils.LogError(err, "GetOrderTypes: Error from settingsService.GetOrderTypes")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order types.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, types)
}

// SaveOrderType creates or updates a fulfillment channel.
func (h *SettingsHandler) SaveOrderType(c *gin.Context) {
	var orderType models.OrderTypeOption
	if err := c.ShouldBindJSON(&orderType); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.settingsService.SaveOrderType(&orderType); err != nil {
		utils.LogError(err, "SaveOrderType: Error from settingsService.SaveOrderType")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save order type.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, orderType)
}

// DeleteOrderType removes a fulfillment channel.
func (h *SettingsHandler) DeleteOrderType(c *gin.Context) {
	err := h.settingsService.DeleteOrderType(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderTypeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order type not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteOrderType: Error from settingsService.DeleteOrderType")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete order type.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order type deleted successfully"})
}

// GetStoreSettings returns the store configuration row, or empty defaults.
func (h *SettingsHandler) GetStoreSettings(c *gin.Context) {
	settings, err := h.settingsService.GetStoreSettings()
	if err != nil {
		utils.LogError(err, "GetStoreSettings: Error from settingsService.GetStoreSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch store settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveStoreSettings upserts the store configuration row.
func (h *SettingsHandler) SaveStoreSettings(c *gin.Context) {
	var settings models.StoreSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.settingsService.SaveStoreSettings(&settings); err != nil {
		utils.LogError(err, "SaveStoreSettings: Error from settingsService.SaveStoreSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save store settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, settings)
}
