package handlers

import (
	"errors"
	"net/http"

	"oesters_backend/internal/models"
	"oesters_backend/internal/services"
	"oesters_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public catalog reads and the admin catalog CRUD.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// GetCategories handles fetching all categories, ordered for display.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		utils.LogError(err, "GetCategories: Error from catalogService.GetCategories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch categories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetMenuItems handles fetching the full menu snapshot.
func (h *CatalogHandler) GetMenuItems(c *gin.Context) {
	items, err := h.catalogService.GetMenuItems()
	if err != nil {
		utils.LogError(err, "GetMenuItems: Error from catalogService.GetMenuItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem handles fetching a single menu item by ID.
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	item, err := h.catalogService.GetMenuItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetMenuItem: Error from catalogService.GetMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateCategory handles admin category creation.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.catalogService.CreateCategory(&category); err != nil {
		utils.LogError(err, "CreateCategory: Error from catalogService.CreateCategory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create category.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles admin category renames.
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	category.ID = c.Param("id")

	if err := h.catalogService.UpdateCategory(&category); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", err.Error()))
			return
		}
		utils.LogError(err, "UpdateCategory: Error from catalogService.UpdateCategory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update category.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, category)
}

type reorderCategoriesRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required"`
}

// ReorderCategories handles rewriting the category display order.
func (h *CatalogHandler) ReorderCategories(c *gin.Context) {
	var req reorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	categories, err := h.catalogService.ReorderCategories(req.OrderedIDs)
	if err != nil {
		utils.LogError(err, "ReorderCategories: Error from catalogService.ReorderCategories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reorder categories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

// DeleteCategory handles admin category deletion. Categories that still hold
// menu items are refused.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	err := h.catalogService.DeleteCategory(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", err.Error()))
			return
		}
		if errors.Is(err, services.ErrCategoryNotEmpty) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cannot delete a category that still has products.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteCategory: Error from catalogService.DeleteCategory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete category.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// CreateMenuItem handles admin menu item creation.
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.catalogService.CreateMenuItem(&item); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Category does not exist.", err.Error()))
			return
		}
		utils.LogError(err, "CreateMenuItem: Error from catalogService.CreateMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles admin menu item edits.
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	item.ID = c.Param("id")

	if err := h.catalogService.UpdateMenuItem(&item); err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		utils.LogError(err, "UpdateMenuItem: Error from catalogService.UpdateMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles admin menu item deletion.
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	err := h.catalogService.DeleteMenuItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteMenuItem: Error from catalogService.DeleteMenuItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete menu item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
