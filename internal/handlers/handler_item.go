package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/findash/finance_dashboard_app/internal/core/ports/services"
	"github.com/findash/finance_dashboard_app/internal/csvimport"
	"github.com/findash/finance_dashboard_app/internal/dto"
	"github.com/findash/finance_dashboard_app/internal/middleware"
)

// itemHandler handles HTTP requests related to financial items.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

func newItemHandler(is portssvc.ItemSvcFacade) *itemHandler {
	return &itemHandler{itemService: is}
}

// registerItemRoutes registers routes related to financial items.
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := newItemHandler(itemService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.PUT("/order", h.reorderItems)
		items.GET("/order", h.itemOrder)
		items.GET("/:id", h.getItem)
		items.PATCH("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)

		items.POST("/:id/entries", h.addEntry)
		items.DELETE("/:id/entries", h.clearEntries)
		items.DELETE("/:id/entries/:entryID", h.deleteEntry)
		items.POST("/:id/entries/import", h.importEntries)
	}
}

// createItem godoc
// @Summary Create a financial item
// @Description Creates an item of the given type, seeds its opening transaction and computes its initial metrics
// @Tags items
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} domain.Item
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// listItems godoc
// @Summary List all financial items
// @Tags items
// @Produce  json
// @Success 200 {array} domain.Item
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// getItem godoc
// @Summary Get a financial item
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} domain.Item
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	item, err := h.itemService.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// updateItem godoc
// @Summary Update a financial item's display fields
// @Description Changes name, color or visibility. Type and transaction history are immutable.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} domain.Item
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id} [patch]
func (h *itemHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteItem godoc
// @Summary Delete a financial item
// @Description Removes the item and its display ordering entry. Goals referencing it are left alone.
// @Tags items
// @Param   id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id} [delete]
func (h *itemHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete item")
		return
	}
	c.Status(http.StatusNoContent)
}

// addEntry godoc
// @Summary Add a transaction to an item
// @Description Appends a dated transaction, re-sorts the history and recomputes metrics
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   entry body dto.AddEntryRequest true "Transaction details"
// @Success 200 {object} domain.Item
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id}/entries [post]
func (h *itemHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddEntry", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.itemService.AddEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add entry")
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteEntry godoc
// @Summary Delete one transaction from an item
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   entryID path string true "Transaction ID"
// @Success 200 {object} domain.Item
// @Failure 404 {object} map[string]string "Item or transaction not found"
// @Router /items/{id}/entries/{entryID} [delete]
func (h *itemHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	item, err := h.itemService.DeleteEntry(c.Request.Context(), c.Param("id"), c.Param("entryID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}
	c.JSON(http.StatusOK, item)
}

// clearEntries godoc
// @Summary Delete every transaction of an item
// @Description Empties the transaction history; metrics collapse to the empty bundle
// @Tags items
// @Produce  json
// @Param   id path string true "Item ID"
// @Success 200 {object} domain.Item
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id}/entries [delete]
func (h *itemHandler) clearEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	item, err := h.itemService.ClearEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to clear entries")
		return
	}
	c.JSON(http.StatusOK, item)
}

// importEntries godoc
// @Summary Import transactions from a CSV file
// @Description Accepts a multipart upload, detects the date/amount/description columns from the header row and appends every parseable data row. Rows that fail to parse or carry a future date are skipped and counted, never fatal.
// @Tags items
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "Item ID"
// @Param   file formData file true "CSV file"
// @Success 200 {object} dto.ImportEntriesResponse
// @Failure 400 {object} map[string]string "Unusable CSV"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{id}/entries/import [post]
func (h *itemHandler) importEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("CSV import without file field", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file is required in the 'file' field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	parsed, err := csvimport.Parse(file)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to parse CSV")
		return
	}

	item, imported, err := h.itemService.ImportEntries(c.Request.Context(), c.Param("id"), parsed.Rows)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import entries")
		return
	}

	skipped := parsed.Skipped + len(parsed.Rows) - imported
	logger.Info("CSV import finished",
		"item_id", c.Param("id"),
		"imported", imported,
		"skipped", skipped)
	c.JSON(http.StatusOK, dto.ImportEntriesResponse{
		Imported: imported,
		Skipped:  skipped,
		Item:     *item,
	})
}

// reorderItems godoc
// @Summary Replace the display ordering of items
// @Tags items
// @Accept  json
// @Param   order body dto.ReorderItemsRequest true "Item ids in display order"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown or missing item ids"
// @Router /items/order [put]
func (h *itemHandler) reorderItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReorderItems", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.itemService.ReorderItems(c.Request.Context(), req.Order); err != nil {
		respondServiceError(c, logger, err, "Failed to reorder items")
		return
	}
	c.Status(http.StatusNoContent)
}

// itemOrder godoc
// @Summary Get the display ordering of items
// @Tags items
// @Produce  json
// @Success 200 {array} string
// @Router /items/order [get]
func (h *itemHandler) itemOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	order, err := h.itemService.ItemOrder(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get item order")
		return
	}
	c.JSON(http.StatusOK, order)
}
