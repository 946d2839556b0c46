package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"invoicing-backend/internal/auth"
	service "invoicing-backend/internal/services/invoice"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	svc *service.Service
}

func NewInvoiceHandler(svc *service.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Create accepts the client fields and amounts; no field is mandatory. An
// empty request body creates an invoice with all defaults.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var in service.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		return
	}

	inv, err := h.svc.Create(in, auth.UsernameFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not create invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "invoice": inv})
}

// List returns all non-deleted invoices, newest first, as a bare array.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not list invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// Get answers 404 for deleted and never-existed ids alike; callers cannot
// distinguish the two. A non-numeric id behaves like a missing row.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false})
		return
	}
	inv, err := h.svc.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not fetch invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "invoice": inv})
}

// Delete soft-deletes and reports success whether or not the id existed,
// including unparseable ids.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	if err := h.svc.SoftDelete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not delete invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
