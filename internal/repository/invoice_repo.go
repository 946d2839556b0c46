package repository

import (
	"time"

	"invoicing-backend/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts the invoice and fills in the assigned ID, so the caller gets
// the full persisted row from a single statement.
func (r *InvoiceRepository) Create(inv *models.Invoice) error {
	return r.db.Create(inv).Error
}

// List returns all non-deleted invoices, newest first (ids are monotonic).
func (r *InvoiceRepository) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("deleted_flag = ?", false).Order("id DESC").Find(&invoices).Error
	return invoices, err
}

// GetByID returns a single non-deleted invoice. A soft-deleted row is
// indistinguishable from a missing one: both yield gorm.ErrRecordNotFound.
func (r *InvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.Where("id = ? AND deleted_flag = ?", id, false).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// SoftDelete flags the invoice as deleted and stamps updated_at. Missing ids
// are a silent no-op; the row count is deliberately not checked.
func (r *InvoiceRepository) SoftDelete(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_flag": true, "updated_at": &now}).Error
}

// GetAll returns every row including soft-deleted ones, in insertion order.
// Used by the backup export, which is a full unfiltered dump.
func (r *InvoiceRepository) GetAll() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Order("id ASC").Find(&invoices).Error
	return invoices, err
}
