package models

import (
	"time"
)

// Invoice is the sole persisted entity. Rows are never hard-deleted by the
// application; DeletedFlag marks a row as logically removed while keeping it
// visible to backup exports.
type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceNo   string    `gorm:"index" json:"invoice_no"` // generated, not unique-enforced
	CompanyName string    `json:"company_name"`
	TaxOffice   string    `json:"tax_office"`
	TaxNumber   string    `json:"tax_number"`
	ClientName  string    `json:"client_name"`
	ClientTaxNo string    `json:"client_taxno"`
	ClientIDNo  string    `json:"client_id_no"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Plate       string    `json:"plate"`
	AmountNet   float64   `json:"amount_net"`
	VATRate     float64   `json:"vat_rate"`
	AmountGross float64   `json:"amount_gross"` // computed once at creation, never recomputed
	Notes       string    `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	// UpdatedAt is written only by the soft-delete path, so gorm's automatic
	// update tracking is disabled for it.
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedFlag bool       `gorm:"default:false" json:"deleted_flag"`
}
