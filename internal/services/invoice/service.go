package invoice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"invoicing-backend/internal/models"
	"invoicing-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("invoice not found")

// Issuer fields are fixed service-side values, never taken from user input.
const (
	issuerCompanyName = "Grand® Filo Car"
	issuerTaxOffice   = "İstanbul"
	issuerTaxNumber   = "1234567890"
)

// DefaultVATRate applies when the caller omits vat_rate.
const DefaultVATRate = 18

// CreateInput carries the user-supplied invoice fields. Nothing is mandatory:
// absent amounts fall back to defaults, strings stay empty. AmountNet and
// VATRate are pointers so "absent" and "zero" stay distinguishable.
type CreateInput struct {
	ClientName  string   `json:"client_name"`
	ClientTaxNo string   `json:"client_taxno"`
	ClientIDNo  string   `json:"client_id_no"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Plate       string   `json:"plate"`
	AmountNet   *float64 `json:"amount_net"`
	VATRate     *float64 `json:"vat_rate"`
	Notes       string   `json:"notes"`
}

type Service struct {
	repo *repository.InvoiceRepository
}

func NewService(repo *repository.InvoiceRepository) *Service {
	return &Service{repo: repo}
}

// Create persists a new invoice with derived fields filled in and returns the
// full row including its assigned id.
func (s *Service) Create(in CreateInput, createdBy string) (*models.Invoice, error) {
	net := 0.0
	if in.AmountNet != nil {
		net = *in.AmountNet
	}
	vat := float64(DefaultVATRate)
	if in.VATRate != nil {
		vat = *in.VATRate
	}

	now := time.Now()
	inv := &models.Invoice{
		InvoiceNo:   GenerateNumber(now),
		CompanyName: issuerCompanyName,
		TaxOffice:   issuerTaxOffice,
		TaxNumber:   issuerTaxNumber,
		ClientName:  in.ClientName,
		ClientTaxNo: in.ClientTaxNo,
		ClientIDNo:  in.ClientIDNo,
		Phone:       in.Phone,
		Email:       in.Email,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Plate:       in.Plate,
		AmountNet:   net,
		VATRate:     vat,
		AmountGross: GrossAmount(net, vat),
		Notes:       in.Notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

func (s *Service) List() ([]models.Invoice, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id uint) (*models.Invoice, error) {
	inv, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

// SoftDelete always reports success, even for ids that do not exist.
func (s *Service) SoftDelete(id uint) error {
	return s.repo.SoftDelete(id)
}

// ExportAll returns every row including soft-deleted ones.
func (s *Service) ExportAll() ([]models.Invoice, error) {
	return s.repo.GetAll()
}

// GrossAmount computes net + net*vat/100, rounded half-up to 2 decimal
// places. Done in decimal arithmetic so amounts like 250.555 at 20% come out
// as 300.67 rather than a float artifact.
func GrossAmount(net, vatRate float64) float64 {
	n := decimal.NewFromFloat(net)
	rate := decimal.NewFromFloat(vatRate).Div(decimal.NewFromInt(100))
	gross := n.Add(n.Mul(rate)).Round(2)
	f, _ := gross.Float64()
	return f
}

// GenerateNumber builds INV-<YYYYMMDD>-<last 4 digits of epoch millis>.
// Two creations within the same few milliseconds may collide; the suffix is
// a human-readable discriminator, not a uniqueness guarantee.
func GenerateNumber(t time.Time) string {
	millis := strconv.FormatInt(t.UnixMilli(), 10)
	return fmt.Sprintf("INV-%s-%s", t.Format("20060102"), millis[len(millis)-4:])
}
