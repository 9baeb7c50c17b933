package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
)

// StoreDTO exposes the store profile and register settings.
type StoreDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Email            *string         `json:"email,omitempty"`
	Phone            *string         `json:"phone,omitempty"`
	Address          *string         `json:"address,omitempty"`
	LogoURL          *string         `json:"logo_url,omitempty"`
	Currency         string          `json:"currency"`
	Timezone         string          `json:"timezone"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	ReturnPeriodDays int             `json:"return_period_days"`
	Theme            string          `json:"theme"`
	Language         string          `json:"language"`
	ReceiptTemplate  string          `json:"receipt_template"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		Address:          m.Address,
		LogoURL:          m.LogoURL,
		Currency:         m.Currency,
		Timezone:         m.Timezone,
		TaxRate:          m.TaxRate,
		ReturnPeriodDays: m.ReturnPeriodDays,
		Theme:            m.Theme,
		Language:         m.Language,
		ReceiptTemplate:  m.ReceiptTemplate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
