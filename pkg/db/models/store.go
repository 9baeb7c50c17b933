package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store represents the canonical tenant model and its register settings.
type Store struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string          `gorm:"column:name;not null"`
	Email            *string         `gorm:"column:email"`
	Phone            *string         `gorm:"column:phone"`
	Address          *string         `gorm:"column:address"`
	LogoURL          *string         `gorm:"column:logo_url"`
	Currency         string          `gorm:"column:currency;not null;default:'USD'"`
	Timezone         string          `gorm:"column:timezone;not null;default:'UTC'"`
	TaxRate          decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`
	ReturnPeriodDays int             `gorm:"column:return_period_days;not null;default:30"`
	Theme            string          `gorm:"column:theme;not null;default:'light'"`
	Language         string          `gorm:"column:language;not null;default:'en'"`
	ReceiptTemplate  string          `gorm:"column:receipt_template;not null;default:'standard'"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
