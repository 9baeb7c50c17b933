package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor sourcing products for a store.
type Supplier struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID  `gorm:"column:store_id;type:uuid;not null"`
	Name          string     `gorm:"column:name;not null"`
	Email         *string    `gorm:"column:email"`
	Phone         *string    `gorm:"column:phone"`
	Address       *string    `gorm:"column:address"`
	ContactPerson *string    `gorm:"column:contact_person"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	CreatedBy     *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
