package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item on the store's shelf.
type Product struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID           uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	CategoryID        *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	SupplierID        *uuid.UUID      `gorm:"column:supplier_id;type:uuid"`
	Name              string          `gorm:"column:name;not null"`
	Description       *string         `gorm:"column:description"`
	SKU               string          `gorm:"column:sku;not null"`
	Barcode           *string         `gorm:"column:barcode"`
	CostPrice         decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null;default:0"`
	SellingPrice      decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2);not null"`
	StockQuantity     int             `gorm:"column:stock_quantity;not null;default:0"`
	MinStockThreshold int             `gorm:"column:min_stock_threshold;not null;default:0"`
	Images            pq.StringArray  `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive          bool            `gorm:"column:is_active;not null;default:true"`
	CreatedBy         *uuid.UUID      `gorm:"column:created_by;type:uuid"`
	Category          *Category       `gorm:"foreignKey:CategoryID"`
	Supplier          *Supplier       `gorm:"foreignKey:SupplierID"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
