package models

import "time"

// Product is the catalog read model consumed by the cart. The admin console
// owns writes; this service only reads.
type Product struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Name             string    `gorm:"column:name;not null"`
	PriceUZS         int64     `gorm:"column:price;not null"`
	Category         string    `gorm:"column:category;not null"`
	Image            string    `gorm:"column:image"`
	ShortDescription string    `gorm:"column:short_description"`
	ItemsPerPackage  int       `gorm:"column:items_per_package;not null;default:1"`
	Stock            *int      `gorm:"column:stock"`
	IsActive         bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the storage table.
func (Product) TableName() string {
	return "products"
}
