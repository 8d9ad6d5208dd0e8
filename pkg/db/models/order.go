package models

import (
	"time"

	"github.com/paketshop/storefront-backend/pkg/enums"
)

// Order is the record persisted once per successful checkout submission.
// Status transitions after creation belong to order management, so checkout
// never updates rows here.
type Order struct {
	ID            string            `gorm:"column:id;primaryKey"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	Phone         string            `gorm:"column:phone;not null"`
	TotalUZS      int64             `gorm:"column:total;not null"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'Kutilmoqda'"`
	Date          string            `gorm:"column:date;not null"`
	PaymentMethod string            `gorm:"column:payment_method;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the storage table.
func (Order) TableName() string {
	return "orders"
}
