package model

import (
	"time"
)

// Product is a catalog product cached in the local store. Records fetched
// from the remote catalog keep their remote id; locally created records
// get a store-generated id (0 means unassigned).
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageKey    string    `json:"image_key"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Stock       int       `gorm:"default:0" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// HasStock reports whether the product can currently be added to a cart.
func (p *Product) HasStock() bool {
	return p.Stock > 0
}
