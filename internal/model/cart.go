package model

import (
	"time"
)

// CartLine is one consolidated cart entry: a single product id with its
// merged quantity and a denormalized snapshot of the product's display
// fields taken when the line was first added. The snapshot keeps the cart
// renderable even if the product is later changed or deleted.
//
// The unique index on ProductID backs the atomic add-or-increment upsert;
// all mutations must go through the cart service.
type CartLine struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProductID   uint      `gorm:"not null;uniqueIndex" json:"product_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageKey    string    `json:"image_key"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Stock       int       `gorm:"default:0" json:"stock"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}

// Subtotal is the line's contribution to the cart total.
func (l *CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Product rebuilds the product snapshot carried by the line.
func (l *CartLine) Product() Product {
	return Product{
		ID:          l.ProductID,
		Name:        l.Name,
		Description: l.Description,
		Price:       l.Price,
		ImageKey:    l.ImageKey,
		Category:    l.Category,
		Stock:       l.Stock,
	}
}

// NewCartLine builds a line for a product with the given quantity.
func NewCartLine(p Product, quantity int) CartLine {
	return CartLine{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageKey:    p.ImageKey,
		Category:    p.Category,
		Stock:       p.Stock,
		Quantity:    quantity,
	}
}

// Cart is the derived view over the current cart lines. It is never
// persisted; it is rebuilt from the store on demand.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// TotalQuantity is the sum of quantities across all lines.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity across all lines.
func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.Subtotal()
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
