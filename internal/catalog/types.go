package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/rmorales-dev/tienda-sync/internal/model"
)

// Price accepts both JSON numbers and string-coercible numbers; the
// remote catalog is known to send prices like "1800.00".
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*p = Price(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

// ProductRecord is the wire representation of a product on the remote
// catalog service. Every field may be absent or null.
type ProductRecord struct {
	ID          *int    `json:"id"`
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	Price       *Price  `json:"precio"`
	Image       *string `json:"imagen"`
	Category    *string `json:"categoria_nombre"`
	Stock       *int    `json:"stock"`
}

// Defaults for absent or null remote fields, kept in the remote
// service's language.
const (
	DefaultName        = "Sin nombre"
	DefaultDescription = "Sin descripción"
	DefaultCategory    = "General"
)

// ToModel maps the wire record to the domain model, applying defaults
// for missing fields.
func (rec ProductRecord) ToModel() model.Product {
	p := model.Product{
		Name:        DefaultName,
		Description: DefaultDescription,
		Category:    DefaultCategory,
	}
	if rec.ID != nil {
		p.ID = uint(*rec.ID)
	}
	if rec.Name != nil {
		p.Name = *rec.Name
	}
	if rec.Description != nil {
		p.Description = *rec.Description
	}
	if rec.Price != nil {
		p.Price = float64(*rec.Price)
	}
	if rec.Image != nil {
		p.ImageKey = *rec.Image
	}
	if rec.Category != nil {
		p.Category = *rec.Category
	}
	if rec.Stock != nil {
		p.Stock = *rec.Stock
	}
	return p
}

// FromModel maps a domain product to the wire record.
func FromModel(p model.Product) ProductRecord {
	id := int(p.ID)
	price := Price(p.Price)
	return ProductRecord{
		ID:          &id,
		Name:        &p.Name,
		Description: &p.Description,
		Price:       &price,
		Image:       &p.ImageKey,
		Category:    &p.Category,
		Stock:       &p.Stock,
	}
}
