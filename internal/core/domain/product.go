package domain

import (
	"encoding/json"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Product belongs to exactly one category.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  string          `json:"-"`
	Category    *CategoryRef    `json:"category"`
	IsActive    bool            `json:"isActive"`
	DeletedAt   *time.Time      `json:"deletedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MarshalJSON writes the price as a JSON number.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price json.Number `json:"price"`
	}{product: product(p), Price: json.Number(p.Price.String())})
}

func (p *Product) Validate() error {
	n := utf8.RuneCountInString(p.Name)
	if n == 0 {
		return ErrProductNameRequired
	}
	if n > 50 {
		return ErrProductNameLength
	}
	if err := validateDescription(p.Description); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
