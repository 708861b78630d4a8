package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProduct_MarshalJSON_PriceIsNumber(t *testing.T) {
	p := &Product{
		ID:       "p1",
		Name:     "margherita",
		Price:    decimal.RequireFromString("9.50"),
		Category: &CategoryRef{ID: "c1", Name: "pizza"},
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"price":9.5`) {
		t.Fatalf("expected numeric price, got %s", raw)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := out["price"].(float64); !ok {
		t.Fatalf("price decoded as %T, want number", out["price"])
	}
	if out["name"] != "margherita" || out["id"] != "p1" {
		t.Fatalf("unexpected fields: %v", out)
	}
	if _, ok := out["CategoryID"]; ok {
		t.Fatalf("category id must stay hidden: %v", out)
	}
}
