package domain

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name     TEXT,
//     product_category TEXT,
//     normal_price     NUMERIC,
//     sale_price       NUMERIC,
//     rating           NUMERIC,
//     review_count     INT,
//     features         JSONB,
//     quantity         NUMERIC,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName     string                      `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string                      `gorm:"column:product_category;type:text" json:"product_category"`
	NormalPrice     float64                     `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	SalePrice       float64                     `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Rating          float64                     `gorm:"column:rating;type:numeric" json:"rating"`
	ReviewCount     int                         `gorm:"column:review_count" json:"review_count"`
	Features        datatypes.JSONSlice[string] `gorm:"column:features;type:jsonb" json:"features"`
	Quantity        float64                     `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt       time.Time                   `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ToItem maps a catalog row onto the scoring model. A sale price below the
// normal price becomes the effective price; the normal price is kept as the
// original price.
func (p Product) ToItem() Item {
	item := Item{
		ID:          strconv.FormatUint(p.ID, 10),
		Name:        p.ProductName,
		Price:       p.NormalPrice,
		Category:    p.ProductCategory,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Features:    append([]string(nil), p.Features...),
		InStock:     p.Quantity > 0,
	}

	if p.SalePrice > 0 && p.SalePrice < p.NormalPrice {
		original := p.NormalPrice
		item.Price = p.SalePrice
		item.OriginalPrice = &original
	}

	return item
}

// ProductsToItems converts in order.
func ProductsToItems(products []Product) []Item {
	items := make([]Item, 0, len(products))
	for _, p := range products {
		items = append(items, p.ToItem())
	}
	return items
}
