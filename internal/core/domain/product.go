package domain

// Product is a stocked item. SKU is the merchant-assigned product code,
// distinct from the storage ID.
type Product struct {
	ID            string  `json:"id"`
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	CategoryID    string  `json:"category_id,omitempty"`
}

// Category groups products under a title.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
