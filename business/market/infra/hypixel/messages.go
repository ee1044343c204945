// Package hypixel fetches the bazaar and item-catalog feeds from the
// Hypixel public API.
package hypixel

// summaryEntry is one order book level as served by the API, best first.
type summaryEntry struct {
	Amount       int64   `json:"amount"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

// quickStatus carries the weekly traded volumes for a product.
type quickStatus struct {
	BuyMovingWeek  int64 `json:"buyMovingWeek"`
	SellMovingWeek int64 `json:"sellMovingWeek"`
}

type bazaarProduct struct {
	ProductID   string         `json:"product_id"`
	BuySummary  []summaryEntry `json:"buy_summary"`
	SellSummary []summaryEntry `json:"sell_summary"`
	QuickStatus quickStatus    `json:"quick_status"`
}

type bazaarResponse struct {
	Success  bool                     `json:"success"`
	Products map[string]bazaarProduct `json:"products"`
}

type itemEntry struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NPCSellPrice *float64 `json:"npc_sell_price,omitempty"`
}

type itemsResponse struct {
	Success bool        `json:"success"`
	Items   []itemEntry `json:"items"`
}
