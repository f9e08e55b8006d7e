package service

import (
	"time"

	"github.com/polito-se2-21-r03/spg/internal/models"
)

// Aggregate views are computed on read from the current line-item rows,
// never persisted.

type LineItemView struct {
	ProductID     uint    `json:"productId"`
	Name          string  `json:"name"`
	Amount        uint    `json:"amount"`
	Price         float64 `json:"price"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	Confirmed     bool    `json:"confirmed"`
}

type FarmerOrderView struct {
	Products []LineItemView     `json:"products"`
	ClientID uint               `json:"clientId"`
	Status   models.OrderStatus `json:"status"`
}

type ProductAmount struct {
	ProductID uint `json:"productId"`
	Amount    uint `json:"amount"`
}

type OrderSummary struct {
	OrderID   uint               `json:"orderId"`
	CreatedAt time.Time          `json:"createdAt"`
	Status    models.OrderStatus `json:"status"`
	ClientID  uint               `json:"clientId"`
	Products  []ProductAmount    `json:"products"`
}

// BuildFarmerOrder folds the line items of a single (farmer, order) pair
// into one nested view. Rows must carry their Product and Order
// associations. All rows share the same parent order by join construction,
// so the order-level fields come from the first row. Returns nil when
// there are no rows.
func BuildFarmerOrder(rows []models.OrderProduct) *FarmerOrderView {
	if len(rows) == 0 {
		return nil
	}

	products := make([]LineItemView, 0, len(rows))
	for _, row := range rows {
		products = append(products, LineItemView{
			ProductID:     row.Product.ID,
			Name:          row.Product.Name,
			Amount:        row.Amount,
			Price:         row.Product.Price,
			UnitOfMeasure: row.Product.UnitOfMeasure,
			Confirmed:     row.Confirmed,
		})
	}

	return &FarmerOrderView{
		Products: products,
		ClientID: rows[0].Order.ClientID,
		Status:   rows[0].Order.Status,
	}
}

// GroupFarmerOrders folds a farmer's line items across all orders into one
// summary per distinct order id. Single left-to-right pass: the first
// occurrence of an order id seeds the order-level fields and fixes the
// output position, every occurrence appends one product entry.
func GroupFarmerOrders(rows []models.OrderProduct) []OrderSummary {
	summaries := make([]OrderSummary, 0)
	index := make(map[uint]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.OrderID]
		if !seen {
			i = len(summaries)
			index[row.OrderID] = i
			summaries = append(summaries, OrderSummary{
				OrderID:   row.OrderID,
				CreatedAt: row.Order.CreatedAt,
				Status:    row.Order.Status,
				ClientID:  row.Order.ClientID,
			})
		}
		summaries[i].Products = append(summaries[i].Products, ProductAmount{
			ProductID: row.ProductID,
			Amount:    row.Amount,
		})
	}

	return summaries
}
