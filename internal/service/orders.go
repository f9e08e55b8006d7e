package service

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/repository"
)

type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// OrdersByFarmer returns one summary per order containing at least one of
// the farmer's products, in first-seen order of the underlying rows.
func (s *OrderService) OrdersByFarmer(farmerID uint) ([]OrderSummary, error) {
	rows, err := s.orders.LineItemsByFarmer(farmerID)
	if err != nil {
		return nil, fmt.Errorf("loading line items for farmer %d: %w", farmerID, err)
	}
	return GroupFarmerOrders(rows), nil
}

// OrderByFarmer returns the nested view of one order restricted to the
// farmer's own line items, or nil when the farmer has none in that order.
func (s *OrderService) OrderByFarmer(farmerID, orderID uint) (*FarmerOrderView, error) {
	rows, err := s.orders.LineItemsByFarmerAndOrder(farmerID, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading line items for farmer %d order %d: %w", farmerID, orderID, err)
	}
	return BuildFarmerOrder(rows), nil
}

type LineConfirmation struct {
	ProductID uint
	Confirmed bool
}

type LineStatusUpdate struct {
	ProductID uint
	Status    string
}

// LineItemResult reports the outcome of one line-item mutation within a
// batch. Updated is the number of rows matched: zero means the line item
// does not exist or belongs to another farmer, and nothing was written.
type LineItemResult struct {
	ProductID uint   `json:"productId"`
	Updated   int64  `json:"updated"`
	Error     string `json:"error,omitempty"`
}

// ConfirmLineItems applies each confirmation independently, scoped by
// (farmerId, orderId, productId). The order must exist before any row is
// touched. Mutations target disjoint rows, so they run fanned out and are
// jointly awaited; every item's outcome is collected so a partial failure
// names the failing line items instead of collapsing into an opaque error.
func (s *OrderService) ConfirmLineItems(farmerID, orderID uint, items []LineConfirmation) ([]LineItemResult, error) {
	if err := s.checkBatch(orderID, len(items)); err != nil {
		return nil, err
	}

	results := make([]LineItemResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item LineConfirmation) {
			defer wg.Done()
			updated, err := s.orders.SetLineConfirmed(farmerID, orderID, item.ProductID, item.Confirmed)
			results[i] = lineResult(item.ProductID, updated, err)
		}(i, item)
	}
	wg.Wait()

	return results, batchError(results)
}

// UpdateLineStatuses is the fulfillment-status twin of ConfirmLineItems.
func (s *OrderService) UpdateLineStatuses(farmerID, orderID uint, items []LineStatusUpdate) ([]LineItemResult, error) {
	if err := s.checkBatch(orderID, len(items)); err != nil {
		return nil, err
	}

	results := make([]LineItemResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item LineStatusUpdate) {
			defer wg.Done()
			updated, err := s.orders.SetLineStatus(farmerID, orderID, item.ProductID, item.Status)
			results[i] = lineResult(item.ProductID, updated, err)
		}(i, item)
	}
	wg.Wait()

	return results, batchError(results)
}

func (s *OrderService) checkBatch(orderID uint, size int) error {
	if size == 0 {
		return ErrNoLineItems
	}
	exists, err := s.orders.Exists(orderID)
	if err != nil {
		return fmt.Errorf("checking order %d: %w", orderID, err)
	}
	if !exists {
		return ErrOrderNotFound
	}
	return nil
}

func lineResult(productID uint, updated int64, err error) LineItemResult {
	result := LineItemResult{ProductID: productID, Updated: updated}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func batchError(results []LineItemResult) error {
	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d line-item updates failed", failed, len(results))
	}
	return nil
}

// CancelableDestroy removes the order and its line items, but only when
// the order is awaiting cancelation.
func (s *OrderService) CancelableDestroy(orderID uint) error {
	order, err := s.orders.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("loading order %d: %w", orderID, err)
	}
	if order.Status != models.OrderStatusPendingCancelation {
		return ErrOrderNotCancelable
	}
	return s.orders.Destroy(orderID)
}
