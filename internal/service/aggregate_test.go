package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/service"
)

func lineItem(orderID, productID, amount uint, order models.Order) models.OrderProduct {
	return models.OrderProduct{
		OrderID:   orderID,
		ProductID: productID,
		Amount:    amount,
		Order:     order,
	}
}

func TestGroupFarmerOrders(t *testing.T) {

	createdAt := time.Date(2021, 11, 15, 10, 0, 0, 0, time.UTC)
	order1 := models.Order{ID: 1, ClientID: 3, Status: models.OrderStatusCreated, CreatedAt: createdAt}
	order2 := models.Order{ID: 2, ClientID: 4, Status: models.OrderStatusDelivered, CreatedAt: createdAt.Add(time.Hour)}

	t.Run("Groups line items into one summary per distinct order", func(t *testing.T) {
		rows := []models.OrderProduct{
			lineItem(1, 5, 2, order1),
			lineItem(1, 6, 1, order1),
			lineItem(2, 5, 3, order2),
		}

		summaries := service.GroupFarmerOrders(rows)

		assert.Len(t, summaries, 2)
		assert.Equal(t, uint(1), summaries[0].OrderID)
		assert.Equal(t, []service.ProductAmount{
			{ProductID: 5, Amount: 2},
			{ProductID: 6, Amount: 1},
		}, summaries[0].Products)
		assert.Equal(t, uint(2), summaries[1].OrderID)
		assert.Equal(t, []service.ProductAmount{
			{ProductID: 5, Amount: 3},
		}, summaries[1].Products)
	})

	t.Run("Order-level fields come from the joined order", func(t *testing.T) {
		summaries := service.GroupFarmerOrders([]models.OrderProduct{lineItem(2, 5, 3, order2)})

		assert.Len(t, summaries, 1)
		assert.Equal(t, uint(4), summaries[0].ClientID)
		assert.Equal(t, models.OrderStatusDelivered, summaries[0].Status)
		assert.Equal(t, order2.CreatedAt, summaries[0].CreatedAt)
	})

	t.Run("Preserves first-seen order of order ids", func(t *testing.T) {
		rows := []models.OrderProduct{
			lineItem(2, 5, 3, order2),
			lineItem(1, 5, 2, order1),
			lineItem(2, 6, 1, order2),
			lineItem(1, 6, 1, order1),
		}

		summaries := service.GroupFarmerOrders(rows)

		assert.Len(t, summaries, 2)
		assert.Equal(t, uint(2), summaries[0].OrderID)
		assert.Equal(t, uint(1), summaries[1].OrderID)
		assert.Len(t, summaries[0].Products, 2)
		assert.Len(t, summaries[1].Products, 2)
	})

	t.Run("Empty input yields an empty slice", func(t *testing.T) {
		summaries := service.GroupFarmerOrders(nil)
		assert.NotNil(t, summaries)
		assert.Len(t, summaries, 0)
	})
}

func TestBuildFarmerOrder(t *testing.T) {

	order := models.Order{ID: 7, ClientID: 3, Status: models.OrderStatusCreated}
	apples := models.Product{ID: 5, Name: "Apples", Price: 1.5, UnitOfMeasure: "kg"}
	eggs := models.Product{ID: 6, Name: "Eggs", Price: 0.3, UnitOfMeasure: "unit"}

	t.Run("Builds the nested view from flat rows", func(t *testing.T) {
		rows := []models.OrderProduct{
			{OrderID: 7, ProductID: 5, Amount: 2, Confirmed: true, Order: order, Product: apples},
			{OrderID: 7, ProductID: 6, Amount: 12, Confirmed: false, Order: order, Product: eggs},
		}

		view := service.BuildFarmerOrder(rows)

		assert.NotNil(t, view)
		assert.Equal(t, uint(3), view.ClientID)
		assert.Equal(t, models.OrderStatusCreated, view.Status)
		assert.Equal(t, []service.LineItemView{
			{ProductID: 5, Name: "Apples", Amount: 2, Price: 1.5, UnitOfMeasure: "kg", Confirmed: true},
			{ProductID: 6, Name: "Eggs", Amount: 12, Price: 0.3, UnitOfMeasure: "unit", Confirmed: false},
		}, view.Products)
	})

	t.Run("No matching line items yields an absent view", func(t *testing.T) {
		assert.Nil(t, service.BuildFarmerOrder(nil))
		assert.Nil(t, service.BuildFarmerOrder([]models.OrderProduct{}))
	})
}
