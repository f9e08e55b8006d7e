package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/polito-se2-21-r03/spg/internal/handlers"
	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/repository"
	"github.com/polito-se2-21-r03/spg/internal/service"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	// In-memory sqlite rejects concurrent writers, so serialize the
	// confirm/status fan-out through a single connection.
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("failed to get sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = testDB.AutoMigrate(&models.User{}, &models.Wallet{}, &models.Product{}, &models.Order{}, &models.OrderProduct{})
	if err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	return testDB
}

func performJSONRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func setupFarmerRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB := openTestDB(t, "farmerhandler")

	users := repository.NewGormUserRepository(testDB)
	products := repository.NewGormProductRepository(testDB)
	orders := repository.NewGormOrderRepository(testDB)
	handler := handlers.NewFarmerHandler(users, products, service.NewOrderService(orders), service.NewProductService(products))

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/farmer", handler.GetAllFarmers)
		farmer := api.Group("/farmer/:farmerId")
		farmer.GET("/product", handler.GetFarmerProducts)
		farmer.PUT("/product/:productId", handler.UpdateProduct)
		farmer.GET("/order", handler.GetFarmerOrders)
		farmer.GET("/order/:orderId", handler.GetFarmerOrder)
		farmer.POST("/order/:orderId/confirm", handler.ConfirmOrderProducts)
		farmer.POST("/order/:orderId/status", handler.UpdateOrderProductStatus)
	}

	return r, testDB
}

func seedMarketplace(t *testing.T, testDB *gorm.DB) {
	users := []models.User{
		{ID: 1, Name: "Carl", Email: "carl@example.com", Role: models.RoleClient},
		{ID: 9, Name: "Anna", Email: "anna@example.com", Role: models.RoleFarmer},
		{ID: 10, Name: "Bruno", Email: "bruno@example.com", Role: models.RoleFarmer},
	}
	products := []models.Product{
		{ID: 5, Name: "Apples", Price: 1.5, UnitOfMeasure: "kg", Quantity: 100, ProducerID: 9},
		{ID: 6, Name: "Eggs", Price: 0.3, UnitOfMeasure: "unit", Quantity: 100, ProducerID: 9},
		{ID: 7, Name: "Honey", Price: 6.0, UnitOfMeasure: "jar", Quantity: 100, ProducerID: 10},
	}
	orders := []models.Order{
		{ID: 1, ClientID: 1, Status: models.OrderStatusCreated},
		{ID: 2, ClientID: 1, Status: models.OrderStatusCreated},
	}
	lineItems := []models.OrderProduct{
		{OrderID: 1, ProductID: 5, UserID: 9, Amount: 2, Price: 1.5},
		{OrderID: 1, ProductID: 6, UserID: 9, Amount: 1, Price: 0.3},
		{OrderID: 1, ProductID: 7, UserID: 10, Amount: 1, Price: 6.0},
		{OrderID: 2, ProductID: 5, UserID: 9, Amount: 3, Price: 1.5},
	}

	for _, seed := range []interface{}{&users, &products, &orders, &lineItems} {
		if err := testDB.Create(seed).Error; err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}

	t.Cleanup(func() {
		testDB.Where("1 = 1").Delete(&models.OrderProduct{})
		testDB.Where("1 = 1").Delete(&models.Order{})
		testDB.Where("1 = 1").Delete(&models.Product{})
		testDB.Where("1 = 1").Delete(&models.User{})
	})
}

func TestGetFarmerOrdersHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	t.Run("Returns one summary per order with the farmer's products", func(t *testing.T) {
		recorder := performJSONRequest(router, http.MethodGet, "/api/farmer/9/order", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var summaries []service.OrderSummary
		err := json.Unmarshal(recorder.Body.Bytes(), &summaries)
		assert.NoError(t, err)
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

	t.Run("Farmer without orders gets an empty array", func(t *testing.T) {
		recorder := performJSONRequest(router, http.MethodGet, "/api/farmer/999/order", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "[]", recorder.Body.String())
	})
}

func TestGetFarmerOrderHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	t.Run("Returns the nested order view scoped to the farmer", func(t *testing.T) {
		recorder := performJSONRequest(router, http.MethodGet, "/api/farmer/9/order/1", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Order *service.FarmerOrderView `json:"order"`
		}
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.NotNil(t, response.Order)
		assert.Equal(t, uint(1), response.Order.ClientID)
		assert.Equal(t, models.OrderStatusCreated, response.Order.Status)
		assert.Equal(t, []service.LineItemView{
			{ProductID: 5, Name: "Apples", Amount: 2, Price: 1.5, UnitOfMeasure: "kg", Confirmed: false},
			{ProductID: 6, Name: "Eggs", Amount: 1, Price: 0.3, UnitOfMeasure: "unit", Confirmed: false},
		}, response.Order.Products)
	})

	t.Run("Empty match is 200 with an absent order", func(t *testing.T) {
		recorder := performJSONRequest(router, http.MethodGet, "/api/farmer/10/order/2", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]interface{}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Nil(t, response["order"])
	})
}

func TestConfirmOrderProductsHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	t.Run("Confirms the farmer's line items", func(t *testing.T) {
		body := map[string]interface{}{
			"products": []map[string]interface{}{
				{"productId": 5, "confirmed": true},
				{"productId": 6, "confirmed": true},
			},
		}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/1/confirm", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Message string                   `json:"message"`
			Results []service.LineItemResult `json:"results"`
		}
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Order products successfully reported", response.Message)
		assert.Len(t, response.Results, 2)

		var items []models.OrderProduct
		testDB.Where("order_id = ? AND user_id = ?", 1, 9).Find(&items)
		for _, item := range items {
			assert.True(t, item.Confirmed)
		}
	})

	t.Run("Returns 404 for an unknown order", func(t *testing.T) {
		body := map[string]interface{}{
			"products": []map[string]interface{}{{"productId": 5, "confirmed": true}},
		}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/999/confirm", body)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "order not found", response["error"])
	})

	t.Run("Returns 422 for an empty product list", func(t *testing.T) {
		body := map[string]interface{}{"products": []map[string]interface{}{}}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/1/confirm", body)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("Returns 422 for a malformed body", func(t *testing.T) {
		body := map[string]interface{}{
			"products": []map[string]interface{}{{"productId": 5}}, // confirmed missing
		}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/1/confirm", body)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("Never touches another farmer's line item", func(t *testing.T) {
		body := map[string]interface{}{
			"products": []map[string]interface{}{{"productId": 7, "confirmed": true}},
		}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/1/confirm", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var item models.OrderProduct
		testDB.Where("order_id = ? AND product_id = ?", 1, 7).First(&item)
		assert.False(t, item.Confirmed)
	})
}

func TestUpdateOrderProductStatusHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	t.Run("Writes the fulfillment status", func(t *testing.T) {
		body := map[string]interface{}{
			"products": []map[string]interface{}{{"productId": 5, "status": "PREPARED"}},
		}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/1/status", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var item models.OrderProduct
		testDB.Where("order_id = ? AND product_id = ?", 1, 5).First(&item)
		assert.Equal(t, "PREPARED", item.Status)
	})

	t.Run("Returns 404 for an unknown order", func(t *testing.T) {
		body := map[string]interface{}{
			"products": []map[string]interface{}{{"productId": 5, "status": "PREPARED"}},
		}
		recorder := performJSONRequest(router, http.MethodPost, "/api/farmer/9/order/999/status", body)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	t.Run("Writes present fields including explicit zero values", func(t *testing.T) {
		body := map[string]interface{}{"quantity": 0, "price": 2.0}
		recorder := performJSONRequest(router, http.MethodPut, "/api/farmer/9/product/5", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var product models.Product
		testDB.First(&product, 5)
		assert.Equal(t, uint(0), product.Quantity)
		assert.Equal(t, 2.0, product.Price)
		assert.Equal(t, "Apples", product.Name) // untouched
	})

	t.Run("Leaves absent fields unchanged", func(t *testing.T) {
		body := map[string]interface{}{"description": "free range"}
		recorder := performJSONRequest(router, http.MethodPut, "/api/farmer/9/product/6", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var product models.Product
		testDB.First(&product, 6)
		assert.Equal(t, "free range", product.Description)
		assert.Equal(t, uint(100), product.Quantity)
	})

	t.Run("Another farmer's product matches zero rows and stays intact", func(t *testing.T) {
		body := map[string]interface{}{"price": 99.0}
		recorder := performJSONRequest(router, http.MethodPut, "/api/farmer/9/product/7", body)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Updated int64 `json:"updated"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, int64(0), response.Updated)

		var product models.Product
		testDB.First(&product, 7)
		assert.Equal(t, 6.0, product.Price)
	})
}

func TestGetAllFarmersHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	recorder := performJSONRequest(router, http.MethodGet, "/api/farmer", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var farmers []models.User
	err := json.Unmarshal(recorder.Body.Bytes(), &farmers)
	assert.NoError(t, err)
	assert.Len(t, farmers, 2)
	for _, farmer := range farmers {
		assert.Equal(t, models.RoleFarmer, farmer.Role)
	}
}

func TestGetFarmerProductsHandler(t *testing.T) {
	router, testDB := setupFarmerRouter(t)
	seedMarketplace(t, testDB)

	recorder := performJSONRequest(router, http.MethodGet, "/api/farmer/9/product", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var products []models.Product
	err := json.Unmarshal(recorder.Body.Bytes(), &products)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
}
