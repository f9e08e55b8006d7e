package service

import (
	"fmt"

	"github.com/polito-se2-21-r03/spg/internal/repository"
)

type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ProductPatch carries the mutable product fields of a farmer-scoped
// update. Nil means "leave unchanged"; a pointer to the zero value is a
// real write, so quantity and price can be set to 0.
type ProductPatch struct {
	Quantity      *uint
	Name          *string
	Price         *float64
	Type          *string
	Src           *string
	UnitOfMeasure *string
	Description   *string
}

func (p ProductPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Quantity != nil {
		fields["quantity"] = *p.Quantity
	}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Type != nil {
		fields["type"] = *p.Type
	}
	if p.Src != nil {
		fields["src"] = *p.Src
	}
	if p.UnitOfMeasure != nil {
		fields["unit_of_measure"] = *p.UnitOfMeasure
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return fields
}

// UpdateOwned writes the present fields of the patch to the product,
// scoped by (productId, producerId) so a farmer can never touch another
// farmer's product. A non-matching scope affects zero rows and is not an
// error. Returns the number of rows matched.
func (s *ProductService) UpdateOwned(productID, farmerID uint, patch ProductPatch) (int64, error) {
	fields := patch.fields()
	if len(fields) == 0 {
		return 0, nil
	}
	updated, err := s.products.UpdateOwned(productID, farmerID, fields)
	if err != nil {
		return 0, fmt.Errorf("updating product %d for farmer %d: %w", productID, farmerID, err)
	}
	return updated, nil
}
