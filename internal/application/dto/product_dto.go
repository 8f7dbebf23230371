package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRequest datos del producto para llenar una posición o crear un palé.
type ProductRequest struct {
	ProductName  string          `json:"productName"`
	ProductCode  string          `json:"productCode"`
	ClientName   string          `json:"clientName,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	StorageType  string          `json:"storageType,omitempty"`
	EntryDate    string          `json:"entryDate"`
	Address      string          `json:"address,omitempty"`
	Observations string          `json:"observations,omitempty"`
}

// ToEntity convierte el request en el value object del dominio.
func (r ProductRequest) ToEntity() entity.ProductData {
	return entity.ProductData{
		ProductName:  r.ProductName,
		ProductCode:  r.ProductCode,
		ClientName:   r.ClientName,
		Quantity:     r.Quantity,
		StorageType:  r.StorageType,
		EntryDate:    r.EntryDate,
		Address:      r.Address,
		Observations: r.Observations,
	}.Normalize()
}
