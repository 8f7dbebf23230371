package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PositionResponse salida de una posición del porta-palete.
// Los campos del producto se omiten cuando la posición está vacía.
type PositionResponse struct {
	ID           string           `json:"id"`
	Block        int              `json:"block"`
	Level        int              `json:"level"`
	Position     string           `json:"position"` // AP1 | AP2
	ProductName  string           `json:"productName,omitempty"`
	ProductCode  string           `json:"productCode,omitempty"`
	ClientName   string           `json:"clientName,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	StorageType  string           `json:"storageType,omitempty"`
	EntryDate    string           `json:"entryDate,omitempty"`
	Address      string           `json:"address,omitempty"`
	Observations string           `json:"observations,omitempty"`
	IsEmpty      bool             `json:"isEmpty"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}
