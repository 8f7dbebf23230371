package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateKanbanRequest body para POST /api/kanban. La etapa es obligatoria.
type CreateKanbanRequest struct {
	Stage string `json:"stage"`
	ProductRequest
}

// UpdateKanbanRequest body para PATCH /api/kanban/:id; todos los campos son opcionales.
type UpdateKanbanRequest struct {
	Stage        *string          `json:"stage,omitempty"`
	ProductName  *string          `json:"productName,omitempty"`
	ProductCode  *string          `json:"productCode,omitempty"`
	ClientName   *string          `json:"clientName,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	StorageType  *string          `json:"storageType,omitempty"`
	EntryDate    *string          `json:"entryDate,omitempty"`
	Address      *string          `json:"address,omitempty"`
	Observations *string          `json:"observations,omitempty"`
}

// ToPatch convierte el request en un patch del dominio.
func (r UpdateKanbanRequest) ToPatch() entity.PalletPatch {
	return entity.PalletPatch{
		Stage:        r.Stage,
		ProductName:  r.ProductName,
		ProductCode:  r.ProductCode,
		ClientName:   r.ClientName,
		Quantity:     r.Quantity,
		StorageType:  r.StorageType,
		EntryDate:    r.EntryDate,
		Address:      r.Address,
		Observations: r.Observations,
	}
}

// KanbanResponse salida de un palé del kanban.
type KanbanResponse struct {
	ID           string          `json:"id"`
	Stage        string          `json:"stage"`
	ProductName  string          `json:"productName"`
	ProductCode  string          `json:"productCode"`
	ClientName   string          `json:"clientName,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	StorageType  string          `json:"storageType,omitempty"`
	EntryDate    string          `json:"entryDate"`
	Address      string          `json:"address,omitempty"`
	Observations string          `json:"observations,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
