package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Tipos de movimiento registrados en el histórico.
const (
	MovementEntry          = "entry"           // posición llenada estando vacía
	MovementExit           = "exit"            // posición vaciada
	MovementEdit           = "edit"            // posición ocupada actualizada
	MovementKanbanAdd      = "kanban_add"      // palé agregado al kanban
	MovementKanbanMove     = "kanban_move"     // cambio de etapa
	MovementKanbanExpedite = "kanban_expedite" // palé retirado (expedido o descartado)
)

// MovementTypes todos los tipos válidos.
var MovementTypes = [...]string{
	MovementEntry, MovementExit, MovementEdit,
	MovementKanbanAdd, MovementKanbanMove, MovementKanbanExpedite,
}

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	for _, mt := range MovementTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// MovementHistory registro inmutable de una acción que cambió el estado.
// Los datos del producto son una copia tomada en el momento del evento.
type MovementHistory struct {
	ID               string
	Timestamp        time.Time
	Type             string
	ProductName      string
	ProductCode      string
	ClientName       string
	Quantity         decimal.Decimal
	Location         string
	PreviousLocation string
	Details          string
}

// NewMovement arma un registro con la copia de los datos del producto.
func NewMovement(typ string, at time.Time, product ProductData, location string) *MovementHistory {
	return &MovementHistory{
		Timestamp:   at.UTC(),
		Type:        typ,
		ProductName: product.ProductName,
		ProductCode: product.ProductCode,
		ClientName:  product.ClientName,
		Quantity:    product.Quantity,
		Location:    location,
	}
}

// CheckInvariants verifica que el registro esté completo antes de guardarlo.
// Un registro incompleto es un defecto del llamador, no un error recuperable.
func (m *MovementHistory) CheckInvariants() error {
	switch {
	case m == nil:
		return fmt.Errorf("%w: registro nil", domain.ErrInvariantViolation)
	case !ValidMovementType(m.Type):
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvariantViolation, m.Type)
	case m.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp vacío", domain.ErrInvariantViolation)
	case m.ProductName == "" || m.ProductCode == "":
		return fmt.Errorf("%w: datos de producto incompletos", domain.ErrInvariantViolation)
	case m.Location == "":
		return fmt.Errorf("%w: ubicación vacía", domain.ErrInvariantViolation)
	}
	return nil
}

// LessMovement orden del histórico: más reciente primero, ID como desempate.
func LessMovement(a, b *MovementHistory) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}
