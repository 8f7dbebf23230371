package history

import "github.com/jhoicas/almacen-api/internal/domain/entity"

var typeLabels = map[string]string{
	entity.MovementEntry:          "Entrada",
	entity.MovementExit:           "Salida",
	entity.MovementEdit:           "Edición",
	entity.MovementKanbanAdd:      "Kanban - Adición",
	entity.MovementKanbanMove:     "Kanban - Movimiento",
	entity.MovementKanbanExpedite: "Kanban - Expedición",
}

// TypeLabel etiqueta legible del tipo de movimiento para reportes.
func TypeLabel(t string) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return t
}
