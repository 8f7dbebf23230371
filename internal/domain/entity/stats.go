package entity

// Stats conteos derivados del estado actual de posiciones y kanban.
type Stats struct {
	TotalPositions    int
	OccupiedPositions int
	FreePositions     int
	KanbanGreen       int
	KanbanYellow      int
	KanbanRed         int
}
