package dto

// StatsResponse respuesta de GET /api/stats.
type StatsResponse struct {
	TotalPositions    int `json:"totalPositions"`
	OccupiedPositions int `json:"occupiedPositions"`
	FreePositions     int `json:"freePositions"`
	KanbanGreen       int `json:"kanbanGreen"`
	KanbanYellow      int `json:"kanbanYellow"`
	KanbanRed         int `json:"kanbanRed"`
}
