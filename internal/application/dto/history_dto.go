package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryQuery filtros de GET /api/history. Fechas en formato YYYY-MM-DD.
type HistoryQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Type      string `query:"type"`
	Search    string `query:"search"`
}

// HistoryResponse salida de un registro del histórico.
type HistoryResponse struct {
	ID               string          `json:"id"`
	Timestamp        time.Time       `json:"timestamp"`
	Type             string          `json:"type"`
	ProductName      string          `json:"productName"`
	ProductCode      string          `json:"productCode"`
	ClientName       string          `json:"clientName,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	Location         string          `json:"location"`
	PreviousLocation string          `json:"previousLocation,omitempty"`
	Details          string          `json:"details,omitempty"`
}
