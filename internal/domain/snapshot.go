package domain

import (
	"time"
)

// MonthlyIndicatorSnapshotEntry representa um snapshot mensal de indicadores armazenado no banco
type MonthlyIndicatorSnapshotEntry struct {
	ID        string            `json:"id"`
	Period    string            `json:"period"` // Período no formato mm-yyyy
	Records   []IndicatorRecord `json:"records"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
