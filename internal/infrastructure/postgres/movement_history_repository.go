package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementHistoryRepository = (*MovementHistoryRepo)(nil)

// MovementHistoryRepo histórico sobre PostgreSQL. Sólo INSERT y SELECT: nunca se modifica.
type MovementHistoryRepo struct {
	q Querier
}

// NewMovementHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementHistoryRepository(q Querier) *MovementHistoryRepo {
	return &MovementHistoryRepo{q: q}
}

func (r *MovementHistoryRepo) Create(ctx context.Context, m *entity.MovementHistory) error {
	query := `
		INSERT INTO movement_history (id, ts, type, product_name, product_code, client_name, quantity, location, previous_location, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Timestamp, m.Type, m.ProductName, m.ProductCode, nullString(m.ClientName),
		m.Quantity, m.Location, nullString(m.PreviousLocation), nullString(m.Details),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List registros con from <= ts <= to (lados nil abiertos), más reciente primero.
func (r *MovementHistoryRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.MovementHistory, error) {
	query := `
		SELECT id, ts, type, product_name, product_code, client_name, quantity, location, previous_location, details
		FROM movement_history WHERE TRUE`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *to)
	}
	query += " ORDER BY ts DESC, id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementHistory
	for rows.Next() {
		var (
			m                     entity.MovementHistory
			client, prev, details *string
		)
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.Type, &m.ProductName, &m.ProductCode, &client,
			&m.Quantity, &m.Location, &prev, &details); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Timestamp = m.Timestamp.UTC()
		m.ClientName = derefString(client)
		m.PreviousLocation = derefString(prev)
		m.Details = derefString(details)
		list = append(list, &m)
	}
	return list, rows.Err()
}
