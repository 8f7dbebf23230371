package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementHistoryRepository = (*MovementHistoryRepo)(nil)

// MovementHistoryRepo histórico sobre SQLite; sólo INSERT y SELECT.
type MovementHistoryRepo struct {
	q querier
}

func (r *MovementHistoryRepo) Create(ctx context.Context, m *entity.MovementHistory) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO movement_history (id, ts, type, product_name, product_code, client_name, quantity, location, previous_location, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, toNanos(m.Timestamp), m.Type, m.ProductName, m.ProductCode, nullString(m.ClientName),
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

func (r *MovementHistoryRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.MovementHistory, error) {
	query := `
		SELECT id, ts, type, product_name, product_code, client_name, quantity, location, previous_location, details
		FROM movement_history WHERE 1 = 1`
	var args []any
	if from != nil {
		query += " AND ts >= ?"
		args = append(args, toNanos(*from))
	}
	if to != nil {
		query += " AND ts <= ?"
		args = append(args, toNanos(*to))
	}
	query += " ORDER BY ts DESC, id DESC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementHistory
	for rows.Next() {
		var (
			m                     entity.MovementHistory
			ts                    int64
			client, prev, details sql.NullString
		)
		if err := rows.Scan(&m.ID, &ts, &m.Type, &m.ProductName, &m.ProductCode, &client,
			&m.Quantity, &m.Location, &prev, &details); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Timestamp = fromNanos(ts)
		m.ClientName = client.String
		m.PreviousLocation = prev.String
		m.Details = details.String
		list = append(list, &m)
	}
	return list, rows.Err()
}
