package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo posiciones sobre SQLite (con db o tx).
type PositionRepo struct {
	q querier
}

const positionColumns = `id, block, level, slot, product_name, product_code, client_name, quantity,
	storage_type, entry_date, address, observations, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func (r *PositionRepo) List(ctx context.Context) ([]*entity.StoragePosition, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+positionColumns+` FROM storage_positions ORDER BY block ASC, level DESC, slot ASC`)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var list []*entity.StoragePosition
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.StoragePosition, error) {
	p, err := scanPosition(r.q.QueryRowContext(ctx, `SELECT `+positionColumns+` FROM storage_positions WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return p, nil
}

func (r *PositionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM storage_positions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count positions: %w", err)
	}
	return n, nil
}

func (r *PositionRepo) Create(ctx context.Context, p *entity.StoragePosition) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO storage_positions (`+positionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, positionArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func (r *PositionRepo) Update(ctx context.Context, p *entity.StoragePosition) error {
	args := positionArgs(p)
	// El id va al final para el WHERE.
	args = append(args[1:], args[0])
	res, err := r.q.ExecContext(ctx, `
		UPDATE storage_positions SET
			block = ?, level = ?, slot = ?,
			product_name = ?, product_code = ?, client_name = ?, quantity = ?,
			storage_type = ?, entry_date = ?, address = ?, observations = ?,
			updated_at = ?
		WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func positionArgs(p *entity.StoragePosition) []any {
	var (
		name, code, client, storage, entry, addr, obs sql.NullString
		qty                                           decimal.NullDecimal
	)
	if d := p.Product; d != nil {
		name = sql.NullString{String: d.ProductName, Valid: true}
		code = sql.NullString{String: d.ProductCode, Valid: true}
		client, storage, addr = nullString(d.ClientName), nullString(d.StorageType), nullString(d.Address)
		entry, obs = nullString(d.EntryDate), nullString(d.Observations)
		qty = decimal.NullDecimal{Decimal: d.Quantity, Valid: true}
	}
	return []any{
		p.ID, p.Block, p.Level, p.Slot,
		name, code, client, qty, storage, entry, addr, obs,
		toNanos(p.UpdatedAt),
	}
}

func scanPosition(row scanner) (*entity.StoragePosition, error) {
	var (
		p                                             entity.StoragePosition
		name, code, client, storage, entry, addr, obs sql.NullString
		qty                                           decimal.NullDecimal
		updated                                       int64
	)
	if err := row.Scan(&p.ID, &p.Block, &p.Level, &p.Slot,
		&name, &code, &client, &qty, &storage, &entry, &addr, &obs, &updated); err != nil {
		return nil, err
	}
	if name.Valid {
		p.Product = &entity.ProductData{
			ProductName:  name.String,
			ProductCode:  code.String,
			ClientName:   client.String,
			Quantity:     qty.Decimal,
			StorageType:  storage.String,
			EntryDate:    entry.String,
			Address:      addr.String,
			Observations: obs.String,
		}
	}
	p.UpdatedAt = fromNanos(updated)
	return &p, nil
}
