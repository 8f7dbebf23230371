package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación del puerto PositionRepository sobre PostgreSQL (usable con pool o tx).
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

const positionColumns = `id, block, level, slot, product_name, product_code, client_name, quantity,
	storage_type, entry_date, address, observations, updated_at`

// List devuelve las 20 posiciones: bloque ASC, nivel DESC, slot ASC.
func (r *PositionRepo) List(ctx context.Context) ([]*entity.StoragePosition, error) {
	rows, err := r.q.Query(ctx, `SELECT `+positionColumns+` FROM storage_positions ORDER BY block ASC, level DESC, slot ASC`)
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

// GetByID obtiene una posición por ID; (nil, nil) si no existe.
func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.StoragePosition, error) {
	p, err := scanPosition(r.q.QueryRow(ctx, `SELECT `+positionColumns+` FROM storage_positions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get position: %w", err)
	}
	return p, nil
}

// Count cantidad de posiciones materializadas.
func (r *PositionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM storage_positions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count positions: %w", err)
	}
	return n, nil
}

// Create inserta una posición.
func (r *PositionRepo) Create(ctx context.Context, p *entity.StoragePosition) error {
	query := `
		INSERT INTO storage_positions (` + positionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query, positionArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// Update reemplaza los datos del producto (o los borra si la posición está vacía).
func (r *PositionRepo) Update(ctx context.Context, p *entity.StoragePosition) error {
	query := `
		UPDATE storage_positions SET
			block = $2, level = $3, slot = $4,
			product_name = $5, product_code = $6, client_name = $7, quantity = $8,
			storage_type = $9, entry_date = $10, address = $11, observations = $12,
			updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, positionArgs(p)...)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func positionArgs(p *entity.StoragePosition) []any {
	var (
		name, code, client, storage, entry, addr, obs *string
		qty                                           decimal.NullDecimal
	)
	if d := p.Product; d != nil {
		name, code = &d.ProductName, &d.ProductCode
		client, storage, addr = nullString(d.ClientName), nullString(d.StorageType), nullString(d.Address)
		entry, obs = nullString(d.EntryDate), nullString(d.Observations)
		qty = decimal.NullDecimal{Decimal: d.Quantity, Valid: true}
	}
	return []any{
		p.ID, p.Block, p.Level, p.Slot,
		name, code, client, qty, storage, entry, addr, obs,
		p.UpdatedAt,
	}
}

func scanPosition(row pgx.Row) (*entity.StoragePosition, error) {
	var (
		p                                             entity.StoragePosition
		name, code, client, storage, entry, addr, obs *string
		qty                                           decimal.NullDecimal
	)
	if err := row.Scan(&p.ID, &p.Block, &p.Level, &p.Slot,
		&name, &code, &client, &qty, &storage, &entry, &addr, &obs, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if name != nil {
		p.Product = &entity.ProductData{
			ProductName:  *name,
			ProductCode:  derefString(code),
			ClientName:   derefString(client),
			Quantity:     qty.Decimal,
			StorageType:  derefString(storage),
			EntryDate:    derefString(entry),
			Address:      derefString(addr),
			Observations: derefString(obs),
		}
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
