package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.KanbanRepository = (*KanbanRepo)(nil)

// KanbanRepo implementación del puerto KanbanRepository sobre PostgreSQL (usable con pool o tx).
type KanbanRepo struct {
	q Querier
}

// NewKanbanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKanbanRepository(q Querier) *KanbanRepo {
	return &KanbanRepo{q: q}
}

const palletColumns = `id, stage, product_name, product_code, client_name, quantity,
	storage_type, entry_date, address, observations, created_at, updated_at`

func (r *KanbanRepo) List(ctx context.Context) ([]*entity.KanbanPallet, error) {
	rows, err := r.q.Query(ctx, `SELECT `+palletColumns+` FROM kanban_pallets ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list kanban: %w", err)
	}
	defer rows.Close()

	var list []*entity.KanbanPallet
	for rows.Next() {
		k, err := scanPallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pallet: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

func (r *KanbanRepo) GetByID(ctx context.Context, id string) (*entity.KanbanPallet, error) {
	k, err := scanPallet(r.q.QueryRow(ctx, `SELECT `+palletColumns+` FROM kanban_pallets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet: %w", err)
	}
	return k, nil
}

func (r *KanbanRepo) Create(ctx context.Context, k *entity.KanbanPallet) error {
	query := `
		INSERT INTO kanban_pallets (` + palletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, palletArgs(k)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pallet: %w", err)
	}
	return nil
}

func (r *KanbanRepo) Update(ctx context.Context, k *entity.KanbanPallet) error {
	query := `
		UPDATE kanban_pallets SET
			stage = $2, product_name = $3, product_code = $4, client_name = $5, quantity = $6,
			storage_type = $7, entry_date = $8, address = $9, observations = $10,
			created_at = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, palletArgs(k)...)
	if err != nil {
		return fmt.Errorf("update pallet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *KanbanRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM kanban_pallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pallet: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func palletArgs(k *entity.KanbanPallet) []any {
	d := k.Product
	return []any{
		k.ID, k.Stage, d.ProductName, d.ProductCode, nullString(d.ClientName), d.Quantity,
		nullString(d.StorageType), d.EntryDate, nullString(d.Address), nullString(d.Observations),
		k.CreatedAt, k.UpdatedAt,
	}
}

func scanPallet(row pgx.Row) (*entity.KanbanPallet, error) {
	var (
		k                          entity.KanbanPallet
		client, storage, addr, obs *string
	)
	if err := row.Scan(&k.ID, &k.Stage, &k.Product.ProductName, &k.Product.ProductCode, &client,
		&k.Product.Quantity, &storage, &k.Product.EntryDate, &addr, &obs, &k.CreatedAt, &k.UpdatedAt); err != nil {
		return nil, err
	}
	k.Product.ClientName = derefString(client)
	k.Product.StorageType = derefString(storage)
	k.Product.Address = derefString(addr)
	k.Product.Observations = derefString(obs)
	k.CreatedAt, k.UpdatedAt = k.CreatedAt.UTC(), k.UpdatedAt.UTC()
	return &k, nil
}
