package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.KanbanRepository = (*KanbanRepo)(nil)

// KanbanRepo palés sobre SQLite (con db o tx).
type KanbanRepo struct {
	q querier
}

const palletColumns = `id, stage, product_name, product_code, client_name, quantity,
	storage_type, entry_date, address, observations, created_at, updated_at`

func (r *KanbanRepo) List(ctx context.Context) ([]*entity.KanbanPallet, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+palletColumns+` FROM kanban_pallets ORDER BY created_at ASC`)
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
	k, err := scanPallet(r.q.QueryRowContext(ctx, `SELECT `+palletColumns+` FROM kanban_pallets WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet: %w", err)
	}
	return k, nil
}

func (r *KanbanRepo) Create(ctx context.Context, k *entity.KanbanPallet) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO kanban_pallets (`+palletColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, palletArgs(k)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pallet: %w", err)
	}
	return nil
}

func (r *KanbanRepo) Update(ctx context.Context, k *entity.KanbanPallet) error {
	args := palletArgs(k)
	args = append(args[1:], args[0])
	res, err := r.q.ExecContext(ctx, `
		UPDATE kanban_pallets SET
			stage = ?, product_name = ?, product_code = ?, client_name = ?, quantity = ?,
			storage_type = ?, entry_date = ?, address = ?, observations = ?,
			created_at = ?, updated_at = ?
		WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update pallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *KanbanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM kanban_pallets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func palletArgs(k *entity.KanbanPallet) []any {
	d := k.Product
	return []any{
		k.ID, k.Stage, d.ProductName, d.ProductCode, nullString(d.ClientName), d.Quantity,
		nullString(d.StorageType), d.EntryDate, nullString(d.Address), nullString(d.Observations),
		toNanos(k.CreatedAt), toNanos(k.UpdatedAt),
	}
}

func scanPallet(row scanner) (*entity.KanbanPallet, error) {
	var (
		k                          entity.KanbanPallet
		client, storage, addr, obs sql.NullString
		created, updated           int64
	)
	if err := row.Scan(&k.ID, &k.Stage, &k.Product.ProductName, &k.Product.ProductCode, &client,
		&k.Product.Quantity, &storage, &k.Product.EntryDate, &addr, &obs, &created, &updated); err != nil {
		return nil, err
	}
	k.Product.ClientName = client.String
	k.Product.StorageType = storage.String
	k.Product.Address = addr.String
	k.Product.Observations = obs.String
	k.CreatedAt, k.UpdatedAt = fromNanos(created), fromNanos(updated)
	return &k, nil
}
