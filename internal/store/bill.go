package store

import (
	"context"
	"fmt"
	"time"

	"billed/internal/utils"
	"billed/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const billTableName = "billed.bills"

var billColumns = utils.StructTagValues(types.Bill{})

type BillRepository struct {
	pool *pgxpool.Pool
}

func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

// Bill retrieves a single bill by ID.
func (r *BillRepository) Bill(ctx context.Context, billID string) (*types.Bill, error) {

	query, args, err := psql().Select(billColumns...).From(billTableName).
		Where(sq.Eq{"id": billID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bill query: %w", err)
	}

	var bill = new(types.Bill)
	err = pgxscan.Get(ctx, r.pool, bill, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrBillNotFound
	}

	return bill, nil

}

// BillsByEmail retrieves every bill owned by the given user.
func (r *BillRepository) BillsByEmail(ctx context.Context, email string) ([]*types.Bill, error) {

	query, args, err := psql().Select(billColumns...).From(billTableName).
		Where(sq.Eq{"email": email}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bills query: %w", err)
	}

	var out = make([]*types.Bill, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, err
	}

	return out, nil
}

// AllBills retrieves every bill across users, newest first. Dashboard only.
func (r *BillRepository) AllBills(ctx context.Context) ([]*types.Bill, error) {

	query, args, err := psql().Select(billColumns...).From(billTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bills query: %w", err)
	}

	var out = make([]*types.Bill, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateDraft inserts the row backing a fresh upload: owner, receipt
// reference and the pending default status. The form fields arrive with the
// later update.
func (r *BillRepository) CreateDraft(ctx context.Context, bill *types.Bill) error {

	now := time.Now()
	if bill.ID == "" {
		bill.ID = utils.NanoID()
	}
	bill.Status = types.BillStatusPending
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query, args, err := psql().Insert(billTableName).SetMap(utils.StructToMap(bill)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert bill query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create bill draft")

}

// UpdateBill writes the fields the submission flow owns. Status is left
// untouched; only UpdateStatus may change it.
func (r *BillRepository) UpdateBill(ctx context.Context, billID string, bill *types.Bill) error {

	query, args, err := psql().Update(billTableName).
		SetMap(map[string]any{
			"type":       bill.Type,
			"name":       bill.Name,
			"amount":     bill.Amount,
			"date":       bill.Date,
			"vat":        bill.VAT,
			"pct":        bill.Pct,
			"commentary": bill.Commentary,
			"file_url":   bill.FileURL,
			"file_name":  bill.FileName,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": billID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update bill query for bill %s: %w", billID, err)
	}

	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	if res.RowsAffected() == 0 {
		return types.ErrBillNotFound
	}

	return nil

}

// UpdateStatus is the administrator's accept/refuse transition.
func (r *BillRepository) UpdateStatus(ctx context.Context, billID string, status types.BillStatus) error {

	query, args, err := psql().Update(billTableName).
		SetMap(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": billID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate status update query for bill %s: %w", billID, err)
	}

	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}

	if res.RowsAffected() == 0 {
		return types.ErrBillNotFound
	}

	return nil

}

// UpsertBill writes a complete bill row keyed by ID. Seed tooling only; the
// request path goes through CreateDraft and UpdateBill.
func (r *BillRepository) UpsertBill(ctx context.Context, bill *types.Bill) error {

	now := time.Now()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now

	query := `
		INSERT INTO billed.bills (id, email, type, name, amount, date, vat, pct, commentary, file_url, file_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id)
		DO UPDATE SET
			email = EXCLUDED.email,
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			amount = EXCLUDED.amount,
			date = EXCLUDED.date,
			vat = EXCLUDED.vat,
			pct = EXCLUDED.pct,
			commentary = EXCLUDED.commentary,
			file_url = EXCLUDED.file_url,
			file_name = EXCLUDED.file_name,
			status = EXCLUDED.status,
			updated_at = now()`

	_, err := r.pool.Exec(ctx, query,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date,
		bill.VAT, bill.Pct, bill.Commentary, bill.FileURL, bill.FileName,
		bill.Status, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bill: %w", err)
	}

	return nil
}

// DeleteBill removes a bill row.
func (r *BillRepository) DeleteBill(ctx context.Context, billID string) error {

	query, args, err := psql().Delete(billTableName).Where(sq.Eq{"id": billID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete bill query for bill %s: %w", billID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)

	return utils.ErrorWrapOrNil(err, "failed to delete bill")

}
