package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
)

// InvoiceRepository persists extracted invoice records.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	List(ctx context.Context) ([]*entity.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewInvoiceRepository(pool *pgxpool.Pool, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{pool: pool, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	taxKind, taxValue := "", ""
	if inv.Tax != nil {
		taxKind, taxValue = string(inv.Tax.Kind), inv.Tax.Value
	}
	boxes, err := json.Marshal(inv.FieldBoxes)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO invoices
	(id, supplier, invoice_date, invoice_number, net_amount, gross_amount,
	 tax_kind, tax_value, currency, address, full_text, field_boxes,
	 source_file, annotated_file, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err = r.pool.Exec(ctx, q,
		inv.ID, inv.Supplier, inv.Date, inv.InvoiceNumber, inv.NetAmount,
		inv.GrossAmount, taxKind, taxValue, inv.Currency, inv.Address,
		inv.FullText, boxes, inv.SourceFile, inv.AnnotatedFile, inv.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert invoice", "invoice_id", inv.ID, "error", err)
		return err
	}
	return nil
}

const selectColumns = `
	id, supplier, invoice_date, invoice_number, net_amount, gross_amount,
	tax_kind, tax_value, currency, address, full_text, field_boxes,
	source_file, annotated_file, created_at`

func (r *invoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+selectColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+selectColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get invoice", "invoice_id", id, "error", err)
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete invoice", "invoice_id", id, "error", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var taxKind, taxValue string
	var boxes []byte
	if err := row.Scan(
		&inv.ID, &inv.Supplier, &inv.Date, &inv.InvoiceNumber, &inv.NetAmount,
		&inv.GrossAmount, &taxKind, &taxValue, &inv.Currency, &inv.Address,
		&inv.FullText, &boxes, &inv.SourceFile, &inv.AnnotatedFile, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}
	if taxKind != "" {
		inv.Tax = &entity.TaxValue{Kind: entity.TaxKind(taxKind), Value: taxValue}
	}
	inv.FieldBoxes = make(map[constants.FieldKind]*entity.Box)
	if len(boxes) > 0 {
		if err := json.Unmarshal(boxes, &inv.FieldBoxes); err != nil {
			return nil, err
		}
	}
	return &inv, nil
}
