package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DraftStore = (*DraftRepo)(nil)

// timeLayout is how timestamps are stored. Fixed-width nanoseconds keep
// lexical and chronological order identical.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DraftRepo is the SQLite implementation of the DraftStore port interface.
// Parties and items are stored as JSON text.
type DraftRepo struct {
	db *DB
}

// NewDraftRepo creates a new DraftRepo backed by the given DB.
func NewDraftRepo(db *DB) *DraftRepo {
	return &DraftRepo{db: db}
}

// Save inserts the draft or replaces every column of an existing one.
func (r *DraftRepo) Save(ctx context.Context, d model.DraftInvoice) error {
	company, err := json.Marshal(d.Company)
	if err != nil {
		return fmt.Errorf("encode company for draft %s: %w", d.ID, err)
	}
	client, err := json.Marshal(d.Client)
	if err != nil {
		return fmt.Errorf("encode client for draft %s: %w", d.ID, err)
	}
	items := d.Items
	if items == nil {
		items = []model.LineItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items for draft %s: %w", d.ID, err)
	}

	const query = `
		INSERT INTO invoice_drafts (
			id, owner_key, invoice_number, invoice_date, due_date,
			company, client, items, tax_rate, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_key, id) DO UPDATE SET
			invoice_number = excluded.invoice_number,
			invoice_date = excluded.invoice_date,
			due_date = excluded.due_date,
			company = excluded.company,
			client = excluded.client,
			items = excluded.items,
			tax_rate = excluded.tax_rate,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`

	_, err = r.db.Writer.ExecContext(ctx, query,
		d.ID, d.OwnerKey, d.InvoiceNumber, d.InvoiceDate, d.DueDate,
		string(company), string(client), string(itemsJSON), d.TaxRate, d.Notes,
		formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save draft %s: %w", d.ID, err)
	}
	return nil
}

const selectDraftColumns = `
	SELECT id, owner_key, invoice_number, invoice_date, due_date,
		company, client, items, tax_rate, notes, created_at, updated_at
	FROM invoice_drafts
`

// Get returns (nil, nil) when the owner has no draft with that id.
func (r *DraftRepo) Get(ctx context.Context, owner, id string) (*model.DraftInvoice, error) {
	row := r.db.Reader.QueryRowContext(ctx, selectDraftColumns+` WHERE owner_key = ? AND id = ?`, owner, id)

	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft %s: %w", id, err)
	}
	return &d, nil
}

// List returns the owner's drafts, most recently updated first.
func (r *DraftRepo) List(ctx context.Context, owner string) ([]model.DraftInvoice, error) {
	rows, err := r.db.Reader.QueryContext(ctx, selectDraftColumns+` WHERE owner_key = ? ORDER BY updated_at DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []model.DraftInvoice
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drafts: %w", err)
	}
	return drafts, nil
}

// Delete removes the draft. It returns driven.ErrDraftNotFound when the owner
// has no draft with that id.
func (r *DraftRepo) Delete(ctx context.Context, owner, id string) error {
	const query = `DELETE FROM invoice_drafts WHERE owner_key = ? AND id = ?`

	res, err := r.db.Writer.ExecContext(ctx, query, owner, id)
	if err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	if n == 0 {
		return driven.ErrDraftNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (model.DraftInvoice, error) {
	var (
		d                      model.DraftInvoice
		company, client, items string
		createdAt, updatedAt   string
	)
	err := row.Scan(
		&d.ID, &d.OwnerKey, &d.InvoiceNumber, &d.InvoiceDate, &d.DueDate,
		&company, &client, &items, &d.TaxRate, &d.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return d, err
	}

	if err := json.Unmarshal([]byte(company), &d.Company); err != nil {
		return d, fmt.Errorf("decode company: %w", err)
	}
	if err := json.Unmarshal([]byte(client), &d.Client); err != nil {
		return d, fmt.Errorf("decode client: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &d.Items); err != nil {
		return d, fmt.Errorf("decode items: %w", err)
	}

	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return d, fmt.Errorf("parse created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return d, fmt.Errorf("parse updated_at: %w", err)
	}
	return d, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts the stored layout and the formats SQLite's own
// CURRENT_TIMESTAMP produces.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		timeLayout,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}
