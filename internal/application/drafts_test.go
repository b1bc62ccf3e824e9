package application

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// memoryDraftStore is an in-memory DraftStore keyed by owner and id.
type memoryDraftStore struct {
	drafts map[string]model.DraftInvoice
	err    error
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[string]model.DraftInvoice)}
}

func (m *memoryDraftStore) Save(_ context.Context, d model.DraftInvoice) error {
	if m.err != nil {
		return m.err
	}
	m.drafts[d.OwnerKey+"/"+d.ID] = d
	return nil
}

func (m *memoryDraftStore) Get(_ context.Context, owner, id string) (*model.DraftInvoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.drafts[owner+"/"+id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memoryDraftStore) List(_ context.Context, owner string) ([]model.DraftInvoice, error) {
	var out []model.DraftInvoice
	for _, d := range m.drafts {
		if d.OwnerKey == owner {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memoryDraftStore) Delete(_ context.Context, owner, id string) error {
	key := owner + "/" + id
	if _, ok := m.drafts[key]; !ok {
		return driven.ErrDraftNotFound
	}
	delete(m.drafts, key)
	return nil
}

func newTestDraftService(store driven.DraftStore, now time.Time) *DraftService {
	svc := NewDraftService(store)
	svc.now = func() time.Time { return now }
	ids := 0
	svc.newID = func() string {
		ids++
		return "draft-" + string(rune('0'+ids))
	}
	return svc
}

func sampleDraft() model.DraftInvoice {
	return model.DraftInvoice{
		InvoiceNumber: " INV-001 ",
		InvoiceDate:   "2024-06-01",
		DueDate:       "2024-06-30",
		Company:       model.Party{Name: " Acme ", Email: "billing@acme.test"},
		Client:        model.Party{Name: "Globex"},
		TaxRate:       10,
		Items: []model.LineItem{
			{Description: "Consulting", Quantity: 2, Price: 150},
			{Description: "   ", Quantity: 0, Price: -5},
			{Description: "Travel", Quantity: 1, Price: 0},
		},
		Notes: "**Net 30**",
	}
}

func TestDraftService_New(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	svc := newTestDraftService(newMemoryDraftStore(), now)

	d := svc.New()

	assert.Equal(t, "2024-06-01", d.InvoiceDate)
	require.Len(t, d.Items, 1)
	assert.InDelta(t, 1, d.Items[0].Quantity, 0)
}

func TestDraftService_SaveNew(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	store := newMemoryDraftStore()
	svc := newTestDraftService(store, now)

	saved, err := svc.Save(context.Background(), "owner-1", sampleDraft())

	require.NoError(t, err)
	assert.Equal(t, "draft-1", saved.ID)
	assert.Equal(t, "owner-1", saved.OwnerKey)
	assert.Equal(t, "INV-001", saved.InvoiceNumber)
	assert.Equal(t, "Acme", saved.Company.Name)
	assert.Equal(t, now, saved.CreatedAt)
	assert.Equal(t, now, saved.UpdatedAt)
	require.Len(t, saved.Items, 2, "blank rows are dropped")
	assert.Equal(t, "Travel", saved.Items[1].Description)

	stored, err := svc.Get(context.Background(), "owner-1", "draft-1")
	require.NoError(t, err)
	assert.Equal(t, saved, stored)

	totals := svc.Totals(saved)
	assert.InDelta(t, 300, totals.Subtotal, 0.001)
	assert.InDelta(t, 30, totals.Tax, 0.001)
	assert.InDelta(t, 330, totals.Total, 0.001)
}

func TestDraftService_SaveExistingKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := newMemoryDraftStore()
	svc := newTestDraftService(store, created)
	ctx := context.Background()

	first, err := svc.Save(ctx, "owner-1", sampleDraft())
	require.NoError(t, err)

	later := created.Add(48 * time.Hour)
	svc.now = func() time.Time { return later }
	first.Notes = "updated"

	second, err := svc.Save(ctx, "owner-1", first)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, created, second.CreatedAt)
	assert.Equal(t, later, second.UpdatedAt)
	assert.Equal(t, "updated", second.Notes)
}

func TestDraftService_SaveForeignIDIsNotFound(t *testing.T) {
	store := newMemoryDraftStore()
	svc := newTestDraftService(store, time.Now())
	ctx := context.Background()

	mine, err := svc.Save(ctx, "owner-1", sampleDraft())
	require.NoError(t, err)

	_, err = svc.Save(ctx, "owner-2", mine)
	assert.ErrorIs(t, err, driven.ErrDraftNotFound)

	_, err = svc.Get(ctx, "owner-2", mine.ID)
	assert.ErrorIs(t, err, driven.ErrDraftNotFound)
}

func TestDraftService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		owner  string
		mutate func(*model.DraftInvoice)
	}{
		{name: "no owner", owner: "", mutate: func(*model.DraftInvoice) {}},
		{name: "zero quantity", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Quantity = 0 }},
		{name: "negative price", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Price = -1 }},
		{name: "no items", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items = nil }},
		{name: "only blank items", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items = []model.LineItem{{Quantity: 1}} }},
		{name: "bad date", owner: "o", mutate: func(d *model.DraftInvoice) { d.DueDate = "30/06/2024" }},
		{name: "tax over 100", owner: "o", mutate: func(d *model.DraftInvoice) { d.TaxRate = 150 }},
		{name: "tax NaN", owner: "o", mutate: func(d *model.DraftInvoice) { d.TaxRate = math.NaN() }},
		{name: "tax Inf", owner: "o", mutate: func(d *model.DraftInvoice) { d.TaxRate = math.Inf(1) }},
		{name: "quantity NaN", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Quantity = math.NaN() }},
		{name: "quantity Inf", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Quantity = math.Inf(1) }},
		{name: "price NaN", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Price = math.NaN() }},
		{name: "price Inf", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Price = math.Inf(1) }},
		{name: "price negative Inf", owner: "o", mutate: func(d *model.DraftInvoice) { d.Items[0].Price = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryDraftStore()
			d := sampleDraft()
			tt.mutate(&d)

			_, err := newTestDraftService(store, time.Now()).Save(context.Background(), tt.owner, d)

			assert.ErrorIs(t, err, ErrInvalidDraft)
			assert.Empty(t, store.drafts)
		})
	}
}

func TestDraftOwner(t *testing.T) {
	a := DraftOwner(&model.Session{UserKey: "user-key-1"})
	b := DraftOwner(&model.Session{UserKey: "user-key-2"})

	assert.Len(t, a, 64)
	assert.NotContains(t, a, "user-key-1")
	assert.Equal(t, a, DraftOwner(&model.Session{UserKey: "user-key-1", FullName: "Renamed"}))
	assert.NotEqual(t, a, b)
	assert.Empty(t, DraftOwner(nil))
	assert.Empty(t, DraftOwner(&model.Session{}))
}

func TestDraftService_StoreErrorsAreWrapped(t *testing.T) {
	store := newMemoryDraftStore()
	store.err = errors.New("disk full")

	_, err := newTestDraftService(store, time.Now()).Save(context.Background(), "o", sampleDraft())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotErrorIs(t, err, ErrInvalidDraft)
}

func TestDraftService_ListAndDelete(t *testing.T) {
	store := newMemoryDraftStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestDraftService(store, base)
	ctx := context.Background()

	a, err := svc.Save(ctx, "o", sampleDraft())
	require.NoError(t, err)
	svc.now = func() time.Time { return base.Add(time.Hour) }
	b, err := svc.Save(ctx, "o", sampleDraft())
	require.NoError(t, err)
	_, err = svc.Save(ctx, "someone-else", sampleDraft())
	require.NoError(t, err)

	list, err := svc.List(ctx, "o")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	require.NoError(t, svc.Delete(ctx, "o", a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "o", a.ID), driven.ErrDraftNotFound)

	list, err = svc.List(ctx, "o")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
