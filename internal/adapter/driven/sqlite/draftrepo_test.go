package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

func testDraft(owner, id string, updated time.Time) model.DraftInvoice {
	return model.DraftInvoice{
		ID:            id,
		OwnerKey:      owner,
		InvoiceNumber: "INV-" + id,
		InvoiceDate:   "2024-06-01",
		DueDate:       "2024-07-01",
		Company:       model.Party{Name: "Acme", Address: "1 Loop", Email: "a@acme.test", Phone: "555"},
		Client:        model.Party{Name: "Globex"},
		Items: []model.LineItem{
			{Description: "Widgets", Quantity: 3, Price: 9.5},
			{Description: "Shipping", Quantity: 1, Price: 12},
		},
		TaxRate:   7.5,
		Notes:     "Thanks",
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func TestDraftRepo_GetMissing(t *testing.T) {
	repo := NewDraftRepo(setupTestDB(t))

	d, err := repo.Get(context.Background(), "owner", "nope")

	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDraftRepo_SaveAndGet(t *testing.T) {
	repo := NewDraftRepo(setupTestDB(t))
	ctx := context.Background()
	want := testDraft("owner-1", "d1", time.Date(2024, 6, 1, 10, 30, 0, 123456789, time.UTC))

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx, "owner-1", "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftRepo_SaveUpserts(t *testing.T) {
	repo := NewDraftRepo(setupTestDB(t))
	ctx := context.Background()
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	d := testDraft("owner-1", "d1", created)
	require.NoError(t, repo.Save(ctx, d))

	d.Notes = "Revised"
	d.Items = d.Items[:1]
	d.UpdatedAt = created.Add(time.Hour)
	d.CreatedAt = created.Add(24 * time.Hour)
	require.NoError(t, repo.Save(ctx, d))

	got, err := repo.Get(ctx, "owner-1", "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Revised", got.Notes)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, created.Add(-time.Hour), got.CreatedAt, "created_at is kept on update")
	assert.Equal(t, created.Add(time.Hour), got.UpdatedAt)
}

func TestDraftRepo_OwnerIsolation(t *testing.T) {
	repo := NewDraftRepo(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, testDraft("alice", "shared-id", now)))
	require.NoError(t, repo.Save(ctx, testDraft("bob", "shared-id", now)))

	got, err := repo.Get(ctx, "mallory", "shared-id")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.Delete(ctx, "mallory", "shared-id"), driven.ErrDraftNotFound)

	require.NoError(t, repo.Delete(ctx, "alice", "shared-id"))
	bobs, err := repo.List(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}

func TestDraftRepo_ListNewestFirst(t *testing.T) {
	repo := NewDraftRepo(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, testDraft("o", "old", base)))
	require.NoError(t, repo.Save(ctx, testDraft("o", "new", base.Add(2*time.Hour))))
	require.NoError(t, repo.Save(ctx, testDraft("o", "mid", base.Add(time.Hour))))

	drafts, err := repo.List(ctx, "o")
	require.NoError(t, err)

	ids := make([]string, 0, len(drafts))
	for _, d := range drafts {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)

	empty, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDraftRepo_EmptyItemsRoundTrip(t *testing.T) {
	repo := NewDraftRepo(setupTestDB(t))
	ctx := context.Background()
	d := testDraft("o", "d", time.Now())
	d.Items = nil

	require.NoError(t, repo.Save(ctx, d))

	got, err := repo.Get(ctx, "o", "d")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Items)
}

func TestNewDB_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "drafts.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, path, db.Path())
	version, err := RunMigrations(db.Writer)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	version, err = RunMigrations(db.Writer)
	require.NoError(t, err, "second run is a no-op")
	assert.EqualValues(t, 1, version)

	repo := NewDraftRepo(db)
	require.NoError(t, repo.Save(context.Background(), testDraft("o", "d", time.Now())))
}
