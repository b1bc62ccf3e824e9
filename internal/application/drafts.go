package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// ErrInvalidDraft wraps every draft validation failure. The wrapped message
// is safe to show to the user.
var ErrInvalidDraft = errors.New("invalid invoice")

const draftDateLayout = "2006-01-02"

// DraftOwner derives the draft owner id from a session. The user key is a
// backend credential, so only its SHA-256 digest reaches the database.
func DraftOwner(sess *model.Session) string {
	if sess == nil || sess.UserKey == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(sess.UserKey))
	return hex.EncodeToString(sum[:])
}

// DraftService manages invoice-generator drafts for one owner at a time.
type DraftService struct {
	store driven.DraftStore
	now   func() time.Time
	newID func() string
}

// NewDraftService creates a DraftService.
func NewDraftService(store driven.DraftStore) *DraftService {
	return &DraftService{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// New returns an unsaved draft with today's date and one empty row.
func (s *DraftService) New() model.DraftInvoice {
	return model.DraftInvoice{
		InvoiceDate: s.now().UTC().Format(draftDateLayout),
		Items:       []model.LineItem{{Quantity: 1}},
	}
}

// Save validates d, assigns an id and timestamps when it is new, and stores
// it under owner. The stored draft is returned.
func (s *DraftService) Save(ctx context.Context, owner string, d model.DraftInvoice) (model.DraftInvoice, error) {
	if owner == "" {
		return model.DraftInvoice{}, fmt.Errorf("%w: no owner", ErrInvalidDraft)
	}

	normalized, err := normalizeDraft(d)
	if err != nil {
		return model.DraftInvoice{}, err
	}
	normalized.OwnerKey = owner

	now := s.now().UTC()
	if normalized.ID == "" {
		normalized.ID = s.newID()
		normalized.CreatedAt = now
	} else {
		existing, err := s.store.Get(ctx, owner, normalized.ID)
		if err != nil {
			return model.DraftInvoice{}, fmt.Errorf("load draft %s: %w", normalized.ID, err)
		}
		if existing == nil {
			return model.DraftInvoice{}, driven.ErrDraftNotFound
		}
		normalized.CreatedAt = existing.CreatedAt
	}
	normalized.UpdatedAt = now

	if err := s.store.Save(ctx, normalized); err != nil {
		return model.DraftInvoice{}, fmt.Errorf("save draft: %w", err)
	}
	return normalized, nil
}

// Get returns the owner's draft or driven.ErrDraftNotFound.
func (s *DraftService) Get(ctx context.Context, owner, id string) (model.DraftInvoice, error) {
	d, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return model.DraftInvoice{}, fmt.Errorf("get draft %s: %w", id, err)
	}
	if d == nil {
		return model.DraftInvoice{}, driven.ErrDraftNotFound
	}
	return *d, nil
}

// List returns the owner's drafts, most recently updated first.
func (s *DraftService) List(ctx context.Context, owner string) ([]model.DraftInvoice, error) {
	drafts, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	return drafts, nil
}

// Delete removes the owner's draft.
func (s *DraftService) Delete(ctx context.Context, owner, id string) error {
	return s.store.Delete(ctx, owner, id)
}

// Totals computes the money figures of d.
func (s *DraftService) Totals(d model.DraftInvoice) model.DraftTotals {
	return d.Totals()
}

func normalizeDraft(d model.DraftInvoice) (model.DraftInvoice, error) {
	d.InvoiceNumber = strings.TrimSpace(d.InvoiceNumber)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Company = trimParty(d.Company)
	d.Client = trimParty(d.Client)

	for _, field := range []struct{ name, value string }{
		{"invoice date", d.InvoiceDate},
		{"due date", d.DueDate},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.Parse(draftDateLayout, field.value); err != nil {
			return d, fmt.Errorf("%w: %s must be a date like 2024-01-31", ErrInvalidDraft, field.name)
		}
	}

	if !finite(d.TaxRate) || d.TaxRate < 0 || d.TaxRate > 100 {
		return d, fmt.Errorf("%w: tax rate must be between 0 and 100", ErrInvalidDraft)
	}

	items := make([]model.LineItem, 0, len(d.Items))
	for _, item := range d.Items {
		item.Description = strings.TrimSpace(item.Description)
		if item.Description == "" {
			continue
		}
		if !finite(item.Quantity) || item.Quantity <= 0 {
			return d, fmt.Errorf("%w: quantity for %q must be greater than zero", ErrInvalidDraft, item.Description)
		}
		if !finite(item.Price) {
			return d, fmt.Errorf("%w: price for %q must be a number", ErrInvalidDraft, item.Description)
		}
		if item.Price < 0 {
			return d, fmt.Errorf("%w: price for %q cannot be negative", ErrInvalidDraft, item.Description)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return d, fmt.Errorf("%w: add at least one item", ErrInvalidDraft)
	}
	d.Items = items
	return d, nil
}

// finite rejects the NaN and Inf values strconv.ParseFloat accepts.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func trimParty(p model.Party) model.Party {
	return model.Party{
		Name:    strings.TrimSpace(p.Name),
		Address: strings.TrimSpace(p.Address),
		Email:   strings.TrimSpace(p.Email),
		Phone:   strings.TrimSpace(p.Phone),
	}
}
