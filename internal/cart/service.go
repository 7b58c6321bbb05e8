package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/teohome/storefront-backend/pkg/errors"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/metrics"
	"github.com/teohome/storefront-backend/pkg/woo"
)

// Service exposes the cart state machine. Every mutation persists the new
// snapshot before returning and every result carries freshly derived totals.
type Service interface {
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (Summary, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (Summary, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (Summary, error)
	Clear(ctx context.Context, sessionID string) (Summary, error)
	Get(ctx context.Context, sessionID string) (Summary, error)
}

// AddItemInput captures a product being added, including the selected
// variation and attribute options when the shopper configured one.
type AddItemInput struct {
	Product            woo.Product
	Quantity           int
	Variation          *woo.Variation
	SelectedAttributes map[string]string
}

type service struct {
	store Store
	logg  *logger.Logger
	stats *metrics.StorefrontMetrics

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds the cart service on the provided snapshot store.
func NewService(store Store, logg *logger.Logger, stats *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store: store,
		logg:  logg,
		stats: stats,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (Summary, error) {
	if err := validateSession(sessionID); err != nil {
		return Summary{}, err
	}
	if input.Product.ID <= 0 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if input.Quantity < 1 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}

	line := buildItem(input)
	merged := false
	for i := range items {
		if items[i].ID == line.ID {
			items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, line)
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return Summary{}, err
	}
	s.stats.IncCartOperation("add")
	return summarize(items), nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (Summary, error) {
	if err := validateSession(sessionID); err != nil {
		return Summary{}, err
	}
	if strings.TrimSpace(itemID) == "" {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	// A quantity at or below zero is a removal, not an error.
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, itemID)
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}

	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			break
		}
	}

	if err := s.save(ctx, sessionID, items); err != nil {
		return Summary{}, err
	}
	s.stats.IncCartOperation("update")
	return summarize(items), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (Summary, error) {
	if err := validateSession(sessionID); err != nil {
		return Summary{}, err
	}
	if strings.TrimSpace(itemID) == "" {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}

	if err := s.save(ctx, sessionID, kept); err != nil {
		return Summary{}, err
	}
	s.stats.IncCartOperation("remove")
	return summarize(kept), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (Summary, error) {
	if err := validateSession(sessionID); err != nil {
		return Summary{}, err
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return Summary{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	s.stats.IncCartOperation("clear")
	return summarize(nil), nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Summary, error) {
	if err := validateSession(sessionID); err != nil {
		return Summary{}, err
	}

	items, err := s.load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(items), nil
}

func (s *service) load(ctx context.Context, sessionID string) ([]Item, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return items, nil
}

func (s *service) save(ctx context.Context, sessionID string, items []Item) error {
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}
	return nil
}

// lockSession serializes transitions per session within this process.
// Separate processes sharing a session key remain last-writer-wins.
func (s *service) lockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	return nil
}

func buildItem(input AddItemInput) Item {
	item := Item{
		ID:         ItemID(input.Product.ID, input.SelectedAttributes),
		ProductID:  input.Product.ID,
		Name:       input.Product.Name,
		Slug:       input.Product.Slug,
		Price:      input.Product.Price,
		Quantity:   input.Quantity,
		Attributes: input.SelectedAttributes,
	}
	if len(input.Product.Images) > 0 {
		item.Image = input.Product.Images[0].Src
	}
	if input.Variation != nil {
		item.VariationID = input.Variation.ID
		item.VariationPrice = input.Variation.Price
	}
	return item
}
