package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/paketshop/storefront-backend/pkg/db/models"
	"github.com/paketshop/storefront-backend/pkg/enums"
	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/logger"
)

type productLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type tracker interface {
	Track(ctx context.Context, event enums.PixelEvent, props map[string]any) error
	Currency() string
}

// View is the cart as returned to callers. Open signals the storefront to
// show the cart drawer after an add.
type View struct {
	Items    Lines `json:"items"`
	TotalUZS int64 `json:"total"`
	Count    int   `json:"count"`
	Open     bool  `json:"open,omitempty"`
}

// Service exposes session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID string, productID int64) (*View, error)
	SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*View, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*View, error)
	Clear(ctx context.Context, sessionID string) (*View, error)
}

type service struct {
	snapshots SnapshotStore
	products  productLoader
	pixel     tracker
	logg      *logger.Logger
}

// NewService builds a cart service backed by the provided stack. The pixel
// tracker is optional.
func NewService(snapshots SnapshotStore, products productLoader, pixel tracker, logg *logger.Logger) (Service, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		snapshots: snapshots,
		products:  products,
		pixel:     pixel,
		logg:      logg,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*View, error) {
	lines := s.load(ctx, sessionID)
	return viewOf(lines, false), nil
}

// AddItem merges one package of the product into the cart. Products sold in
// multi-unit packages increment by their package size.
func (s *service) AddItem(ctx context.Context, sessionID string, productID int64) (*View, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	increment := product.ItemsPerPackage
	if increment < 1 {
		increment = 1
	}

	lines := s.load(ctx, sessionID).Add(Line{
		ProductID:    product.ID,
		Name:         product.Name,
		UnitPriceUZS: product.PriceUZS,
		Category:     product.Category,
		Image:        product.Image,
		Quantity:     increment,
	})
	s.persist(ctx, sessionID, lines)
	s.trackAdd(ctx, product, increment)

	return viewOf(lines, true), nil
}

// SetQuantity replaces a line's quantity. Anything below one removes the line.
func (s *service) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*View, error) {
	lines := s.load(ctx, sessionID).SetQuantity(productID, qty)
	s.persist(ctx, sessionID, lines)
	return viewOf(lines, false), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int64) (*View, error) {
	lines := s.load(ctx, sessionID).Remove(productID)
	s.persist(ctx, sessionID, lines)
	return viewOf(lines, false), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*View, error) {
	if err := s.snapshots.Delete(ctx, sessionID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to clear cart snapshot")
	}
	return viewOf(nil, false), nil
}

// load returns the persisted cart, falling back to an empty cart when the
// snapshot is missing, corrupt, or the store is unreachable.
func (s *service) load(ctx context.Context, sessionID string) Lines {
	lines, err := s.snapshots.Load(ctx, sessionID)
	if errors.Is(err, ErrCorruptSnapshot) {
		s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "discarding corrupt cart snapshot")
		return nil
	}
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to load cart snapshot")
		return nil
	}
	return lines
}

// persist is best effort: a write failure does not roll the mutation back,
// the caller still sees the updated cart.
func (s *service) persist(ctx context.Context, sessionID string, lines Lines) {
	if err := s.snapshots.Save(ctx, sessionID, lines); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to persist cart snapshot")
	}
}

func (s *service) trackAdd(ctx context.Context, product *models.Product, qty int) {
	if s.pixel == nil {
		return
	}
	err := s.pixel.Track(ctx, enums.PixelEventAddToCart, map[string]any{
		"content_ids":  []string{fmt.Sprintf("%d", product.ID)},
		"content_name": product.Name,
		"content_type": "product",
		"value":        product.PriceUZS * int64(qty),
		"currency":     s.pixel.Currency(),
	})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to track add to cart")
	}
}

func viewOf(lines Lines, open bool) *View {
	if lines == nil {
		lines = Lines{}
	}
	return &View{
		Items:    lines,
		TotalUZS: lines.TotalUZS(),
		Count:    lines.Count(),
		Open:     open,
	}
}
