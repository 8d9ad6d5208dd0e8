package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/paketshop/storefront-backend/pkg/db/models"
	"github.com/paketshop/storefront-backend/pkg/enums"
	"github.com/paketshop/storefront-backend/pkg/logger"
	"github.com/paketshop/storefront-backend/pkg/types"
)

type tracker interface {
	Track(ctx context.Context, event enums.PixelEvent, props map[string]any) error
	Currency() string
}

// ProductDTO is the catalog entry returned to storefront clients.
type ProductDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	PriceUZS         int64  `json:"price"`
	FormattedPrice   string `json:"formatted_price"`
	Category         string `json:"category"`
	Image            string `json:"image"`
	ShortDescription string `json:"short_description,omitempty"`
	ItemsPerPackage  int    `json:"items_per_package"`
}

// Service exposes catalog reads. Product detail views are reported to the
// analytics collaborator.
type Service interface {
	List(ctx context.Context, category string) ([]ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
}

type service struct {
	repo  Repository
	pixel tracker
	logg  *logger.Logger
}

// NewService builds a catalog service. The pixel tracker is optional.
func NewService(repo Repository, pixel tracker, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, pixel: pixel, logg: logg}, nil
}

func (s *service) List(ctx context.Context, category string) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, toDTO(&products[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trackView(ctx, product)
	dto := toDTO(product)
	return &dto, nil
}

func (s *service) trackView(ctx context.Context, product *models.Product) {
	if s.pixel == nil {
		return
	}
	err := s.pixel.Track(ctx, enums.PixelEventViewContent, map[string]any{
		"content_ids":  []string{strconv.FormatInt(product.ID, 10)},
		"content_name": product.Name,
		"content_type": "product",
		"value":        product.PriceUZS,
		"currency":     s.pixel.Currency(),
	})
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to track product view")
	}
}

func toDTO(product *models.Product) ProductDTO {
	return ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		PriceUZS:         product.PriceUZS,
		FormattedPrice:   types.FormatUZS(product.PriceUZS),
		Category:         product.Category,
		Image:            product.Image,
		ShortDescription: product.ShortDescription,
		ItemsPerPackage:  product.ItemsPerPackage,
	}
}
