package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/storefront-backend/internal/data/repos/catalog"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

// SearchQuery is the raw, untrusted shape of a catalog listing request.
type SearchQuery struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	SortBy   string
	SortDir  string
	Page     int
	PerPage  int
}

type CatalogService interface {
	Search(ctx context.Context, q SearchQuery) (*catalogrepo.ProductPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*types.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo catalogrepo.ProductRepo
	perPage     int
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, productRepo catalogrepo.ProductRepo, perPage int) CatalogService {
	return &catalogService{
		db:          db,
		log:         log.With("service", "CatalogService"),
		productRepo: productRepo,
		perPage:     perPage,
	}
}

func (cs *catalogService) Search(ctx context.Context, q SearchQuery) (*catalogrepo.ProductPage, error) {
	filter, err := cs.buildFilter(q)
	if err != nil {
		return nil, err
	}
	return cs.productRepo.Search(ctx, nil, filter)
}

func (cs *catalogService) buildFilter(q SearchQuery) (catalogrepo.ProductFilter, error) {
	verr := apperr.NewValidationError()

	filter := catalogrepo.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		SortBy:   strings.TrimSpace(q.SortBy),
		SortDir:  strings.TrimSpace(q.SortDir),
		Page:     q.Page,
		PerPage:  q.PerPage,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = cs.perPage
	}

	minSet := strings.TrimSpace(q.MinPrice) != ""
	maxSet := strings.TrimSpace(q.MaxPrice) != ""
	if minSet {
		min, err := decimal.NewFromString(strings.TrimSpace(q.MinPrice))
		if err != nil {
			verr.Add("min_price", "The min price must be a number.")
		} else {
			filter.MinPrice = &min
		}
	}
	if maxSet {
		max, err := decimal.NewFromString(strings.TrimSpace(q.MaxPrice))
		if err != nil {
			verr.Add("max_price", "The max price must be a number.")
		} else {
			filter.MaxPrice = &max
		}
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		verr.Add("min_price", "The min price may not be greater than the max price.")
	}

	if err := verr.OrNil(); err != nil {
		return catalogrepo.ProductFilter{}, err
	}
	return filter, nil
}

func (cs *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	return cs.productRepo.GetByID(ctx, nil, id)
}

func (cs *catalogService) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*types.Product, error) {
	if len(ids) == 0 {
		verr := apperr.NewValidationError()
		verr.Add("ids", "The ids field is required.")
		return nil, verr.OrNil()
	}
	return cs.productRepo.GetByIDs(ctx, nil, ids)
}

func (cs *catalogService) Categories(ctx context.Context) ([]string, error) {
	return cs.productRepo.Categories(ctx, nil)
}
