package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/storefront-backend/internal/data/repos/catalog"
	types "github.com/yungbote/storefront-backend/internal/domain"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

type SeedService interface {
	SeedProducts(ctx context.Context) error
}

type seedService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo catalogrepo.ProductRepo
}

func NewSeedService(db *gorm.DB, log *logger.Logger, productRepo catalogrepo.ProductRepo) SeedService {
	return &seedService{
		db:          db,
		log:         log.With("service", "SeedService"),
		productRepo: productRepo,
	}
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
	category    string
	imageURL    string
}

var seedProducts = []seedProduct{
	{"Wireless Mouse", "Ergonomic wireless mouse with adjustable DPI.", "29.99", 150, "Electronics", "https://images.example.com/products/wireless-mouse.jpg"},
	{"Mechanical Keyboard", "Tenkeyless mechanical keyboard with tactile switches.", "89.99", 80, "Electronics", "https://images.example.com/products/mechanical-keyboard.jpg"},
	{"USB-C Hub", "7-in-1 USB-C hub with HDMI and card reader.", "45.50", 120, "Electronics", "https://images.example.com/products/usb-c-hub.jpg"},
	{"Laptop Stand", "Aluminum laptop stand with adjustable height.", "39.00", 60, "Accessories", "https://images.example.com/products/laptop-stand.jpg"},
	{"Desk Mat", "Extended desk mat with stitched edges.", "24.99", 200, "Accessories", "https://images.example.com/products/desk-mat.jpg"},
	{"Noise Cancelling Headphones", "Over-ear headphones with active noise cancellation.", "199.99", 45, "Audio", "https://images.example.com/products/nc-headphones.jpg"},
	{"Bluetooth Speaker", "Portable speaker with 12 hour battery life.", "59.95", 90, "Audio", "https://images.example.com/products/bt-speaker.jpg"},
	{"Webcam 1080p", "Full HD webcam with built-in microphone.", "69.99", 75, "Electronics", "https://images.example.com/products/webcam.jpg"},
	{"Monitor Light Bar", "Screen-mounted light bar with auto dimming.", "49.00", 55, "Accessories", "https://images.example.com/products/light-bar.jpg"},
	{"Ergonomic Office Chair", "Mesh back office chair with lumbar support.", "249.00", 25, "Furniture", "https://images.example.com/products/office-chair.jpg"},
}

// SeedProducts loads the starter catalog. It is a no-op when any products
// already exist, so it is safe to run on every boot.
func (ss *seedService) SeedProducts(ctx context.Context) error {
	count, err := ss.productRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		ss.log.Debug("product catalog already seeded", "count", count)
		return nil
	}

	products := make([]*types.Product, 0, len(seedProducts))
	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return fmt.Errorf("parse seed price %q: %w", sp.price, err)
		}
		products = append(products, &types.Product{
			ID:          uuid.New(),
			Name:        sp.name,
			Description: sp.description,
			Price:       price,
			Stock:       sp.stock,
			Category:    sp.category,
			ImageURL:    sp.imageURL,
		})
	}

	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ss.productRepo.Create(ctx, tx, products)
		return err
	}); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	ss.log.Info("seeded product catalog", "count", len(products))
	return nil
}
