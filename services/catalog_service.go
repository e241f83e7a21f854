package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fitgear/fitgear-api/cache"
	"github.com/fitgear/fitgear-api/catalog"
	"github.com/fitgear/fitgear-api/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnauthenticated = errors.New("sign in required")
)

// CatalogService reads the product catalog and manages reviews.
type CatalogService struct {
	db    *gorm.DB
	log   *zap.Logger
	loads singleflight.Group
}

func NewCatalogService(db *gorm.DB, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{db: db, log: logger.Named("catalog")}
}

// Products returns the full catalog in display order, served from the
// in-memory cache when it is fresh.
func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	if products, ok := cache.GetProducts(); ok {
		return products, nil
	}

	// Concurrent misses share one query.
	v, err, _ := s.loads.Do("catalog", func() (interface{}, error) {
		return s.loadProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

func (s *CatalogService) loadProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := s.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	products := rows[:0]
	for _, p := range rows {
		if !catalog.ValidCategory(p.Category) {
			s.log.Warn("⚠️ skipping product with unknown category", zap.String("id", p.ID), zap.String("category", p.Category))
			continue
		}
		products = append(products, p)
	}

	cache.SetProducts(products)
	return products, nil
}

// Search applies the filter criteria to the catalog.
func (s *CatalogService) Search(ctx context.Context, c catalog.Criteria) ([]models.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(products, c), nil
}

func (s *CatalogService) Product(ctx context.Context, id string) (models.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return models.Product{}, err
	}
	p, ok := catalog.Find(products, id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Reviews lists reviews of productID, newest first.
func (s *CatalogService) Reviews(ctx context.Context, productID string) ([]models.Review, error) {
	if _, err := s.Product(ctx, productID); err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	return reviews, nil
}

type ratingSummary struct {
	Average float64
	Count   int
}

// AddReview stores a review and refreshes the product's rating summary in
// the same transaction.
func (s *CatalogService) AddReview(ctx context.Context, productID string, author models.Principal, req models.AddReviewRequest) (*models.Review, error) {
	if !author.Authenticated() {
		return nil, ErrUnauthenticated
	}
	userID, err := uuid.Parse(author.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	if _, err := s.Product(ctx, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		UserName:  author.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		var summary ratingSummary
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("product_id = ?", productID).
			Scan(&summary).Error; err != nil {
			return fmt.Errorf("summarise ratings: %w", err)
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Updates(map[string]any{
				"average_rating": math.Round(summary.Average*10) / 10,
				"review_count":   summary.Count,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateCatalog()
	s.log.Info("✅ review added", zap.String("product", productID), zap.Int("rating", req.Rating))
	return review, nil
}
