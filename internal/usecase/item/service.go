// Package item creates catalog items.
package item

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catalog/internal/clock"
	"github.com/kailas-cloud/catalog/internal/domain"
	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
)

const (
	luxuryTag       = "luxury"
	luxuryPrice     = 1000.0
	luxuryMinRating = 4.0
)

// Service assigns ids and timestamps, applies business rules and stores new items.
type Service struct {
	repo  Repository
	clock clock.Clock
}

// New creates an item service.
func New(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// Create builds, validates and inserts a new item.
func (s *Service) Create(ctx context.Context, in *CreateInput) (domitem.Item, error) {
	it, err := s.build(in)
	if err != nil {
		return domitem.Item{}, err
	}
	if err := s.repo.Insert(ctx, it); err != nil {
		return domitem.Item{}, fmt.Errorf("create item: %w", err)
	}
	return it, nil
}

func (s *Service) build(in *CreateInput) (domitem.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domitem.Item{}, domain.NewValidationError("name", "is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return domitem.Item{}, domain.NewValidationError("category", "is required")
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	it := domitem.Item{
		ID:         id,
		Name:       name,
		Category:   category,
		Price:      domitem.Round2(in.Price),
		Tags:       []string{},
		CreatedAt:  s.clock.Now().UTC().Truncate(time.Second),
		Vendor:     strings.TrimSpace(in.Vendor),
		Attributes: domitem.Attributes{},
	}
	if in.Rating != nil {
		it.Rating = domitem.Round2(*in.Rating)
	}
	if in.Stock != nil {
		it.Stock = *in.Stock
	}
	if len(in.Tags) > 0 {
		it.Tags = slices.Clone(in.Tags)
	}
	if len(in.Attributes) > 0 {
		it.Attributes = in.Attributes.Clone()
	}
	if it.Vendor == "" {
		it.Vendor = domitem.DefaultVendor(name)
	}

	applyLuxuryRule(&it)

	if err := it.Validate(); err != nil {
		return domitem.Item{}, err
	}
	return it, nil
}

// applyLuxuryRule tags luxury goods and lifts their rating to at least 4.
func applyLuxuryRule(it *domitem.Item) {
	if !strings.EqualFold(it.Category, luxuryTag) && it.Price <= luxuryPrice {
		return
	}
	if !it.HasTag(luxuryTag) {
		it.Tags = append(it.Tags, luxuryTag)
	}
	it.Rating = max(it.Rating, luxuryMinRating)
}
