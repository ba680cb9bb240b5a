package catalog

import (
	"context"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
	"github.com/kailas-cloud/catalog/internal/domain/query/result"
	itemuc "github.com/kailas-cloud/catalog/internal/usecase/item"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	listFn    func(ctx context.Context, spec *request.Spec) result.Page
	getFn     func(ctx context.Context, id string, fields projection.Fields) (any, error)
	relatedFn func(ctx context.Context, id string, q *request.Related) (result.Related, error)
}

func (m *mockCatalogUC) List(ctx context.Context, spec *request.Spec) result.Page {
	return m.listFn(ctx, spec)
}

func (m *mockCatalogUC) Get(ctx context.Context, id string, fields projection.Fields) (any, error) {
	return m.getFn(ctx, id, fields)
}

func (m *mockCatalogUC) Related(ctx context.Context, id string, q *request.Related) (result.Related, error) {
	return m.relatedFn(ctx, id, q)
}

// --- itemUseCase mock ---

type mockItemUC struct {
	createFn func(ctx context.Context, in *itemuc.CreateInput) (domitem.Item, error)
}

func (m *mockItemUC) Create(ctx context.Context, in *itemuc.CreateInput) (domitem.Item, error) {
	return m.createFn(ctx, in)
}
