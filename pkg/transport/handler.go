package transport

import (
	"context"

	"github.com/rhuss/aibackend/pkg/api"
)

// ItemStore holds the ordered item collection. Implementations return
// storage.ErrNotFound from GetItem, UpdateItem, and DeleteItem when no
// item carries the requested id, and must not mutate anything in that case.
type ItemStore interface {
	// ListItems returns every item in insertion order.
	ListItems(ctx context.Context) ([]api.Item, error)

	// GetItem returns the item with the given id.
	GetItem(ctx context.Context, id int) (*api.Item, error)

	// CreateItem stores a new item and assigns its id.
	CreateItem(ctx context.Context, in *api.ItemInput) (*api.Item, error)

	// UpdateItem replaces all fields of an existing item except its id,
	// keeping its position in listing order.
	UpdateItem(ctx context.Context, id int, in *api.ItemInput) (*api.Item, error)

	// DeleteItem removes an item and returns the removed record.
	DeleteItem(ctx context.Context, id int) (*api.Item, error)
}

// Assistant performs the AI operations backed by the completion provider.
// Requests reaching an Assistant have already had defaults applied and
// passed validation.
type Assistant interface {
	// AnalyzeText runs one completion for the requested analysis type.
	AnalyzeText(ctx context.Context, req *api.TextAnalysisRequest) (*api.TextAnalysisResponse, error)

	// GenerateCode runs the code completion followed by the explanation
	// completion. No partial result is returned when either fails.
	GenerateCode(ctx context.Context, req *api.CodeGenerationRequest) (*api.CodeGenerationResponse, error)

	// Status checks the provider. It never fails; an unreachable provider
	// is reported through the returned status.
	Status(ctx context.Context) *api.StatusResponse
}
