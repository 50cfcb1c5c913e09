package bills

import (
	"context"
	"io"

	"billed/pkg/types"
)

// FileUpload is a receipt chosen by the user, as handed over by whatever
// layer owns the actual file input.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// CreateResult is the store's answer to a receipt upload: the durable file
// reference and the key addressing the draft record in the later update
// phase.
type CreateResult struct {
	FileURL string
	Key     string
}

// Store is the record store the bill components talk to. List rejections,
// upload rejections and update rejections all propagate to the caller.
type Store interface {
	List(ctx context.Context, email string) ([]*types.Bill, error)
	Create(ctx context.Context, email string, file FileUpload) (*CreateResult, error)
	Update(ctx context.Context, id string, bill *types.Bill) (*types.Bill, error)
}

// Routes the submission flow navigates between. The navigation collaborator
// resolves them to whatever the presentation layer uses.
const (
	RouteBills   = "Bills"
	RouteNewBill = "NewBill"
)

// Navigator is invoked with a route constant when the submission flow wants
// the user moved to another view.
type Navigator func(route string)
