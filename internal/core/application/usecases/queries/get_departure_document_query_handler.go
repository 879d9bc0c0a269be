package queries

import (
	"context"
	"os"

	"transit/internal/core/ports"
	"transit/internal/pkg/errs"
)

// GetDepartureDocumentQueryHandler serves general waybill documents. The
// document is a regenerable artifact: every fetch re-renders it from the
// current snapshot, so a manifest read after a member cancellation reflects
// the cancellation while keeping the immutable waybill number.
type GetDepartureDocumentQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	generator  ports.WaybillDocumentGenerator
}

// NewGetDepartureDocumentQueryHandler creates a handler for document fetches.
func NewGetDepartureDocumentQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	generator ports.WaybillDocumentGenerator,
) GetDepartureDocumentQueryHandler {
	return GetDepartureDocumentQueryHandler{
		uowFactory: uowFactory,
		generator:  generator,
	}
}

// Handle regenerates and returns the document. Open departures have no
// document and are rejected.
func (h GetDepartureDocumentQueryHandler) Handle(
	ctx context.Context,
	query GetDepartureDocumentQuery,
) (GetDepartureDocumentResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDepartureDocumentResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetDepartureDocumentResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	target, err := uow.DepartureRepository().Get(ctx, query.DepartureID())
	if err != nil {
		return GetDepartureDocumentResponse{}, err
	}

	if target.IsOpen() {
		return GetDepartureDocumentResponse{},
			errs.NewInvalidStateError("departure", target.Status().String(), "fetch the document")
	}

	members, err := uow.ShipmentRepository().GetByDeparture(ctx, target.ID())
	if err != nil {
		return GetDepartureDocumentResponse{}, err
	}

	active := members[:0:0]
	for _, member := range members {
		if !member.IsCancelled() {
			active = append(active, member)
		}
	}

	path, err := h.generator.Generate(ctx, target, active)
	if err != nil {
		return GetDepartureDocumentResponse{}, err
	}

	if path != target.DocumentPath() {
		if err = target.AttachDocument(path); err != nil {
			return GetDepartureDocumentResponse{}, err
		}
		if err = uow.DepartureRepository().Update(ctx, target); err != nil {
			return GetDepartureDocumentResponse{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return GetDepartureDocumentResponse{}, err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return GetDepartureDocumentResponse{}, err
	}

	return GetDepartureDocumentResponse{
		GeneralWaybillNumber: *target.GeneralWaybillNumber(),
		Path:                 path,
		Content:              content,
	}, nil
}
