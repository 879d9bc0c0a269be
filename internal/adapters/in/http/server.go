// Package http is the inbound HTTP adapter. It binds requests into commands
// and queries, translates domain errors to status codes, and applies the
// financial-visibility masking before anything leaves the process.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"transit/internal/adapters/in/http/middleware"
	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/application/usecases/queries"
	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipment  commands.CreateShipmentCommandHandler
	updateShipment  commands.UpdateShipmentCommandHandler
	confirmShipment commands.ConfirmShipmentCommandHandler
	cancelShipment  commands.CancelShipmentCommandHandler
	createDeparture commands.CreateDepartureCommandHandler
	updateDeparture commands.UpdateDepartureCommandHandler
	assignShipments commands.AssignShipmentsCommandHandler
	removeShipment  commands.RemoveShipmentCommandHandler
	sealDeparture   commands.SealDepartureCommandHandler
	closeDeparture  commands.CloseDepartureCommandHandler
	deleteDeparture commands.DeleteDepartureCommandHandler

	// Query handlers
	listShipments         queries.ListShipmentsQueryHandler
	getShipment           queries.GetShipmentQueryHandler
	listDepartures        queries.ListDeparturesQueryHandler
	getDeparture          queries.GetDepartureQueryHandler
	getDepartureDocument  queries.GetDepartureDocumentQueryHandler
	driverDistribution    queries.DriverDistributionQueryHandler
	regulatorDistribution queries.RegulatorDistributionQueryHandler
	agencyDistribution    queries.AgencyDistributionQueryHandler
	distributionSummary   queries.DistributionSummaryQueryHandler
}

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	CreateShipment  commands.CreateShipmentCommandHandler
	UpdateShipment  commands.UpdateShipmentCommandHandler
	ConfirmShipment commands.ConfirmShipmentCommandHandler
	CancelShipment  commands.CancelShipmentCommandHandler
	CreateDeparture commands.CreateDepartureCommandHandler
	UpdateDeparture commands.UpdateDepartureCommandHandler
	AssignShipments commands.AssignShipmentsCommandHandler
	RemoveShipment  commands.RemoveShipmentCommandHandler
	SealDeparture   commands.SealDepartureCommandHandler
	CloseDeparture  commands.CloseDepartureCommandHandler
	DeleteDeparture commands.DeleteDepartureCommandHandler

	ListShipments         queries.ListShipmentsQueryHandler
	GetShipment           queries.GetShipmentQueryHandler
	ListDepartures        queries.ListDeparturesQueryHandler
	GetDeparture          queries.GetDepartureQueryHandler
	GetDepartureDocument  queries.GetDepartureDocumentQueryHandler
	DriverDistribution    queries.DriverDistributionQueryHandler
	RegulatorDistribution queries.RegulatorDistributionQueryHandler
	AgencyDistribution    queries.AgencyDistributionQueryHandler
	DistributionSummary   queries.DistributionSummaryQueryHandler
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{
		createShipment:        handlers.CreateShipment,
		updateShipment:        handlers.UpdateShipment,
		confirmShipment:       handlers.ConfirmShipment,
		cancelShipment:        handlers.CancelShipment,
		createDeparture:       handlers.CreateDeparture,
		updateDeparture:       handlers.UpdateDeparture,
		assignShipments:       handlers.AssignShipments,
		removeShipment:        handlers.RemoveShipment,
		sealDeparture:         handlers.SealDeparture,
		closeDeparture:        handlers.CloseDeparture,
		deleteDeparture:       handlers.DeleteDeparture,
		listShipments:         handlers.ListShipments,
		getShipment:           handlers.GetShipment,
		listDepartures:        handlers.ListDepartures,
		getDeparture:          handlers.GetDeparture,
		getDepartureDocument:  handlers.GetDepartureDocument,
		driverDistribution:    handlers.DriverDistribution,
		regulatorDistribution: handlers.RegulatorDistribution,
		agencyDistribution:    handlers.AgencyDistribution,
		distributionSummary:   handlers.DistributionSummary,
	}
}

// RegisterRoutes mounts the API under /api/v1 behind the auth middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	api := e.Group("/api/v1", auth.Middleware())

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.ListShipments)
	api.GET("/shipments/:shipmentId", s.GetShipment)
	api.PUT("/shipments/:shipmentId", s.UpdateShipment)
	api.POST("/shipments/:shipmentId/confirm", s.ConfirmShipment)
	api.POST("/shipments/:shipmentId/cancel", s.CancelShipment)

	api.POST("/departures", s.CreateDeparture)
	api.GET("/departures", s.ListDepartures)
	api.GET("/departures/:departureId", s.GetDeparture)
	api.PUT("/departures/:departureId", s.UpdateDeparture)
	api.DELETE("/departures/:departureId", s.DeleteDeparture)
	api.POST("/departures/:departureId/shipments", s.AssignShipments)
	api.DELETE("/departures/:departureId/shipments/:shipmentId", s.RemoveShipment)
	api.POST("/departures/:departureId/seal", s.SealDeparture)
	api.POST("/departures/:departureId/close", s.CloseDeparture)
	api.GET("/departures/:departureId/document", s.GetDepartureDocument)

	api.GET("/distributions/drivers", s.DriverDistribution)
	api.GET("/distributions/regulator", s.RegulatorDistribution)
	api.GET("/distributions/agency", s.AgencyDistribution)
	api.GET("/distributions/summary", s.DistributionSummary)
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req ShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	details, err := req.toDetails()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), details, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, shipmentResponseFromAggregate(created, actor))
}

// ListShipments handles GET /api/v1/shipments.
func (s *Server) ListShipments(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	filter, page, pageSize, err := parseShipmentListParams(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListShipmentsQuery(filter, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	shipments := make([]ShipmentResponse, 0, len(result.Shipments))
	for _, row := range result.Shipments {
		shipments = append(shipments, shipmentResponseFromQuery(row, actor))
	}

	return ctx.JSON(http.StatusOK, ShipmentListResponse{
		Shipments: shipments,
		Total:     result.Total,
		Page:      result.Page,
		PageSize:  result.PageSize,
	})
}

// GetShipment handles GET /api/v1/shipments/:shipmentId.
func (s *Server) GetShipment(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	row, err := s.getShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponseFromQuery(row, actor))
}

// UpdateShipment handles PUT /api/v1/shipments/:shipmentId.
func (s *Server) UpdateShipment(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req ShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	details, err := req.toDetails()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateShipmentCommand(id, details, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponseFromAggregate(updated, actor))
}

// ConfirmShipment handles POST /api/v1/shipments/:shipmentId/confirm.
func (s *Server) ConfirmShipment(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmShipmentCommand(id, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	confirmed, err := s.confirmShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponseFromAggregate(confirmed, actor))
}

// CancelShipment handles POST /api/v1/shipments/:shipmentId/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req CancelShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelShipmentCommand(id, req.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponseFromAggregate(cancelled, actor))
}

// CreateDeparture handles POST /api/v1/departures.
func (s *Server) CreateDeparture(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var req DepartureRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	fields, err := req.toFields()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateDepartureCommand(kernel.NewUUID(), fields, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createDeparture.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, departureResponseFromAggregate(created))
}

// ListDepartures handles GET /api/v1/departures.
func (s *Server) ListDepartures(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	var status *departure.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := departure.StatusFromString(raw)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		status = &parsed
	}

	page, pageSize, err := parsePagination(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListDeparturesQuery(status, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.listDepartures.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	departures := make([]DepartureResponse, 0, len(result.Departures))
	for _, row := range result.Departures {
		departures = append(departures, departureResponseFromQuery(row, actor))
	}

	return ctx.JSON(http.StatusOK, DepartureListResponse{
		Departures: departures,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

// GetDeparture handles GET /api/v1/departures/:departureId.
func (s *Server) GetDeparture(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDepartureQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getDeparture.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	members := make([]ShipmentResponse, 0, len(result.Members))
	for _, row := range result.Members {
		members = append(members, shipmentResponseFromQuery(row, actor))
	}

	return ctx.JSON(http.StatusOK, DepartureSummaryResponse{
		Departure: departureResponseFromQuery(result.Departure, actor),
		Members:   members,
	})
}

// UpdateDeparture handles PUT /api/v1/departures/:departureId.
func (s *Server) UpdateDeparture(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req DepartureRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	fields, err := req.toFields()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDepartureCommand(id, fields, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateDeparture.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, departureResponseFromAggregate(updated))
}

// DeleteDeparture handles DELETE /api/v1/departures/:departureId.
func (s *Server) DeleteDeparture(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteDepartureCommand(id, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteDeparture.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignShipments handles POST /api/v1/departures/:departureId/shipments.
func (s *Server) AssignShipments(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	var req AssignShipmentsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	shipmentIDs := make([]kernel.UUID, 0, len(req.ShipmentIDs))
	for _, raw := range req.ShipmentIDs {
		shipmentID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		shipmentIDs = append(shipmentIDs, shipmentID)
	}

	cmd, err := commands.NewAssignShipmentsCommand(id, shipmentIDs, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	assigned, err := s.assignShipments.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	shipments := make([]ShipmentResponse, 0, len(assigned))
	for _, aggregate := range assigned {
		shipments = append(shipments, shipmentResponseFromAggregate(aggregate, actor))
	}

	return ctx.JSON(http.StatusOK, shipments)
}

// RemoveShipment handles DELETE /api/v1/departures/:departureId/shipments/:shipmentId.
func (s *Server) RemoveShipment(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	departureID, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID, err := pathUUID(ctx, "shipmentId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRemoveShipmentCommand(departureID, shipmentID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	removed, err := s.removeShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponseFromAggregate(removed, actor))
}

// SealDeparture handles POST /api/v1/departures/:departureId/seal.
func (s *Server) SealDeparture(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSealDepartureCommand(id, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	sealed, err := s.sealDeparture.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, departureResponseFromAggregate(sealed))
}

// CloseDeparture handles POST /api/v1/departures/:departureId/close.
func (s *Server) CloseDeparture(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCloseDepartureCommand(id, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	closed, err := s.closeDeparture.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, departureResponseFromAggregate(closed))
}

// GetDepartureDocument handles GET /api/v1/departures/:departureId/document.
func (s *Server) GetDepartureDocument(ctx echo.Context) error {
	if _, err := requireActor(ctx); err != nil {
		return err
	}

	id, err := pathUUID(ctx, "departureId")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDepartureDocumentQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	doc, err := s.getDepartureDocument.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	ctx.Response().Header().Set("Content-Disposition",
		"attachment; filename=\""+doc.GeneralWaybillNumber+".txt\"")
	return ctx.Blob(http.StatusOK, "text/plain; charset=utf-8", doc.Content)
}

// DriverDistribution handles GET /api/v1/distributions/drivers.
func (s *Server) DriverDistribution(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if err = requireFinancials(ctx, actor); err != nil {
		return err
	}

	from, to, err := parsePeriod(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var driverID *kernel.UUID
	if raw := ctx.QueryParam("driverId"); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		driverID = &id
	}

	query, err := queries.NewDriverDistributionQuery(from, to, driverID)
	if err != nil {
		return writeError(ctx, err)
	}

	payouts, err := s.driverDistribution.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DriverPayoutResponse, 0, len(payouts))
	for _, payout := range payouts {
		response = append(response, driverPayoutResponse(payout))
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegulatorDistribution handles GET /api/v1/distributions/regulator.
func (s *Server) RegulatorDistribution(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if err = requireFinancials(ctx, actor); err != nil {
		return err
	}

	query, err := s.windowQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	payout, err := s.regulatorDistribution.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, regulatorPayoutResponse(payout))
}

// AgencyDistribution handles GET /api/v1/distributions/agency.
func (s *Server) AgencyDistribution(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if err = requireFinancials(ctx, actor); err != nil {
		return err
	}

	query, err := s.windowQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	payout, err := s.agencyDistribution.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, agencyPayoutResponse(payout))
}

// DistributionSummary handles GET /api/v1/distributions/summary.
func (s *Server) DistributionSummary(ctx echo.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if err = requireFinancials(ctx, actor); err != nil {
		return err
	}

	query, err := s.windowQuery(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	summary, err := s.distributionSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, distributionSummaryResponse(summary))
}

func (s *Server) windowQuery(ctx echo.Context) (queries.DistributionWindowQuery, error) {
	from, to, err := parsePeriod(ctx)
	if err != nil {
		return queries.DistributionWindowQuery{}, err
	}

	return queries.NewDistributionWindowQuery(from, to)
}

func requireActor(ctx echo.Context) (kernel.Actor, error) {
	actor, ok := middleware.ActorFrom(ctx)
	if !ok {
		return kernel.Actor{}, ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "authentication required",
		})
	}
	return actor, nil
}

func requireFinancials(ctx echo.Context, actor kernel.Actor) error {
	if actor.CanViewFinancials() {
		return nil
	}
	return ctx.JSON(http.StatusForbidden, ErrorResponse{
		Code:    http.StatusForbidden,
		Message: "financial reports require manager privileges",
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain error classes to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func parsePagination(ctx echo.Context) (int, int, error) {
	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewValueIsInvalidErrorWithCause("page", err)
		}
		page = parsed
	}

	pageSize := 0
	if raw := ctx.QueryParam("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewValueIsInvalidErrorWithCause("pageSize", err)
		}
		pageSize = parsed
	}

	return page, pageSize, nil
}

func parseShipmentListParams(ctx echo.Context) (queries.ListShipmentsFilter, int, int, error) {
	var filter queries.ListShipmentsFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := shipment.StatusFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.Status = &status
	}

	if raw := ctx.QueryParam("nature"); raw != "" {
		nature, err := shipment.NatureFromString(raw)
		if err != nil {
			return filter, 0, 0, err
		}
		filter.Nature = &nature
	}

	filter.Search = ctx.QueryParam("search")
	filter.Route = ctx.QueryParam("route")
	filter.UnattachedOnly = ctx.QueryParam("unattached") == "true"
	filter.IncludeCancelled = ctx.QueryParam("includeCancelled") == "true"

	if raw := ctx.QueryParam("from"); raw != "" {
		from, err := parsePeriodBound(raw, false)
		if err != nil {
			return filter, 0, 0, errs.NewValueIsInvalidErrorWithCause("from", err)
		}
		filter.From = &from
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		to, err := parsePeriodBound(raw, true)
		if err != nil {
			return filter, 0, 0, errs.NewValueIsInvalidErrorWithCause("to", err)
		}
		filter.To = &to
	}

	page, pageSize, err := parsePagination(ctx)
	if err != nil {
		return filter, 0, 0, err
	}

	return filter, page, pageSize, nil
}

// parsePeriod reads the from/to query parameters. Both bounds are inclusive;
// a date-only to-value covers that whole day.
func parsePeriod(ctx echo.Context) (time.Time, time.Time, error) {
	from, err := parsePeriodBound(ctx.QueryParam("from"), false)
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause("from", err)
	}

	to, err := parsePeriodBound(ctx.QueryParam("to"), true)
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause("to", err)
	}

	return from, to, nil
}

func parsePeriodBound(raw string, endOfWindow bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		if endOfWindow {
			// Last instant of the day, so the inclusive bound covers it all.
			parsed = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return parsed, nil
	}

	return time.Parse(time.RFC3339, raw)
}
