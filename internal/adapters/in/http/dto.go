package http

import (
	"time"

	"transit/internal/core/application/usecases/queries"
	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PartyRequest identifies a sender or receiver in a shipment payload.
type PartyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ShipmentRequest is the payload of shipment registration and updates.
type ShipmentRequest struct {
	Sender        PartyRequest     `json:"sender"`
	Receiver      PartyRequest     `json:"receiver"`
	Description   string           `json:"description"`
	Weight        *decimal.Decimal `json:"weight"`
	DeclaredValue decimal.Decimal  `json:"declaredValue"`
	Price         decimal.Decimal  `json:"price"`
	Route         string           `json:"route"`
	Nature        string           `json:"nature"`
	MailType      string           `json:"mailType"`
	IsFree        bool             `json:"isFree"`
}

// toDetails parses the payload into domain details. Nature and mail type are
// parsed by name; an absent mail type defaults to None.
func (r ShipmentRequest) toDetails() (shipment.Details, error) {
	nature, err := shipment.NatureFromString(r.Nature)
	if err != nil {
		return shipment.Details{}, err
	}

	mailType := shipment.MailTypeNone
	if r.MailType != "" {
		mailType, err = shipment.MailTypeFromString(r.MailType)
		if err != nil {
			return shipment.Details{}, err
		}
	}

	return shipment.Details{
		Sender:        shipment.Party{Name: r.Sender.Name, Phone: r.Sender.Phone},
		Receiver:      shipment.Party{Name: r.Receiver.Name, Phone: r.Receiver.Phone},
		Description:   r.Description,
		Weight:        r.Weight,
		DeclaredValue: r.DeclaredValue,
		Price:         r.Price,
		Route:         r.Route,
		Nature:        nature,
		MailType:      mailType,
		IsFree:        r.IsFree,
	}, nil
}

// CancelShipmentRequest carries the mandatory cancellation reason.
type CancelShipmentRequest struct {
	Reason string `json:"reason"`
}

// DepartureRequest is the payload of departure creation and updates.
type DepartureRequest struct {
	Route     string  `json:"route"`
	VehicleID *string `json:"vehicleId"`
	DriverID  *string `json:"driverId"`
	Notes     string  `json:"notes"`
}

// toFields parses the payload into domain fields.
func (r DepartureRequest) toFields() (departure.Fields, error) {
	vehicleID, err := parseOptionalUUID(r.VehicleID)
	if err != nil {
		return departure.Fields{}, err
	}

	driverID, err := parseOptionalUUID(r.DriverID)
	if err != nil {
		return departure.Fields{}, err
	}

	return departure.Fields{
		Route:     r.Route,
		VehicleID: vehicleID,
		DriverID:  driverID,
		Notes:     r.Notes,
	}, nil
}

// AssignShipmentsRequest names the shipments to attach to a departure.
type AssignShipmentsRequest struct {
	ShipmentIDs []string `json:"shipmentIds"`
}

// ShipmentResponse is the API projection of one shipment. Financial fields
// are pointers: they are omitted for actors without financial visibility.
type ShipmentResponse struct {
	ID            string           `json:"id"`
	WaybillNumber string           `json:"waybillNumber"`
	Sender        PartyRequest     `json:"sender"`
	Receiver      PartyRequest     `json:"receiver"`
	Description   string           `json:"description"`
	Weight        *decimal.Decimal `json:"weight,omitempty"`
	DeclaredValue *decimal.Decimal `json:"declaredValue,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Route         string           `json:"route"`
	Nature        string           `json:"nature"`
	MailType      string           `json:"mailType"`
	IsFree        bool             `json:"isFree"`
	Status        string           `json:"status"`
	IsConfirmed   bool             `json:"isConfirmed"`
	IsCancelled   bool             `json:"isCancelled"`
	ConfirmedAt   *time.Time       `json:"confirmedAt,omitempty"`
	CancelledAt   *time.Time       `json:"cancelledAt,omitempty"`
	CancelReason  string           `json:"cancelReason,omitempty"`
	DepartureID   *string          `json:"departureId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// shipmentResponseFromAggregate projects a domain aggregate, masking
// financial fields for actors without financial visibility.
func shipmentResponseFromAggregate(s *shipment.Shipment, actor kernel.Actor) ShipmentResponse {
	details := s.Details()

	resp := ShipmentResponse{
		ID:            s.ID().String(),
		WaybillNumber: s.WaybillNumber(),
		Sender:        PartyRequest{Name: details.Sender.Name, Phone: details.Sender.Phone},
		Receiver:      PartyRequest{Name: details.Receiver.Name, Phone: details.Receiver.Phone},
		Description:   details.Description,
		Weight:        details.Weight,
		Route:         details.Route,
		Nature:        details.Nature.String(),
		MailType:      details.MailType.String(),
		IsFree:        details.IsFree,
		Status:        s.Status().String(),
		IsConfirmed:   s.IsConfirmed(),
		IsCancelled:   s.IsCancelled(),
		ConfirmedAt:   s.ConfirmedAt(),
		CancelledAt:   s.CancelledAt(),
		CancelReason:  s.CancelReason(),
		CreatedAt:     s.CreatedAt(),
	}

	if depID := s.Departure(); depID != nil {
		id := depID.String()
		resp.DepartureID = &id
	}

	if actor.CanViewFinancials() {
		declared := details.DeclaredValue
		price := details.Price
		resp.DeclaredValue = &declared
		resp.Price = &price
	}

	return resp
}

// shipmentResponseFromQuery projects a query row with the same masking rules.
func shipmentResponseFromQuery(row queries.ShipmentResponse, actor kernel.Actor) ShipmentResponse {
	resp := ShipmentResponse{
		ID:            row.ID.String(),
		WaybillNumber: row.WaybillNumber,
		Sender:        PartyRequest{Name: row.SenderName, Phone: row.SenderPhone},
		Receiver:      PartyRequest{Name: row.ReceiverName, Phone: row.ReceiverPhone},
		Description:   row.Description,
		Weight:        row.Weight,
		Route:         row.Route,
		Nature:        shipment.Nature(row.Nature).String(),
		MailType:      shipment.MailType(row.MailType).String(),
		IsFree:        row.IsFree,
		Status:        shipment.Status(row.Status).String(),
		IsConfirmed:   row.IsConfirmed,
		IsCancelled:   row.IsCancelled,
		ConfirmedAt:   row.ConfirmedAt,
		CancelledAt:   row.CancelledAt,
		CancelReason:  row.CancelReason,
		CreatedAt:     row.CreatedAt,
	}

	if row.DepartureID != nil {
		id := row.DepartureID.String()
		resp.DepartureID = &id
	}

	if actor.CanViewFinancials() {
		declared := row.DeclaredValue
		price := row.Price
		resp.DeclaredValue = &declared
		resp.Price = &price
	}

	return resp
}

// ShipmentListResponse is one page of the shipment ledger.
type ShipmentListResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"pageSize"`
}

// DepartureResponse is the API projection of one departure.
type DepartureResponse struct {
	ID                   string           `json:"id"`
	GeneralWaybillNumber *string          `json:"generalWaybillNumber,omitempty"`
	Status               string           `json:"status"`
	Route                string           `json:"route"`
	VehicleID            *string          `json:"vehicleId,omitempty"`
	DriverID             *string          `json:"driverId,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	SealedAt             *time.Time       `json:"sealedAt,omitempty"`
	ClosedAt             *time.Time       `json:"closedAt,omitempty"`
	ShipmentCount        int              `json:"shipmentCount"`
	TotalWeight          decimal.Decimal  `json:"totalWeight"`
	TotalPrice           *decimal.Decimal `json:"totalPrice,omitempty"`
	TotalDeclaredValue   *decimal.Decimal `json:"totalDeclaredValue,omitempty"`
}

// departureResponseFromAggregate projects a domain aggregate. Member counts
// and totals are only available through the query side.
func departureResponseFromAggregate(d *departure.Departure) DepartureResponse {
	fields := d.Fields()

	resp := DepartureResponse{
		ID:                   d.ID().String(),
		GeneralWaybillNumber: d.GeneralWaybillNumber(),
		Status:               d.Status().String(),
		Route:                fields.Route,
		Notes:                fields.Notes,
		CreatedAt:            d.CreatedAt(),
		SealedAt:             d.SealedAt(),
		ClosedAt:             d.ClosedAt(),
	}

	if fields.VehicleID != nil {
		id := fields.VehicleID.String()
		resp.VehicleID = &id
	}
	if fields.DriverID != nil {
		id := fields.DriverID.String()
		resp.DriverID = &id
	}

	return resp
}

// departureResponseFromQuery projects a query row, masking the revenue total
// for actors without financial visibility.
func departureResponseFromQuery(row queries.DepartureResponse, actor kernel.Actor) DepartureResponse {
	resp := DepartureResponse{
		ID:                   row.ID.String(),
		GeneralWaybillNumber: row.GeneralWaybillNumber,
		Status:               departure.Status(row.Status).String(),
		Route:                row.Route,
		Notes:                row.Notes,
		CreatedAt:            row.CreatedAt,
		SealedAt:             row.SealedAt,
		ClosedAt:             row.ClosedAt,
		ShipmentCount:        row.ShipmentCount,
		TotalWeight:          row.TotalWeight,
	}

	if row.VehicleID != nil {
		id := row.VehicleID.String()
		resp.VehicleID = &id
	}
	if row.DriverID != nil {
		id := row.DriverID.String()
		resp.DriverID = &id
	}

	if actor.CanViewFinancials() {
		total := row.TotalPrice
		resp.TotalPrice = &total
		declared := row.TotalDeclaredValue
		resp.TotalDeclaredValue = &declared
	}

	return resp
}

// DepartureListResponse is one page of departures.
type DepartureListResponse struct {
	Departures []DepartureResponse `json:"departures"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
}

// DepartureSummaryResponse is the departure header plus its member manifest.
type DepartureSummaryResponse struct {
	Departure DepartureResponse  `json:"departure"`
	Members   []ShipmentResponse `json:"members"`
}

// DriverShipmentShareResponse is one shipment line of a driver payout.
type DriverShipmentShareResponse struct {
	ShipmentID    string          `json:"shipmentId"`
	WaybillNumber string          `json:"waybillNumber"`
	Weight        decimal.Decimal `json:"weight"`
	Price         decimal.Decimal `json:"price"`
	Share         decimal.Decimal `json:"share"`
	DepartureID   string          `json:"departureId"`
	SealedAt      time.Time       `json:"sealedAt"`
}

// DriverPayoutResponse aggregates one driver's eligible shipments.
type DriverPayoutResponse struct {
	DriverID      string                        `json:"driverId"`
	ShipmentCount int                           `json:"shipmentCount"`
	TotalAmount   decimal.Decimal               `json:"totalAmount"`
	Shipments     []DriverShipmentShareResponse `json:"shipments"`
}

func driverPayoutResponse(payout services.DriverPayout) DriverPayoutResponse {
	shipments := make([]DriverShipmentShareResponse, 0, len(payout.Shipments))
	for _, share := range payout.Shipments {
		shipments = append(shipments, DriverShipmentShareResponse{
			ShipmentID:    share.ShipmentID.String(),
			WaybillNumber: share.WaybillNumber,
			Weight:        share.Weight,
			Price:         share.Price,
			Share:         share.Share,
			DepartureID:   share.DepartureID.String(),
			SealedAt:      share.SealedAt,
		})
	}

	return DriverPayoutResponse{
		DriverID:      payout.DriverID.String(),
		ShipmentCount: payout.ShipmentCount,
		TotalAmount:   payout.TotalAmount,
		Shipments:     shipments,
	}
}

// RegulatorShipmentResponse is one shipment line of the regulator report.
type RegulatorShipmentResponse struct {
	ShipmentID    string          `json:"shipmentId"`
	WaybillNumber string          `json:"waybillNumber"`
	Weight        decimal.Decimal `json:"weight"`
	Price         decimal.Decimal `json:"price"`
	Nature        string          `json:"nature"`
	MailType      string          `json:"mailType"`
	DepartureID   string          `json:"departureId"`
	SealedAt      time.Time       `json:"sealedAt"`
}

// RegulatorPayoutResponse is the regulator aggregate over the window.
type RegulatorPayoutResponse struct {
	ShipmentCount int                         `json:"shipmentCount"`
	TotalPrice    decimal.Decimal             `json:"totalPrice"`
	Amount        decimal.Decimal             `json:"amount"`
	Shipments     []RegulatorShipmentResponse `json:"shipments"`
}

func regulatorPayoutResponse(payout services.RegulatorPayout) RegulatorPayoutResponse {
	shipments := make([]RegulatorShipmentResponse, 0, len(payout.Shipments))
	for _, line := range payout.Shipments {
		shipments = append(shipments, RegulatorShipmentResponse{
			ShipmentID:    line.ShipmentID.String(),
			WaybillNumber: line.WaybillNumber,
			Weight:        line.Weight,
			Price:         line.Price,
			Nature:        line.Nature.String(),
			MailType:      line.MailType.String(),
			DepartureID:   line.DepartureID.String(),
			SealedAt:      line.SealedAt,
		})
	}

	return RegulatorPayoutResponse{
		ShipmentCount: payout.ShipmentCount,
		TotalPrice:    payout.TotalPrice,
		Amount:        payout.Amount,
		Shipments:     shipments,
	}
}

// AgencyPayoutResponse is the agency residual over the window.
type AgencyPayoutResponse struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	DriverTotal    decimal.Decimal `json:"driverTotal"`
	RegulatorTotal decimal.Decimal `json:"regulatorTotal"`
	Amount         decimal.Decimal `json:"amount"`
}

func agencyPayoutResponse(payout services.AgencyPayout) AgencyPayoutResponse {
	return AgencyPayoutResponse{
		TotalRevenue:   payout.TotalRevenue,
		DriverTotal:    payout.DriverTotal,
		RegulatorTotal: payout.RegulatorTotal,
		Amount:         payout.Amount,
	}
}

// DistributionSummaryResponse combines the three stakeholder views.
type DistributionSummaryResponse struct {
	ShipmentCount  int                     `json:"shipmentCount"`
	TotalRevenue   decimal.Decimal         `json:"totalRevenue"`
	DriverTotal    decimal.Decimal         `json:"driverTotal"`
	RegulatorTotal decimal.Decimal         `json:"regulatorTotal"`
	AgencyAmount   decimal.Decimal         `json:"agencyAmount"`
	Drivers        []DriverPayoutResponse  `json:"drivers"`
	Regulator      RegulatorPayoutResponse `json:"regulator"`
}

func distributionSummaryResponse(summary services.DistributionSummary) DistributionSummaryResponse {
	drivers := make([]DriverPayoutResponse, 0, len(summary.Drivers))
	for _, payout := range summary.Drivers {
		drivers = append(drivers, driverPayoutResponse(payout))
	}

	return DistributionSummaryResponse{
		ShipmentCount:  summary.ShipmentCount,
		TotalRevenue:   summary.TotalRevenue,
		DriverTotal:    summary.DriverTotal,
		RegulatorTotal: summary.RegulatorTotal,
		AgencyAmount:   summary.AgencyAmount,
		Drivers:        drivers,
		Regulator:      regulatorPayoutResponse(summary.Regulator),
	}
}

func parseOptionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}
