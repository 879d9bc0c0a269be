package commands_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/domain/model/departure"
	"transit/internal/core/domain/model/kernel"
	"transit/internal/core/domain/model/shipment"
	"transit/internal/core/ports"
	"transit/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeUnitOfWork is an in-memory unit of work for handler tests. It records
// transaction outcomes and allows injecting failures at specific steps.
type fakeUnitOfWork struct {
	shipments  map[kernel.UUID]*shipment.Shipment
	departures map[kernel.UUID]*departure.Departure
	sequences  map[ports.SequenceScope]int

	began      bool
	committed  bool
	rolledBack bool

	shipmentUpdateErr  error
	departureUpdateErr error
	allocatorErr       error
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		shipments:  make(map[kernel.UUID]*shipment.Shipment),
		departures: make(map[kernel.UUID]*departure.Departure),
		sequences:  make(map[ports.SequenceScope]int),
	}
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { u.began = true; return nil }

func (u *fakeUnitOfWork) Commit(_ context.Context) error {
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback(_ context.Context) error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUnitOfWork) ShipmentRepository() ports.ShipmentRepository   { return fakeShipmentRepo{u} }
func (u *fakeUnitOfWork) DepartureRepository() ports.DepartureRepository { return fakeDepartureRepo{u} }
func (u *fakeUnitOfWork) SequenceAllocator() ports.SequenceAllocator     { return fakeAllocator{u} }

// uowFactory returns the same instance so tests can inspect it afterwards.
type fakeUoWFactory struct{ uow *fakeUnitOfWork }

func (f fakeUoWFactory) Create() commands.UoW { return f.uow }

type fakeShipmentUoWFactory struct{ uow *fakeUnitOfWork }

func (f fakeShipmentUoWFactory) Create() commands.ShipmentUoW { return f.uow }

type fakeDepartureUoWFactory struct{ uow *fakeUnitOfWork }

func (f fakeDepartureUoWFactory) Create() commands.DepartureUoW { return f.uow }

type fakeShipmentRepo struct{ uow *fakeUnitOfWork }

func (r fakeShipmentRepo) Add(_ context.Context, aggregate *shipment.Shipment) error {
	r.uow.shipments[aggregate.ID()] = aggregate
	return nil
}

func (r fakeShipmentRepo) Update(_ context.Context, aggregate *shipment.Shipment) error {
	if r.uow.shipmentUpdateErr != nil {
		return r.uow.shipmentUpdateErr
	}
	r.uow.shipments[aggregate.ID()] = aggregate
	return nil
}

func (r fakeShipmentRepo) Get(_ context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if aggregate, ok := r.uow.shipments[id]; ok {
		return aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("shipment", id)
}

func (r fakeShipmentRepo) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	result := make([]*shipment.Shipment, 0, len(ids))
	for _, id := range ids {
		aggregate, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, aggregate)
	}
	return result, nil
}

func (r fakeShipmentRepo) GetByDeparture(_ context.Context, departureID kernel.UUID) ([]*shipment.Shipment, error) {
	var members []*shipment.Shipment
	for _, aggregate := range r.uow.shipments {
		if owner := aggregate.Departure(); owner != nil && owner.IsEqual(departureID) {
			members = append(members, aggregate)
		}
	}
	return members, nil
}

type fakeDepartureRepo struct{ uow *fakeUnitOfWork }

func (r fakeDepartureRepo) Add(_ context.Context, aggregate *departure.Departure) error {
	r.uow.departures[aggregate.ID()] = aggregate
	return nil
}

func (r fakeDepartureRepo) Update(_ context.Context, aggregate *departure.Departure) error {
	if r.uow.departureUpdateErr != nil {
		return r.uow.departureUpdateErr
	}
	r.uow.departures[aggregate.ID()] = aggregate
	return nil
}

func (r fakeDepartureRepo) Get(_ context.Context, id kernel.UUID) (*departure.Departure, error) {
	if aggregate, ok := r.uow.departures[id]; ok {
		return aggregate, nil
	}
	return nil, errs.NewObjectNotFoundError("departure", id)
}

func (r fakeDepartureRepo) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.uow.departures[id]; !ok {
		return errs.NewObjectNotFoundError("departure", id)
	}
	delete(r.uow.departures, id)
	return nil
}

type fakeAllocator struct{ uow *fakeUnitOfWork }

func (a fakeAllocator) Next(_ context.Context, scope ports.SequenceScope) (string, error) {
	if a.uow.allocatorErr != nil {
		return "", a.uow.allocatorErr
	}

	prefix := "TC"
	if scope == ports.GeneralWaybillScope {
		prefix = "BG"
	}

	a.uow.sequences[scope]++
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().UTC().Year(), a.uow.sequences[scope]), nil
}

// fakeGenerator implements ports.WaybillDocumentGenerator for seal tests.
type fakeGenerator struct {
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, dep *departure.Departure, _ []*shipment.Shipment) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return "/tmp/documents/departure-" + dep.ID().String() + ".txt", nil
}

func testActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()

	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func testDetails() shipment.Details {
	weight := decimal.NewFromFloat(3.5)
	return shipment.Details{
		Sender:        shipment.Party{Name: "Ion Popescu", Phone: "+37360111222"},
		Receiver:      shipment.Party{Name: "Maria Rusu", Phone: "+37360333444"},
		Description:   "books",
		Weight:        &weight,
		DeclaredValue: decimal.NewFromInt(200),
		Price:         decimal.NewFromInt(150),
		Route:         "Chisinau - Balti",
		Nature:        shipment.NatureParcel,
		MailType:      shipment.MailTypeNone,
	}
}

func storedShipment(t *testing.T, uow *fakeUnitOfWork, waybillNumber string) *shipment.Shipment {
	t.Helper()

	aggregate, err := shipment.NewShipment(kernel.NewUUID(), waybillNumber, testDetails(), time.Now().UTC())
	require.NoError(t, err)
	uow.shipments[aggregate.ID()] = aggregate
	return aggregate
}

func storedDeparture(t *testing.T, uow *fakeUnitOfWork) *departure.Departure {
	t.Helper()

	driverID := kernel.NewUUID()
	aggregate, err := departure.NewDeparture(kernel.NewUUID(), departure.Fields{
		Route:    "Chisinau - Balti",
		DriverID: &driverID,
	}, kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)
	uow.departures[aggregate.ID()] = aggregate
	return aggregate
}
