package cmd

import (
	"log/slog"

	httpin "transit/internal/adapters/in/http"
	"transit/internal/adapters/in/http/middleware"
	"transit/internal/adapters/out/docgen"
	"transit/internal/adapters/out/postgres"
	"transit/internal/core/application/usecases/commands"
	"transit/internal/core/application/usecases/queries"
	"transit/internal/core/domain/services"
	"transit/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	generator  *docgen.FileWaybillDocumentGenerator
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	generator, err := docgen.NewFileWaybillDocumentGenerator(config.DocumentDir)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		generator:  generator,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateAuthMiddleware() *middleware.Auth {
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.config.RedisAddr,
		Password: c.config.RedisPassword,
	})
	return middleware.NewAuth([]byte(c.config.JWTSecret), rdb)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateShipment:  c.CreateCreateShipmentCommandHandler(),
		UpdateShipment:  c.CreateUpdateShipmentCommandHandler(),
		ConfirmShipment: c.CreateConfirmShipmentCommandHandler(),
		CancelShipment:  c.CreateCancelShipmentCommandHandler(),
		CreateDeparture: c.CreateCreateDepartureCommandHandler(),
		UpdateDeparture: c.CreateUpdateDepartureCommandHandler(),
		AssignShipments: c.CreateAssignShipmentsCommandHandler(),
		RemoveShipment:  c.CreateRemoveShipmentCommandHandler(),
		SealDeparture:   c.CreateSealDepartureCommandHandler(),
		CloseDeparture:  c.CreateCloseDepartureCommandHandler(),
		DeleteDeparture: c.CreateDeleteDepartureCommandHandler(),

		ListShipments:         c.CreateListShipmentsQueryHandler(),
		GetShipment:           c.CreateGetShipmentQueryHandler(),
		ListDepartures:        c.CreateListDeparturesQueryHandler(),
		GetDeparture:          c.CreateGetDepartureQueryHandler(),
		GetDepartureDocument:  c.CreateGetDepartureDocumentQueryHandler(),
		DriverDistribution:    c.CreateDriverDistributionQueryHandler(),
		RegulatorDistribution: c.CreateRegulatorDistributionQueryHandler(),
		AgencyDistribution:    c.CreateAgencyDistributionQueryHandler(),
		DistributionSummary:   c.CreateDistributionSummaryQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.generator, c.logger)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateConfirmShipmentCommandHandler() commands.ConfirmShipmentCommandHandler {
	return commands.NewConfirmShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateCreateDepartureCommandHandler() commands.CreateDepartureCommandHandler {
	return commands.NewCreateDepartureCommandHandler(c.departureUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDepartureCommandHandler() commands.UpdateDepartureCommandHandler {
	return commands.NewUpdateDepartureCommandHandler(c.departureUoWFactory())
}

func (c *CompositionRoot) CreateAssignShipmentsCommandHandler() commands.AssignShipmentsCommandHandler {
	return commands.NewAssignShipmentsCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateRemoveShipmentCommandHandler() commands.RemoveShipmentCommandHandler {
	return commands.NewRemoveShipmentCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateSealDepartureCommandHandler() commands.SealDepartureCommandHandler {
	return commands.NewSealDepartureCommandHandler(c.crossUoWFactory(), c.generator)
}

func (c *CompositionRoot) CreateCloseDepartureCommandHandler() commands.CloseDepartureCommandHandler {
	return commands.NewCloseDepartureCommandHandler(c.departureUoWFactory())
}

func (c *CompositionRoot) CreateDeleteDepartureCommandHandler() commands.DeleteDepartureCommandHandler {
	return commands.NewDeleteDepartureCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeparturesQueryHandler() queries.ListDeparturesQueryHandler {
	return queries.NewListDeparturesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDepartureQueryHandler() queries.GetDepartureQueryHandler {
	return queries.NewGetDepartureQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDepartureDocumentQueryHandler() queries.GetDepartureDocumentQueryHandler {
	return queries.NewGetDepartureDocumentQueryHandler(&c.uowFactory, c.generator)
}

func (c *CompositionRoot) CreateDriverDistributionQueryHandler() queries.DriverDistributionQueryHandler {
	return queries.NewDriverDistributionQueryHandler(c.gormDB, c.distributionCalculator())
}

func (c *CompositionRoot) CreateRegulatorDistributionQueryHandler() queries.RegulatorDistributionQueryHandler {
	return queries.NewRegulatorDistributionQueryHandler(c.gormDB, c.distributionCalculator())
}

func (c *CompositionRoot) CreateAgencyDistributionQueryHandler() queries.AgencyDistributionQueryHandler {
	return queries.NewAgencyDistributionQueryHandler(c.gormDB, c.distributionCalculator())
}

func (c *CompositionRoot) CreateDistributionSummaryQueryHandler() queries.DistributionSummaryQueryHandler {
	return queries.NewDistributionSummaryQueryHandler(c.gormDB, c.distributionCalculator())
}

func (c *CompositionRoot) distributionCalculator() *services.DistributionCalculator {
	return services.NewDistributionCalculator()
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) departureUoWFactory() commands.DepartureUoWFactory {
	return FuncDepartureUoWFactory(func() commands.DepartureUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncDepartureUoWFactory func() commands.DepartureUoW

func (f FuncDepartureUoWFactory) Create() commands.DepartureUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
