package cmd

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpin "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/eventbus"
	"parcels/internal/adapters/out/manifest"
	pgadapter "parcels/internal/adapters/out/postgres"
	"parcels/internal/adapters/out/postgres/auditrepo"
	"parcels/internal/adapters/out/postgres/consolidationrepo"
	"parcels/internal/adapters/out/postgres/distributionrepo"
	"parcels/internal/adapters/out/postgres/ledgerrepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/jobs"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  pgadapter.GormUnitOfWorkFactory
	publisher   *eventbus.ChannelPublisher
	lockChecker *manifest.GormManifestLockChecker
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *pgadapter.NewGormUnitOfWorkFactory(gormDB),
		publisher:   eventbus.NewChannelPublisher(config.EventBufferSize, logger),
		lockChecker: manifest.NewGormManifestLockChecker(gormDB),
		logger:      logger,
	}
}

// Publisher exposes the event bus so main can drain it on shutdown.
func (c *CompositionRoot) Publisher() *eventbus.ChannelPublisher {
	return c.publisher
}

func (c *CompositionRoot) CreateChangeParcelStatusCommandHandler() commands.ChangeParcelStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeParcelStatusCommandHandler(f, c.lockChecker, c.publisher)
}

func (c *CompositionRoot) CreateUpdateParcelFeesCommandHandler() commands.UpdateParcelFeesCommandHandler {
	var f commands.ParcelFeesUoWFactory = FuncParcelFeesUoWFactory(func() commands.ParcelFeesUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelFeesCommandHandler(f)
}

func (c *CompositionRoot) CreateConsolidateParcelsCommandHandler() commands.ConsolidateParcelsCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConsolidateParcelsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUnconsolidateParcelsCommandHandler() commands.UnconsolidateParcelsCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnconsolidateParcelsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateChangeConsolidationStatusCommandHandler() commands.ChangeConsolidationStatusCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeConsolidationStatusCommandHandler(f, c.lockChecker, c.publisher)
}

func (c *CompositionRoot) CreateDistributeParcelsCommandHandler() commands.DistributeParcelsCommandHandler {
	var f commands.DistributionUoWFactory = FuncDistributionUoWFactory(func() commands.DistributionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDistributeParcelsCommandHandler(f, c.lockChecker, c.publisher)
}

func (c *CompositionRoot) CreateFlagTransactionCommandHandler() commands.FlagTransactionCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFlagTransactionCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveTransactionCommandHandler() commands.ResolveTransactionCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveTransactionCommandHandler(f)
}

func (c *CompositionRoot) CreateGetCustomerTransactionsQueryHandler() queries.GetCustomerTransactionsQueryHandler {
	return queries.NewGetCustomerTransactionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReadyParcelsQueryHandler() queries.GetReadyParcelsQueryHandler {
	return queries.NewGetReadyParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateChangeParcelStatusCommandHandler(),
		c.CreateUpdateParcelFeesCommandHandler(),
		c.CreateConsolidateParcelsCommandHandler(),
		c.CreateUnconsolidateParcelsCommandHandler(),
		c.CreateChangeConsolidationStatusCommandHandler(),
		c.CreateDistributeParcelsCommandHandler(),
		c.CreateFlagTransactionCommandHandler(),
		c.CreateResolveTransactionCommandHandler(),
		c.CreateGetCustomerTransactionsQueryHandler(),
		c.CreateGetReadyParcelsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	threshold, err := kernel.NewMoneyFromString(c.config.WriteOffReviewThreshold)
	if err != nil {
		return nil, fmt.Errorf("invalid write-off review threshold: %w", err)
	}

	reconciliationJob := jobs.NewReconciliationJob(
		c.gormDB,
		c.CreateFlagTransactionCommandHandler(),
		threshold,
		c.config.ReconciliationBatchSize,
		c.config.ReconciliationSchedule,
		c.logger,
	)

	auditRetentionJob := jobs.NewAuditRetentionJob(
		auditrepo.NewGormAuditRepository(c.gormDB),
		c.config.AuditRetentionDays,
		c.config.AuditRetentionSchedule,
		c.logger,
	)

	return jobs.NewJobManager(reconciliationJob, auditRetentionJob), nil
}

// OpenGormDB connects to PostgreSQL through the lib/pq driver so that
// unique-violation errors surface as *pq.Error in the repositories.
func OpenGormDB(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode,
	)

	return gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})
}

// MigrateSchema creates or updates all tables the adapters rely on.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&consolidationrepo.ConsolidatedPackageDTO{},
		&ledgerrepo.CustomerAccountDTO{},
		&ledgerrepo.CustomerTransactionDTO{},
		&distributionrepo.DistributionDTO{},
		&distributionrepo.DistributionItemDTO{},
		&auditrepo.StatusChangeDTO{},
		&auditrepo.ConsolidationHistoryDTO{},
		&manifest.ManifestLockDTO{},
	)
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncConsolidationUoWFactory func() commands.ConsolidationUoW

func (f FuncConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	return f()
}

type FuncParcelFeesUoWFactory func() commands.ParcelFeesUoW

func (f FuncParcelFeesUoWFactory) Create() commands.ParcelFeesUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncDistributionUoWFactory func() commands.DistributionUoW

func (f FuncDistributionUoWFactory) Create() commands.DistributionUoW {
	return f()
}
