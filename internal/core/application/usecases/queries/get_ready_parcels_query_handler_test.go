package queries_test

import (
	"context"
	"testing"
	"time"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetReadyParcelsQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetReadyParcelsQueryHandler
	parcelRepo *parcelrepo.GormParcelRepository
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetReadyParcelsQueryHandler(db)
	suite.parcelRepo = parcelrepo.NewGormParcelRepository(db, &mockAggregateTracker{})
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) money(s string) kernel.Money {
	m, err := kernel.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) weight(s string) kernel.Weight {
	w, err := kernel.NewWeightFromString(s)
	suite.Require().NoError(err)
	return w
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) newParcel(
	customerID kernel.UUID, trackingNumber string, status parcel.Status,
) *parcel.Parcel {
	p, err := parcel.NewParcel(
		kernel.NewUUID(), customerID, trackingNumber,
		suite.weight("1.250"), suite.money("100.00"),
		parcel.Fees{
			Freight:   suite.money("12.50"),
			Clearance: suite.money("3.00"),
			Storage:   suite.money("1.25"),
			Delivery:  suite.money("5.00"),
		})
	suite.Require().NoError(err)

	if status != parcel.Pending {
		_, err = p.ForceSetStatus(status, "tester", "", true)
		suite.Require().NoError(err)
	}
	return p
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TestHandle_NoParcels_ReturnsEmptySlice() {
	query, err := queries.NewGetReadyParcelsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TestHandle_ReturnsOnlyReadyUndistributed() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	ready := suite.newParcel(customerID, "TRK-READY", parcel.Ready)
	pending := suite.newParcel(customerID, "TRK-PENDING", parcel.Pending)
	delivered := suite.newParcel(customerID, "TRK-DELIVERED", parcel.Delivered)

	handedOver := suite.newParcel(customerID, "TRK-HANDED", parcel.Ready)
	suite.Require().NoError(handedOver.MarkDistributed(time.Now().UTC()))

	foreign := suite.newParcel(kernel.NewUUID(), "TRK-FOREIGN", parcel.Ready)

	for _, p := range []*parcel.Parcel{ready, pending, delivered, handedOver, foreign} {
		suite.Require().NoError(suite.parcelRepo.Add(ctx, p))
	}

	query, err := queries.NewGetReadyParcelsQuery(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(ready.ID()))
	suite.Equal("TRK-READY", result[0].TrackingNumber)
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TestHandle_SumsFeeComponents() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	ready := suite.newParcel(customerID, "TRK-FEES", parcel.Ready)
	suite.Require().NoError(suite.parcelRepo.Add(ctx, ready))

	query, err := queries.NewGetReadyParcelsQuery(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("21.75", result[0].TotalCost.String())
	suite.Equal("1.250", result[0].Weight.String())
	suite.False(result[0].Consolidated)
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TestHandle_MarksConsolidatedMembers() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	member := suite.newParcel(customerID, "TRK-MEMBER", parcel.Ready)
	suite.Require().NoError(member.MarkConsolidated(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.parcelRepo.Add(ctx, member))

	query, err := queries.NewGetReadyParcelsQuery(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].Consolidated)
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TestHandle_SortsByTrackingNumber() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	for _, trackingNumber := range []string{"TRK-C", "TRK-A", "TRK-B"} {
		p := suite.newParcel(customerID, trackingNumber, parcel.Ready)
		suite.Require().NoError(suite.parcelRepo.Add(ctx, p))
	}

	query, err := queries.NewGetReadyParcelsQuery(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("TRK-A", result[0].TrackingNumber)
	suite.Equal("TRK-B", result[1].TrackingNumber)
	suite.Equal("TRK-C", result[2].TrackingNumber)
}

func (suite *GetReadyParcelsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetReadyParcelsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetReadyParcelsQuery constructor")
}

func TestGetReadyParcelsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetReadyParcelsQueryHandlerTestSuite))
}
