package commands_test

import (
	"context"
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelFeesUoW struct{ mock.Mock }

func (m *MockParcelFeesUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelFeesUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelFeesUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockParcelFeesUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockParcelFeesUoW) ConsolidationRepository() ports.ConsolidationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConsolidationRepository)
}

type MockParcelFeesUoWFactory struct{ mock.Mock }

func (m *MockParcelFeesUoWFactory) Create() commands.ParcelFeesUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelFeesUoW)
}

func TestUpdateParcelFeesCommandHandler_Handle_StandaloneParcel(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	fees := parcel.Fees{Freight: money(t, "21.75"), Storage: money(t, "4.25")}
	cmd, err := commands.NewUpdateParcelFeesCommand(testee.ID(), fees)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockParcelFeesUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("ConsolidationRepository").Return(consolidationRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelFeesUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelFeesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "26.00", testee.Fees().Total().String())
	consolidationRepo.AssertNotCalled(t, "Get")
	consolidationRepo.AssertNotCalled(t, "Update")

	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateParcelFeesCommandHandler_Handle_ConsolidatedMemberRefreshesTotals(t *testing.T) {
	ctx := t.Context()
	aggregate, members := consolidatedGroup(t)
	fees := parcel.Fees{Freight: money(t, "12.50"), Clearance: money(t, "3.00")}
	cmd, err := commands.NewUpdateParcelFeesCommand(members[0].ID(), fees)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockParcelFeesUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("ConsolidationRepository").Return(consolidationRepo).Once(),
		parcelRepo.On("Get", ctx, members[0].ID()).Return(members[0], nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		consolidationRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		parcelRepo.On("GetByConsolidationID", ctx, aggregate.ID()).Return(members, nil).Once(),
		consolidationRepo.On("Update", ctx, mock.AnythingOfType("*consolidation.ConsolidatedPackage")).
			Return(nil).
			Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelFeesUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelFeesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "15.50", members[0].Fees().Total().String())
	assert.Equal(t, "15.50", aggregate.Totals().Fees.Total().String())
	assert.Equal(t, 2, aggregate.Totals().Quantity)

	parcelRepo.AssertExpectations(t)
	consolidationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateParcelFeesCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateParcelFeesCommand{} // not constructed properly

	factory := new(MockParcelFeesUoWFactory)

	handler := commands.NewUpdateParcelFeesCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrUpdateParcelFeesCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateParcelFeesCommandHandler_Handle_ParcelNotFound(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewUpdateParcelFeesCommand(parcelID, parcel.Fees{Freight: money(t, "1.00")})
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockParcelFeesUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("ConsolidationRepository").Return(consolidationRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelFeesUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelFeesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit")
}

func TestUpdateParcelFeesCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	cmd, err := commands.NewUpdateParcelFeesCommand(testee.ID(), parcel.Fees{Freight: money(t, "1.00")})
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockParcelFeesUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("ConsolidationRepository").Return(consolidationRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).
			Return(ports.ErrConcurrentModification).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelFeesUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateParcelFeesCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit")
}
