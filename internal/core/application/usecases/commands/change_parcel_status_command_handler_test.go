package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/events"
	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByConsolidationID(
	ctx context.Context, consolidationID kernel.UUID,
) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, consolidationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) AppendStatusChange(ctx context.Context, change *parcel.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockAuditRepository) AppendConsolidationHistory(
	ctx context.Context, history *consolidation.History,
) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockAuditRepository) PurgeStatusChangesBefore(
	ctx context.Context, cutoff time.Time,
) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockManifestLockChecker struct{ mock.Mock }

func (m *MockManifestLockChecker) IsLocked(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	args := m.Called(ctx, parcelID)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) {
	m.Called(ctx, domainEvents)
}

type MockStatusUoW struct{ mock.Mock }

func (m *MockStatusUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStatusUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockStatusUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockStatusUoWFactory struct{ mock.Mock }

func (m *MockStatusUoWFactory) Create() commands.StatusUoW {
	args := m.Called()
	return args.Get(0).(commands.StatusUoW)
}

func testParcel(t *testing.T, customerID kernel.UUID) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
		kernel.NewUUID(), customerID, "TRK-"+kernel.NewUUID().String(),
		kernel.ZeroWeight(), kernel.ZeroMoney(), parcel.Fees{})
	require.NoError(t, err)
	return p
}

func TestChangeParcelStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	cmd, err := commands.NewChangeParcelStatusCommand(testee.ID(), parcel.Processing, "ops@depot", "intake done")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockStatusUoW)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	lockChecker.On("IsLocked", ctx, testee.ID()).Return(false, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		auditRepo.On("AppendStatusChange", ctx, mock.AnythingOfType("*parcel.StatusChange")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher.On("Publish", ctx, mock.Anything).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.Processing, testee.Status())

	publishCall := publisher.Calls[0]
	published := publishCall.Arguments[1].([]events.DomainEvent)
	require.Len(t, published, 1)
	event := published[0].(events.PackageStatusChanged)
	assert.Equal(t, parcel.Pending, event.OldStatus)
	assert.Equal(t, parcel.Processing, event.NewStatus)

	parcelRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	lockChecker.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestChangeParcelStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ChangeParcelStatusCommand{} // not constructed properly

	factory := new(MockStatusUoWFactory)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrChangeParcelStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	lockChecker.AssertNotCalled(t, "IsLocked")
}

func TestChangeParcelStatusCommandHandler_Handle_ManifestLocked(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, parcel.Processing, "ops@depot", "")
	require.NoError(t, err)

	lockChecker := new(MockManifestLockChecker)
	lockChecker.On("IsLocked", ctx, parcelID).Return(true, nil).Once()

	factory := new(MockStatusUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrManifestLocked)
	factory.AssertNotCalled(t, "Create")
	publisher.AssertNotCalled(t, "Publish")
}

func TestChangeParcelStatusCommandHandler_Handle_LockCheckError(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, parcel.Processing, "ops@depot", "")
	require.NoError(t, err)

	lockChecker := new(MockManifestLockChecker)
	lockChecker.On("IsLocked", ctx, parcelID).Return(false, errors.New("manifest service down")).Once()

	factory := new(MockStatusUoWFactory)
	publisher := new(MockEventPublisher)

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "manifest service down")
	factory.AssertNotCalled(t, "Create")
}

func TestChangeParcelStatusCommandHandler_Handle_ParcelNotFound(t *testing.T) {
	ctx := t.Context()
	parcelID := kernel.NewUUID()
	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, parcel.Processing, "ops@depot", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockStatusUoW)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	lockChecker.On("IsLocked", ctx, parcelID).Return(false, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	publisher.AssertNotCalled(t, "Publish")
}

func TestChangeParcelStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	cmd, err := commands.NewChangeParcelStatusCommand(testee.ID(), parcel.Delivered, "ops@depot", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockStatusUoW)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	lockChecker.On("IsLocked", ctx, testee.ID()).Return(false, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	parcelRepo.AssertNotCalled(t, "Update")
	publisher.AssertNotCalled(t, "Publish")
}

func TestChangeParcelStatusCommandHandler_Handle_SameStatusNoOp(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	cmd, err := commands.NewChangeParcelStatusCommand(testee.ID(), parcel.Pending, "ops@depot", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockStatusUoW)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	lockChecker.On("IsLocked", ctx, testee.ID()).Return(false, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	parcelRepo.AssertNotCalled(t, "Update")
	auditRepo.AssertNotCalled(t, "AppendStatusChange")
	uow.AssertNotCalled(t, "Commit")
	publisher.AssertNotCalled(t, "Publish")
}

func TestChangeParcelStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	cmd, err := commands.NewChangeParcelStatusCommand(testee.ID(), parcel.Processing, "ops@depot", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockStatusUoW)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	lockChecker.On("IsLocked", ctx, testee.ID()).Return(false, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		auditRepo.On("AppendStatusChange", ctx, mock.AnythingOfType("*parcel.StatusChange")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "Publish")
}

func TestChangeParcelStatusCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	testee := testParcel(t, kernel.NewUUID())
	cmd, err := commands.NewChangeParcelStatusCommand(testee.ID(), parcel.Processing, "ops@depot", "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockStatusUoW)
	lockChecker := new(MockManifestLockChecker)
	publisher := new(MockEventPublisher)

	lockChecker.On("IsLocked", ctx, testee.ID()).Return(false, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		parcelRepo.On("Get", ctx, testee.ID()).Return(testee, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).
			Return(ports.ErrConcurrentModification).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewChangeParcelStatusCommandHandler(factory, lockChecker, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrConcurrentModification)
	publisher.AssertNotCalled(t, "Publish")
}
