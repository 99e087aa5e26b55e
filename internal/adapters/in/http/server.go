// Package http provides the Echo-based HTTP adapter. Handlers translate
// JSON requests into commands and queries and map domain errors to status
// codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/distribution"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	changeStatusHandler  commands.ChangeParcelStatusCommandHandler
	updateFeesHandler    commands.UpdateParcelFeesCommandHandler
	consolidateHandler   commands.ConsolidateParcelsCommandHandler
	unconsolidateHandler commands.UnconsolidateParcelsCommandHandler
	groupStatusHandler   commands.ChangeConsolidationStatusCommandHandler
	distributeHandler    commands.DistributeParcelsCommandHandler
	flagHandler          commands.FlagTransactionCommandHandler
	resolveHandler       commands.ResolveTransactionCommandHandler

	transactionsHandler queries.GetCustomerTransactionsQueryHandler
	readyParcelsHandler queries.GetReadyParcelsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	changeStatusHandler commands.ChangeParcelStatusCommandHandler,
	updateFeesHandler commands.UpdateParcelFeesCommandHandler,
	consolidateHandler commands.ConsolidateParcelsCommandHandler,
	unconsolidateHandler commands.UnconsolidateParcelsCommandHandler,
	groupStatusHandler commands.ChangeConsolidationStatusCommandHandler,
	distributeHandler commands.DistributeParcelsCommandHandler,
	flagHandler commands.FlagTransactionCommandHandler,
	resolveHandler commands.ResolveTransactionCommandHandler,
	transactionsHandler queries.GetCustomerTransactionsQueryHandler,
	readyParcelsHandler queries.GetReadyParcelsQueryHandler,
) *Server {
	return &Server{
		changeStatusHandler:  changeStatusHandler,
		updateFeesHandler:    updateFeesHandler,
		consolidateHandler:   consolidateHandler,
		unconsolidateHandler: unconsolidateHandler,
		groupStatusHandler:   groupStatusHandler,
		distributeHandler:    distributeHandler,
		flagHandler:          flagHandler,
		resolveHandler:       resolveHandler,
		transactionsHandler:  transactionsHandler,
		readyParcelsHandler:  readyParcelsHandler,
	}
}

// RegisterRoutes attaches the API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/parcels/:id/status", s.ChangeParcelStatus)
	api.PUT("/parcels/:id/fees", s.UpdateParcelFees)
	api.POST("/consolidations", s.ConsolidateParcels)
	api.POST("/consolidations/:id/status", s.ChangeConsolidationStatus)
	api.POST("/consolidations/:id/unconsolidate", s.UnconsolidateParcels)
	api.POST("/distributions", s.DistributeParcels)
	api.POST("/transactions/:id/flag", s.FlagTransaction)
	api.POST("/transactions/:id/resolve", s.ResolveTransaction)
	api.GET("/customers/:id/transactions", s.GetCustomerTransactions)
	api.GET("/customers/:id/parcels/ready", s.GetReadyParcels)

	e.GET("/health", s.Health)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ChangeStatusRequest is the body of POST /api/v1/parcels/:id/status.
type ChangeStatusRequest struct {
	NewStatus string `json:"newStatus"`
	Actor     string `json:"actor"`
	Reason    string `json:"reason"`
}

// ConsolidateRequest is the body of POST /api/v1/consolidations.
type ConsolidateRequest struct {
	CustomerID string   `json:"customerId"`
	ParcelIDs  []string `json:"parcelIds"`
	Operator   string   `json:"operator"`
}

// UpdateFeesRequest is the body of PUT /api/v1/parcels/:id/fees.
type UpdateFeesRequest struct {
	FreightFee   string `json:"freightFee"`
	ClearanceFee string `json:"clearanceFee"`
	StorageFee   string `json:"storageFee"`
	DeliveryFee  string `json:"deliveryFee"`
}

// GroupStatusRequest is the body of POST /api/v1/consolidations/:id/status.
type GroupStatusRequest struct {
	NewStatus string `json:"newStatus"`
	Operator  string `json:"operator"`
	Reason    string `json:"reason"`
}

// UnconsolidateRequest is the body of
// POST /api/v1/consolidations/:id/unconsolidate.
type UnconsolidateRequest struct {
	Operator string `json:"operator"`
	Reason   string `json:"reason"`
}

// DistributeRequest is the body of POST /api/v1/distributions.
type DistributeRequest struct {
	CustomerID       string   `json:"customerId"`
	ParcelIDs        []string `json:"parcelIds"`
	Operator         string   `json:"operator"`
	AmountCollected  string   `json:"amountCollected"`
	UseCreditBalance bool     `json:"useCreditBalance"`
	WriteOffAmount   string   `json:"writeOffAmount,omitempty"`
	WriteOffReason   string   `json:"writeOffReason,omitempty"`
}

// ReviewRequest is the body of the transaction flag and resolve endpoints.
type ReviewRequest struct {
	Reason        string `json:"reason,omitempty"`
	AdminResponse string `json:"adminResponse,omitempty"`
}

// TransactionResponse is one ledger posting row returned to clients.
type TransactionResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	BalanceKind      string    `json:"balanceKind"`
	Amount           string    `json:"amount"`
	BalanceBefore    string    `json:"balanceBefore"`
	BalanceAfter     string    `json:"balanceAfter"`
	ReferenceID      *string   `json:"referenceId,omitempty"`
	Description      string    `json:"description"`
	FlaggedForReview bool      `json:"flaggedForReview"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ReadyParcelResponse is one distributable parcel row returned to clients.
type ReadyParcelResponse struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"trackingNumber"`
	Weight         string `json:"weight"`
	TotalCost      string `json:"totalCost"`
	Consolidated   bool   `json:"consolidated"`
}

// ChangeParcelStatus handles POST /api/v1/parcels/:id/status.
func (s *Server) ChangeParcelStatus(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel ID")
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := parcel.StatusFromString(req.NewStatus)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.NewStatus)
	}

	cmd, err := commands.NewChangeParcelStatusCommand(parcelID, newStatus, req.Actor, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateParcelFees handles PUT /api/v1/parcels/:id/fees.
func (s *Server) UpdateParcelFees(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel ID")
	}

	var req UpdateFeesRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	fees, err := parseFees(req)
	if err != nil {
		return badRequest(ctx, "Invalid fee amount")
	}

	cmd, err := commands.NewUpdateParcelFeesCommand(parcelID, fees)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateFeesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeConsolidationStatus handles POST /api/v1/consolidations/:id/status.
func (s *Server) ChangeConsolidationStatus(ctx echo.Context) error {
	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid consolidation ID")
	}

	var req GroupStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := parcel.StatusFromString(req.NewStatus)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.NewStatus)
	}

	cmd, err := commands.NewChangeConsolidationStatusCommand(consolidationID, newStatus, req.Operator, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.groupStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConsolidateParcels handles POST /api/v1/consolidations.
func (s *Server) ConsolidateParcels(ctx echo.Context) error {
	var req ConsolidateRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	parcelIDs, err := parseUUIDs(req.ParcelIDs)
	if err != nil {
		return badRequest(ctx, "Invalid parcel ID in list")
	}

	cmd, err := commands.NewConsolidateParcelsCommand(customerID, parcelIDs, req.Operator)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.consolidateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UnconsolidateParcels handles POST /api/v1/consolidations/:id/unconsolidate.
func (s *Server) UnconsolidateParcels(ctx echo.Context) error {
	consolidationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid consolidation ID")
	}

	var req UnconsolidateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUnconsolidateParcelsCommand(consolidationID, req.Operator, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.unconsolidateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DistributeParcels handles POST /api/v1/distributions.
func (s *Server) DistributeParcels(ctx echo.Context) error {
	var req DistributeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	parcelIDs, err := parseUUIDs(req.ParcelIDs)
	if err != nil {
		return badRequest(ctx, "Invalid parcel ID in list")
	}

	amountCollected, err := kernel.NewMoneyFromString(req.AmountCollected)
	if err != nil {
		return badRequest(ctx, "Invalid amount collected")
	}

	writeOffAmount := kernel.ZeroMoney()
	if req.WriteOffAmount != "" {
		writeOffAmount, err = kernel.NewMoneyFromString(req.WriteOffAmount)
		if err != nil {
			return badRequest(ctx, "Invalid write-off amount")
		}
	}

	cmd, err := commands.NewDistributeParcelsCommand(
		customerID,
		parcelIDs,
		req.Operator,
		amountCollected,
		req.UseCreditBalance,
		writeOffAmount,
		req.WriteOffReason,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.distributeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// FlagTransaction handles POST /api/v1/transactions/:id/flag.
func (s *Server) FlagTransaction(ctx echo.Context) error {
	transactionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid transaction ID")
	}

	var req ReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewFlagTransactionCommand(transactionID, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.flagHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveTransaction handles POST /api/v1/transactions/:id/resolve.
func (s *Server) ResolveTransaction(ctx echo.Context) error {
	transactionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid transaction ID")
	}

	var req ReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveTransactionCommand(transactionID, req.AdminResponse)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.resolveHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerTransactions handles GET /api/v1/customers/:id/transactions.
func (s *Server) GetCustomerTransactions(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	query, err := queries.NewGetCustomerTransactionsQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	postings, err := s.transactionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve transactions")
	}

	response := make([]TransactionResponse, len(postings))
	for i, posting := range postings {
		var referenceID *string
		if posting.ReferenceID != nil {
			raw := posting.ReferenceID.String()
			referenceID = &raw
		}

		response[i] = TransactionResponse{
			ID:               posting.ID.String(),
			Type:             string(posting.Type),
			BalanceKind:      string(posting.BalanceKind),
			Amount:           posting.Amount.String(),
			BalanceBefore:    posting.BalanceBefore.String(),
			BalanceAfter:     posting.BalanceAfter.String(),
			ReferenceID:      referenceID,
			Description:      posting.Description,
			FlaggedForReview: posting.FlaggedForReview,
			CreatedAt:        posting.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetReadyParcels handles GET /api/v1/customers/:id/parcels/ready.
func (s *Server) GetReadyParcels(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	query, err := queries.NewGetReadyParcelsQuery(customerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	parcels, err := s.readyParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve ready parcels")
	}

	response := make([]ReadyParcelResponse, len(parcels))
	for i, row := range parcels {
		response[i] = ReadyParcelResponse{
			ID:             row.ID.String(),
			TrackingNumber: row.TrackingNumber,
			Weight:         row.Weight.String(),
			TotalCost:      row.TotalCost.String(),
			Consolidated:   row.Consolidated,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func parseFees(req UpdateFeesRequest) (parcel.Fees, error) {
	freight, err := kernel.NewMoneyFromString(req.FreightFee)
	if err != nil {
		return parcel.Fees{}, err
	}
	clearance, err := kernel.NewMoneyFromString(req.ClearanceFee)
	if err != nil {
		return parcel.Fees{}, err
	}
	storage, err := kernel.NewMoneyFromString(req.StorageFee)
	if err != nil {
		return parcel.Fees{}, err
	}
	delivery, err := kernel.NewMoneyFromString(req.DeliveryFee)
	if err != nil {
		return parcel.Fees{}, err
	}

	return parcel.Fees{
		Freight:   freight,
		Clearance: clearance,
		Storage:   storage,
		Delivery:  delivery,
	}, nil
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// commandError maps domain errors to HTTP status codes.
func commandError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, parcel.ErrInvalidTransition),
		errors.Is(err, parcel.ErrParcelInConsolidation),
		errors.Is(err, consolidation.ErrConsolidationConflict),
		errors.Is(err, consolidation.ErrConsolidationInactive),
		errors.Is(err, distribution.ErrOwnershipMismatch),
		errors.Is(err, distribution.ErrParcelNotReady),
		errors.Is(err, ledger.ErrAllocationOverflow),
		errors.Is(err, ledger.ErrTransactionAlreadyFlagged),
		errors.Is(err, ledger.ErrTransactionNotFlagged),
		errors.Is(err, ledger.ErrTransactionAlreadyResolved),
		errors.Is(err, ports.ErrConcurrentModification),
		errors.Is(err, ports.ErrManifestLocked):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
