// Package http exposes the booking, departure, and settlement operations
// over a REST API. Handlers translate JSON payloads into commands and
// queries and map domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"tourops/internal/adapters/out/postgres"
	"tourops/internal/core/application/usecases/commands"
	"tourops/internal/core/application/usecases/queries"
	"tourops/internal/core/domain/model/departure"
	"tourops/internal/core/domain/model/kernel"
	"tourops/internal/core/domain/model/reservation"
	"tourops/internal/core/domain/services"
	"tourops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// maxTxRetries bounds how often a booking command is retried after the
// database reports a serialization failure or deadlock.
const maxTxRetries = 3

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createReservationHandler     commands.CreateReservationCommandHandler
	cancelReservationHandler     commands.CancelReservationCommandHandler
	changePassengerCountsHandler commands.ChangePassengerCountsCommandHandler
	recordCollectionHandler      commands.RecordCollectionCommandHandler
	scheduleDepartureHandler     commands.ScheduleDepartureCommandHandler
	changeDepartureStatusHandler commands.ChangeDepartureStatusCommandHandler
	deactivateDepartureHandler   commands.DeactivateDepartureCommandHandler

	// Query handlers
	getAgencyBalancesHandler     queries.GetAgencyBalancesQueryHandler
	getDepartureOccupancyHandler queries.GetDepartureOccupancyQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createReservationHandler commands.CreateReservationCommandHandler,
	cancelReservationHandler commands.CancelReservationCommandHandler,
	changePassengerCountsHandler commands.ChangePassengerCountsCommandHandler,
	recordCollectionHandler commands.RecordCollectionCommandHandler,
	scheduleDepartureHandler commands.ScheduleDepartureCommandHandler,
	changeDepartureStatusHandler commands.ChangeDepartureStatusCommandHandler,
	deactivateDepartureHandler commands.DeactivateDepartureCommandHandler,
	getAgencyBalancesHandler queries.GetAgencyBalancesQueryHandler,
	getDepartureOccupancyHandler queries.GetDepartureOccupancyQueryHandler,
) *Server {
	return &Server{
		createReservationHandler:     createReservationHandler,
		cancelReservationHandler:     cancelReservationHandler,
		changePassengerCountsHandler: changePassengerCountsHandler,
		recordCollectionHandler:      recordCollectionHandler,
		scheduleDepartureHandler:     scheduleDepartureHandler,
		changeDepartureStatusHandler: changeDepartureStatusHandler,
		deactivateDepartureHandler:   deactivateDepartureHandler,
		getAgencyBalancesHandler:     getAgencyBalancesHandler,
		getDepartureOccupancyHandler: getDepartureOccupancyHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/reservations", s.CreateReservation)
	api.DELETE("/reservations/:id", s.CancelReservation)
	api.PATCH("/reservations/:id/passengers", s.ChangePassengerCounts)
	api.POST("/reservations/:id/collections", s.RecordCollection)

	api.POST("/departures", s.ScheduleDeparture)
	api.POST("/departures/:id/status", s.ChangeDepartureStatus)
	api.DELETE("/departures/:id", s.DeactivateDeparture)
	api.GET("/departures/:id/occupancy", s.GetDepartureOccupancy)

	api.GET("/settlements", s.GetAgencyBalances)
	api.GET("/settlements/:agencyId", s.GetAgencyBalance)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code           int    `json:"code"`
	Message        string `json:"message"`
	RemainingSeats *int   `json:"remaining_seats,omitempty"`
}

// NewReservationRequest is the payload for booking a reservation.
type NewReservationRequest struct {
	DepartureID           string `json:"departure_id"`
	ServiceID             string `json:"service_id"`
	Adults                int    `json:"adults"`
	Children              int    `json:"children"`
	ClientName            string `json:"client_name"`
	ClientDocument        string `json:"client_document"`
	OriginAgencyID        string `json:"origin_agency_id,omitempty"`
	TransferredToAgencyID string `json:"transferred_to_agency_id,omitempty"`
	PriceOverrideCents    *int64 `json:"price_override_cents,omitempty"`
	ActorID               string `json:"actor_id"`
}

// ReservationCreatedResponse returns the identifier of a booked reservation.
type ReservationCreatedResponse struct {
	ReservationID string `json:"reservation_id"`
}

// PassengerCountsRequest is the payload for changing a reservation's passenger mix.
type PassengerCountsRequest struct {
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	ActorID  string `json:"actor_id"`
}

// CollectionRequest is the payload for recording a collected amount.
type CollectionRequest struct {
	AmountCents int64  `json:"amount_cents"`
	ByAgency    bool   `json:"by_agency"`
	ActorID     string `json:"actor_id"`
}

// NewDepartureRequest is the payload for scheduling a departure.
type NewDepartureRequest struct {
	Kind            string    `json:"kind"`
	VehicleCapacity int       `json:"vehicle_capacity"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	ActorID         string    `json:"actor_id"`
}

// DepartureCreatedResponse returns the identifier of a scheduled departure.
type DepartureCreatedResponse struct {
	DepartureID string `json:"departure_id"`
}

// StatusTransitionRequest is the payload for a departure lifecycle transition.
type StatusTransitionRequest struct {
	Transition string `json:"transition"`
	ActorID    string `json:"actor_id"`
}

// DepartureOccupancyResponse reports a departure's seat load.
type DepartureOccupancyResponse struct {
	DepartureID      string  `json:"departure_id"`
	Unlimited        bool    `json:"unlimited"`
	Capacity         int     `json:"capacity"`
	Occupancy        int     `json:"occupancy"`
	AvailableSeats   int     `json:"available_seats"`
	OccupancyPercent float64 `json:"occupancy_percent"`
}

// AgencyBalanceResponse is one agency's settlement line.
type AgencyBalanceResponse struct {
	AgencyID       string `json:"agency_id"`
	Scenario       string `json:"scenario"`
	BalanceClass   string `json:"balance_class"`
	Reservations   int    `json:"reservations"`
	Passengers     int    `json:"passengers"`
	CostBasisCents int64  `json:"cost_basis_cents"`
	CollectedCents int64  `json:"collected_cents"`
	BalanceCents   int64  `json:"balance_cents"`
}

// CreateReservation handles POST /api/v1/reservations - books a new reservation.
func (s *Server) CreateReservation(ctx echo.Context) error {
	var req NewReservationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	departureID, err := kernel.UUIDFromString(req.DepartureID)
	if err != nil {
		return badRequest(ctx, "Invalid departure_id: "+err.Error())
	}

	serviceID, err := kernel.UUIDFromString(req.ServiceID)
	if err != nil {
		return badRequest(ctx, "Invalid service_id: "+err.Error())
	}

	originAgency, err := optionalUUID(req.OriginAgencyID)
	if err != nil {
		return badRequest(ctx, "Invalid origin_agency_id: "+err.Error())
	}

	transferredTo, err := optionalUUID(req.TransferredToAgencyID)
	if err != nil {
		return badRequest(ctx, "Invalid transferred_to_agency_id: "+err.Error())
	}

	var priceOverride *kernel.Money
	if req.PriceOverrideCents != nil {
		override := kernel.MoneyFromCents(*req.PriceOverrideCents)
		priceOverride = &override
	}

	reservationID := kernel.NewUUID()
	cmd, err := commands.NewCreateReservationCommand(
		reservationID,
		departureID,
		serviceID,
		req.Adults,
		req.Children,
		req.ClientName,
		req.ClientDocument,
		originAgency,
		transferredTo,
		priceOverride,
		req.ActorID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid booking request: "+err.Error())
	}

	if handleErr := s.withTxRetry(func() error {
		return s.createReservationHandler.Handle(ctx.Request().Context(), cmd)
	}); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, ReservationCreatedResponse{
		ReservationID: reservationID.String(),
	})
}

// CancelReservation handles DELETE /api/v1/reservations/:id.
func (s *Server) CancelReservation(ctx echo.Context) error {
	reservationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid reservation id: "+err.Error())
	}

	cmd, err := commands.NewCancelReservationCommand(reservationID, ctx.QueryParam("actor_id"))
	if err != nil {
		return badRequest(ctx, "Invalid cancellation request: "+err.Error())
	}

	if handleErr := s.withTxRetry(func() error {
		return s.cancelReservationHandler.Handle(ctx.Request().Context(), cmd)
	}); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangePassengerCounts handles PATCH /api/v1/reservations/:id/passengers.
func (s *Server) ChangePassengerCounts(ctx echo.Context) error {
	reservationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid reservation id: "+err.Error())
	}

	var req PassengerCountsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangePassengerCountsCommand(reservationID, req.Adults, req.Children, req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid passenger change: "+err.Error())
	}

	if handleErr := s.withTxRetry(func() error {
		return s.changePassengerCountsHandler.Handle(ctx.Request().Context(), cmd)
	}); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordCollection handles POST /api/v1/reservations/:id/collections.
func (s *Server) RecordCollection(ctx echo.Context) error {
	reservationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid reservation id: "+err.Error())
	}

	var req CollectionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordCollectionCommand(
		reservationID,
		kernel.MoneyFromCents(req.AmountCents),
		req.ByAgency,
		req.ActorID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid collection: "+err.Error())
	}

	if handleErr := s.withTxRetry(func() error {
		return s.recordCollectionHandler.Handle(ctx.Request().Context(), cmd)
	}); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ScheduleDeparture handles POST /api/v1/departures.
func (s *Server) ScheduleDeparture(ctx echo.Context) error {
	var req NewDepartureRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := parseKind(req.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	departureID := kernel.NewUUID()
	cmd, err := commands.NewScheduleDepartureCommand(departureID, kind, req.VehicleCapacity, req.ScheduledAt, req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid departure: "+err.Error())
	}

	if handleErr := s.scheduleDepartureHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, DepartureCreatedResponse{
		DepartureID: departureID.String(),
	})
}

// ChangeDepartureStatus handles POST /api/v1/departures/:id/status.
func (s *Server) ChangeDepartureStatus(ctx echo.Context) error {
	departureID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid departure id: "+err.Error())
	}

	var req StatusTransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	transition, err := parseTransition(req.Transition)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeDepartureStatusCommand(departureID, transition, req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	if handleErr := s.withTxRetry(func() error {
		return s.changeDepartureStatusHandler.Handle(ctx.Request().Context(), cmd)
	}); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateDeparture handles DELETE /api/v1/departures/:id - soft-deletes a departure.
func (s *Server) DeactivateDeparture(ctx echo.Context) error {
	departureID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid departure id: "+err.Error())
	}

	cmd, err := commands.NewDeactivateDepartureCommand(departureID, ctx.QueryParam("actor_id"))
	if err != nil {
		return badRequest(ctx, "Invalid deactivation request: "+err.Error())
	}

	if handleErr := s.withTxRetry(func() error {
		return s.deactivateDepartureHandler.Handle(ctx.Request().Context(), cmd)
	}); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDepartureOccupancy handles GET /api/v1/departures/:id/occupancy.
func (s *Server) GetDepartureOccupancy(ctx echo.Context) error {
	departureID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid departure id: "+err.Error())
	}

	query, err := queries.NewGetDepartureOccupancyQuery(departureID)
	if err != nil {
		return badRequest(ctx, "Invalid occupancy query: "+err.Error())
	}

	occupancy, err := s.getDepartureOccupancyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DepartureOccupancyResponse{
		DepartureID:      occupancy.DepartureID.String(),
		Unlimited:        occupancy.Unlimited,
		Capacity:         occupancy.Capacity,
		Occupancy:        occupancy.Occupancy,
		AvailableSeats:   occupancy.AvailableSeats,
		OccupancyPercent: occupancy.OccupancyPercent,
	})
}

// GetAgencyBalances handles GET /api/v1/settlements - settlement lines for all agencies.
func (s *Server) GetAgencyBalances(ctx echo.Context) error {
	window, err := parseWindow(ctx.QueryParam("from"), ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetAgencyBalancesQuery(window)
	if err != nil {
		return badRequest(ctx, "Invalid settlement query: "+err.Error())
	}

	balances, err := s.getAgencyBalancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toBalanceResponses(balances))
}

// GetAgencyBalance handles GET /api/v1/settlements/:agencyId - one agency's settlement line.
func (s *Server) GetAgencyBalance(ctx echo.Context) error {
	agencyID, err := kernel.UUIDFromString(ctx.Param("agencyId"))
	if err != nil {
		return badRequest(ctx, "Invalid agency id: "+err.Error())
	}

	window, err := parseWindow(ctx.QueryParam("from"), ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetAgencyBalanceQuery(agencyID, window)
	if err != nil {
		return badRequest(ctx, "Invalid settlement query: "+err.Error())
	}

	balances, err := s.getAgencyBalancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toBalanceResponses(balances))
}

// withTxRetry reruns a command when the database aborts the transaction
// with a serialization failure or deadlock.
func (s *Server) withTxRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = fn()
		if err == nil || !postgres.IsRetryableTxError(err) {
			return err
		}
	}
	return err
}

func toBalanceResponses(balances []queries.AgencyBalanceResponse) []AgencyBalanceResponse {
	response := make([]AgencyBalanceResponse, len(balances))
	for i, balance := range balances {
		response[i] = AgencyBalanceResponse{
			AgencyID:       balance.AgencyID.String(),
			Scenario:       balance.Scenario.String(),
			BalanceClass:   balance.BalanceClass.String(),
			Reservations:   balance.Reservations,
			Passengers:     balance.Passengers,
			CostBasisCents: balance.CostBasis.Cents(),
			CollectedCents: balance.Collected.Cents(),
			BalanceCents:   balance.Balance.Cents(),
		}
	}
	return response
}

func optionalUUID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseKind(raw string) (departure.Kind, error) {
	switch raw {
	case "route":
		return departure.Route, nil
	case "tour":
		return departure.Tour, nil
	default:
		return departure.KindUnknown, errors.New("kind must be route or tour")
	}
}

func parseTransition(raw string) (commands.StatusTransition, error) {
	switch raw {
	case "start":
		return commands.TransitionStart, nil
	case "finish":
		return commands.TransitionFinish, nil
	case "cancel":
		return commands.TransitionCancel, nil
	default:
		return commands.TransitionUnknown, errors.New("transition must be start, finish, or cancel")
	}
}

// parseWindow builds the settlement window from from/to date parameters.
// Both default to the current month when omitted; to is exclusive.
func parseWindow(fromRaw, toRaw string) (kernel.DateWindow, error) {
	if fromRaw == "" && toRaw == "" {
		return kernel.MonthWindow(time.Now()), nil
	}
	if fromRaw == "" || toRaw == "" {
		return kernel.DateWindow{}, errors.New("from and to must be supplied together")
	}

	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		return kernel.DateWindow{}, errors.New("from must be a date formatted as 2006-01-02")
	}

	to, err := time.Parse("2006-01-02", toRaw)
	if err != nil {
		return kernel.DateWindow{}, errors.New("to must be a date formatted as 2006-01-02")
	}

	return kernel.NewDateWindow(from, to)
}

// writeDomainError maps application errors onto HTTP status codes.
func writeDomainError(ctx echo.Context, err error) error {
	var capacityErr *services.CapacityExceededError
	if errors.As(err, &capacityErr) {
		remaining := capacityErr.RemainingSeats
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:           http.StatusConflict,
			Message:        err.Error(),
			RemainingSeats: &remaining,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, reservation.ErrReservationCancelled),
		errors.Is(err, departure.ErrDepartureNotBookable),
		errors.Is(err, departure.ErrVehicleUnassigned):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
