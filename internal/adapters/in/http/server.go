// Package http is the inbound HTTP adapter. It translates echo requests into
// commands and queries, and application errors into status codes. No business
// rules live here: role checks, status transitions and uniqueness all belong
// to the application core.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP surface to the application use cases.
type Server struct {
	tokens *auth.TokenManager

	// Command handlers
	registerUserHandler  commands.RegisterUserCommandHandler
	createOrderHandler   commands.CreateOrderCommandHandler
	acceptOrderHandler   commands.AcceptOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler

	// Query handlers
	authenticateHandler  queries.AuthenticateQueryHandler
	getUserHandler       queries.GetUserQueryHandler
	getOrderHandler      queries.GetOrderQueryHandler
	listOrdersHandler    queries.ListOrdersQueryHandler
	searchOrdersHandler  queries.SearchOrdersQueryHandler
	getOrderStatsHandler queries.GetOrderStatsQueryHandler
	getBacklogHandler    queries.GetBacklogQueryHandler
}

// NewServer creates the HTTP server facade over the given handlers.
func NewServer(
	tokens *auth.TokenManager,
	registerUserHandler commands.RegisterUserCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	authenticateHandler queries.AuthenticateQueryHandler,
	getUserHandler queries.GetUserQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
	getOrderStatsHandler queries.GetOrderStatsQueryHandler,
	getBacklogHandler queries.GetBacklogQueryHandler,
) *Server {
	return &Server{
		tokens:               tokens,
		registerUserHandler:  registerUserHandler,
		createOrderHandler:   createOrderHandler,
		acceptOrderHandler:   acceptOrderHandler,
		completeOrderHandler: completeOrderHandler,
		authenticateHandler:  authenticateHandler,
		getUserHandler:       getUserHandler,
		getOrderHandler:      getOrderHandler,
		listOrdersHandler:    listOrdersHandler,
		searchOrdersHandler:  searchOrdersHandler,
		getOrderStatsHandler: getOrderStatsHandler,
		getBacklogHandler:    getBacklogHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1. Everything except
// registration and login requires a bearer token.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/users/register", s.RegisterUser)
	api.POST("/users/login", s.Login)

	authed := api.Group("", BearerAuth(s.tokens))
	authed.GET("/users/me", s.GetMe)

	authed.POST("/orders", s.CreateOrder)
	authed.GET("/orders/pending", s.GetPendingOrders)
	authed.GET("/orders/dispatched", s.GetDispatchedOrders)
	authed.GET("/orders/received", s.GetReceivedOrders)
	authed.GET("/orders/search", s.SearchOrders)
	authed.GET("/orders/stats", s.GetOrderStats)
	authed.GET("/orders/backlog", s.GetBacklog)
	authed.GET("/orders/:orderID", s.GetOrder)
	authed.POST("/orders/:orderID/accept", s.AcceptOrder)
	authed.POST("/orders/:orderID/complete", s.CompleteOrder)
}

// RegisterUser handles POST /api/v1/users/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterUserRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}

	role, err := user.RoleFromString(req.Role)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewRegisterUserCommand(req.Username, req.Password, role)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	created, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, User{
		ID:       created.ID().String(),
		Username: created.Username(),
		Role:     created.Role().String(),
	})
}

// Login handles POST /api/v1/users/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}

	query, err := queries.NewAuthenticateQuery(req.Username, req.Password)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	identity, err := s.authenticateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	token, err := s.tokens.Issue(identity.UserID, identity.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: User{
			ID:       identity.UserID.String(),
			Username: identity.Username,
			Role:     identity.Role.String(),
		},
	})
}

// GetMe handles GET /api/v1/users/me.
func (s *Server) GetMe(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	query, err := queries.NewGetUserQuery(caller.UserID)
	if err != nil {
		return writeError(ctx, err)
	}

	profile, err := s.getUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	createdAt := profile.CreatedAt
	return ctx.JSON(http.StatusOK, User{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		Role:      profile.Role.String(),
		CreatedAt: &createdAt,
	})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(caller.UserID, req.Content)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetPendingOrders handles GET /api/v1/orders/pending - the open board every
// receiver picks from.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	status := order.Pending
	return s.listOrders(ctx, queries.OrdersFilter{Status: &status})
}

// GetDispatchedOrders handles GET /api/v1/orders/dispatched - orders created
// by the caller.
func (s *Server) GetDispatchedOrders(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	callerID := caller.UserID
	return s.listOrders(ctx, queries.OrdersFilter{DispatcherID: &callerID})
}

// GetReceivedOrders handles GET /api/v1/orders/received - orders claimed by
// the caller.
func (s *Server) GetReceivedOrders(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	callerID := caller.UserID
	return s.listOrders(ctx, queries.OrdersFilter{ReceiverID: &callerID})
}

func (s *Server) listOrders(ctx echo.Context, filter queries.OrdersFilter) error {
	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(orders))
}

// SearchOrders handles GET /api/v1/orders/search?q=term.
func (s *Server) SearchOrders(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	query, err := queries.NewSearchOrdersQuery(ctx.QueryParam("q"), caller.UserID, caller.Role)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	orders, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromResponses(orders))
}

// GetOrderStats handles GET /api/v1/orders/stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	query, err := queries.NewGetOrderStatsQuery(caller.UserID, caller.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStats{
		Total:      stats.Total,
		Pending:    stats.Pending,
		Delivering: stats.Delivering,
		Completed:  stats.Completed,
	})
}

// GetBacklog handles GET /api/v1/orders/backlog.
func (s *Server) GetBacklog(ctx echo.Context) error {
	backlog, err := s.getBacklogHandler.Handle(ctx.Request().Context(), queries.NewGetBacklogQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Backlog{
		Pending:    backlog.Pending,
		Delivering: backlog.Delivering,
		Completed:  backlog.Completed,
	})
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(resp))
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept - the exclusive
// claim. Of all concurrent callers exactly one succeeds; the rest get a
// conflict.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, caller.UserID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	claimed, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(claimed))
}

// CompleteOrder handles POST /api/v1/orders/:orderID/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	caller, ok := callerIdentity(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, caller.UserID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	completed, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromAggregate(completed))
}
