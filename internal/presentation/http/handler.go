package httppresentation

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	appcart "github.com/Zhima-Mochi/minishop-modules/internal/application/cart"
	appchat "github.com/Zhima-Mochi/minishop-modules/internal/application/chat"
	appidentity "github.com/Zhima-Mochi/minishop-modules/internal/application/identity"
	appinventory "github.com/Zhima-Mochi/minishop-modules/internal/application/inventory"
	applogistics "github.com/Zhima-Mochi/minishop-modules/internal/application/logistics"
	appnotification "github.com/Zhima-Mochi/minishop-modules/internal/application/notification"
	apporder "github.com/Zhima-Mochi/minishop-modules/internal/application/order"
	appproduct "github.com/Zhima-Mochi/minishop-modules/internal/application/product"
	apppromotion "github.com/Zhima-Mochi/minishop-modules/internal/application/promotion"
	appreport "github.com/Zhima-Mochi/minishop-modules/internal/application/report"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
)

const componentHTTPServer = "http_server"

// UseCases is everything the API exposes. A nil entry leaves its route
// unregistered.
type UseCases struct {
	AddItem          appcart.AddItemUseCase
	RemoveItem       appcart.RemoveItemUseCase
	PlaceOrder       apporder.PlaceOrderUseCase
	CancelOrder      apporder.CancelOrderUseCase
	GetOrder         apporder.GetOrderUseCase
	AdjustInventory  appinventory.AdjustInventoryUseCase
	Login            appidentity.LoginUseCase
	ApplyVoucher     apppromotion.ApplyVoucherUseCase
	CreateShipment   applogistics.CreateShipmentUseCase
	DailySales       appreport.DailySalesUseCase
	RevenueRange     appreport.RevenueRangeUseCase
	SendMessage      appchat.SendMessageUseCase
	ListMessages     appchat.ListMessagesUseCase
	SendNotification appnotification.SendNotificationUseCase
	CreateProduct    appproduct.CreateProductUseCase
	GetProduct       appproduct.GetProductUseCase
}

type Options struct {
	// RateLimitRPS <= 0 disables per-client rate limiting on /api/v1.
	RateLimitRPS   float64
	RateLimitBurst int
	// Metrics is served on GET /metrics when set.
	Metrics http.Handler
	// Ready is consulted by GET /health.
	Ready func(context.Context) error
}

type Server struct {
	echo *echo.Echo
	uc   UseCases
	log  observability.Logger
	tel  observability.Observability
	opts Options
}

func NewServer(uc UseCases, tel observability.Observability, opts Options) *Server {
	tel = observability.OrNop(tel)
	s := &Server{
		echo: echo.New(),
		uc:   uc,
		log:  tel.Logger().With(observability.F("component", componentHTTPServer)),
		tel:  tel,
		opts: opts,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError

	// Trace → request logger → metrics and access log → recover → handler
	s.echo.Use(s.withTrace, s.withRequestLogger, s.withAccessLog, middleware.Recover())
	s.routes()
	return s
}

func (s *Server) Echo() *echo.Echo { return s.echo }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.echo.ServeHTTP(w, r) }

// Start blocks serving on addr until Shutdown.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.echo.Shutdown(ctx) }

func (s *Server) routes() {
	s.echo.GET("/health", s.handleHealth)
	if s.opts.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.opts.Metrics))
	}

	api := s.echo.Group("/api/v1")
	if s.opts.RateLimitRPS > 0 {
		api.Use(newRateLimiter(s.opts.RateLimitRPS, s.opts.RateLimitBurst))
	}

	add := func(method, path string, uc any, h echo.HandlerFunc) {
		if uc != nil {
			api.Add(method, path, h)
		}
	}
	add(http.MethodPost, "/carts/:id/items", s.uc.AddItem, s.handleAddItem)
	add(http.MethodDelete, "/carts/:id/items/:product", s.uc.RemoveItem, s.handleRemoveItem)
	add(http.MethodPost, "/orders", s.uc.PlaceOrder, s.handlePlaceOrder)
	add(http.MethodGet, "/orders/:id", s.uc.GetOrder, s.handleGetOrder)
	add(http.MethodPost, "/orders/:id/cancel", s.uc.CancelOrder, s.handleCancelOrder)
	add(http.MethodPost, "/inventory/:id/adjust", s.uc.AdjustInventory, s.handleAdjustInventory)
	add(http.MethodPost, "/login", s.uc.Login, s.handleLogin)
	add(http.MethodPost, "/promotions/apply", s.uc.ApplyVoucher, s.handleApplyVoucher)
	add(http.MethodPost, "/shipments", s.uc.CreateShipment, s.handleCreateShipment)
	add(http.MethodGet, "/reports/daily/:date", s.uc.DailySales, s.handleDailySales)
	add(http.MethodGet, "/reports/revenue", s.uc.RevenueRange, s.handleRevenueRange)
	add(http.MethodPost, "/chat/:conversation/messages", s.uc.SendMessage, s.handleSendMessage)
	add(http.MethodGet, "/chat/:conversation/messages", s.uc.ListMessages, s.handleListMessages)
	add(http.MethodPost, "/notifications", s.uc.SendNotification, s.handleSendNotification)
	add(http.MethodPost, "/products", s.uc.CreateProduct, s.handleCreateProduct)
	add(http.MethodGet, "/products/:id", s.uc.GetProduct, s.handleGetProduct)
}

// run builds the command, executes it and writes the result as JSON.
func run[C, R any](c echo.Context, status int, build func() (C, error), uc application.UseCase[C, R]) error {
	cmd, err := build()
	if err != nil {
		return err
	}
	res, err := uc.Execute(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(status, res)
}

func (s *Server) handleHealth(c echo.Context) error {
	if s.opts.Ready != nil {
		if err := s.opts.Ready(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddItem(c echo.Context) error {
	var p appcart.AddItemParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	p.CartID = c.Param("id")
	return run(c, http.StatusOK, func() (appcart.AddItemCommand, error) { return appcart.NewAddItemCommand(p) }, s.uc.AddItem)
}

func (s *Server) handleRemoveItem(c echo.Context) error {
	p := appcart.RemoveItemParams{CartID: c.Param("id"), ProductID: c.Param("product")}
	return run(c, http.StatusOK, func() (appcart.RemoveItemCommand, error) { return appcart.NewRemoveItemCommand(p) }, s.uc.RemoveItem)
}

func (s *Server) handlePlaceOrder(c echo.Context) error {
	var p apporder.PlaceOrderParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	if key := c.Request().Header.Get("Idempotency-Key"); key != "" {
		p.IdempotencyKey = key
	}
	return run(c, http.StatusCreated, func() (apporder.PlaceOrderCommand, error) { return apporder.NewPlaceOrderCommand(p) }, s.uc.PlaceOrder)
}

func (s *Server) handleGetOrder(c echo.Context) error {
	p := apporder.GetOrderParams{OrderID: c.Param("id")}
	return run(c, http.StatusOK, func() (apporder.GetOrderQuery, error) { return apporder.NewGetOrderQuery(p) }, s.uc.GetOrder)
}

func (s *Server) handleCancelOrder(c echo.Context) error {
	var p apporder.CancelOrderParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	p.OrderID = c.Param("id")
	return run(c, http.StatusOK, func() (apporder.CancelOrderCommand, error) { return apporder.NewCancelOrderCommand(p) }, s.uc.CancelOrder)
}

func (s *Server) handleAdjustInventory(c echo.Context) error {
	var p appinventory.AdjustInventoryParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	p.InventoryID = c.Param("id")
	return run(c, http.StatusOK, func() (appinventory.AdjustInventoryCommand, error) {
		return appinventory.NewAdjustInventoryCommand(p)
	}, s.uc.AdjustInventory)
}

func (s *Server) handleLogin(c echo.Context) error {
	var p appidentity.LoginParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	return run(c, http.StatusOK, func() (appidentity.LoginCommand, error) { return appidentity.NewLoginCommand(p) }, s.uc.Login)
}

func (s *Server) handleApplyVoucher(c echo.Context) error {
	var p apppromotion.ApplyVoucherParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	return run(c, http.StatusOK, func() (apppromotion.ApplyVoucherCommand, error) {
		return apppromotion.NewApplyVoucherCommand(p)
	}, s.uc.ApplyVoucher)
}

func (s *Server) handleCreateShipment(c echo.Context) error {
	var p applogistics.CreateShipmentParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	return run(c, http.StatusCreated, func() (applogistics.CreateShipmentCommand, error) {
		return applogistics.NewCreateShipmentCommand(p)
	}, s.uc.CreateShipment)
}

func (s *Server) handleDailySales(c echo.Context) error {
	p := appreport.DailySalesParams{Date: c.Param("date")}
	return run(c, http.StatusOK, func() (appreport.DailySalesQuery, error) { return appreport.NewDailySalesQuery(p) }, s.uc.DailySales)
}

func (s *Server) handleRevenueRange(c echo.Context) error {
	p := appreport.RevenueRangeParams{From: c.QueryParam("from"), To: c.QueryParam("to")}
	return run(c, http.StatusOK, func() (appreport.RevenueRangeQuery, error) { return appreport.NewRevenueRangeQuery(p) }, s.uc.RevenueRange)
}

func (s *Server) handleSendMessage(c echo.Context) error {
	var p appchat.SendMessageParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	p.ConversationID = c.Param("conversation")
	return run(c, http.StatusCreated, func() (appchat.SendMessageCommand, error) { return appchat.NewSendMessageCommand(p) }, s.uc.SendMessage)
}

func (s *Server) handleListMessages(c echo.Context) error {
	p := appchat.ListMessagesParams{ConversationID: c.Param("conversation")}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		p.Limit = n
	}
	return run(c, http.StatusOK, func() (appchat.ListMessagesQuery, error) { return appchat.NewListMessagesQuery(p) }, s.uc.ListMessages)
}

func (s *Server) handleSendNotification(c echo.Context) error {
	var p appnotification.SendNotificationParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	return run(c, http.StatusAccepted, func() (appnotification.SendNotificationCommand, error) {
		return appnotification.NewSendNotificationCommand(p)
	}, s.uc.SendNotification)
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var p appproduct.CreateProductParams
	if err := c.Bind(&p); err != nil {
		return err
	}
	return run(c, http.StatusCreated, func() (appproduct.CreateProductCommand, error) {
		return appproduct.NewCreateProductCommand(p)
	}, s.uc.CreateProduct)
}

func (s *Server) handleGetProduct(c echo.Context) error {
	p := appproduct.GetProductParams{ProductID: c.Param("id")}
	return run(c, http.StatusOK, func() (appproduct.GetProductQuery, error) { return appproduct.NewGetProductQuery(p) }, s.uc.GetProduct)
}
