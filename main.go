package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

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
	"github.com/Zhima-Mochi/minishop-modules/internal/config"
	domcart "github.com/Zhima-Mochi/minishop-modules/internal/domain/cart"
	dominv "github.com/Zhima-Mochi/minishop-modules/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	dompromo "github.com/Zhima-Mochi/minishop-modules/internal/domain/promotion"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/cache"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/policy"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/postgres"
	infraredis "github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/redis"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	httppresentation "github.com/Zhima-Mochi/minishop-modules/internal/presentation/http"
	workerpresentation "github.com/Zhima-Mochi/minishop-modules/internal/presentation/worker"
)

const (
	defaultWarehouseID = "main"
	demoUserEmail      = "demo@minishop.local"
	demoUserPassword   = "demo-password"
	demoVoucherCode    = "WELCOME5"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := zaplogger.New(zaplogger.Config{Level: cfg.Log.Level, File: cfg.Log.File},
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	systemLogger := logger.With(observability.F("component", "main"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tel, err := infraobs.New(oteltrace.New(cfg.ServiceName), logger, prometrics.New(reg, ""))
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	ids := id.NewUUIDGenerator()

	// In-process event bus; contexts publish here instead of calling each other.
	bus := outbox.NewBus(tel, outbox.Options{
		QueueSize:   cfg.Bus.QueueSize,
		Concurrency: cfg.Bus.Concurrency,
	})

	backends, err := openStores(ctx, cfg, clock)
	if err != nil {
		return err
	}
	defer backends.close()

	var salesReader appreport.RawEventReaderPort
	if backends.pg != nil {
		postgres.NewSalesEventWriter(backends.pg).Subscribe(bus)
		salesReader = postgres.NewRawEventReader(backends.pg, cfg.Report.Currency)
		systemLogger.Info("sales_log_postgres")
	} else {
		ledger := memory.NewSalesLedger(cfg.Report.Currency)
		ledger.Subscribe(bus)
		salesReader = ledger
	}

	productRepo, err := cache.NewProductRepository(memory.NewProductRepository(), cfg.Product.CacheSize)
	if err != nil {
		return fmt.Errorf("init product cache: %w", err)
	}

	orderRepo := memory.NewOrderRepository()
	warehouses := memory.NewWarehouseRepository(dominv.Warehouse{ID: defaultWarehouseID, Name: "Main warehouse"})
	credentials := memory.NewCredentialStore(bcrypt.DefaultCost)
	vouchers := memory.NewVoucherRepository()
	if cfg.Env == "dev" {
		if err := seedDemo(cfg, credentials, vouchers); err != nil {
			return err
		}
	}

	rates, err := shippingRates(cfg.Shipping)
	if err != nil {
		return err
	}

	hub := memory.NewChatHub()
	messages := memory.NewMessageRepository()
	shipments := memory.NewShipmentRepository()
	stock := memory.NewStockRepository()

	sendNotification := application.Instrument(appnotification.UseCaseSend,
		appnotification.SendNotificationUseCase(appnotification.NewSendNotification(memory.NewLogSender(logger), ids, clock)), tel)
	workerpresentation.NewNotificationWorker(sendNotification, tel).Subscribe(bus)

	uc := httppresentation.UseCases{
		AddItem: application.Instrument(appcart.UseCaseAddItem,
			appcart.AddItemUseCase(appcart.NewAddItem(backends.carts, clock)), tel),
		RemoveItem: application.Instrument(appcart.UseCaseRemoveItem,
			appcart.RemoveItemUseCase(appcart.NewRemoveItem(backends.carts, clock)), tel),
		PlaceOrder: application.Instrument(apporder.UseCasePlace,
			apporder.PlaceOrderUseCase(apporder.NewPlaceOrder(orderRepo, ids, bus, clock, tel)), tel),
		CancelOrder: application.Instrument(apporder.UseCaseCancel,
			apporder.CancelOrderUseCase(apporder.NewCancelOrder(orderRepo, bus, clock, tel)), tel),
		GetOrder: application.Instrument(apporder.UseCaseGet,
			apporder.GetOrderUseCase(apporder.NewGetOrder(orderRepo)), tel),
		AdjustInventory: application.Instrument(appinventory.UseCaseAdjust,
			appinventory.AdjustInventoryUseCase(appinventory.NewAdjustInventory(stock, warehouses, bus, clock, tel)), tel),
		Login: application.Instrument(appidentity.UseCaseLogin,
			appidentity.LoginUseCase(appidentity.NewLogin(credentials, backends.sessions, ids, clock, cfg.Session.TTL)), tel),
		ApplyVoucher: application.Instrument(apppromotion.UseCaseApplyVoucher,
			apppromotion.ApplyVoucherUseCase(apppromotion.NewApplyVoucher(vouchers, policy.FixedDiscount{})), tel),
		CreateShipment: application.Instrument(applogistics.UseCaseCreateShipment,
			applogistics.CreateShipmentUseCase(applogistics.NewCreateShipment(shipments, rates, bus, ids, clock, tel)), tel),
		DailySales: application.Instrument(appreport.UseCaseDailySales,
			appreport.DailySalesUseCase(appreport.NewDailySales(salesReader, clock, tel, appreport.WithCurrency(cfg.Report.Currency))), tel),
		RevenueRange: application.Instrument(appreport.UseCaseRevenueRange,
			appreport.RevenueRangeUseCase(appreport.NewRevenueRange(salesReader, clock, tel, appreport.WithCurrency(cfg.Report.Currency))), tel),
		SendMessage: application.Instrument(appchat.UseCaseSend,
			appchat.SendMessageUseCase(appchat.NewSendMessage(messages, hub, ids, clock, tel)), tel),
		ListMessages: application.Instrument(appchat.UseCaseList,
			appchat.ListMessagesUseCase(appchat.NewListMessages(messages)), tel),
		SendNotification: sendNotification,
		CreateProduct: application.Instrument(appproduct.UseCaseCreate,
			appproduct.CreateProductUseCase(appproduct.NewCreateProduct(productRepo, ids, clock)), tel),
		GetProduct: application.Instrument(appproduct.UseCaseGet,
			appproduct.GetProductUseCase(appproduct.NewGetProduct(productRepo)), tel),
	}

	// Not ctx: Stop drains the queue after the HTTP server is down.
	bus.Start(context.Background())

	server := httppresentation.NewServer(uc, tel, httppresentation.Options{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Ready:          backends.ping,
	})

	go func() {
		systemLogger.Info("http_server_start", observability.F("addr", cfg.HTTP.Addr))
		if err := server.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error", observability.F("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		systemLogger.Info("http_server_stopped")
	}
	bus.Stop(shutdownCtx)
	return nil
}

// stores holds the adapters that switch between memory and a backing
// service depending on configuration.
type stores struct {
	carts    domcart.CartRepository
	sessions appidentity.SessionStore
	pg       *pgxpool.Pool
	redis    *goredis.Client
}

func openStores(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*stores, error) {
	s := &stores{
		carts:    memory.NewCartRepository(),
		sessions: memory.NewSessionStore(),
	}

	if cfg.Redis.URL != "" {
		client, err := infraredis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		s.redis = client
		s.carts = infraredis.NewCartRepository(client, cfg.Redis.CartTTL)
		s.sessions = infraredis.NewSessionStore(client, clock)
	}

	if cfg.Database.URL != "" {
		pool, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			s.close()
			return nil, err
		}
		s.pg = pool
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			s.close()
			return nil, err
		}
	}
	return s, nil
}

func (s *stores) ping(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	if s.pg != nil {
		return s.pg.Ping(ctx)
	}
	return nil
}

func (s *stores) close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.pg != nil {
		s.pg.Close()
	}
}

func shippingRates(cfg config.ShippingConfig) (*policy.FlatRate, error) {
	fallback, err := decimal.NewFromString(cfg.FallbackRate)
	if err != nil {
		return nil, fmt.Errorf("config: shipping.fallback_rate: %w", err)
	}
	rates := make(map[string]decimal.Decimal, len(cfg.Rates))
	for carrier, raw := range cfg.Rates {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("config: shipping.rates.%s: %w", carrier, err)
		}
		rates[carrier] = d
	}
	return policy.NewFlatRate(cfg.Currency, fallback, rates), nil
}

func seedDemo(cfg *config.Config, credentials *memory.CredentialStore, vouchers *memory.VoucherRepository) error {
	if err := credentials.Register(demoUserEmail, demoUserPassword, "demo-user"); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	discount, err := money.Parse("5", cfg.Shipping.Currency)
	if err != nil {
		return fmt.Errorf("seed demo voucher: %w", err)
	}
	vouchers.Put(dompromo.Voucher{Code: demoVoucherCode, Discount: discount, Active: true})
	return nil
}
