package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

type Loggers struct {
	Main  *zap.Logger
	Order *zap.Logger
	Sync  *zap.Logger
}

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
// Возвращает сервис сверки: он нужен ещё и планировщику ночного запуска.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	loggers *Loggers,
	cfg *config.Config,
) services.ReconciliationServiceInterface {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	ledgerRepo := repositories.NewLedgerRepository(dbConn)
	itemRepo := repositories.NewItemRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn)
	orderDocsRepo := repositories.NewOrderDocumentsRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	ledgerService := services.NewLedgerService(dbConn, ledgerRepo, itemRepo, bus, loggers.Main)
	itemService := services.NewItemService(dbConn, itemRepo, ledgerRepo, bus, loggers.Main)
	orderService := services.NewOrderService(dbConn, orderRepo, orderDocsRepo, ledgerRepo, itemRepo, bus, loggers.Order)
	demoService := services.NewDemoService(dbConn, orderRepo, ledgerRepo, itemRepo, bus, loggers.Order)
	snapshotService := services.NewSnapshotService(ledgerRepo, loggers.Main)
	reconciliationService := services.NewReconciliationService(ledgerRepo, itemRepo, loggers.Main)
	syncService := services.NewSyncService(ledgerRepo, cacheRepo, cfg.Ledger.FingerprintTTL, loggers.Sync)
	syncService.RegisterListeners(bus)

	// --- 3. КОНТРОЛЛЕРЫ ---
	transactionCtrl := controllers.NewTransactionController(ledgerService, loggers.Main)
	itemCtrl := controllers.NewItemController(itemService, loggers.Main)
	orderCtrl := controllers.NewOrderController(orderService, loggers.Order)
	demoCtrl := controllers.NewDemoController(demoService, loggers.Order)
	reportCtrl := controllers.NewReportController(snapshotService, loggers.Main)
	reconciliationCtrl := controllers.NewReconciliationController(reconciliationService, loggers.Main)
	syncCtrl := controllers.NewSyncController(syncService, loggers.Sync)

	// --- 4. РОУТЕРЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Main)
	secureGroup := api.Group("", authMW.Auth)

	runTransactionRouter(secureGroup, transactionCtrl)
	runItemRouter(secureGroup, itemCtrl, transactionCtrl)
	runOrderRouter(secureGroup, orderCtrl)
	runDemoRouter(secureGroup, demoCtrl)
	runReportRouter(secureGroup, reportCtrl)
	runReconciliationRouter(secureGroup, reconciliationCtrl)
	runSyncRouter(secureGroup, syncCtrl)

	loggers.Main.Info("InitRouter: Маршруты созданы")
	return reconciliationService
}
