package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/globalia/stock-api/internal/application/audit"
	"github.com/globalia/stock-api/internal/application/backup"
	"github.com/globalia/stock-api/internal/application/catalog"
	"github.com/globalia/stock-api/internal/application/forecast"
	"github.com/globalia/stock-api/internal/application/sanitize"
	"github.com/globalia/stock-api/internal/application/status"
	"github.com/globalia/stock-api/internal/application/stock"
	"github.com/globalia/stock-api/internal/domain/repository"
	"github.com/globalia/stock-api/internal/infrastructure/jsonstore"
	"github.com/globalia/stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/globalia/stock-api/internal/interfaces/http"
	"github.com/globalia/stock-api/pkg/config"
	"github.com/globalia/stock-api/pkg/logger"
)

// repos agrupa los puertos resueltos por el driver elegido.
type repos struct {
	tx          *txRunner
	stockRepo   repository.StockRepository
	movRepo     repository.MovementRepository
	pendRepo    repository.PendingRepository
	fabRepo     repository.FabricationRepository
	infoRepo    repository.ModelInfoRepository
	tallerRepo  repository.WorkshopRepository
	clienteRepo repository.ClientRepository
	snapshotter repository.Snapshotter
	cerrar      func()
}

// txRunner unifica los runners de ambos drivers bajo el puerto compartido.
type txRunner struct {
	stock.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := abrirStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer r.cerrar()

	stockUC := stock.NewUseCase(r.tx, r.stockRepo, r.movRepo, r.infoRepo, log)
	forecastUC := forecast.NewUseCase(r.pendRepo, r.fabRepo, r.stockRepo, r.infoRepo, log)
	auditUC := audit.NewUseCase(r.tx, r.movRepo, r.stockRepo, log)
	sanitizeUC := sanitize.NewUseCase(r.tx, r.pendRepo, r.fabRepo, log)
	catalogUC := catalog.NewUseCase(r.infoRepo, r.tallerRepo, r.clienteRepo, r.stockRepo, r.pendRepo, r.fabRepo, log)
	backupUC := backup.NewUseCase(r.snapshotter, cfg.Backup.Dir, log)
	statusUC := status.NewUseCase(r.stockRepo, r.movRepo, r.pendRepo, r.fabRepo, r.infoRepo, r.tallerRepo, r.clienteRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Globalia Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    stockUC,
		ForecastUC: forecastUC,
		AuditUC:    auditUC,
		SanitizeUC: sanitizeUC,
		CatalogUC:  catalogUC,
		BackupUC:   backupUC,
		StatusUC:   statusUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// abrirStore resuelve el driver de persistencia según la configuración.
func abrirStore(ctx context.Context, cfg *config.Config) (*repos, error) {
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &repos{
			tx:          &txRunner{postgres.NewTxRunner(pool)},
			stockRepo:   postgres.NewStockRepository(pool),
			movRepo:     postgres.NewMovementRepository(pool),
			pendRepo:    postgres.NewPendingRepository(pool),
			fabRepo:     postgres.NewFabricationRepository(pool),
			infoRepo:    postgres.NewModelInfoRepository(pool),
			tallerRepo:  postgres.NewWorkshopRepository(pool),
			clienteRepo: postgres.NewClientRepository(pool),
			snapshotter: postgres.NewSnapshotStore(pool),
			cerrar:      pool.Close,
		}, nil
	default:
		store, err := jsonstore.Open(cfg.Store.DataDir, time.Duration(cfg.Store.LockWaitSeconds)*time.Second)
		if err != nil {
			return nil, err
		}
		return &repos{
			tx:          &txRunner{jsonstore.NewTxRunner(store)},
			stockRepo:   jsonstore.NewStockRepository(store),
			movRepo:     jsonstore.NewMovementRepository(store),
			pendRepo:    jsonstore.NewPendingRepository(store),
			fabRepo:     jsonstore.NewFabricationRepository(store),
			infoRepo:    jsonstore.NewModelInfoRepository(store),
			tallerRepo:  jsonstore.NewWorkshopRepository(store),
			clienteRepo: jsonstore.NewClientRepository(store),
			snapshotter: store,
			cerrar:      store.Close,
		}, nil
	}
}
