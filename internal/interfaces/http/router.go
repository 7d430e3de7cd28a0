package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globalia/stock-api/internal/application/audit"
	"github.com/globalia/stock-api/internal/application/backup"
	"github.com/globalia/stock-api/internal/application/catalog"
	"github.com/globalia/stock-api/internal/application/forecast"
	"github.com/globalia/stock-api/internal/application/sanitize"
	"github.com/globalia/stock-api/internal/application/status"
	"github.com/globalia/stock-api/internal/application/stock"
	"github.com/globalia/stock-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *stock.UseCase
	ForecastUC *forecast.UseCase
	AuditUC    *audit.UseCase
	SanitizeUC *sanitize.UseCase
	CatalogUC  *catalog.UseCase
	BackupUC   *backup.UseCase
	StatusUC   *status.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todo cuelga de /api y requiere
// Bearer Token; las operaciones destructivas exigen además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	operativa := RequireRole(jwt.RoleAdmin, jwt.RoleAlmacen)
	soloAdmin := RequireRole(jwt.RoleAdmin)

	// Estado general
	api.Get("/status", operativa, func(c *fiber.Ctx) error {
		st, err := deps.StatusUC.Get(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	})

	// Stock y movimientos
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock", operativa, stockHandler.ListStock)
	api.Get("/stock/models", operativa, stockHandler.ListModels)
	api.Post("/movements/entries", operativa, stockHandler.RegisterEntry)
	api.Post("/movements/exits", operativa, stockHandler.RegisterExit)
	api.Get("/movements", operativa, stockHandler.ListMovements)

	// Previsión
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	api.Get("/stock/estimated", operativa, forecastHandler.CalcEstimated)
	api.Get("/pendings", operativa, forecastHandler.ListPendings)
	api.Post("/pendings", operativa, forecastHandler.AddPending)
	api.Put("/pendings/:idx", operativa, forecastHandler.EditPending)
	api.Delete("/pendings/:idx", operativa, forecastHandler.DeletePending)
	api.Get("/fabrication", operativa, forecastHandler.ListFabrication)
	api.Post("/fabrication", operativa, forecastHandler.AddFabrication)
	api.Put("/fabrication/:idx/cantidad", operativa, forecastHandler.EditFabricationQty)
	api.Delete("/fabrication/:idx", operativa, forecastHandler.DeleteFabrication)

	// Auditoría: el preview es de lectura; aplicar o regularizar muta y
	// queda reservado a admin.
	auditHandler := NewAuditHandler(deps.AuditUC)
	api.Get("/audit/preview", operativa, auditHandler.Preview)
	api.Post("/audit/apply", soloAdmin, auditHandler.Apply)
	api.Post("/audit/regularize", soloAdmin, auditHandler.Regularize)

	// Saneos por lotes (admin)
	sanitizeHandler := NewSanitizeHandler(deps.SanitizeUC)
	api.Post("/sanitize/negatives", soloAdmin, sanitizeHandler.FixNegatives)
	api.Post("/sanitize/values", soloAdmin, sanitizeHandler.FixBadValues)
	api.Post("/sanitize/tallas", soloAdmin, sanitizeHandler.PurgeBadTallas)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/catalog", operativa, catalogHandler.ListModelInfos)
	api.Put("/catalog/:modelo", operativa, catalogHandler.UpdateModelInfo)
	api.Get("/catalog/:modelo/tallas", operativa, catalogHandler.ListTallas)
	api.Get("/talleres", operativa, catalogHandler.ListWorkshops)
	api.Post("/talleres", operativa, catalogHandler.AddWorkshop)
	api.Put("/talleres/:nombre", operativa, catalogHandler.EditWorkshop)
	api.Delete("/talleres/:nombre", operativa, catalogHandler.DeleteWorkshop)
	api.Get("/clientes", operativa, catalogHandler.ListClients)
	api.Post("/clientes", operativa, catalogHandler.AddClient)
	api.Put("/clientes/:nombre", operativa, catalogHandler.EditClient)
	api.Delete("/clientes/:nombre", operativa, catalogHandler.DeleteClient)

	// Backups: crear y listar es operativa; restaurar reemplaza todo el
	// almacén y queda reservado a admin.
	backupHandler := NewBackupHandler(deps.BackupUC)
	api.Get("/backups", operativa, backupHandler.List)
	api.Post("/backups", operativa, backupHandler.Create)
	api.Post("/backups/:nombre/restore", soloAdmin, backupHandler.Restore)
}
