package router

import (
	"github.com/redis/go-redis/v9"

	authsvc "github.com/khawli/akar/internal/application/auth"
	docsvc "github.com/khawli/akar/internal/application/documents"
	"github.com/khawli/akar/internal/application/exports"
	instsvc "github.com/khawli/akar/internal/application/installments"
	leasesvc "github.com/khawli/akar/internal/application/leases"
	orgsvc "github.com/khawli/akar/internal/application/org"
	propsvc "github.com/khawli/akar/internal/application/properties"
	tenantsvc "github.com/khawli/akar/internal/application/tenants"
	"github.com/khawli/akar/internal/config"
	"github.com/khawli/akar/internal/infrastructure/database"
	authhandler "github.com/khawli/akar/internal/interfaces/handlers/auth"
	dochandler "github.com/khawli/akar/internal/interfaces/handlers/documents"
	healthhandler "github.com/khawli/akar/internal/interfaces/handlers/health"
	insthandler "github.com/khawli/akar/internal/interfaces/handlers/installments"
	leasehandler "github.com/khawli/akar/internal/interfaces/handlers/leases"
	lookuphandler "github.com/khawli/akar/internal/interfaces/handlers/lookup"
	orghandler "github.com/khawli/akar/internal/interfaces/handlers/org"
	prophandler "github.com/khawli/akar/internal/interfaces/handlers/properties"
	tenanthandler "github.com/khawli/akar/internal/interfaces/handlers/tenants"
	"github.com/khawli/akar/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp is the composition root: config in, wired Fiber app out. Every
// service receives its dependencies here; nothing reads globals.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	hh := &healthhandler.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", hh.JSON)

	if db == nil {
		return app, db, rdb, nil
	}

	// Auth (public)
	ah := &authhandler.Handlers{
		Service:    &authsvc.Service{DB: db},
		UserFinder: &authsvc.GormUserFinder{DB: db},
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/signup", ah.Signup)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Post("/logout", ah.Logout)

	scoped := []fiber.Handler{middleware.RequireAuth(), middleware.RequireOrg()}

	// Org settings
	oh := &orghandler.Handlers{Service: &orgsvc.Service{DB: db}}
	og := app.Group("/api/v1/settings", scoped...)
	og.Get("/org", oh.GetSettings)
	og.Put("/org", oh.UpdateSettings)

	exportSvc := &exports.Service{DB: db}
	propService := &propsvc.Service{DB: db}
	tenantService := &tenantsvc.Service{DB: db}

	// Properties and units
	ph := &prophandler.Handlers{Service: propService, Exports: exportSvc}
	pg := app.Group("/api/v1/properties", scoped...)
	pg.Post("/", ph.Create)
	pg.Get("/", ph.List)
	pg.Get("/:id", ph.Get)
	pg.Put("/:id", ph.Update)
	pg.Delete("/:id", ph.Delete)
	pg.Post("/:id/units", ph.CreateUnit)
	pg.Get("/:id/units", ph.ListUnits)
	pg.Get("/:id/export", ph.Export)

	// Tenants
	th := &tenanthandler.Handlers{Service: tenantService}
	tg := app.Group("/api/v1/tenants", scoped...)
	tg.Post("/", th.Create)
	tg.Get("/", th.List)
	tg.Get("/:id", th.Get)
	tg.Put("/:id", th.Update)
	tg.Delete("/:id", th.Delete)

	// Lookup
	lkh := &lookuphandler.Handlers{Properties: propService, Tenants: tenantService}
	app.Get("/api/v1/lookup", append(scoped, lkh.Get)...)

	// Leases
	lh := &leasehandler.Handlers{
		Service: &leasesvc.Service{DB: db, Horizon: cfg.InstallmentHorizon},
		Exports: exportSvc,
	}
	lg := app.Group("/api/v1/leases", scoped...)
	lg.Post("/", lh.Create)
	lg.Get("/", lh.List)
	lg.Get("/:id", lh.Get)
	lg.Get("/:id/export", lh.Export)

	// Documents
	docService := &docsvc.Service{
		DB:       db,
		Store:    &docsvc.Store{Dir: cfg.DocumentsDir},
		Renderer: &docsvc.ChromeRenderer{ExecPath: cfg.ChromePath},
	}
	dh := &dochandler.Handlers{Service: docService}
	dg := app.Group("/api/v1/documents", scoped...)
	dg.Post("/notice", dh.Notice)
	dg.Post("/reminder", dh.Reminder)
	dg.Post("/receipt", dh.Receipt)
	dg.Get("/by-installment", dh.ListByInstallment)
	dg.Get("/:id/download", dh.Download)

	// Installments
	ih := &insthandler.Handlers{Service: &instsvc.Service{DB: db}}
	ig := app.Group("/api/v1/installments", scoped...)
	ig.Post("/:id/pay", ih.Pay)

	return app, db, rdb, nil
}
