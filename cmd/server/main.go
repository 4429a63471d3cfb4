package main

import (
	"log"
	"net/http"
	"os"

	webAdapter "odoo-dashboard/internal/adapters/web"
	"odoo-dashboard/internal/app"
	"odoo-dashboard/internal/config"
	"odoo-dashboard/internal/logging"
	"odoo-dashboard/internal/odoo"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("DASHBOARD_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := odoo.NewClient(cfg.Odoo.URL, cfg.Odoo.Database, odoo.WithLogger(logger.Named("odoo")))
	if err != nil {
		logger.Fatal("odoo client", zap.Error(err))
	}

	svc := app.NewAppService(client, app.Options{
		Seeds:  cfg.Dashboard.DefaultWidgets,
		Logger: logger.Named("dashboard"),
	})

	if cfg.Server.JWTSecretGenerated {
		logger.Warn("no jwt secret configured; sessions will not survive a restart")
	}

	handler, err := webAdapter.NewHandler(svc, cfg, logger.Named("http"))
	if err != nil {
		logger.Fatal("web handler", zap.Error(err))
	}

	logger.Info("server starting",
		zap.String("addr", ":"+cfg.Server.Port),
		zap.String("odoo_url", cfg.Odoo.URL),
		zap.String("odoo_db", cfg.Odoo.Database),
	)
	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
