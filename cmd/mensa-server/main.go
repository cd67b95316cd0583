package main

import (
	"flag"
	"os"

	"mensa-backend/lib/menuhistory"
	menuhistorydb "mensa-backend/lib/menuhistory/db"
	"mensa-backend/lib/telemetry"
	"mensa-backend/lib/util/configutil"
	configsqlite "mensa-backend/lib/util/configutil/sqlite"
	"mensa-backend/lib/util/serviceutil"
	"mensa-backend/services/mensa"
	"mensa-backend/services/mensa/server"
)

type Config struct {
	SourceURL string `json:"source_url"`
	Port      int    `json:"port"`
	// public hostname shown in help and footer text
	Host           string              `json:"host"`
	DefaultCanteen string              `json:"default_canteen"`
	RefreshHours   []int               `json:"refresh_hours"`
	History        configsqlite.Struct `json:"history"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(*verbose)
	err := telemetry.SetupFromEnv(ctx, "mensa-server")
	if err != nil {
		serviceutil.Fatal("init telemetry", err)
	}
	defer telemetry.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("read config", err)
	}
	if cfg.SourceURL == "" {
		cfg.SourceURL = "https://www.sw-ka.de/de/essen/"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.Host == "" {
		cfg.Host = "frcl.de/mensa"
	}

	var history *menuhistory.Store
	if cfg.History.File != "" {
		database, err := cfg.History.OpenDB(menuhistorydb.Schema)
		if err != nil {
			serviceutil.Fatal("open history db", err)
		}
		store, err := menuhistory.NewStore(ctx, database, mensa.DefaultLineOrder)
		if err != nil {
			serviceutil.Fatal("init history store", err)
		}
		history = &store
	}

	svc := mensa.NewService(mensa.Options{
		SourceURL:      cfg.SourceURL,
		RefreshHours:   cfg.RefreshHours,
		DefaultCanteen: cfg.DefaultCanteen,
		History:        history,
	})
	go svc.RunRefreshDaemon(ctx)

	router := server.NewRouter(svc, cfg.Host)
	go serviceutil.StartHttpServer(cfg.Port, router)

	<-ctx.Done()
}
