package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead_crm_client/internal/app"
	"lead_crm_client/internal/domain/today"
	"lead_crm_client/internal/infra/config"
	"lead_crm_client/internal/infra/httpapi"
	"lead_crm_client/internal/infra/logger"
	"lead_crm_client/internal/infra/monitoring"
	"lead_crm_client/internal/infra/reporting"
	"lead_crm_client/internal/infra/scheduler"
	"lead_crm_client/internal/infra/sessionstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. API: %s, Environment: %s", cfg.APIBaseURL, cfg.Environment)

	if err := reporting.InitSentry(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Fatalf("FATAL: Could not initialize error reporting: %v", err)
	}
	defer reporting.Flush()

	monitoring.Init()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", monitoring.Handler())
			log.Infof("Metrics endpoint listening on %s/metrics", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Errorf("Metrics endpoint failed: %v", err)
			}
		}()
	}

	// Session store: the single owner of the persisted token and role.
	store := sessionstore.NewFileStore(cfg.SessionFile)
	log.Infof("Session store initialized at %s", cfg.SessionFile)

	validate := app.NewValidator()
	cache := app.NewQueryCache(cfg.CacheStaleAfter, log)

	// The auth service's 401 hook is wired after construction because the
	// HTTP client and the auth service reference each other.
	var authService *app.AuthService
	client := httpapi.NewClient(cfg.APIBaseURL, store, log,
		httpapi.WithTimeout(cfg.HTTPTimeout),
		httpapi.WithOnUnauthorized(func() {
			if authService != nil {
				authService.HandleUnauthorized()
			}
		}),
	)

	authService = app.NewAuthService(httpapi.NewAuthAPI(client), store, validate, log)
	leadService := app.NewLeadService(
		httpapi.NewLeadAPI(client),
		httpapi.NewNoteAPI(client),
		httpapi.NewActivityAPI(client),
		httpapi.NewTaskAPI(client),
		cache, validate, log,
	)
	todayService := app.NewTodayService(httpapi.NewTodayAPI(client), cache, authService, log)
	userService := app.NewUserService(httpapi.NewUserAPI(client), cache, validate, log)
	log.Info("Services initialized.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.LoginEmail != "" {
		loginCtx, loginCancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
		u, err := authService.Login(loginCtx, cfg.LoginEmail, cfg.LoginPassword)
		loginCancel()
		if err != nil {
			log.Fatalf("FATAL: Login failed: %v", err)
		}
		log.Infof("Authenticated as %s.", u.Name)
	} else {
		log.Info("No credentials configured, relying on a previously persisted session.")
	}

	// Warm the caches once so the first queue refresh logs a delta, not a
	// cold fetch.
	warmCtx, warmCancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	if users, err := userService.List(warmCtx); err != nil {
		log.Warnf("Could not warm the user directory: %v", err)
	} else {
		log.Infof("User directory loaded: %d users.", users.Total)
	}
	leadList := app.NewListController(ctx, 20, cfg.SearchDebounce, leadService.List)
	defer leadList.Stop()
	if err := leadList.Refresh(); err != nil {
		log.Warnf("Could not reach the leads resource: %v", err)
	} else if page, _ := leadList.Current(); page != nil {
		log.Infof("Leads resource reachable: %d leads total.", page.Total)
	}
	if view, err := todayService.Queue(warmCtx, today.Query{}); err != nil {
		log.Warnf("Could not load the today queue: %v", err)
	} else {
		log.Infof("Today queue loaded: %d tasks due, %d follow-up calls due.",
			view.TotalTasks, view.TotalFollowUpCalls)
	}
	warmCancel()

	todayScheduler := scheduler.NewTodayQueueScheduler(todayService, log, cfg.CronSpecTodayRefresh)
	todayScheduler.Start()

	log.Info("Application setup complete. Today-queue watcher is running...")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	todayScheduler.Stop()
	cancel()
	time.Sleep(100 * time.Millisecond) // let in-flight log writes drain
	log.Info("Application shut down gracefully.")
}
