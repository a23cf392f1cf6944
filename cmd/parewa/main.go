package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Goofygiraffe06/parewa/api"
	"github.com/Goofygiraffe06/parewa/internal/auth"
	"github.com/Goofygiraffe06/parewa/internal/backend"
	"github.com/Goofygiraffe06/parewa/internal/config"
	"github.com/Goofygiraffe06/parewa/internal/controller"
	"github.com/Goofygiraffe06/parewa/internal/flow"
	"github.com/Goofygiraffe06/parewa/internal/journal"
	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/Goofygiraffe06/parewa/internal/session"
	"github.com/Goofygiraffe06/parewa/internal/workerpool"
	"github.com/Goofygiraffe06/parewa/store"
	"github.com/Goofygiraffe06/parewa/store/ephemeral"
	"github.com/Goofygiraffe06/parewa/web"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// flags override the environment for a single run.
type flags struct {
	port       string
	logFile    string
	dbFile     string
	apiBaseURL string
}

func parseFlags(args []string) (flags, error) {
	var fl flags
	flagSet := pflag.NewFlagSet("parewa", pflag.ContinueOnError)
	flagSet.StringVar(&fl.port, "port", config.Port(), "TCP port to listen on (PORT)")
	flagSet.StringVar(&fl.logFile, "log-file", config.LogFile(), "JSON log file (LOG_FILE)")
	flagSet.StringVar(&fl.dbFile, "db-file", config.DBFile(), "SQLite submission journal (DB_FILE)")
	flagSet.StringVar(&fl.apiBaseURL, "api-base-url", config.APIBaseURL(), "signup API origin (API_BASE_URL)")
	if err := flagSet.Parse(args); err != nil {
		return fl, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fl, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return fl, nil
}

func main() {
	fl, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	f, err := logging.InitLogger(fl.logFile)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer f.Close()
	defer logging.Sync()

	logging.InfoLog("Starting PAREWA web frontend")

	auth.InitSigningKey()

	dbFile := fl.dbFile
	journalStore, err := store.NewSQLiteStore(dbFile)
	if err != nil {
		logging.FatalLog("Failed to open journal DB: %v", err)
	}
	defer journalStore.Close()
	if err := os.Chmod(dbFile, 0600); err != nil {
		logging.WarnLog("Failed to set restrictive permissions on %s: %v", dbFile, err)
	}
	logging.InfoLog("Connected to SQLite journal: %s", dbFile)

	pool := workerpool.New("journal", config.JournalWorkerCount(), config.WorkerQueueSize())
	defer pool.Close(5 * time.Second)
	journalWriter := journal.NewWriter(journalStore, pool)

	apiClient, err := backend.New(backend.Config{
		BaseURL:    fl.apiBaseURL,
		HTTPClient: &http.Client{},
		Timeout:    config.APITimeout(),
	})
	if err != nil {
		logging.FatalLog("Invalid backend configuration: %v", err)
	}

	verifications := ephemeral.NewVerificationStore(config.VerificationTTL())
	defer verifications.Close()

	guard := controller.NewSubmissionRegistry()
	otpFlow := flow.NewOTPFlow(apiClient, guard, verifications, journalWriter)
	passwordFlow := flow.NewPasswordFlow(apiClient, guard, verifications, journalWriter, flow.PasswordOptions{
		StrictEmailBinding: config.StrictEmailBinding(),
		SuccessRedirect:    config.SignupSuccessRedirect(),
	})

	renderer, err := web.NewRenderer(web.Meta{
		Title:       config.SiteTitle(),
		Description: config.SiteDescription(),
	})
	if err != nil {
		logging.FatalLog("Failed to load templates: %v", err)
	}

	sessions := session.NewProvider(session.Options{
		CookieName: config.SessionCookieName(),
		Issuer:     config.SessionIssuer(),
		TTL:        config.SessionTTL(),
		Secure:     config.CookieSecure(),
	})

	router := api.NewRouter(api.Deps{
		Renderer:     renderer,
		Sessions:     sessions,
		OTP:          otpFlow,
		Passwords:    passwordFlow,
		Journal:      journalStore,
		MaxBodyBytes: config.MaxRequestBodyBytes(),
		CORSOrigins:  config.CORSAllowedOrigins(),
	})

	server := &http.Server{
		Addr:              ":" + fl.port,
		Handler:           router,
		ReadTimeout:       config.ServerReadTimeout(),
		ReadHeaderTimeout: config.ServerReadHeaderTimeout(),
		WriteTimeout:      config.ServerWriteTimeout(),
		IdleTimeout:       config.ServerIdleTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.InfoLog("PAREWA listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.InfoLog("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.ErrorLog("Server stopped with error: %v", err)
	}
}
