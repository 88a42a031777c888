package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/TolgaCulfa/sunum2/internal/ai"
	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/config"
	"github.com/TolgaCulfa/sunum2/internal/deck/export"
	"github.com/TolgaCulfa/sunum2/internal/identity"
	"github.com/TolgaCulfa/sunum2/internal/logger"
	"github.com/TolgaCulfa/sunum2/internal/persist"
	"github.com/TolgaCulfa/sunum2/internal/platforms/telegram"
	"github.com/TolgaCulfa/sunum2/internal/quota"
	"github.com/TolgaCulfa/sunum2/internal/webui"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sunum2 web service",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = config.DataDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data dir: %v\n", err)
		os.Exit(1)
	}

	store, err := persist.NewStore(filepath.Join(dataDir, "sunum2.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	registry, err := ai.LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model registry: %v\n", err)
		os.Exit(1)
	}

	completer, err := ai.NewCompleter(cfg.Provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating provider client: %v\n", err)
		os.Exit(1)
	}

	guard := quota.NewGuard(store, cfg.Quota.DailySlideLimit)
	comp := composer.New(completer, registry, guard, store)

	var verifier identity.Verifier
	if len(cfg.Auth.Tokens) > 0 {
		verifier = identity.NewStaticVerifier(cfg.Auth.Tokens)
	} else {
		verifier = identity.Anonymous{}
		logger.Warn("serve: no auth tokens configured, all callers share one owner")
	}

	printer := export.NewPDFRenderer(cfg.Export.BrowserBin)
	server := webui.NewServer(comp, registry, guard, store, verifier, printer)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serve: listening on http://127.0.0.1:%d", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve: http server: %v", err)
		}
	}()

	var tg *telegram.Platform
	if cfg.Telegram.Token != "" {
		tg, err = telegram.New(telegram.Config{Token: cfg.Telegram.Token}, comp, registry)
		if err != nil {
			logger.Error("serve: telegram: %v", err)
		} else if err := tg.Start(context.Background()); err != nil {
			logger.Error("serve: telegram start: %v", err)
			tg = nil
		}
	}

	janitor := startUsageJanitor(store, cfg.Quota.RetentionDays)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("serve: shutting down")
	if tg != nil {
		_ = tg.Stop()
	}
	if janitor != nil {
		janitor.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}

// startUsageJanitor prunes usage rows older than the retention window every
// night. Quota is per calendar date, so old rows are dead weight.
func startUsageJanitor(store *persist.Store, retentionDays int) *cron.Cron {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	c := cron.New()
	_, err := c.AddFunc("0 4 * * *", func() {
		before := time.Now().AddDate(0, 0, -retentionDays).Format("2006-01-02")
		n, err := store.PruneUsage(before)
		if err != nil {
			logger.Error("janitor: prune usage: %v", err)
			return
		}
		logger.Info("janitor: pruned %d usage rows older than %s", n, before)
	})
	if err != nil {
		logger.Error("janitor: schedule: %v", err)
		return nil
	}
	c.Start()
	return c
}
