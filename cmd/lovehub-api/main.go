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

	"github.com/MarcoPoloResearchLab/lovehub/internal/checkout"
	"github.com/MarcoPoloResearchLab/lovehub/internal/config"
	"github.com/MarcoPoloResearchLab/lovehub/internal/database"
	"github.com/MarcoPoloResearchLab/lovehub/internal/logging"
	"github.com/MarcoPoloResearchLab/lovehub/internal/messages"
	"github.com/MarcoPoloResearchLab/lovehub/internal/proposals"
	"github.com/MarcoPoloResearchLab/lovehub/internal/server"
	"github.com/MarcoPoloResearchLab/lovehub/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	envFiles []string
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lovehub-api",
		Short: "LoveHub proposal backend service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
		SilenceUsage: true,
	}

	setupFlags(rootCmd)
	rootCmd.AddCommand(newGenerateCommand(), newPlansCommand())
	return rootCmd
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to configuration file")
	flags.StringSliceVar(&envFiles, "env-file", []string{".env"}, "Dotenv files loaded before configuration")
	flags.String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	flags.String("database-driver", defaults.GetString("database.driver"), "Database driver (sqlite, postgres)")
	flags.String("database-path", defaults.GetString("database.path"), "SQLite database path")
	flags.String("database-dsn", defaults.GetString("database.dsn"), "Postgres connection string")
	flags.String("storage-backend", defaults.GetString("storage.backend"), "Proposal storage backend (sql, memory)")
	flags.String("storage-key", defaults.GetString("storage.key"), "Key the proposal collection is stored under")
	flags.String("public-origin", defaults.GetString("public.origin"), "Origin share URLs are built on")
	flags.String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	flags.String("log-format", defaults.GetString("log.format"), "Log format (json, console)")
	flags.String("signing-secret", "", "Plan voucher signing secret (overrides env)")
	flags.Int("voucher-ttl-minutes", defaults.GetInt("voucher.ttl_minutes"), "Plan voucher TTL in minutes")
	flags.Duration("payment-delay", defaults.GetDuration("payment.delay"), "Simulated payment gateway delay")
	flags.Duration("generator-delay", defaults.GetDuration("generator.delay"), "Simulated message generation delay")
	flags.String("cors-allowed-origins", defaults.GetString("cors.allowed_origins"), "Comma separated CORS origins")
	flags.Bool("admin-routes", defaults.GetBool("admin.routes_enabled"), "Expose proposal listing and deletion")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.driver", "database-driver")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "database.dsn", "database-dsn")
	bindFlag(cmd, "storage.backend", "storage-backend")
	bindFlag(cmd, "storage.key", "storage-key")
	bindFlag(cmd, "public.origin", "public-origin")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "log.format", "log-format")
	bindFlag(cmd, "voucher.signing_secret", "signing-secret")
	bindFlag(cmd, "voucher.ttl_minutes", "voucher-ttl-minutes")
	bindFlag(cmd, "payment.delay", "payment-delay")
	bindFlag(cmd, "generator.delay", "generator-delay")
	bindFlag(cmd, "cors.allowed_origins", "cors-allowed-origins")
	bindFlag(cmd, "admin.routes_enabled", "admin-routes")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel, appConfig.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	accessor, closeStorage, err := openAccessor(appConfig, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	store := proposals.NewStore(proposals.StoreConfig{
		Accessor: accessor,
		Key:      appConfig.StorageKey,
		Origin:   appConfig.PublicOrigin,
		Logger:   logger,
	})
	proposalService, err := proposals.NewService(proposals.ServiceConfig{Store: store, Logger: logger})
	if err != nil {
		return err
	}

	voucherConfig := checkout.VoucherConfig{
		SigningSecret: []byte(appConfig.VoucherSigningSecret),
		TTL:           appConfig.VoucherTTL,
	}
	issuer, err := checkout.NewVoucherIssuer(voucherConfig)
	if err != nil {
		return err
	}
	validator, err := checkout.NewVoucherValidator(voucherConfig)
	if err != nil {
		return err
	}
	processor, err := checkout.NewProcessor(checkout.ProcessorConfig{
		Issuer: issuer,
		Delay:  appConfig.PaymentDelay,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	handler, err := server.NewHTTPHandler(server.Dependencies{
		Proposals:      proposalService,
		Checkout:       processor,
		Vouchers:       validator,
		Generator:      messages.NewGenerator(messages.DefaultRandomSource()),
		Realtime:       server.NewRealtimeDispatcher(),
		AllowedOrigins: appConfig.AllowedOrigins,
		GeneratorDelay: appConfig.GeneratorDelay,
		AdminRoutes:    appConfig.AdminRoutesEnabled,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              appConfig.HTTPAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("address", appConfig.HTTPAddress),
			zap.String("storage_backend", appConfig.StorageBackend))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// openAccessor builds the storage accessor selected by storage.backend.
func openAccessor(appConfig config.AppConfig, logger *zap.Logger) (storage.Accessor, func(), error) {
	if !appConfig.UsesSQLStorage() {
		logger.Warn("proposals are kept in memory and will not survive a restart")
		return storage.NewMemoryAccessor(), func() {}, nil
	}

	db, err := database.Open(database.Options{
		Driver:     appConfig.DatabaseDriver,
		Path:       appConfig.DatabasePath,
		DSN:        appConfig.DatabaseDSN,
		StorageKey: appConfig.StorageKey,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	accessor, err := storage.NewSQLAccessor(db, time.Now)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("database close failed", zap.Error(err))
		}
	}
	return accessor, closeFn, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
