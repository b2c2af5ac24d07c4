package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/claimlens/claimlens/internal/config"
	"github.com/claimlens/claimlens/internal/domain/adjustment"
	"github.com/claimlens/claimlens/internal/domain/claims"
	"github.com/claimlens/claimlens/internal/domain/risk"
	"github.com/claimlens/claimlens/internal/platform/auth"
	"github.com/claimlens/claimlens/internal/platform/db"
	"github.com/claimlens/claimlens/internal/platform/feeschedule"
	"github.com/claimlens/claimlens/internal/platform/middleware"
	"github.com/claimlens/claimlens/internal/platform/telemetry"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "claimlens-server",
		Short: "X12 claim parsing and analysis API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(planCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the claim API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set; nothing to migrate")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	})

	return cmd
}

// offlineService builds a claims service with no database and a stderr logger
// for the one-shot CLI commands.
func offlineService() *claims.Service {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return claims.NewService(claims.NewAuditRepoMem(), logger)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an X12 837 or 835 file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := offlineService().Parse(context.Background(), claims.Input{FilePath: args[0]})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the risk analysis engine against an X12 claim file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := risk.NewService(offlineService())
			assessment, err := svc.Analyze(context.Background(), claims.Input{FilePath: args[0]})
			if err != nil {
				return err
			}
			return printJSON(assessment)
		},
	}
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Build an adjustment plan for an X12 claim file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requireModifiers, _ := cmd.Flags().GetBool("require-modifiers")
			maxLineItems, _ := cmd.Flags().GetInt("max-line-items")

			var rules *adjustment.PayerRules
			if requireModifiers || maxLineItems > 0 {
				rules = &adjustment.PayerRules{
					RequireModifiers: requireModifiers,
					MaxLineItems:     maxLineItems,
				}
			}

			svc := adjustment.NewService(offlineService())
			plan, err := svc.Plan(context.Background(), adjustment.Request{
				Input:      claims.Input{FilePath: args[0]},
				PayerRules: rules,
			})
			if err != nil {
				return err
			}
			return printJSON(plan)
		},
	}
	cmd.Flags().Bool("require-modifiers", false, "Flag lines missing a procedure modifier")
	cmd.Flags().Int("max-line-items", 0, "Payer maximum line items per claim (0 = unlimited)")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Audit storage: Postgres when configured, in-memory otherwise.
	ctx := context.Background()
	var audit claims.AuditRepository
	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		dbPool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer dbPool.Close()
		audit = claims.NewAuditRepoPG(dbPool)
		logger.Info().Msg("connected to database")
	} else {
		audit = claims.NewAuditRepoMem()
		logger.Info().Msg("no DATABASE_URL configured; parse audit trail kept in memory")
	}

	// Telemetry
	metrics := telemetry.NewProvider(telemetry.Config{
		ServiceName:    "claimlens-server",
		ServiceVersion: version,
		Environment:    cfg.Env,
	})

	if dbPool != nil {
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				stat := dbPool.Stat()
				metrics.SetDBPoolActive(int64(stat.AcquiredConns()))
				metrics.SetDBPoolIdle(int64(stat.IdleConns()))
			}
		}()
	}

	// Services
	claimsSvc := claims.NewService(audit, logger).WithMetrics(metrics)
	riskSvc := risk.NewService(claimsSvc).WithMetrics(metrics)
	adjustmentSvc := adjustment.NewService(claimsSvc).WithMetrics(metrics)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M", "10M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	if cfg.RateLimitRPS > 0 {
		e.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			BurstSize:         cfg.RateLimitBurst,
		}))
	}

	// Health and metrics endpoints are open; the API group is authenticated.
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(dbPool))
	e.GET("/metrics", metrics.PrometheusHandler())

	apiV1 := e.Group("/api/v1")
	if cfg.ResolvedAuthMode() == "jwt" {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{Secret: cfg.JWTSecret}))
	} else {
		apiV1.Use(auth.DevAuthMiddleware())
	}

	// Handlers
	claims.NewHandler(claimsSvc).RegisterRoutes(apiV1)
	risk.NewHandler(riskSvc).RegisterRoutes(apiV1)
	adjustment.NewHandler(adjustmentSvc).RegisterRoutes(apiV1)
	if cfg.FeeScheduleURL != "" {
		client := feeschedule.NewClient(cfg.FeeScheduleURL,
			time.Duration(cfg.FeeScheduleTimeout)*time.Millisecond)
		feeschedule.NewHandler(client).RegisterRoutes(apiV1)
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("auth_mode", cfg.ResolvedAuthMode()).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
