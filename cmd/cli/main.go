package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/internal/config"
	"github.com/aakfoundation/sevak-registry/pkg/cache"
	"github.com/aakfoundation/sevak-registry/pkg/clients/registryclient"
	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/core/services"
	"github.com/aakfoundation/sevak-registry/pkg/core/view"
	"github.com/aakfoundation/sevak-registry/pkg/dashboard"
	"github.com/aakfoundation/sevak-registry/pkg/mockdata"
	"github.com/aakfoundation/sevak-registry/pkg/store"
	"github.com/aakfoundation/sevak-registry/pkg/store/filestore"
	"github.com/aakfoundation/sevak-registry/pkg/store/pgstore"
	"github.com/aakfoundation/sevak-registry/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	client *registryclient.Client
	cache  *cache.VolunteerListCache
	logger *zap.Logger
	ctx    context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sevak",
		Short: "Sevak Registry CLI - Manage the trust's volunteer list",
		Long:  `A CLI tool for browsing, refreshing, and administering the AAK Seva Foundation volunteer registry.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.cache != nil {
					app.cache.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(assignRoleCmd())
	rootCmd.AddCommand(removeRoleCmd())
	rootCmd.AddCommand(exportCsvCmd())
	rootCmd.AddCommand(exportCardCmd())
	rootCmd.AddCommand(dashboardCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, client, snapshot store, and cache
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.client = registryclient.NewClient(app.ctx, app.cfg.APIBaseURL, app.cfg.AdminToken)

	snapStore, err := buildSnapshotStore()
	if err != nil {
		return err
	}

	opts := cache.Options{
		TTL:             app.cfg.CacheTTL(),
		RefreshInterval: app.cfg.RefreshInterval(),
	}
	if app.cfg.AllowMockFallback {
		count := app.cfg.MockVolunteerCount
		opts.MockFallback = func() []model.Volunteer { return mockdata.Volunteers(count) }
		app.logger.Warn("Mock data fallback is enabled; do not use in production")
	}

	app.cache = cache.New(snapStore, app.client, app.client, app.logger, opts)

	app.logger.Info("Bootstrapping volunteer cache")
	if err := app.cache.Bootstrap(app.ctx); err != nil {
		return fmt.Errorf("failed to bootstrap volunteer cache: %w", err)
	}
	if app.cache.Degraded() {
		fmt.Println("⚠️  Backend unreachable - showing last known data")
	}

	return nil
}

func buildSnapshotStore() (store.SnapshotStore, error) {
	switch app.cfg.SnapshotStore {
	case "postgres":
		app.logger.Info("Using PostgreSQL snapshot store")
		pg, err := pgstore.New(app.ctx, app.cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect snapshot store: %w", err)
		}
		if err := pg.RunMigrations(app.ctx); err != nil {
			return nil, fmt.Errorf("failed to run snapshot store migrations: %w", err)
		}
		return pg, nil
	default:
		app.logger.Info("Using file snapshot store", zap.String("dir", app.cfg.CacheDir))
		fs, err := filestore.New(app.cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		return fs, nil
	}
}

// Command definitions

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List volunteers from the cached registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			role, _ := cmd.Flags().GetString("role")
			idNumber, _ := cmd.Flags().GetString("id-number")
			sortKey, _ := cmd.Flags().GetString("sort")
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")

			result := services.ListVolunteers(app.ctx, app.cache, app.logger, view.Query{
				Search:   search,
				Role:     model.Role(role),
				IDNumber: idNumber,
				Sort:     view.SortKey(sortKey),
				Page:     page,
				PageSize: pageSize,
			})

			printVolunteerPage(result)
			return nil
		},
	}

	cmd.Flags().String("search", "", "Case-insensitive search across name, reg. number, phone, address")
	cmd.Flags().String("role", "all", "Role filter (president, vice-president, soorveer-yodha, all)")
	cmd.Flags().String("id-number", "", "Exact AAK registration number filter")
	cmd.Flags().String("sort", "newest", "Sort key (newest, oldest, name-asc, name-desc, role-rank)")
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 12, "Page size (6, 12, 24, 48)")

	return cmd
}

func printVolunteerPage(result *services.ListResult) {
	if result.Degraded {
		fmt.Println("⚠️  Showing cached data - the last refresh attempt failed")
	}

	if result.TotalCount == 0 {
		fmt.Println("\nNo volunteers match the current filters.")
		return
	}

	fmt.Printf("\nPage %d/%d - %d volunteer(s) matched\n", result.Page, result.TotalPages, result.TotalCount)
	fmt.Printf("Roles: %d president, %d vice-president, %d soorveer yodha\n\n",
		result.RoleCounts.President, result.RoleCounts.VicePresident, result.RoleCounts.Yodha)

	for _, v := range result.Records {
		fmt.Printf("  %4d. %-24s %-12s %-14s %s (%s)\n",
			v.DisplayID,
			v.Name,
			v.IDNumber,
			v.PhoneNumber,
			v.Role,
			v.JoinDate.Format("2006-01-02"),
		)
	}
	fmt.Println()
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a blocking refresh from the registry backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := services.RefreshVolunteers(app.ctx, app.cache, app.logger)
			if err != nil {
				// The cached list is still intact; say so rather than just failing.
				fmt.Println("✗ Refresh failed - continuing with the cached list")
				return err
			}

			fmt.Printf("\n✓ Refreshed successfully - %d volunteer(s)\n\n", count)
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <name> <id_number> <phone> <address>",
		Short: "Register a new volunteer with the backend",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			imageURL, _ := cmd.Flags().GetString("image-url")

			created, err := services.RegisterVolunteer(app.ctx, app.client, app.logger, registryclient.Registration{
				Name:        args[0],
				IDNumber:    args[1],
				PhoneNumber: args[2],
				Address:     args[3],
				ImageURL:    imageURL,
			})
			if err != nil {
				return err
			}

			if err := app.cache.Refresh(app.ctx); err != nil {
				app.logger.Warn("Refresh after registration failed", zap.Error(err))
			}

			fmt.Printf("\n✓ Volunteer registered!\n\n")
			fmt.Printf("ID:         %s\n", created.ID)
			fmt.Printf("Display ID: %d\n", created.DisplayID)
			fmt.Printf("Name:       %s\n\n", created.Name)
			return nil
		},
	}

	cmd.Flags().String("image-url", "", "Optional profile image URL")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <volunteer_id>",
		Short: "Delete a volunteer via the backend and drop it from the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteVolunteer(app.ctx, app.cache, app.logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Volunteer %s deleted\n\n", args[0])
			return nil
		},
	}
}

func assignRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignRole <volunteer_id> <role>",
		Short: "Assign president/vice-president through the admin API",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignedBy, _ := cmd.Flags().GetString("by")

			err := services.AssignRole(app.ctx, app.client, app.cache, app.logger, timeNow, args[0], model.Role(args[1]), assignedBy)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Role %s assigned to %s\n\n", args[1], args[0])
			return nil
		},
	}

	cmd.Flags().String("by", "", "Admin name recorded on the role assignment")

	return cmd
}

func removeRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "removeRole <volunteer_id>",
		Short: "Demote a volunteer back to soorveer yodha",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveRole(app.ctx, app.client, app.cache, app.logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Role removed from %s\n\n", args[0])
			return nil
		},
	}
}

func exportCsvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exportCsv [path]",
		Short: "Export the volunteer list as CSV (defaults to volunteers.csv)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "volunteers.csv"
			if len(args) > 0 {
				path = args[0]
			}

			count, err := services.ExportCSV(app.ctx, app.cache, app.logger, path)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Exported %d volunteer(s) to %s\n\n", count, path)
			return nil
		},
	}
}

func exportCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportCard <volunteer_id>",
		Short: "Render a volunteer's ID card to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("out")

			path, err := services.ExportCard(app.ctx, app.cache, app.logger, args[0], dir)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ ID card written to %s\n\n", path)
			return nil
		},
	}

	cmd.Flags().String("out", "cards", "Output directory for rendered cards")

	return cmd
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the local admin dashboard API with background refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(app.ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.cache.StartBackgroundRefresh(ctx)

			srv := dashboard.NewServer(app.cache, app.client, app.logger)
			fmt.Printf("\nDashboard API on http://%s (Ctrl+C to stop)\n\n", app.cfg.DashboardAddr)
			return srv.ListenAndServe(ctx, app.cfg.DashboardAddr)
		},
	}
}

func timeNow() time.Time {
	return time.Now()
}
