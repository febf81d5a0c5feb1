package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/foodrun/internal/api"
	"github.com/jask/foodrun/internal/config"
	"github.com/jask/foodrun/internal/logging"
	"github.com/jask/foodrun/internal/secrets"
	"github.com/jask/foodrun/internal/tui"
)

// App holds the application dependencies
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	client  *api.Client
	session storedSession
	ctx     context.Context
}

var (
	configPath string
	server     string
	logFile    string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "foodrun",
		Short: "foodrun - share the shopping trip",
		Long: `A terminal client for a food-volunteer group: offer to fetch food
for your group, or ask someone who is already going.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/foodrun/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "Coordination server base URL")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config and builds the logger, client and session store.
// Flags are applied as env overrides so derived defaults follow them.
func initApp() error {
	if server != "" {
		_ = os.Setenv("FOODRUN_SERVER_BASE_URL", server)
	}
	if logFile != "" {
		_ = os.Setenv("FOODRUN_LOG_PATH", logFile)
	}
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("starting foodrun", zap.String("server", cfg.Server.BaseURL))

	client, err := api.New(cfg.Server.BaseURL, cfg.Server.Timeout, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	store, err := secrets.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	app = &App{
		cfg:    cfg,
		logger: logger,
		client: client,
		ctx:    context.Background(),
		session: storedSession{
			Client:     client,
			store:      store,
			server:     cfg.Server.BaseURL,
			cookieName: cfg.Server.CookieName,
			logger:     logger,
		},
	}
	app.session.restore()
	return nil
}

func runUI() error {
	ctx, cancel := context.WithCancel(app.ctx)
	defer cancel()

	services := tui.NewServices(app.client)
	services.Session = app.session

	model := tui.New(ctx, app.cfg.UI, services, app.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		app.logger.Error("program exited with error", zap.Error(err))
		return err
	}
	app.logger.Info("bye")
	return nil
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <cookie>",
		Short: "Save the session cookie from a browser login",
		Long: `Log in through the browser at the login URL, copy the value of the
session cookie and pass it here. The cookie is checked against the server
and saved for later runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cookie := args[0]
			app.client.SetCookies([]*http.Cookie{{Name: app.cfg.Server.CookieName, Value: cookie, Path: "/"}})
			st, err := app.client.CheckSession(app.ctx)
			if err != nil {
				return fmt.Errorf("check session: %w", err)
			}
			if !st.Authenticated {
				return fmt.Errorf("server %s did not accept the cookie; log in at %s first", app.cfg.Server.BaseURL, app.cfg.UI.LoginURL)
			}
			if err := app.session.store.SaveSession(app.cfg.Server.BaseURL, cookie); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			app.logger.Info("session saved", zap.String("server", app.cfg.Server.BaseURL))
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", app.cfg.Server.BaseURL)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the server session and forget the saved cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.EndSession(app.ctx); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out of %s\n", app.cfg.Server.BaseURL)
			return nil
		},
	}
}
