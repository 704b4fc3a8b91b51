package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diskmonitor/internal/config"
	"diskmonitor/internal/controllers"
	"diskmonitor/internal/server"
	"diskmonitor/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// startedAt is captured once at process initialization
var startedAt = time.Now()

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "diskmonitor",
	Short: "Disk Monitor API - filesystem capacity over HTTP",
	Long: `Disk Monitor exposes total, used and free space of any mount path
as JSON over HTTP, together with a liveness probe.`,
	Version:      controllers.APIVersion,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().String("host", "", "interface to bind (default 0.0.0.0)")
	rootCmd.Flags().Int("port", 0, "port to listen on (default 8000)")

	rootCmd.AddCommand(diskCmd)
	rootCmd.AddCommand(disksCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Logging.Debug = true
	}
	setupLogging(cfg.Logging)
	return cfg, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Logging.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("version", controllers.APIVersion).
		Str("address", cfg.Server.Addr()).
		Msg("Starting Disk Monitor API")

	srv := server.New(cfg, services.NewDiskService(), services.NewHealthService(startedAt))
	srv.PrintStartupInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
