package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal"
	"github.com/2beens/gymtracker/internal/config"
	"github.com/2beens/gymtracker/internal/logging"
	"github.com/2beens/gymtracker/pkg"
)

type secrets struct {
	dbPassword       string
	redisPassword    string
	sentryDSN        string
	honeycombEnabled bool
}

func main() {
	fmt.Println("starting gymtracker ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	sec := secretsFromEnv()
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sec.sentryDSN,
		SentryServerName: "gymtracker-service",
	})

	log.Warnf("---->> running in [%s] environment", cfg.Environment)
	log.Debugf("using port: %d, logs path: [%s]", cfg.Port, cfg.LogsPath)

	versionInfo := versionInfo()
	log.Tracef("running version: %s", versionInfo)

	if cfg.TemplatesDir != "" {
		exists, err := pkg.DirExists(cfg.TemplatesDir)
		if err != nil {
			log.Fatalf("check templates dir: %s", err)
		}
		if !exists {
			log.Warnf("templates dir [%s] does not exist, only db templates will be used", cfg.TemplatesDir)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			DBPassword:              sec.dbPassword,
			RedisPassword:           sec.redisPassword,
			HoneycombTracingEnabled: sec.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("signal received, shutting down ...")

	// final autosave snapshots are written during shutdown
	server.GracefulShutdown()
}

func secretsFromEnv() secrets {
	sec := secrets{
		dbPassword:       os.Getenv("GYMTRACKER_DB_PASS"),
		redisPassword:    os.Getenv("GYMTRACKER_REDIS_PASS"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}

	if sec.dbPassword == "" {
		log.Warnln("db password not set. use GYMTRACKER_DB_PASS")
	}
	if sec.redisPassword == "" {
		log.Warnln("redis password not set. use GYMTRACKER_REDIS_PASS")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if sec.honeycombEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}

	return sec
}

// versionInfo prefers the vcs revision stamped into the binary and
// falls back to asking git, which assumes the binary runs from the repo root.
func versionInfo() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value
			}
		}
	}

	stdout, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Tracef("failed to get last commit hash: %s", err)
		return "unknown"
	}
	return strings.TrimSpace(string(stdout))
}
