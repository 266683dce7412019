// Package cli implements the grayctl command tree. Commands are organized
// hierarchically with a root command and resource subcommands, following the
// cobra pattern.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grayops-hq/grayctl/internal/cache"
	"github.com/grayops-hq/grayctl/internal/config"
	"github.com/grayops-hq/grayctl/internal/logger"
	"github.com/grayops-hq/grayctl/pkg/audit"
	"github.com/grayops-hq/grayctl/pkg/graylog"
)

const (
	cliName        = "grayctl"
	cliDescription = "grayctl - manage streams, users and permissions on a Graylog server"
)

// GlobalOptions holds options that are common to all commands.
type GlobalOptions struct {
	// Server is the management API base URL.
	Server string
	// Token is the API access token used for basic auth.
	Token string
	// Cache enables the local GET-response cache.
	Cache bool
	// Verbose raises the log level to debug.
	Verbose bool
}

// NewGrayctlCommand creates the root grayctl command with all subcommands.
func NewGrayctlCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `grayctl talks to the HTTP management API of a Graylog log-management
server. It authenticates every request with an API token and exposes the
stream, user and permission administration endpoints as subcommands.

Configuration is read from the environment (API_URL, API_TOKEN, ...) and an
optional .env file; flags override both.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", "",
		"management API base URL (default: http://127.0.0.1:9000/api/)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "",
		"API access token")
	cmd.PersistentFlags().BoolVar(&opts.Cache, "cache", false,
		"cache GET responses locally")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	cmd.AddCommand(
		NewStreamsCommand(opts),
		NewUsersCommand(opts),
	)

	return cmd
}

// runtime bundles the dependencies a command invocation needs.
type runtime struct {
	cfg    *config.Config
	log    *logger.ZapLogger
	client *graylog.Client
	fanout *audit.Fanout
	store  cache.Store
}

// newRuntime assembles the client and its collaborators from config and flags.
func newRuntime(ctx context.Context, opts *GlobalOptions) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.Server != "" {
		cfg.APIURL = opts.Server
	}
	if opts.Token != "" {
		cfg.APIToken = opts.Token
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if opts.Cache && cfg.CacheType == "none" {
		cfg.CacheType = "bbolt"
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("no API token configured (set API_TOKEN or pass --token)")
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := cache.NewStore(cfg.CacheType, cfg.CachePath, cache.Options{
		EntryTTL:        cfg.CacheTTL,
		CleanupInterval: cfg.CacheCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	client, err := graylog.New(cfg.APIToken, graylog.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
		Cache:   store,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build client: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, client: client, store: store}

	if cfg.AuditSinksFile != "" {
		sinkReg, err := audit.LoadRegistry(cfg.AuditSinksFile)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("load audit sinks registry: %w", err)
		}
		sinks, err := audit.BuildAll(ctx, audit.DefaultRegistry(), sinkReg.Enabled(), log)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("build audit sinks: %w", err)
		}
		rt.fanout = audit.NewFanout(sinks)
	}

	return rt, nil
}

// close releases runtime resources; it never fails the command.
func (r *runtime) close() {
	if r == nil {
		return
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.WarnObj("cache close failed", "error", err.Error())
		}
	}
	if r.log != nil {
		_ = r.log.Close()
	}
}

// recordAudit fans out an audit event when sinks are configured.
func (r *runtime) recordAudit(ctx context.Context, evt audit.Event) {
	if r == nil || r.fanout == nil || r.fanout.Size() == 0 {
		return
	}
	delivered, err := r.fanout.Send(ctx, evt)
	if err != nil {
		r.log.WarnObj("audit delivery incomplete", "audit_result", map[string]any{
			"action":    evt.Action,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}
}
