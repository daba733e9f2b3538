package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campaign-reporting/campaign-sheets/config"
	"github.com/campaign-reporting/campaign-sheets/gateway"
	"github.com/campaign-reporting/campaign-sheets/logging"
	"github.com/campaign-reporting/campaign-sheets/web"
)

var ServeCmd = Serve{
	command: command{
		config: "",
	},

	port: 0,
}

// Serve runs the reporting dashboard. Credentials are uploaded by each browser session and are
// never read from disk.
type Serve struct {
	command
	address string
	port    uint
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the marketing reporting dashboard"
}

func (cmd *Serve) Usage() string {
	return "[--config <file>] [--url <url>] [--sheet <sheet>] [--port <port>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Serves the marketing reporting dashboard. Each browser session uploads a service account key")
	fmt.Println("  to read the campaign worksheet and add records.")
	fmt.Println()

	cmd.FlagSet().VisitAll(func(f *flag.Flag) {
		if f.Name != "credentials" {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		}
	})

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    campaign-sheets --debug serve --config "campaign-sheets.yaml" --port 8080`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.StringVar(&cmd.address, "address", cmd.address, "Dashboard bind address. Defaults to all interfaces")
	flagset.UintVar(&cmd.port, "port", cmd.port, "Dashboard port. Defaults to the configured port (8080)")

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	options := args[0].(*Options)

	cfg, err := cmd.load(options)
	if err != nil {
		return err
	}

	if _, err := gateway.SpreadsheetID(cfg.Sheet.URL); err != nil {
		return err
	}

	if cmd.address != "" {
		cfg.HTTP.Address = cmd.address
	}

	if cmd.port > 0 {
		if cmd.port > 65535 {
			return fmt.Errorf("invalid --port %v", cmd.port)
		}

		cfg.HTTP.Port = uint16(cmd.port)
	}

	defer logging.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cmd.run(ctx, cfg)
}

func (cmd *Serve) run(ctx context.Context, cfg config.Config) error {
	logger := logging.Logger()
	dashboard := web.NewServer(connector(cfg), logger, cfg.HTTP.SessionTimeout)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           dashboard.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		infof("%s %s listening on %s", APP, VERSION, srv.Addr)
		logger.Info("worksheet", zap.String("url", cfg.Sheet.URL), zap.String("sheet", cfg.Sheet.Name), zap.Duration("ttl", cfg.Sheet.TTL))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
		infof("shutting down")
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdown); err != nil {
		warnf("dashboard shutdown (%v)", err)
		return err
	}

	return nil
}

// connector opens the configured worksheet for an uploaded service account key.
func connector(cfg config.Config) web.Connector {
	return func(ctx context.Context, credentials []byte) (web.Store, error) {
		session, err := gateway.Authorise(ctx, credentials, cfg.Sheet.Scopes...)
		if err != nil {
			return nil, err
		}

		g, err := gateway.Open(ctx, session, gateway.Config{
			URL:   cfg.Sheet.URL,
			Sheet: cfg.Sheet.Name,
			TTL:   cfg.Sheet.TTL,
		})
		if err != nil {
			return nil, err
		}

		debugf("session opened for %v", session.Account)

		return g, nil
	}
}
