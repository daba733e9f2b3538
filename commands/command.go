package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/campaign-reporting/campaign-sheets/config"
	"github.com/campaign-reporting/campaign-sheets/gateway"
	"github.com/campaign-reporting/campaign-sheets/logging"
)

const APP = "campaign-sheets"

type Options struct {
	Debug bool
}

// command holds the options common to every worksheet command. Empty url and sheet values fall
// back to the configuration file and environment.
type command struct {
	credentials string
	config      string
	url         string
	sheet       string
	debug       bool
}

func (cmd *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the service account 'credentials.json' file")
	flagset.StringVar(&cmd.config, "config", cmd.config, "Optional YAML configuration file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL. Defaults to the configured URL")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet name. Defaults to the configured worksheet")

	return flagset
}

// load returns the configuration with any command line overrides applied.
func (cmd *command) load(options *Options) (config.Config, error) {
	cmd.debug = options.Debug

	cfg, err := config.Load(cmd.config)
	if err != nil {
		return config.Config{}, err
	}

	if strings.TrimSpace(cmd.url) != "" {
		cfg.Sheet.URL = cmd.url
	}

	if strings.TrimSpace(cmd.sheet) != "" {
		cfg.Sheet.Name = cmd.sheet
	}

	logging.Configure(cfg.Log.ZapLevel(), cfg.Log.Encoding())
	if cmd.debug {
		logging.SetDebug(true)
	}

	return cfg, nil
}

// open authorises the service account in the credentials file and opens the configured worksheet.
func (cmd *command) open(ctx context.Context, cfg config.Config) (*gateway.Gateway, error) {
	if strings.TrimSpace(cmd.credentials) == "" {
		return nil, fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cfg.Sheet.URL) == "" {
		return nil, fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cfg.Sheet.Name) == "" {
		return nil, fmt.Errorf("--sheet is a required option")
	}

	credentials, err := os.ReadFile(cmd.credentials)
	if err != nil {
		return nil, err
	}

	session, err := gateway.Authorise(ctx, credentials, cfg.Sheet.Scopes...)
	if err != nil {
		return nil, err
	}

	debugf("Spreadsheet - URL:%s  sheet:%s  account:%s", cfg.Sheet.URL, cfg.Sheet.Name, session.Account)

	return gateway.Open(ctx, session, gateway.Config{
		URL:   cfg.Sheet.URL,
		Sheet: cfg.Sheet.Name,
		TTL:   cfg.Sheet.TTL,
	})
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	logging.Debugf(format, args...)
}

func infof(format string, args ...any) {
	logging.Infof(format, args...)
}

func warnf(format string, args ...any) {
	logging.Warnf(format, args...)
}
