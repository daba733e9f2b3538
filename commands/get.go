package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

var GetCmd = Get{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
		config:      "",
		url:         "",
		sheet:       "",
		debug:       false,
	},

	file: time.Now().Format("campaigns - 2006-01-02T150405.tsv"),
}

type Get struct {
	command
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the campaign records and KPIs from a Google Sheets worksheet and stores them to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --sheet <sheet> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --sheet <sheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the campaign worksheet, with CPL, CPA and conversion rate columns, to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    campaign-sheets --debug get --credentials "credentials.json" \`)
	fmt.Println(`                                --url "https://docs.google.com/spreadsheets/d/1usWA6IeJ_XVh4y9aZ4gKEzAF2l8DdUreH8mIKCc-uwQ" \`)
	fmt.Println(`                                --sheet "RED Strimlit" \`)
	fmt.Println(`                                --file "campaigns.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to 'campaigns - <yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)
	ctx := context.Background()

	cfg, err := cmd.load(options)
	if err != nil {
		return err
	}

	if cmd.file == "" {
		return fmt.Errorf("--file is a required option")
	}

	g, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	table, err := g.ReadAll(ctx)
	if err != nil {
		return err
	}

	if err := save(cmd.file, func(w io.Writer) error { return campaign.MakeTSV(w, table) }); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	infof("Retrieved %v campaign records to file %s", len(table.Records), cmd.file)

	return nil
}

// save writes to a temporary file and then renames it to the final file, so that an incomplete
// file never replaces an existing one.
func save(file string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(os.TempDir(), "campaigns")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
