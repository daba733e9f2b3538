package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/campaign-reporting/campaign-sheets/gateway"
)

var AddCmd = Add{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
	},

	file:   "",
	dryrun: false,
}

type Add struct {
	command
	file   string
	dryrun bool
}

func (cmd *Add) Name() string {
	return "add"
}

func (cmd *Add) Description() string {
	return "Appends the campaign records in a TSV file to a Google Sheets worksheet"
}

func (cmd *Add) Usage() string {
	return "--credentials <file> --url <url> --sheet <sheet> --file <file>"
}

func (cmd *Add) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] add [options] --url <URL> --sheet <sheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Appends the records in a TSV file to the end of the campaign worksheet. The TSV header must")
	fmt.Println("  match the worksheet header; KPI columns from 'get' are ignored.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    campaign-sheets --debug add --credentials "credentials.json" \`)
	fmt.Println(`                                --url "https://docs.google.com/spreadsheets/d/1usWA6IeJ_XVh4y9aZ4gKEzAF2l8DdUreH8mIKCc-uwQ" \`)
	fmt.Println(`                                --sheet "RED Strimlit" \`)
	fmt.Println(`                                --file "new-campaigns.tsv"`)
	fmt.Println()
}

func (cmd *Add) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("add")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file with the records to append")
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Validates the TSV file without appending any records")

	return flagset
}

func (cmd *Add) Execute(args ...any) error {
	options := args[0].(*Options)
	ctx := context.Background()

	cfg, err := cmd.load(options)
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	rows, err := tsvToRows(f)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%w)", err)
	}

	if cmd.dryrun {
		infof("TSV file %v has %v records (dry run)", cmd.file, len(rows))
		return nil
	}

	g, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	for i, row := range rows {
		if err := g.Append(ctx, row); err != nil {
			var schema *gateway.SchemaError
			if errors.As(err, &schema) && i > 0 {
				warnf("%v of %v records appended before the worksheet header mismatch", i, len(rows))
			}

			return err
		}

		debugf("appended %v %v", row["Project"], row["Channel"])
	}

	infof("Appended %v records from TSV file %v to Google Sheets %v", len(rows), cmd.file, g.Sheet())

	return nil
}
