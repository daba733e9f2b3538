package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

var ChannelsCmd = Channels{
	command: command{
		credentials: DEFAULT_CREDENTIALS,
	},
}

type Channels struct {
	command
}

func (cmd *Channels) Name() string {
	return "channels"
}

func (cmd *Channels) Description() string {
	return "Lists the distinct marketing channels in the campaign worksheet"
}

func (cmd *Channels) Usage() string {
	return "--credentials <file> --url <url> --sheet <sheet>"
}

func (cmd *Channels) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] channels [options]\n", APP)
	fmt.Println()
	fmt.Println("  Lists the channel choices offered by the dashboard 'add record' form")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Channels) FlagSet() *flag.FlagSet {
	return cmd.flagset("channels")
}

func (cmd *Channels) Execute(args ...any) error {
	options := args[0].(*Options)
	ctx := context.Background()

	cfg, err := cmd.load(options)
	if err != nil {
		return err
	}

	g, err := cmd.open(ctx, cfg)
	if err != nil {
		return err
	}

	values, err := g.ColumnValues(ctx, campaign.Channel)
	if err != nil {
		return err
	}

	for _, channel := range campaign.ChannelOptions(values) {
		if channel != campaign.AddNew {
			fmt.Println(channel)
		}
	}

	return nil
}
