package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

// instrumentsCmd lists every instrument an exchange reports.
var instrumentsCmd = &cobra.Command{
	Use:   "instruments <exchange>",
	Short: "List all instruments for an exchange",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstruments,
}

// instrumentCmd fetches a single instrument definition.
var instrumentCmd = &cobra.Command{
	Use:   "instrument <exchange> <symbol>",
	Short: "Fetch one instrument for an exchange",
	Args:  cobra.ExactArgs(2),
	RunE:  runInstrument,
}

// exchangesCmd lists the supported exchange identifiers.
var exchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "List supported exchange identifiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(tardis.Exchanges())
	},
}

func init() {
	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(instrumentCmd)
	rootCmd.AddCommand(exchangesCmd)
}

func runInstruments(cmd *cobra.Command, args []string) error {
	exchange, err := tardis.ParseExchange(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Instruments(cmd.Context(), exchange)
	if err != nil {
		return err
	}
	return printJSON(resp.Results)
}

func runInstrument(cmd *cobra.Command, args []string) error {
	exchange, err := tardis.ParseExchange(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := client.Instrument(cmd.Context(), exchange, args[1])
	if err != nil {
		return err
	}
	return printJSON(resp.Results)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
