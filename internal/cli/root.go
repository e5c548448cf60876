// Package cli provides the command-line interface for one-shot Tardis
// instrument queries.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

var (
	apiKey         string
	baseURL        string
	timeoutSeconds int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tardis",
	Short: "Query instrument metadata from the Tardis API",
	Long: `tardis fetches instrument metadata from the Tardis HTTP API and prints
the decoded records as JSON.

The API key is taken from --api-key or the TARDIS_API_KEY environment
variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(tardis.UserAgent)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Tardis API key (defaults to TARDIS_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the API base URL")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 30, "Request timeout in seconds")
	rootCmd.AddCommand(versionCmd)
}

// newClient builds a tardis client from the global flags, resolving the API
// key from the environment when the flag is unset.
func newClient() (*tardis.Client, error) {
	key := apiKey
	if key == "" {
		key = os.Getenv("TARDIS_API_KEY")
	}

	opts := []tardis.Option{tardis.WithTimeout(time.Duration(timeoutSeconds) * time.Second)}
	if baseURL != "" {
		opts = append(opts, tardis.WithBaseURL(baseURL))
	}
	return tardis.NewClient(key, opts...)
}

// Execute runs the root command and handles errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
