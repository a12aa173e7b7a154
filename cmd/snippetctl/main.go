package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	cmd := NewRootCmd(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:           "snippetctl",
		Short:         "CLI client for the AI snippet service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Debug().Str("api", apiURL).Msg("using service")
		},
	}
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api", "a", envOr("SNIPPET_SERVICE_URL", "http://localhost:3000"), "Snippet service base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	clientFor := func() *client { return newClient(apiURL, timeout) }
	emit := func(data []byte) error {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}

	// create
	var text string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a snippet (text from --text or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("text") {
				raw, err := io.ReadAll(in)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(raw), "\n")
			}
			data, err := clientFor().create(cmd.Context(), text)
			if err != nil {
				return err
			}
			return emit(data)
		},
	}
	createCmd.Flags().StringVarP(&text, "text", "t", "", "Snippet text (reads stdin when omitted)")
	rootCmd.AddCommand(createCmd)

	// list
	var take, skip int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var takeArg, skipArg *int
			if cmd.Flags().Changed("take") {
				takeArg = &take
			}
			if cmd.Flags().Changed("skip") {
				skipArg = &skip
			}
			data, err := clientFor().list(cmd.Context(), takeArg, skipArg)
			if err != nil {
				return err
			}
			return emit(data)
		},
	}
	listCmd.Flags().IntVar(&take, "take", 0, "Page size (1-50; server default 10 when omitted)")
	listCmd.Flags().IntVar(&skip, "skip", 0, "Number of snippets to skip")
	rootCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get a snippet by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := clientFor().get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(data)
		},
	}
	rootCmd.AddCommand(getCmd)

	// health
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Show service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := clientFor().health(cmd.Context())
			if err != nil {
				return err
			}
			return emit(data)
		},
	}
	rootCmd.AddCommand(healthCmd)

	rootCmd.SetContext(context.Background())
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
