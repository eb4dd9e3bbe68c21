// Package main provides the CLI entry point for qs, a tool that decodes
// application/x-www-form-urlencoded query strings to JSON and encodes JSON
// back to query strings.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.codecgarden.dev/qs/log"
	"go.codecgarden.dev/qs/profile"
	"go.codecgarden.dev/qs/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the qs root command, wiring logging, profiling, and the
// decode/encode subcommands.
func newRootCmd() *cobra.Command {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "qs",
		Short: "Decode and encode application/x-www-form-urlencoded query strings",
		Long: `qs decodes nested query strings into JSON and encodes JSON back into query
strings, exercising the bracket/dot key-path, list-format, and charset rules
of the underlying codec from the command line.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, logCfg)
		},
	}

	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")
	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, cfgErr := range []error{
		logCfg.RegisterCompletions(rootCmd),
		profileCfg.RegisterCompletions(rootCmd),
	} {
		if cfgErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", cfgErr)
		}
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		printVersion, err := cmd.Flags().GetBool("version")
		if err != nil {
			return err
		}

		if printVersion {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)

			return nil
		}

		return cmd.Help()
	}

	rootCmd.AddCommand(newDecodeCmd(profileCfg), newEncodeCmd(profileCfg))

	return rootCmd
}

func setupLogging(cmd *cobra.Command, cfg *log.Config) error {
	handler, err := cfg.NewHandler(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func newDecodeCmd(profileCfg *profile.Config) *cobra.Command {
	decodeCfg := NewDecodeConfig()

	cmd := &cobra.Command{
		Use:   "decode [flags] <query-string|->",
		Short: "Decode a query string to indented JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiler := profileCfg.NewProfiler()

			if err := profiler.Start(); err != nil {
				return fmt.Errorf("start profiling: %w", err)
			}

			defer func() {
				if err := profiler.Stop(); err != nil {
					slog.Error("stop profiling", "error", err)
				}
			}()

			return runDecode(cmd, decodeCfg, args[0])
		},
	}

	decodeCfg.RegisterFlags(cmd.Flags())

	if err := decodeCfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func newEncodeCmd(profileCfg *profile.Config) *cobra.Command {
	encodeCfg := NewEncodeConfig()

	cmd := &cobra.Command{
		Use:   "encode [flags] <json|->",
		Short: "Encode JSON into a query string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiler := profileCfg.NewProfiler()

			if err := profiler.Start(); err != nil {
				return fmt.Errorf("start profiling: %w", err)
			}

			defer func() {
				if err := profiler.Stop(); err != nil {
					slog.Error("stop profiling", "error", err)
				}
			}()

			return runEncode(cmd, encodeCfg, args[0])
		},
	}

	encodeCfg.RegisterFlags(cmd.Flags())

	if err := encodeCfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

// readArg reads arg as literal text, or from stdin when arg is "-".
func readArg(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return string(data), nil
}
