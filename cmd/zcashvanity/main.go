// Command zcashvanity searches for Zcash Sprout shielded addresses
// ("zc...") matching one or more user-supplied base58 prefixes, printing
// each confirmed match's address, spending key, and viewing key to stdout.
//
// Usage mirrors the original tool this is ported from:
//
//	zcashvanity [-d platform:device]... [-f prefixes.txt] [-i] [-c] [pattern]
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Asylian21/zcashvanity/internal/pattern"
	"github.com/Asylian21/zcashvanity/internal/search"
)

func main() {
	var (
		deviceSpecs []string
		file        string
		insensitive bool
		cont        bool
	)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "zcashvanity [pattern]",
		Short: "Generates Zcash shielded addresses (\"z-addrs\") that match given prefixes.",
		Long: `Generates Zcash shielded addresses ("z-addrs") that match given prefixes.

Matches are printed to stdout: each z-addr, its spending key, and its
viewing key, one per line. Import the spending key into a Zcash client
with "zcash-cli z_importkey <key> <rescan>".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var positional string
			if len(args) == 1 {
				positional = args[0]
			}
			return run(&logger, deviceSpecs, file, insensitive, cont, positional)
		},
	}

	root.Flags().StringArrayVarP(&deviceSpecs, "device", "d", nil,
		"OpenCL device string: <platform>:<device>. Specify multiple times for multiple devices.\nIf not specified, uses all available platforms and devices.")
	root.Flags().StringVarP(&file, "file", "f", "",
		"Load prefixes from file, one per line. Can be combined with --insensitive.")
	root.Flags().BoolVarP(&insensitive, "insensitive", "i", false, "Case-insensitive prefix search.")
	root.Flags().BoolVarP(&cont, "continue", "c", false, "Continue searching after a match is found.")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *zerolog.Logger, deviceSpecs []string, file string, insensitive, cont bool, positional string) error {
	patterns, err := loadPatterns(file, positional)
	if err != nil {
		return err
	}
	if insensitive {
		var expanded []pattern.Pattern
		for _, p := range patterns {
			expanded = append(expanded, p.CaseInsensitive()...)
		}
		patterns = expanded
	}

	rs := search.NewRangeSet(patterns)

	devices, err := buildDevices(logger, deviceSpecs, rs)
	if err != nil {
		logger.Fatal().Err(err).Msg("device setup failed")
	}

	coordinator := &search.Coordinator{
		Devices:     devices,
		Ranges:      rs,
		SingleMatch: !cont,
		Status:      os.Stderr,
	}

	coordinator.Run(func(m search.Match) {
		fmt.Println(m.Address.String())
		fmt.Println(m.SpendingKey.String())
		fmt.Println(m.ViewingKey.String())
	})

	return nil
}

// loadPatterns reads prefixes from file if given (one per line,
// whitespace-trimmed, blank lines skipped), otherwise compiles the single
// positional prefix. A file argument takes precedence over the positional
// prefix when both are given.
func loadPatterns(file, positional string) ([]pattern.Pattern, error) {
	var lines []string
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("zcashvanity: open prefix file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("zcashvanity: read prefix file: %w", err)
		}
	} else {
		lines = []string{positional}
	}

	patterns := make([]pattern.Pattern, 0, len(lines))
	for _, line := range lines {
		p, err := pattern.New(line)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
