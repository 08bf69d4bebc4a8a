package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rubyfront/internal/errors"
	"rubyfront/internal/parser"
)

func newParseCmd(opts *options) *cobra.Command {
	var trailing bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a Ruby file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := readSource(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			if path == "-" {
				path = "(stdin)"
			}
			show := trailing || opts.cfg.ShowTrailing
			return parseAndPrint(cmd.OutOrStdout(), path, source, show, opts.cfg.ParserOptions()...)
		},
	}
	cmd.Flags().BoolVar(&trailing, "trailing", false, "print the data after __END__")
	return cmd
}

func readSource(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func parseAndPrint(out io.Writer, path, source string, showTrailing bool, opts ...parser.Option) error {
	startTime := time.Now()
	reporter := errors.NewReporter(path, source)

	res, err := parser.Parse(path, source, opts...)
	duration := formatDuration(time.Since(startTime))
	if err != nil {
		d, ok := errors.FromError(err)
		if !ok {
			return err
		}
		fmt.Fprint(out, reporter.Format(d))
		fmt.Fprintln(out, color.RedString("Parsing failed after %s", duration))
		return errReported
	}

	fmt.Fprintln(out, res.Program.String())
	if showTrailing && res.Trailing != nil {
		fmt.Fprintf(out, "__END__ %q\n", *res.Trailing)
	}
	if warnings := errors.CheckMagic(path, res.Magic); len(warnings) > 0 {
		fmt.Fprint(out, reporter.FormatAll(warnings))
	}
	fmt.Fprintln(out, color.GreenString("Successfully parsed %s in %s", path, duration))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
