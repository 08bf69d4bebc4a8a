package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"rubyfront/internal/config"
)

var log = commonlog.GetLogger("rubyfront.cli")

// errReported marks failures whose diagnostics were already printed.
var errReported = stderrors.New("failed")

type options struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rubyfront",
		Short: "Ruby surface-syntax parser",
		Long: `rubyfront parses Ruby expressions into syntax trees.

Commands:
  parse    - parse a file and print its tree
  tokens   - dump the highlighting tokens of a file
  repl     - interactive parser
  version  - print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: .rubyfront.toml if present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newParseCmd(opts), newTokensCmd(), newReplCmd(opts), newVersionCmd())
	return root
}

func (o *options) setup() error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.Load(o.cfgFile)
	} else {
		o.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	if o.noColor || !o.cfg.Color {
		color.NoColor = true
	}

	verbosity := o.cfg.LogVerbosity
	if o.verbose {
		verbosity = 2
	}
	var logFile *string
	if o.cfg.LogFile != "" {
		logFile = &o.cfg.LogFile
	}
	commonlog.Configure(verbosity, logFile)

	if path := o.cfg.Path(); path != "" {
		log.Debugf("using config %s", path)
	}
	return nil
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !stderrors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	}
	return err
}
