// SPDX-License-Identifier: EPL-2.0

// Command audqueue plays, renders and inspects audio files through a
// dynamically extensible sample queue.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ik5/audqueue"
	"github.com/ik5/audqueue/audio"
	"github.com/ik5/audqueue/internal/config"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "audqueue",
		Short:         "Queue audio files into one gapless stream",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/audqueue/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newPlayCmd(a), newRenderCmd(a), newProbeCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	paths := config.Paths()
	if a.cfgFile != "" {
		paths = append(paths, a.cfgFile)
	}

	cfg, err := config.Load(paths, nil)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	a.log = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:           level,
		Prefix:          "audqueue",
		ReportTimestamp: true,
	})

	a.log.Debug("config loaded", "paths", paths, "backend", cfg.Output.Backend)
	return nil
}

func (a *app) format() audqueue.Format {
	return audqueue.Format{
		Channels:   a.cfg.Output.Channels,
		SampleRate: a.cfg.Output.SampleRate,
	}
}

// openPrepared decodes path and shapes it for a queue of S.
func openPrepared[S audio.Sample](a *app, path string) (audio.Source[S], error) {
	src, err := audqueue.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return audqueue.Prepare[S](src, a.format()), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
