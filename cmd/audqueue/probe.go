// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ik5/audqueue"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe FILE...",
		Short: "Show the format of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.probe(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) probe(w io.Writer, files []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFORMAT\tCHANNELS\tRATE\tLENGTH\tSIZE")

	failed := 0
	for _, path := range files {
		line, err := probeFile(path)
		if err != nil {
			a.log.Error("cannot probe", "file", path, "error", err)
			failed++
			continue
		}
		fmt.Fprintln(tw, line)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be probed", failed, len(files))
	}
	return nil
}

func probeFile(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	src, err := audqueue.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	length := "unknown"
	if d, ok := src.TotalDuration(); ok {
		length = d.Round(time.Millisecond).String()
	}

	return fmt.Sprintf("%s\t%s\t%d\t%d Hz\t%s\t%s",
		path, audqueue.FormatOf(path), src.Channels(), src.SampleRate(), length,
		humanize.Bytes(uint64(st.Size()))), nil //nolint:gosec // file sizes are never negative
}
