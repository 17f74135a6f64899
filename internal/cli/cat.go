// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code.hybscloud.com/partial"
	"code.hybscloud.com/partial/internal/planfile"
	"code.hybscloud.com/partial/internal/relay"
)

func (a *app) catCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat [file]",
		Short: "Copy a file (or stdin) to stdout through scripted reads and writes",
		Long: `cat copies its input to stdout through a scripted partial.Reader and
partial.Writer, retrying interruptions and would-block signals. The output is
always byte-identical to the input; the plans only change how it gets there.

Read plan precedence: --plan file, then --read-ops, then --preset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runCat,
	}
	f := cmd.Flags()
	f.String("read-ops", "", `read plan, e.g. "limited(3),wouldblock,unlimited"`)
	f.String("write-ops", "", "write plan, same syntax as --read-ops")
	f.String("plan", "", "YAML plan file with read and write plans")
	f.String("preset", "", fmt.Sprintf("named read plan: %v", partial.PresetNames()))
	f.Int("preset-n", 8, "steps of the preset")
	f.Int("max-no-progress", relay.DefaultMaxNoProgress, "consecutive no-progress calls tolerated")
	f.Int("buffer-size", relay.DefaultBufferSize, "relay buffer size")
	a.bind(cmd, "read-ops", "write-ops", "plan", "preset", "preset-n", "max-no-progress", "buffer-size")
	return cmd
}

// plans resolves the read and write plans from flags, env and config.
func (a *app) plans() (readOps, writeOps []partial.Op, err error) {
	if path := a.v.GetString("plan"); path != "" {
		pf, err := planfile.Load(path)
		if err != nil {
			return nil, nil, err
		}
		return pf.Read, pf.Write, nil
	}
	switch {
	case a.v.GetString("read-ops") != "":
		readOps, err = partial.ParseOps(a.v.GetString("read-ops"))
	case a.v.GetString("preset") != "":
		readOps, err = partial.Preset(a.v.GetString("preset"), a.v.GetInt("preset-n"))
	}
	if err != nil {
		return nil, nil, err
	}
	writeOps, err = partial.ParseOps(a.v.GetString("write-ops"))
	if err != nil {
		return nil, nil, err
	}
	return readOps, writeOps, nil
}

func (a *app) runCat(cmd *cobra.Command, args []string) error {
	log, err := a.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	readOps, writeOps, err := a.plans()
	if err != nil {
		return err
	}

	var src io.Reader = a.stdin
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		src = file
	}

	r := partial.NewReader(src, readOps, partial.WithLogger(log), partial.WithName("in"))
	w := partial.NewWriter(a.stdout, writeOps, partial.WithLogger(log), partial.WithName("out"))
	n, err := relay.Copy(cmd.Context(), w, r,
		relay.WithLogger(log),
		relay.WithMaxNoProgress(a.v.GetInt("max-no-progress")),
		relay.WithBufferSize(a.v.GetInt("buffer-size")),
	)
	log.Info("partialcat: copy done",
		zap.Int64("bytes", n),
		zap.Int("read_calls_scripted", r.Plan().Consumed()),
		zap.Int("write_calls_scripted", w.Plan().Consumed()),
		zap.Error(err),
	)
	return err
}
