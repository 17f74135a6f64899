// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"code.hybscloud.com/partial"
	"code.hybscloud.com/partial/gen"
	"code.hybscloud.com/partial/internal/planfile"
)

// seedStream decorrelates the two PCG words derived from one seed.
const seedStream = 0x9e3779b97f4a7c15

func (a *app) genCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random plan file",
		Long: `gen prints a YAML plan file with a random read plan and, with --write,
a random write plan. The same --seed always yields the same file.`,
		Args: cobra.NoArgs,
		RunE: a.runGen,
	}
	f := cmd.Flags()
	f.Uint64("seed", 1, "generator seed")
	f.Int("size", gen.DefaultMaxLen, "size hint bounding plan length")
	f.Int("max-len", gen.DefaultMaxLen, "maximum plan length")
	f.Int("max-limit", gen.DefaultMaxLimit, "maximum Limited cap")
	f.Bool("would-block", true, "include wouldblock ops")
	f.Bool("interrupted", true, "include interrupted ops")
	f.Bool("write", false, "also generate a write plan")
	a.bind(cmd, "seed", "size", "max-len", "max-limit", "would-block", "interrupted", "write")
	return cmd
}

// genConfig builds the generator bounds from flags, env and config.
func (a *app) genConfig() gen.Config {
	cfg := gen.Config{
		MaxLen:     a.v.GetInt("max-len"),
		MaxLimit:   a.v.GetInt("max-limit"),
		WouldBlock: a.v.GetBool("would-block"),
	}
	if a.v.GetBool("interrupted") {
		cfg.Errors = []error{partial.ErrInterrupted}
	}
	return cfg
}

func (a *app) runGen(cmd *cobra.Command, _ []string) error {
	seed := a.v.GetUint64("seed")
	cfg := a.genConfig()
	rng := rand.New(rand.NewPCG(seed, seed^seedStream))
	pf := &planfile.File{Seed: seed, Read: cfg.Generate(rng, a.v.GetInt("size"))}
	if a.v.GetBool("write") {
		pf.Write = cfg.Generate(rng, a.v.GetInt("size"))
	}
	return planfile.Encode(cmd.OutOrStdout(), pf)
}

func (a *app) shrinkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shrink",
		Short: "List the shrink candidates of a plan",
		Long: `shrink prints every candidate gen.Shrink yields for --ops, one per line,
most aggressive first. Caps are raised no further than --max-limit.`,
		Args: cobra.NoArgs,
		RunE: a.runShrink,
	}
	f := cmd.Flags()
	f.String("ops", "", "plan to shrink")
	f.Int("max-limit", gen.DefaultMaxLimit, "maximum Limited cap")
	a.bind(cmd, "ops", "max-limit")
	return cmd
}

func (a *app) runShrink(cmd *cobra.Command, _ []string) error {
	if a.v.GetString("ops") == "" {
		return errors.New("shrink: --ops is required")
	}
	ops, err := partial.ParseOps(a.v.GetString("ops"))
	if err != nil {
		return err
	}
	cfg := gen.Default()
	cfg.MaxLimit = a.v.GetInt("max-limit")
	out := cmd.OutOrStdout()
	for cand := range cfg.Shrink(ops) {
		if _, err := fmt.Fprintf(out, "[%s]\n", partial.FormatOps(cand)); err != nil {
			return err
		}
	}
	return nil
}
