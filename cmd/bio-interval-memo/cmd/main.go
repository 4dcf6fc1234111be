package cmd

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/intervalmemo/interval"
	"v.io/x/lib/cmdline"
)

// indexFlags are shared by every subcommand that preloads the index from BED.
type indexFlags struct {
	bedPaths *string
	oneBased *bool
	targ     *string
}

func newIndexFlags(cmd *cmdline.Command) indexFlags {
	return indexFlags{
		bedPaths: cmd.Flags.String("bed", "", "Comma-separated list of BED files whose intervals are recorded in the index before the command runs"),
		oneBased: cmd.Flags.Bool("one-based", false, "Interpret BED intervals as one-based [start, end] instead of zero-based [start, end)"),
		targ:     cmd.Flags.String("target", "", "Target sequence name recorded with every BED interval"),
	}
}

func (f indexFlags) opts() loadOpts {
	opts := loadOpts{
		bed:       interval.NewBEDOpts{OneBasedInput: *f.oneBased},
		targSeqID: *f.targ,
	}
	if *f.bedPaths != "" {
		opts.bedPaths = strings.Split(*f.bedPaths, ",")
	}
	return opts
}

func newCmdQuery() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "query",
		Short:    "Report whether regions overlap recorded intervals",
		ArgsName: "region...",
	}
	index := newIndexFlags(cmd)
	all := cmd.Flags.Bool("all", false, "List every overlapping interval instead of stopping at the first")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return fmt.Errorf("query takes at least one region, but got none")
		}
		return query(env.Stdout, index.opts(), *all, argv)
	})
	return cmd
}

func newCmdExport() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "export",
		Short: "Write the index, with tree metadata, as TSV",
	}
	index := newIndexFlags(cmd)
	out := cmd.Flags.String("out", "", "Output path.  Standard output if empty")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("export takes no arguments, but got %v", argv)
		}
		return export(env.Stdout, index.opts(), *out)
	})
	return cmd
}

func newCmdStats() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "stats",
		Short: "Audit the index and print per-contig tree statistics",
	}
	index := newIndexFlags(cmd)
	opts := statsOpts{}
	cmd.Flags.IntVar(&opts.random, "random", 0, "Also record this many random intervals on contig \"random\"")
	cmd.Flags.Int64Var(&opts.seed, "seed", 0, "Seed for -random")
	cmd.Flags.IntVar(&opts.maxPos, "max-pos", 1000, "Largest coordinate generated by -random")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return fmt.Errorf("stats takes no arguments, but got %v", argv)
		}
		opts.load = index.opts()
		return stats(env.Stdout, opts)
	})
	return cmd
}

func newCmdAlign() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "align",
		Short:    "Align target sequences against a reference region, memoizing per window",
		ArgsName: "targets.fa region",
	}
	index := newIndexFlags(cmd)
	opts := alignOpts{}
	cmd.Flags.StringVar(&opts.refPath, "ref", "", "Reference FASTA (optionally gzipped)")
	cmd.Flags.IntVar(&opts.window, "window", 64, "Window width in bases")
	cmd.Flags.IntVar(&opts.passes, "passes", 1, "Align every target this many times; passes after the first are served from the index")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("align takes targets.fa and a region, but got %v", argv)
		}
		if opts.refPath == "" {
			return fmt.Errorf("align requires -ref")
		}
		opts.load = index.opts()
		opts.targetsPath = argv[0]
		opts.region = argv[1]
		return alignTargets(env.Stdout, opts)
	})
	return cmd
}

// Run is the entry point of bio-interval-memo.
func Run() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-interval-memo",
			Short:    "Tools for the interval memoization index",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdQuery(),
				newCmdExport(),
				newCmdStats(),
				newCmdAlign(),
			},
		})
}
