package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"text/tabwriter"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/intervalmemo/align"
	"github.com/grailbio/intervalmemo/encoding/fasta"
	"github.com/grailbio/intervalmemo/encoding/fastq"
	"github.com/grailbio/intervalmemo/interval"
	"github.com/grailbio/intervalmemo/intervaltree"
	"github.com/grailbio/intervalmemo/memo"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

type loadOpts struct {
	bedPaths  []string
	bed       interval.NewBEDOpts
	targSeqID string
}

// loadIndex builds an index from every BED file in opts.
func loadIndex(opts loadOpts) (*memo.Index, error) {
	x := memo.New(memo.Opts{})
	for _, path := range opts.bedPaths {
		if _, err := x.LoadBEDFromPath(path, opts.bed, opts.targSeqID); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}
	return x, nil
}

func query(w io.Writer, opts loadOpts, all bool, regions []string) error {
	x, err := loadIndex(opts)
	if err != nil {
		return err
	}
	mode := intervaltree.QueryFirst
	if all {
		mode = intervaltree.QueryAll
	}
	for _, region := range regions {
		e, err := interval.ParseRegionString(region)
		if err != nil {
			return err
		}
		hits := x.Lookup(e.RefName, e.Start, e.End, mode)
		if len(hits) == 0 {
			fmt.Fprintf(w, "%s\tnot found\n", region)
			continue
		}
		fmt.Fprintf(w, "%s\tfound\t%d\n", region, len(hits))
		if all {
			for _, h := range hits {
				fmt.Fprintf(w, "\t%s\t%s\n", h.Region, h.Payload.TargSeqID)
			}
		}
	}
	return nil
}

func export(stdout io.Writer, opts loadOpts, outPath string) (err error) {
	x, err := loadIndex(opts)
	if err != nil {
		return err
	}
	if outPath == "" {
		return x.WriteTSV(stdout)
	}
	ctx := vcontext.Background()
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = x.WriteTSV(out.Writer(ctx)); err != nil {
		return err
	}
	sum, err := x.Checksum()
	if err != nil {
		return err
	}
	log.Printf("export: wrote %d interval(s) to %s, checksum %016x", x.Len(), outPath, sum)
	return nil
}

type statsOpts struct {
	load   loadOpts
	random int
	seed   int64
	maxPos int
}

func stats(w io.Writer, opts statsOpts) error {
	x, err := loadIndex(opts.load)
	if err != nil {
		return err
	}
	if opts.random > 0 {
		if opts.maxPos < 0 || opts.maxPos >= interval.PosTypeMax {
			return fmt.Errorf("stats: -max-pos %d out of range", opts.maxPos)
		}
		r := rand.New(rand.NewSource(opts.seed))
		for i := 0; i < opts.random; i++ {
			start := r.Intn(opts.maxPos + 1)
			end := start + r.Intn(opts.maxPos+1-start)
			if _, err := x.Record("random", interval.PosType(start), interval.PosType(end), memo.Payload{RefSeqID: "random"}); err != nil {
				return err
			}
		}
	}
	if err := x.Check(); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "REF\tINTERVALS\tHEIGHT\tROT_L\tROT_R\tROT_LR\tROT_RL")
	for _, s := range x.Summary() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n", s.RefName, s.Len, s.Height,
			s.Rotations.Left, s.Rotations.Right, s.Rotations.LeftRight, s.Rotations.RightLeft)
	}
	return tw.Flush()
}

type target struct {
	name, seq string
}

// readTargets loads target sequences from a FASTQ file (.fq or .fastq,
// optionally gzipped) or otherwise from FASTA.
func readTargets(path string) (targets []target, err error) {
	base := strings.TrimSuffix(path, ".gz")
	if !strings.HasSuffix(base, ".fq") && !strings.HasSuffix(base, ".fastq") {
		fa, err := fasta.NewFromPath(path)
		if err != nil {
			return nil, err
		}
		for _, name := range fa.SeqNames() {
			n, err := fa.Len(name)
			if err != nil {
				return nil, err
			}
			var seq string
			if n > 0 {
				if seq, err = fa.Get(name, 0, n); err != nil {
					return nil, err
				}
			}
			targets = append(targets, target{name: name, seq: seq})
		}
		return targets, nil
	}

	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	r := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if r, err = gzip.NewReader(r); err != nil {
			return nil, err
		}
	}
	sc := fastq.NewScanner(r)
	var read fastq.Read
	for sc.Scan(&read) {
		targets = append(targets, target{name: read.Name(), seq: strings.ToUpper(read.Seq)})
	}
	if err = sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return targets, nil
}

type alignOpts struct {
	load        loadOpts
	refPath     string
	targetsPath string
	region      string
	window      int
	passes      int
}

func alignTargets(w io.Writer, opts alignOpts) error {
	region, err := interval.ParseRegionString(opts.region)
	if err != nil {
		return err
	}
	ref, err := fasta.NewFromPath(opts.refPath)
	if err != nil {
		return err
	}
	targets, err := readTargets(opts.targetsPath)
	if err != nil {
		return err
	}
	x, err := loadIndex(opts.load)
	if err != nil {
		return err
	}
	a := &align.Aligner{Ref: ref, Index: x, Window: opts.window}
	passes := opts.passes
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		for _, tg := range targets {
			results, err := a.AlignTarget(tg.name, tg.seq, region)
			if err != nil {
				return errors.Wrapf(err, "pass %d", pass)
			}
			for _, r := range results {
				cached := "computed"
				if r.Cached {
					cached = "cached"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", pass, tg.name, r.Window, r.Distance, cached)
			}
		}
	}
	if log.At(log.Debug) {
		for _, s := range x.Summary() {
			log.Debug.Printf("align: %s: %d interval(s), height %d", s.RefName, s.Len, s.Height)
		}
	}
	return nil
}
