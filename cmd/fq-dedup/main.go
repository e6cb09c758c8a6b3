package main

import (
	"log"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/capturec/fqdedup/dedup"
)

func newCmdParse() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "parse",
		Short: `Parse FASTQ file(s) into an easy to deduplicate format.
Hashes every read name and every fragment's concatenated sequence and writes
the identity->sequence hash mapping as a flat JSON artifact. The inputs are
only read. Use the identify subcommand to turn one or more such mappings into
a duplicate set.`,
		ArgsName: "fastq...",
	}
	output := cmd.Flags.String("output", "out.json", "Output path for the hash mapping artifact.")
	buffer := cmd.Flags.Int("buffer", dedup.DefaultOpts.BatchSize, "Number of reads per pipeline batch.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 1 {
			return errors.Errorf("parse takes one or more FASTQ paths, but got %v", argv)
		}
		opts := dedup.DefaultOpts
		opts.BatchSize = *buffer
		return dedup.Parse(vcontext.Background(), argv, *output, opts)
	})
	return cmd
}

func newCmdIdentify() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "identify",
		Short: `Identify fragments with duplicated sequences.
Merges the hash mapping artifacts produced by parse and writes the set of
duplicate read identity hashes as a JSON artifact. The result is identical for
any merge order of the shards.`,
		ArgsName: "mapping.json...",
	}
	output := cmd.Flags.String("output", "duplicates.json", "Output path for the duplicate-set artifact.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 1 {
			return errors.Errorf("identify takes one or more mapping paths, but got %v", argv)
		}
		return dedup.Identify(vcontext.Background(), argv, *output)
	})
	return cmd
}

func newCmdRemove() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "remove",
		Short: `Remove fragments with duplicated sequences from FASTQ file(s).
Takes the same FASTQ files, in the same order, as the parse run, drops every
fragment whose identity hash appears in the duplicate-set artifact, and writes
one deduplicated output per input plus a statistics record.`,
		ArgsName: "fastq...",
	}
	var (
		duplicates = cmd.Flags.String("duplicates", "duplicates.json", "Duplicate-set artifact produced by identify.")
		buffer     = cmd.Flags.Int("buffer", dedup.DefaultOpts.BatchSize, "Number of reads per pipeline batch.")
		prefix     = cmd.Flags.String("output-prefix", "deduplicated", "Prefix for the output FASTQ files (<prefix>_<n>.fastq).")
		gz         = cmd.Flags.Bool("gzip", false, "Gzip-compress the output FASTQ files.")
		level      = cmd.Flags.Int("compression-level", dedup.DefaultOpts.CompressionLevel, "Gzip compression level (1-9).")
		sample     = cmd.Flags.String("sample-name", "", "Sample name recorded in the statistics file.")
		stats      = cmd.Flags.String("stats-prefix", "", "Prefix for the statistics file (<prefix>.deduplication.csv).")
	)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) < 1 {
			return errors.Errorf("remove takes one or more FASTQ paths, but got %v", argv)
		}
		opts := dedup.DefaultOpts
		opts.BatchSize = *buffer
		opts.Gzip = *gz
		opts.CompressionLevel = *level
		opts.SampleName = *sample
		ctx := vcontext.Background()
		s, err := dedup.Remove(ctx, argv, *duplicates, *prefix, opts)
		if err != nil {
			return err
		}
		if *stats != "" {
			return dedup.WriteStatsFile(ctx, *stats+".deduplication.csv", opts.SampleName, s)
		}
		return nil
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "fq-dedup",
			Short:    "Remove duplicate fragments from FASTQ files",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdParse(),
				newCmdIdentify(),
				newCmdRemove(),
			},
		})
}
