package dedup

import (
	"context"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"

	"github.com/capturec/fqdedup/encoding/fastq"
)

// runRemover is the duplicate-remover stage. It consumes batches from
// in, recomputes each tuple's identity hash, drops members of dups,
// and forwards the survivors to out. The filter is stable: surviving
// tuples keep their input order. Per-batch counters are sent on
// statCh, followed by one termination message.
func runRemover(in <-chan []Tuple, out chan<- []Tuple, dups DuplicateSet, statCh chan<- statsMsg) {
	for batch := range in {
		var (
			s Stats
			k int
		)
		for _, t := range batch {
			s.Total++
			if _, dup := dups[HashIdentity(t)]; dup {
				s.Duplicate++
				continue
			}
			s.Unique++
			batch[k] = t
			k++
		}
		out <- batch[:k]
		statCh <- statsMsg{stats: s}
	}
	statCh <- statsMsg{done: true}
}

// Remove re-reads the input files (the same files, in the same order,
// as the Parse run), drops every fragment whose identity hash is in
// the duplicate-set artifact at duplicatesPath, and writes the
// survivors to one output file per input, named
// <outputPrefix>_<i+1>.fastq[.gz]. It returns the aggregated
// statistics. On any stage failure the partially written outputs are
// deleted and an error is returned.
func Remove(ctx context.Context, inputs []string, duplicatesPath, outputPrefix string, opts Opts) (Stats, error) {
	dups, err := readDuplicateSet(ctx, duplicatesPath)
	if err != nil {
		return Stats{}, err
	}
	outputs := outputPaths(outputPrefix, len(inputs), opts.Gzip)

	var (
		batchCh = make(chan []Tuple, opts.QueueDepth)
		writeCh = make(chan []Tuple, opts.QueueDepth)
		statCh  = make(chan statsMsg, opts.QueueDepth)
		errs    = errors.Once{}
		wg      sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs.Set(runReader(ctx, inputs, opts.BatchSize, fastq.All, batchCh))
		close(batchCh)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		runRemover(batchCh, writeCh, dups, statCh)
		close(writeCh)
		close(statCh)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs.Set(runWriter(ctx, outputs, writeCh, opts))
	}()
	stats := aggregateStats(statCh, 1)
	wg.Wait()

	if err := errs.Err(); err != nil {
		// Partial outputs must not be mistaken for valid results.
		for _, path := range outputs {
			if rmErr := file.Remove(ctx, path); rmErr != nil {
				log.Error.Printf("remove %v: %v", path, rmErr)
			}
		}
		return Stats{}, err
	}
	log.Printf("removed %d duplicate(s), retained %d of %d fragment(s)",
		stats.Duplicate, stats.Unique, stats.Total)
	return stats, nil
}
