package dedup

import (
	"context"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/capturec/fqdedup/encoding/fastq"
)

// Mapping is the identity to sequence hash mapping accumulated by one
// Parse invocation. It has a single owner: the hasher stage builds it
// incrementally and it is flushed to durable storage exactly once, at
// end of stream. Parallel Parse invocations over disjoint input
// shards each own a disjoint Mapping.
type Mapping map[IdentityHash]SequenceHash

// runHasher is the hasher/parser stage. It consumes batches from in,
// computes each tuple's identity and sequence hash, and accumulates
// them. If out is non-nil every batch is forwarded unchanged after
// hashing; hash-only runs pass nil. Zero-length input yields an
// empty, non-nil mapping.
func runHasher(in <-chan []Tuple, out chan<- []Tuple) Mapping {
	m := make(Mapping)
	var buf []byte
	for batch := range in {
		for _, t := range batch {
			m[HashIdentity(t)] = HashSequence(t, &buf)
		}
		if out != nil {
			out <- batch
		}
	}
	return m
}

// Parse streams the input files and writes the mapping artifact to
// outputPath. The inputs are only read; the artifact is written only
// after the stream completes cleanly.
func Parse(ctx context.Context, inputs []string, outputPath string, opts Opts) error {
	var (
		batchCh = make(chan []Tuple, opts.QueueDepth)
		readErr = errors.Once{}
		wg      sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		readErr.Set(runReader(ctx, inputs, opts.BatchSize, fastq.ID|fastq.Seq, batchCh))
		close(batchCh)
	}()
	m := runHasher(batchCh, nil)
	wg.Wait()
	if err := readErr.Err(); err != nil {
		return err
	}
	log.Printf("parsed %d fragment(s) into %s", len(m), outputPath)
	return writeMapping(ctx, outputPath, m)
}
