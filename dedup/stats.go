package dedup

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// Stats counts the fragments seen by one remover. The schema is
// fixed: every counter is enumerated here and merged additively, so
// Duplicate+Unique == Total holds for any merge of remover outputs.
type Stats struct {
	// Total is the number of fragments examined.
	Total int64
	// Duplicate is the number of fragments dropped as duplicates.
	Duplicate int64
	// Unique is the number of fragments forwarded to the writer.
	Unique int64
}

// Merge adds the field values of the two Stats objects and creates
// new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Total += o.Total
	s.Duplicate += o.Duplicate
	s.Unique += o.Unique
	return s
}

// statsMsg is one message on a remover's statistics channel. Counter
// messages carry per-batch Stats; a message with done set marks the
// sending remover's termination.
type statsMsg struct {
	stats Stats
	done  bool
}

// aggregateStats drains statCh, summing counters, until one
// termination message per remover has arrived.
func aggregateStats(statCh <-chan statsMsg, removers int) Stats {
	var total Stats
	for pending := removers; pending > 0; {
		m := <-statCh
		if m.done {
			pending--
			continue
		}
		total = total.Merge(m.stats)
	}
	return total
}

// WriteStatsFile writes the final deduplication statistics as a CSV
// record keyed by sample name.
func WriteStatsFile(ctx context.Context, path, sample string, s Stats) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create stats file", path)
	}
	e := errors.Once{}
	_, werr := fmt.Fprintf(out.Writer(ctx),
		"sample,reads_total,reads_duplicate,reads_unique\n%s,%d,%d,%d\n",
		sample, s.Total, s.Duplicate, s.Unique)
	e.Set(werr)
	e.Set(out.Close(ctx))
	if e.Err() != nil {
		return errors.E(e.Err(), "write stats file", path)
	}
	return nil
}
