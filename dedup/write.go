package dedup

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"

	"github.com/capturec/fqdedup/encoding/fastq"
)

// outputPaths returns one output path per input file, in input order.
func outputPaths(prefix string, n int, gzipped bool) []string {
	paths := make([]string, n)
	for i := range paths {
		p := fmt.Sprintf("%s_%d.fastq", prefix, i+1)
		if gzipped {
			p += ".gz"
		}
		paths[i] = p
	}
	return paths
}

// fileSink is one open output file together with its writer chain.
type fileSink struct {
	f   file.File
	buf *bufio.Writer
	gz  *gzip.Writer
	w   *fastq.Writer
}

func newFileSink(ctx context.Context, path string, opts Opts) (*fileSink, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	s := &fileSink{f: f, buf: bufio.NewWriter(f.Writer(ctx))}
	var w io.Writer = s.buf
	if opts.Gzip {
		gz, err := gzip.NewWriterLevel(w, opts.CompressionLevel)
		if err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "gzip", path)
		}
		s.gz = gz
		w = gz
	}
	s.w = fastq.NewWriter(w)
	return s, nil
}

func (s *fileSink) close(ctx context.Context) error {
	e := errors.Once{}
	if s.gz != nil {
		e.Set(s.gz.Close())
	}
	e.Set(s.buf.Flush())
	e.Set(s.f.Close(ctx))
	return e.Err()
}

// runWriter is the writer stage. It consumes batches from in and
// appends each tuple's reads to the per-file sinks, preserving the
// order in which batches arrive. After an error it keeps draining in
// so upstream stages are not blocked. All opened handles are closed
// before returning, on every exit path.
func runWriter(ctx context.Context, paths []string, in <-chan []Tuple, opts Opts) error {
	e := errors.Once{}
	sinks := make([]*fileSink, 0, len(paths))
	for _, path := range paths {
		s, err := newFileSink(ctx, path, opts)
		if err != nil {
			e.Set(err)
			break
		}
		sinks = append(sinks, s)
	}
	for batch := range in {
		for i := range batch {
			if e.Err() != nil {
				break
			}
			t := batch[i]
			for j := range t {
				if err := sinks[j].w.Write(&t[j]); err != nil {
					e.Set(errors.E(err, "write", paths[j]))
					break
				}
			}
		}
	}
	for _, s := range sinks {
		e.Set(s.close(ctx))
	}
	return e.Err()
}
