package dedup

import (
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"

	"github.com/capturec/fqdedup/encoding/fastq"
)

// runReader is the reader stage. It opens the input files (plain or
// compressed), scans them in lockstep, and sends batches of at most
// batchSize tuples on out, in input order. Each file is opened and
// closed exactly once; close happens on every exit path. The channel
// is left open for the caller to close once runReader returns.
func runReader(ctx context.Context, paths []string, batchSize int, fields fastq.Field, out chan<- []Tuple) (err error) {
	closer := errors.Once{}
	var files []file.File
	defer func() {
		for _, f := range files {
			closer.Set(f.Close(ctx))
		}
		if err == nil {
			err = closer.Err()
		}
	}()

	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, openErr := file.Open(ctx, path)
		if openErr != nil {
			return errors.E(openErr, "open", path)
		}
		files = append(files, f)
		var r io.Reader = f.Reader(ctx)
		if u := compress.NewReaderPath(r, f.Name()); u != nil {
			r = u
		}
		readers = append(readers, r)
	}

	var (
		scan  = fastq.NewTupleScanner(fields, readers...)
		batch = make([]Tuple, 0, batchSize)
		nRead int64
	)
	send := func(b []Tuple) error {
		select {
		case out <- b:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for {
		t := make(Tuple, len(paths))
		if !scan.Scan(t) {
			break
		}
		batch = append(batch, t)
		if len(batch) == batchSize {
			if err := send(batch); err != nil {
				return err
			}
			batch = make([]Tuple, 0, batchSize)
		}
		nRead++
		if nRead%(1024*1024) == 0 {
			log.Printf("%s: %dMi tuples", paths[0], nRead/(1024*1024))
		}
	}
	if scanErr := scan.Err(); scanErr != nil {
		if scanErr == fastq.ErrDiscordant {
			log.Error.Printf("record count mismatch among %v", paths)
			return ErrInputMismatch
		}
		return errors.E(scanErr, "read", paths[0])
	}
	if len(batch) > 0 {
		if err := send(batch); err != nil {
			return err
		}
	}
	log.Printf("read %d tuples from %d file(s)", nRead, len(paths))
	return nil
}
