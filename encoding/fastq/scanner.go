package fastq

import (
	"bufio"
	"errors"
	"io"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
	// ErrDiscordant is returned when underlying FASTQ files are
	// discordant, i.e., one file runs out of records while another
	// still has records remaining.
	ErrDiscordant = errors.New("discordant FASTQ files")
)

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}

// Name returns the read name: the ID line without the leading "@" and
// without the optional comment following the first space.
func (r *Read) Name() string {
	id := r.ID
	if len(id) > 0 && id[0] == '@' {
		id = id[1:]
	}
	for i := 0; i < len(id); i++ {
		if id[i] == ' ' {
			return id[:i]
		}
	}
	return id
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading FASTQ read
// data. The Scan method returns the next read, returning a boolean
// indicating whether the read succeeded. Scanners are not
// threadsafe.
//
// Scanner performs some validation: it requires ID lines to begin
// with "@" and that line 3 begins with "+", but does not perform
// further validation (e.g., seq/qual being of equal length,
// containing only data in range, etc.)
type Scanner struct {
	b      *bufio.Scanner
	err    error
	fields Field
}

// Field enumerates FASTQ fields. It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader. Fields is a bitset of the fields to read. A typical value
// would be All or ID|Seq|Qual.
func NewScanner(r io.Reader, fields Field) *Scanner {
	return &Scanner{b: bufio.NewScanner(r), fields: fields}
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	id := f.b.Bytes()
	if len(id) == 0 || id[0] != '@' {
		f.err = ErrInvalid
		return false
	}
	if f.fields&ID != 0 {
		read.ID = string(id)
	}
	if !f.scan() {
		return false
	}
	if f.fields&Seq != 0 {
		read.Seq = f.b.Text()
	}
	if !f.scan() {
		return false
	}
	unk := f.b.Bytes()
	if len(unk) == 0 || unk[0] != '+' {
		f.err = ErrInvalid
		return false
	}
	if f.fields&Unk != 0 {
		read.Unk = string(unk)
	}
	if !f.scan() {
		return false
	}
	if f.fields&Qual != 0 {
		read.Qual = f.b.Text()
	}
	return true
}

func (f *Scanner) scan() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
	}
	return ok
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}

// TupleScanner composes N scanners (N >= 1) to scan N FASTQ streams
// in lockstep. Read i of every stream is scanned together, so the
// positional pairing of reads across files is preserved. The streams
// must contain the same number of records; a stream ending while
// another still has records is reported as ErrDiscordant.
type TupleScanner struct {
	scanners []*Scanner
	err      error
}

// NewTupleScanner creates a lockstep scanner over the provided FASTQ
// streams. At least one reader must be given.
func NewTupleScanner(fields Field, rs ...io.Reader) *TupleScanner {
	if len(rs) == 0 {
		panic("fastq: NewTupleScanner requires at least one reader")
	}
	t := &TupleScanner{scanners: make([]*Scanner, len(rs))}
	for i, r := range rs {
		t.scanners[i] = NewScanner(r, fields)
	}
	return t
}

// Arity returns the number of underlying streams.
func (t *TupleScanner) Arity() int { return len(t.scanners) }

// Scan scans the next read from every stream into the corresponding
// element of reads. len(reads) must equal Arity. Scan returns a
// boolean indicating whether the scan succeeded. Once Scan returns
// false, it never returns true again. Upon completion, the user
// should check the Err method to determine whether scanning stopped
// because of an error or because the end of all streams was reached.
func (t *TupleScanner) Scan(reads []Read) bool {
	if t.err != nil {
		return false
	}
	var nOK int
	for i, s := range t.scanners {
		if s.Scan(&reads[i]) {
			nOK++
		}
	}
	if nOK == len(t.scanners) {
		return true
	}
	if nOK != 0 {
		// At least one stream ended while another produced a record.
		// Surface an underlying parse error in preference to reporting
		// the resulting positional drift.
		for _, s := range t.scanners {
			if s.err != nil && s.err != errEOF && s.err != ErrShort {
				return false
			}
		}
		t.err = ErrDiscordant
		return false
	}
	// All streams stopped on this step. A stream that stopped short
	// inside a record (ErrShort) while a partner ended cleanly is a
	// positional mismatch, not just a malformed file.
	if t.anyErrIs(ErrShort) && t.anyCleanEOF() {
		t.err = ErrDiscordant
	}
	return false
}

func (t *TupleScanner) anyErrIs(err error) bool {
	for _, s := range t.scanners {
		if s.err == err {
			return true
		}
	}
	return false
}

// anyCleanEOF reports whether at least one stream reached end of
// input without error.
func (t *TupleScanner) anyCleanEOF() bool {
	return t.anyErrIs(errEOF)
}

// Err returns the scanning error, if any. It should be checked after
// Scan returns false.
func (t *TupleScanner) Err() error {
	if t.err != nil {
		return t.err
	}
	for _, s := range t.scanners {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}
