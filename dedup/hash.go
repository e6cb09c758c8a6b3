package dedup

import (
	"fmt"
	"strconv"

	"blainsmith.com/go/seahash"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/minio/highwayhash"

	"github.com/capturec/fqdedup/encoding/fastq"
)

// Tuple is an ordered, fixed-arity group of reads, one per input
// file, all originating from the same positional offset in their
// respective files. The arity is constant for a pipeline run.
type Tuple []fastq.Read

// IdentityHash is a 64-bit digest of a fragment's read name. It keys
// a fragment for duplicate tracking so the full name need not be
// stored. Collisions are an accepted probabilistic risk and are not
// detected.
type IdentityHash uint64

// SequenceHash is a 64-bit digest of a fragment's concatenated
// sequences, in input file order. Two fragments with equal
// SequenceHash are considered duplicates of each other.
type SequenceHash uint64

// Key used for all sequence hashes. Fixed so that hashes are
// comparable across processes and shards.
var seqHashKey [highwayhash.Size]byte

// HashIdentity returns the identity hash of the tuple: the digest of
// the first read's name (ID line minus the leading "@" and any
// trailing comment).
func HashIdentity(t Tuple) IdentityHash {
	return IdentityHash(seahash.Sum64(gunsafe.StringToBytes(t[0].Name())))
}

// HashSequence returns the sequence hash of the tuple. The digest
// covers every read's sequence concatenated in file order, so it is
// sensitive to the input file order, which is fixed for a run. buf is
// scratch space reused across calls.
func HashSequence(t Tuple, buf *[]byte) SequenceHash {
	*buf = (*buf)[:0]
	for _, r := range t {
		*buf = append(*buf, r.Seq...)
	}
	return SequenceHash(highwayhash.Sum64(*buf, seqHashKey[:]))
}

// Hashes serialize in artifacts as fixed-width hex so that
// lexicographic order of the encoded form equals numeric order.

func (h IdentityHash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

func (h SequenceHash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

func parseIdentityHash(s string) (IdentityHash, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	return IdentityHash(v), err
}

func parseSequenceHash(s string) (SequenceHash, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	return SequenceHash(v), err
}
