package dedup

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/capturec/fqdedup/encoding/fastq"
)

func pairTuple(name, seq1, seq2 string) Tuple {
	return Tuple{
		fastq.Read{ID: "@" + name + " 1:N:0:ATCACG", Seq: seq1, Unk: "+", Qual: "EEEE"},
		fastq.Read{ID: "@" + name + " 2:N:0:ATCACG", Seq: seq2, Unk: "+", Qual: "EEEE"},
	}
}

func TestHashIdentity(t *testing.T) {
	a := pairTuple("frag1", "AAAA", "CCCC")
	b := pairTuple("frag1", "GGGG", "TTTT")
	// The identity hash covers the first read's name only, without the
	// "@" prefix or the comment.
	expect.EQ(t, HashIdentity(a), HashIdentity(b))
	expect.EQ(t, HashIdentity(Tuple{fastq.Read{ID: "@frag1"}}), HashIdentity(a))
	c := pairTuple("frag2", "AAAA", "CCCC")
	expect.True(t, HashIdentity(a) != HashIdentity(c))
}

func TestHashSequence(t *testing.T) {
	var buf []byte
	a := HashSequence(pairTuple("x", "AAAA", "CCCC"), &buf)
	b := HashSequence(pairTuple("y", "AAAA", "CCCC"), &buf)
	// Names and qualities do not contribute.
	expect.EQ(t, a, b)
	// The digest covers the plain concatenation in file order, so it
	// is order-sensitive...
	expect.True(t, a != HashSequence(pairTuple("x", "CCCC", "AAAA"), &buf))
	// ...and boundary-blind: equal concatenations hash equal.
	expect.EQ(t, a, HashSequence(pairTuple("x", "AAAACCCC", ""), &buf))
}

func TestHashEncoding(t *testing.T) {
	id := IdentityHash(0xdeadbeef)
	expect.EQ(t, id.String(), "00000000deadbeef")
	gotID, err := parseIdentityHash(id.String())
	expect.NoError(t, err)
	expect.EQ(t, gotID, id)

	seq := SequenceHash(1<<63 + 42)
	gotSeq, err := parseSequenceHash(seq.String())
	expect.NoError(t, err)
	expect.EQ(t, gotSeq, seq)

	_, err = parseIdentityHash("not a hash")
	expect.True(t, err != nil)
}
