package dedup

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// DuplicateSet is the set of identity hashes whose fragments were not
// chosen as the representative for their sequence hash. It is built
// once by Identify and read-only afterwards.
type DuplicateSet map[IdentityHash]struct{}

// identifyDuplicates merges the shard mappings and returns the
// duplicate set. The representative for a sequence hash is the
// minimum identity hash sharing it. That makes the result a pure
// function of the union of the shards: merging them in any order
// yields the same set.
func identifyDuplicates(shards []Mapping) DuplicateSet {
	representatives := make(map[SequenceHash]IdentityHash)
	for _, m := range shards {
		for id, seq := range m {
			if rep, ok := representatives[seq]; !ok || id < rep {
				representatives[seq] = id
			}
		}
	}
	dups := make(DuplicateSet)
	for _, m := range shards {
		for id, seq := range m {
			if representatives[seq] != id {
				dups[id] = struct{}{}
			}
		}
	}
	return dups
}

// Identify loads one or more mapping artifacts and writes the
// duplicate-set artifact to outputPath. Any unreadable shard aborts
// the whole identification: dropping a shard's identities would
// misclassify duplicates in every other shard.
func Identify(ctx context.Context, shardPaths []string, outputPath string) error {
	shards := make([]Mapping, len(shardPaths))
	err := traverse.Each(len(shardPaths), func(i int) error {
		m, err := readMapping(ctx, shardPaths[i])
		if err != nil {
			return err
		}
		shards[i] = m
		return nil
	})
	if err != nil {
		return err
	}
	var nFragments int
	for _, m := range shards {
		nFragments += len(m)
	}
	dups := identifyDuplicates(shards)
	log.Printf("identified %d duplicate(s) among %d fragment(s) from %d shard(s)",
		len(dups), nFragments, len(shards))
	return writeDuplicateSet(ctx, outputPath, dups)
}
