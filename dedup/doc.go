// Package dedup removes duplicate fragments from FASTQ files without
// loading the files in memory.
//
// A fragment is the tuple of reads at the same position in each input
// file (arity 1 for single-end data, 2 for paired-end). Two fragments
// are duplicates when their concatenated sequences are identical.
//
// Deduplication runs as two passes over the inputs, composed from
// three operations:
//
//   Parse     streams the inputs and writes a JSON artifact mapping
//             each fragment's identity hash (of its read name) to its
//             sequence hash (of its concatenated sequences).
//   Identify  merges one or more such mappings, picks one
//             representative fragment per distinct sequence, and
//             writes the set of non-representative identity hashes.
//   Remove    streams the inputs again, drops fragments whose
//             identity hash is in the duplicate set, and writes the
//             survivors plus a statistics record.
//
// The two streaming passes may be sharded: each Parse invocation owns
// its own mapping artifact and Identify merges any number of shards,
// producing the same duplicate set regardless of merge order.
//
// Each streaming pass runs its stages (reader, hasher or remover,
// writer) as goroutines connected by bounded channels carrying
// batches of fragments. Batch order, and read order within a batch,
// is preserved end to end; the remover's filtering is the only stage
// that drops anything.
package dedup
