package dedup

// Opts configures a deduplication pipeline run.
type Opts struct {
	// BatchSize is the number of tuples grouped into one batch before
	// it is handed to the next stage. Batching amortizes the per-send
	// channel cost; the value does not affect results.
	BatchSize int

	// QueueDepth bounds the batch channels between stages. A slow
	// consumer throttles the producer instead of growing memory
	// without limit.
	QueueDepth int

	// Gzip compresses the output FASTQ files when true.
	Gzip bool

	// CompressionLevel is the gzip level (1-9) used when Gzip is set.
	CompressionLevel int

	// SampleName labels the statistics record.
	SampleName string
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	BatchSize:        100000, // reads buffered per batch, -buffer
	QueueDepth:       4,
	Gzip:             false,
	CompressionLevel: 5,
}
