package dedup

import (
	"errors"
	"fmt"
)

// ErrInputMismatch is returned when the input FASTQ files do not
// contain the same number of records. Positional pairing is a hard
// invariant; drift aborts the run and no partial output is valid.
var ErrInputMismatch = errors.New("input FASTQ files have unequal record counts")

// CorruptArtifactError reports a mapping or duplicate-set artifact
// that could not be decoded. A corrupt shard aborts the whole
// identification: silently dropping its identities would misclassify
// duplicates.
type CorruptArtifactError struct {
	Path string
	Err  error
}

func (e *CorruptArtifactError) Error() string {
	return fmt.Sprintf("corrupt artifact %s: %v", e.Path, e.Err)
}
