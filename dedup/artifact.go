package dedup

import (
	"context"
	"encoding/json"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// Artifacts are flat JSON objects whose keys (and, for mappings,
// values) are fixed-width hex hash strings. A mapping artifact is
// {identity: sequence, ...}; a duplicate-set artifact is
// {identity: null, ...}. Both are written once, after their producing
// step completes cleanly, and are read-only afterwards.

func writeArtifact(ctx context.Context, path string, data []byte) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	e := errors.Once{}
	_, werr := out.Writer(ctx).Write(data)
	e.Set(werr)
	e.Set(out.Close(ctx))
	if e.Err() != nil {
		return errors.E(e.Err(), "write", path)
	}
	return nil
}

func writeMapping(ctx context.Context, path string, m Mapping) error {
	enc := make(map[string]string, len(m))
	for id, seq := range m {
		enc[id.String()] = seq.String()
	}
	data, err := json.Marshal(enc)
	if err != nil {
		return errors.E(err, "encode mapping", path)
	}
	return writeArtifact(ctx, path, data)
}

func readMapping(ctx context.Context, path string) (Mapping, error) {
	data, err := file.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.E(err, "read mapping", path)
	}
	var enc map[string]string
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, &CorruptArtifactError{Path: path, Err: err}
	}
	m := make(Mapping, len(enc))
	for k, v := range enc {
		id, err := parseIdentityHash(k)
		if err != nil {
			return nil, &CorruptArtifactError{Path: path, Err: err}
		}
		seq, err := parseSequenceHash(v)
		if err != nil {
			return nil, &CorruptArtifactError{Path: path, Err: err}
		}
		m[id] = seq
	}
	return m, nil
}

func writeDuplicateSet(ctx context.Context, path string, dups DuplicateSet) error {
	enc := make(map[string]interface{}, len(dups))
	for id := range dups {
		enc[id.String()] = nil
	}
	data, err := json.Marshal(enc)
	if err != nil {
		return errors.E(err, "encode duplicate set", path)
	}
	return writeArtifact(ctx, path, data)
}

func readDuplicateSet(ctx context.Context, path string) (DuplicateSet, error) {
	data, err := file.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.E(err, "read duplicate set", path)
	}
	var enc map[string]interface{}
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, &CorruptArtifactError{Path: path, Err: err}
	}
	dups := make(DuplicateSet, len(enc))
	for k := range enc {
		id, err := parseIdentityHash(k)
		if err != nil {
			return nil, &CorruptArtifactError{Path: path, Err: err}
		}
		dups[id] = struct{}{}
	}
	return dups, nil
}
