package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/framescope/pkg/errors"
)

// ReadFrames decodes and validates a frames document from r.
// ReadFrames does not close r.
func ReadFrames(r io.Reader) (Frames, error) {
	var f Frames
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Frames{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode frames")
	}
	if err := f.Validate(); err != nil {
		return Frames{}, err
	}
	return f, nil
}

// DecodeFrames decodes and validates a frames document held in memory.
func DecodeFrames(data []byte) (Frames, error) {
	var f Frames
	if err := json.Unmarshal(data, &f); err != nil {
		return Frames{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode frames")
	}
	if err := f.Validate(); err != nil {
		return Frames{}, err
	}
	return f, nil
}

// ImportFrames reads the frames file at path. The path "-" reads stdin.
func ImportFrames(path string) (Frames, error) {
	if path == "-" {
		return ReadFrames(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Frames{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Frames{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadFrames(f)
}
