package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteFrames encodes f as indented JSON and writes it to w.
func WriteFrames(f Frames, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// EncodeFrames returns f as compact JSON, the form used on the wire.
func EncodeFrames(f Frames) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ExportFrames writes f to a JSON file at path.
// This is a convenience wrapper around [WriteFrames] for file-based output.
func ExportFrames(f Frames, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteFrames(f, out)
}
