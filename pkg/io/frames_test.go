package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
)

const cardJSON = `{
  "width": 320,
  "height": 480,
  "nodes": [
    {"id": "card", "frame": {"x": 0, "y": 0, "width": 200, "height": 120}},
    {"id": "title", "parent_id": "card", "frame": {"x": 16, "y": 16, "width": 120, "height": 24}},
    {"id": "body", "parent_id": "card", "frame": {"x": 16, "y": 52, "width": 168, "height": 48}}
  ]
}`

func TestReadFrames(t *testing.T) {
	f, err := ReadFrames(strings.NewReader(cardJSON))
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if len(f.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(f.Nodes))
	}
	title := f.Nodes[1]
	if title.ParentID != "card" || title.Frame != geometry.NewRect(16, 16, 120, 24) {
		t.Errorf("title = %+v", title)
	}
	if f.Viewport() != geometry.NewRect(0, 0, 320, 480) {
		t.Errorf("Viewport() = %+v, want 320x480", f.Viewport())
	}
}

func TestSetIsRenderOrder(t *testing.T) {
	f, _ := ReadFrames(strings.NewReader(cardJSON))

	var got []string
	for _, n := range f.Set().Nodes() {
		got = append(got, n.ID)
	}
	want := "body,title,card"
	if strings.Join(got, ",") != want {
		t.Errorf("Set() order = %v, want %s", got, want)
	}
	if f.Nodes[0].ID != "card" {
		t.Error("Set() reordered the frames in place")
	}
}

func TestRoundTrip(t *testing.T) {
	f, _ := ReadFrames(strings.NewReader(cardJSON))
	back := FromSet(f.Set(), f.Width, f.Height)

	var buf bytes.Buffer
	if err := WriteFrames(back, &buf); err != nil {
		t.Fatalf("WriteFrames() error = %v", err)
	}
	again, err := ReadFrames(&buf)
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if len(again.Nodes) != len(f.Nodes) {
		t.Fatalf("len(Nodes) = %d, want %d", len(again.Nodes), len(f.Nodes))
	}
	for i := range f.Nodes {
		if again.Nodes[i] != f.Nodes[i] {
			t.Errorf("node %d = %+v, want %+v", i, again.Nodes[i], f.Nodes[i])
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	f := Frames{Nodes: []node.Node{{ID: "a", Frame: geometry.NewRect(1, 2, 3, 4)}}}
	data, err := EncodeFrames(f)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Error("EncodeFrames() output should be compact")
	}
	got, err := DecodeFrames(data)
	if err != nil {
		t.Fatalf("DecodeFrames() error = %v", err)
	}
	if got.Nodes[0] != f.Nodes[0] {
		t.Errorf("DecodeFrames() = %+v, want %+v", got.Nodes[0], f.Nodes[0])
	}
}

func TestViewportFallsBackToBounds(t *testing.T) {
	f := Frames{Nodes: []node.Node{
		{ID: "a", Frame: geometry.NewRect(10, 10, 20, 20)},
		{ID: "b", Frame: geometry.NewRect(50, 0, 10, 100)},
	}}
	if got := f.Viewport(); got != geometry.NewRect(0, 0, 60, 100) {
		t.Errorf("Viewport() = %+v, want 60x100", got)
	}
}

func TestReadFramesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"wrong type", `{"nodes": {"id": "a"}}`, errors.ErrCodeInvalidFormat},
		{"empty id", `{"nodes": [{"id": ""}]}`, errors.ErrCodeInvalidNodeID},
		{"bad parent", `{"nodes": [{"id": "a", "parent_id": "x\u0000"}]}`, errors.ErrCodeInvalidNodeID},
		{"negative size", `{"nodes": [{"id": "a", "frame": {"width": -1}}]}`, errors.ErrCodeInvalidFrame},
		{"negative viewport", `{"width": -5, "nodes": []}`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrames(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadFrames() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pass.json")

	f, _ := ReadFrames(strings.NewReader(cardJSON))
	if err := ExportFrames(f, path); err != nil {
		t.Fatalf("ExportFrames() error = %v", err)
	}
	got, err := ImportFrames(path)
	if err != nil {
		t.Fatalf("ImportFrames() error = %v", err)
	}
	if len(got.Nodes) != 3 || got.Width != 320 {
		t.Errorf("ImportFrames() = %+v", got)
	}

	if _, err := ImportFrames(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportFrames(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportCreateFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ExportFrames(Frames{}, filepath.Join(blocker, "out.json")); err == nil {
		t.Error("ExportFrames() into a file path should fail")
	}
}
