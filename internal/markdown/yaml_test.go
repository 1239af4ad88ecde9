package markdown

import (
	"strings"
	"testing"
)

func TestDecodeMetadata(t *testing.T) {
	meta, body, err := DecodeMetadata([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("DecodeMetadata: %v", err)
	}
	if meta.Slug != "xe-tải-nặng" {
		t.Fatalf("unexpected slug %q", meta.Slug)
	}
	if meta.Category != "Bảo dưỡng" {
		t.Fatalf("unexpected category %q", meta.Category)
	}
	if _, ok := meta.Custom["tags"]; !ok {
		t.Fatalf("expected unknown keys in Custom, got %#v", meta.Custom)
	}
	if !strings.Contains(string(body), "# Xe tải nặng") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestDecodeMetadataWithoutFrontMatter(t *testing.T) {
	meta, body, err := DecodeMetadata([]byte("# Title\n"))
	if err != nil {
		t.Fatalf("DecodeMetadata: %v", err)
	}
	if meta.Category != "" || meta.Slug != "" {
		t.Fatalf("expected empty metadata, got %+v", meta)
	}
	if string(body) != "# Title\n" {
		t.Fatalf("expected source returned as body, got %q", body)
	}
}

func TestDecodeMetadataRejectsInvalidYAML(t *testing.T) {
	if _, _, err := DecodeMetadata([]byte("---\ntitle: [unclosed\n---\nbody\n")); err == nil {
		t.Fatal("expected YAML error")
	}
}
