package buildinfo

import "testing"

func TestShort(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short()=%q, want dev", got)
	}
	Commit = "abc123"
	if got := Short(); got != "abc123" {
		t.Fatalf("Short()=%q, want commit", got)
	}
	Version = "v1.2.0"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short()=%q, want version", got)
	}
	if got := String(); got != "v1.2.0 (commit abc123, built unknown)" {
		t.Fatalf("String()=%q", got)
	}
}
