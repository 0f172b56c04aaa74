package util

import "testing"

func TestOwnerKey(t *testing.T) {
	id := "guest:3f1c"
	got := OwnerKey(id)
	if got != OwnerKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if OwnerKey("other") == got {
		t.Fatal("expected distinct owners to hash differently")
	}
}

func TestSHA256Hex(t *testing.T) {
	const emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := SHA256Hex(nil); got != emptyDigest {
		t.Fatalf("unexpected digest of empty input: %s", got)
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  cv final.docx ", want: "cv final.docx"},
		{in: "a/b\\c.txt", want: "a_b_c.txt"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := CleanFileName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("CleanFileName(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("CleanFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
