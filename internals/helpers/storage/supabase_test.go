package storage

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"contract v2.pdf":  "contract_v2.pdf",
		"عقد الإيجار.docx": "_.docx",
		"scan-001.jpeg":    "scan-001.jpeg",
		"a/b\\c.png":       "a_b_c.png",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestObjectNameIsUniquePerCall(t *testing.T) {
	a := ObjectName("case-1", "contract.pdf")
	b := ObjectName("case-1", "contract.pdf")
	if a == b {
		t.Fatalf("two object names collided: %s", a)
	}
	if !strings.HasPrefix(a, "case-1/") {
		t.Fatalf("object name missing folder prefix: %s", a)
	}
	if !strings.HasSuffix(a, "-contract.pdf") {
		t.Fatalf("object name missing original filename: %s", a)
	}
}

func TestReplaceExt(t *testing.T) {
	if got := replaceExt("photo.JPG", ".webp"); got != "photo.webp" {
		t.Fatalf("replaceExt = %q", got)
	}
	if got := replaceExt("no-extension", ".webp"); got != "no-extension.webp" {
		t.Fatalf("replaceExt = %q", got)
	}
}

func TestDetectType(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	if got := detectType(jpeg); got != "image/jpeg" {
		t.Fatalf("jpeg detected as %q", got)
	}
	png := append([]byte{0x89}, []byte("PNG\r\n\x1a\n")...)
	if got := detectType(png); got != "image/png" {
		t.Fatalf("png detected as %q", got)
	}
	notPNG := []byte("xPNG\r\n\x1a\n")
	if got := detectType(notPNG); got != "application/octet-stream" {
		t.Fatalf("fake png detected as %q", got)
	}
	if got := detectType([]byte("plain text file")); got != "application/octet-stream" {
		t.Fatalf("text detected as %q", got)
	}
}

func TestIsImageContentType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp"} {
		if !isImageContentType(ct) {
			t.Errorf("%s not treated as image", ct)
		}
	}
	for _, ct := range []string{"application/pdf", "text/plain"} {
		if isImageContentType(ct) {
			t.Errorf("%s treated as image", ct)
		}
	}
}
