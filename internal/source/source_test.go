package source

import (
	"bytes"
	"strings"
	"testing"
)

func TestForFile_KnownExtensions(t *testing.T) {
	names := []string{
		"bigfish.fountain",
		"notes.TXT",
		"draft.spmd",
		"scan.pdf",
		"script.docx",
		"export.html",
	}
	for _, name := range names {
		if _, err := ForFile(name); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("%s: expected supported extension", name)
		}
	}
}

func TestForFile_UnknownExtension(t *testing.T) {
	if _, err := ForFile("sheet.csv"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("sheet.csv") {
		t.Error("expected .csv to be unsupported")
	}
}

func TestPlainDecoder_Passthrough(t *testing.T) {
	d := &PlainDecoder{}
	text, err := d.Decode(strings.NewReader("INT. ROOM - DAY\n"), "a.fountain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "INT. ROOM - DAY\n" {
		t.Errorf("expected passthrough, got %q", text)
	}
}

func TestPlainDecoder_StripsUTF8BOM(t *testing.T) {
	d := &PlainDecoder{}
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Title: Foo")...)
	text, err := d.Decode(bytes.NewReader(in), "a.fountain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Title: Foo" {
		t.Errorf("expected BOM stripped, got %q", text)
	}
}

func TestPlainDecoder_UTF16LE(t *testing.T) {
	// "Hi" as UTF-16LE with BOM.
	in := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}
	d := &PlainDecoder{}
	text, err := d.Decode(bytes.NewReader(in), "a.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hi" {
		t.Errorf("expected UTF-16 decoded, got %q", text)
	}
}

func TestHTMLDecoder_PreBlockKeepsLines(t *testing.T) {
	in := "<html><body><pre>INT. ROOM - DAY\n\nHello.</pre></body></html>"
	d := &HTMLDecoder{}
	text, err := d.Decode(strings.NewReader(in), "a.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "INT. ROOM - DAY\n\nHello." {
		t.Errorf("expected pre content verbatim, got %q", text)
	}
}

func TestHTMLDecoder_ParagraphsBecomeBlankSeparated(t *testing.T) {
	in := "<html><body><p>FADE IN:</p><p>A dark road.</p><script>x()</script></body></html>"
	d := &HTMLDecoder{}
	text, err := d.Decode(strings.NewReader(in), "a.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "FADE IN:\n\nA dark road." {
		t.Errorf("unexpected text %q", text)
	}
}
