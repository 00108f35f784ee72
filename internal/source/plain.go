package source

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PlainDecoder handles .fountain, .spmd and .txt files. Editors commonly
// save screenplays with a UTF-8 BOM or as UTF-16, so the byte stream runs
// through a BOM-aware decoder before it becomes text.
type PlainDecoder struct{}

func (d *PlainDecoder) Decode(r io.Reader, filename string) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
