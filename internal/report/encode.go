// Package report encodes run summaries and renders result files as tables.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/AndreyAkinshin/regexoracle/internal/oracle"
)

// Summary encodings.
const (
	FormatJSON = "json"
	FormatJCS  = "jcs"
)

// Marshal encodes a summary. The json format keeps field order
// cases, total, passed, failed and leaves '<', '>' and '&' unescaped; jcs
// produces RFC 8785 canonical bytes. Neither ends with a newline.
func Marshal(s oracle.Summary, format string) ([]byte, error) {
	if s.Cases == nil {
		s.Cases = []oracle.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	switch format {
	case "", FormatJSON:
		return data, nil
	case FormatJCS:
		canonical, err := jsoncanonicalizer.Transform(data)
		if err != nil {
			return nil, fmt.Errorf("canonicalize summary: %w", err)
		}
		return canonical, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s, %s)", format, FormatJSON, FormatJCS)
	}
}

// Encode writes the encoded summary to w.
func Encode(w io.Writer, s oracle.Summary, format string) error {
	data, err := Marshal(s, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
