// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textenc decodes scanned text files whose encoding is unknown.
// Directory scans arrive as utf-8, latin-1, cp1252, or MacRoman depending
// on which machine produced them; the decoder walks a fixed ordered list
// and takes the first encoding that decodes cleanly, falling back to
// lossy utf-8 as a last resort.
package textenc

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decoded is the result of reading one source file.
type Decoded struct {
	Text     string
	Encoding string
	// UsedFallback is set when no listed encoding decoded cleanly and
	// invalid bytes were replaced instead of interpreted.
	UsedFallback bool
}

// attempt is one entry in the ordered encoding list.
type attempt struct {
	name   string
	decode func([]byte) (string, error)
}

// attempts are tried in order; the first clean decode wins. latin-1 and
// iso-8859-1 are listed separately to keep the contract's order explicit
// even though they share a decoder table.
var attempts = []attempt{
	{"utf-8", decodeUTF8},
	{"latin-1", decodeCharmap(charmap.ISO8859_1)},
	{"iso-8859-1", decodeCharmap(charmap.ISO8859_1)},
	{"cp1252", decodeCharmap(charmap.Windows1252)},
	{"macroman", decodeCharmap(charmap.Macintosh)},
}

// Decode interprets raw bytes using the first encoding in the list that
// decodes without replacement.
func Decode(data []byte) Decoded {
	for _, a := range attempts {
		if text, err := a.decode(data); err == nil {
			return Decoded{Text: text, Encoding: a.name}
		}
	}

	// Last resort: keep what is valid utf-8 and replace the rest.
	return Decoded{
		Text:         strings.ToValidUTF8(string(data), "�"),
		Encoding:     "utf-8",
		UsedFallback: true,
	}
}

// DecodeFile reads and decodes one file.
func DecodeFile(path string) (Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Decoded{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data), nil
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8")
	}
	return string(data), nil
}

func decodeCharmap(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		// Charmap decoders substitute U+FFFD for unmapped bytes
		// instead of failing; treat a substitution the input did not
		// already carry as failure so the next encoding in the list
		// gets its turn.
		if strings.ContainsRune(string(decoded), '�') && !strings.Contains(string(data), "�") {
			return "", fmt.Errorf("unmapped bytes for %s", cm)
		}
		return string(decoded), nil
	}
}
