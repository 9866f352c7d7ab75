// Package delim converts between the packed scalar strings the catalog API
// stores for multi-value attributes and the ordered token sequences the rest
// of the module works with. It is the only place packed strings are split or
// joined.
package delim

import "strings"

// Delimiter sets and joiners used by the catalog's multi-value attributes.
const (
	// Comma splits categorical multi-value attributes.
	Comma = ","
	// CommaOrNewline splits linked document references, which historically
	// used either separator.
	CommaOrNewline = ",\n"

	// CategoricalJoiner re-packs categorical token sequences.
	CategoricalJoiner = ", "
	// DocJoiner re-packs linked document references.
	DocJoiner = "\n"
)

// Decode splits raw on any of the delimiter characters, trims each piece and
// drops empty pieces. Order is preserved and duplicate tokens are allowed. A
// nil-equivalent (empty or whitespace-only) input decodes to an empty
// sequence, never to a sequence containing an empty token.
func Decode(raw string, delimiters string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	pieces := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})

	tokens := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		tokens = append(tokens, piece)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Encode joins tokens with the joiner, with no trailing delimiter. An empty
// sequence encodes to the empty string.
//
// Round-trip law: Decode(Encode(tokens), d) equals tokens element-wise once
// whitespace trimming is applied; byte-identical round trips are only
// guaranteed for trimmed, delimiter-free tokens.
func Encode(tokens []string, joiner string) string {
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, joiner)
}
