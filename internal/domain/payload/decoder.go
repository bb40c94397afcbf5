package payload

import (
	"bytes"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// DefaultMaxDocuments bounds the concatenation scanner. The upstream
// automation tool has been seen gluing a handful of documents together, never
// more; anything beyond the ceiling is treated as corrupt input.
const DefaultMaxDocuments = 10

const previewLimit = 120

var (
	ErrEmptyPayload      = errors.New("empty payload")
	ErrUnparsablePayload = errors.New("unparsable payload")
)

// DecodeDocuments turns a raw request body into an ordered list of parsed
// JSON documents. A well-formed body yields one document; bodies produced by
// the upstream sender's concatenation defect are split by a depth-tracking
// scan and parsed segment by segment. Documents parsed before a bad segment
// are kept.
func DecodeDocuments(body []byte, maxDocs int) ([]any, error) {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxDocuments
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	var whole any
	if err := sonic.Unmarshal(trimmed, &whole); err == nil {
		return []any{whole}, nil
	}

	docs := make([]any, 0, 2)
	for _, segment := range splitConcatenated(trimmed, maxDocs) {
		var doc any
		if err := sonic.Unmarshal(segment, &doc); err != nil {
			break
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		err := errors.Wrap(ErrUnparsablePayload, "no JSON document could be extracted")
		return nil, errors.WithHintf(err, "body starts with: %s", preview(trimmed))
	}

	return docs, nil
}

// splitConcatenated slices the input into complete top-level JSON values by
// tracking brace/bracket depth and string-escape state. It stops at maxDocs
// so corrupt input cannot make the scan unbounded.
func splitConcatenated(input []byte, maxDocs int) [][]byte {
	segments := make([][]byte, 0, 2)

	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(input) && len(segments) < maxDocs; i++ {
		c := input[i]

		if start < 0 {
			if c == '{' || c == '[' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				segments = append(segments, input[start:i+1])
				start = -1
			}
		}
	}

	return segments
}

func preview(body []byte) string {
	if len(body) <= previewLimit {
		return string(body)
	}
	return fmt.Sprintf("%s... (%d bytes total)", body[:previewLimit], len(body))
}
