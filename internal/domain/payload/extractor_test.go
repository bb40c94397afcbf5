package payload

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func decode(t *testing.T, raw string) any {
	t.Helper()

	var doc any
	if err := sonic.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal test document: %v", err)
	}
	return doc
}

func TestExtractRows_TopLevelRowsField(t *testing.T) {
	t.Parallel()

	doc := decode(t, `{"rows": [{"equipe": "803006", "data": "2025-06-01", "producao": 10}]}`)
	rows := ExtractRows(doc)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestExtractRows_ReportExportShape(t *testing.T) {
	t.Parallel()

	doc := decode(t, `{
		"results": [{
			"tables": [{
				"rows": [
					{"team_code": "803006", "date": "2025-06-01T00:00:00", "production": 5},
					{"team_code": "803007", "date": "2025-06-01T00:00:00", "production": 7}
				]
			}]
		}]
	}`)
	rows := ExtractRows(doc)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestExtractRows_BareArray(t *testing.T) {
	t.Parallel()

	doc := decode(t, `[{"equipe": "803006"}, {"equipe": "803007"}, "not-an-object"]`)
	rows := ExtractRows(doc)
	if len(rows) != 2 {
		t.Fatalf("expected non-object elements to be skipped, got %d rows", len(rows))
	}
}

func TestExtractRows_WrapperUnwrapping(t *testing.T) {
	t.Parallel()

	doc := decode(t, `{"body": {"rows": [{"equipe": "803006"}]}}`)
	rows := ExtractRows(doc)
	if len(rows) != 1 {
		t.Fatalf("expected row under wrapper, got %d", len(rows))
	}

	doc = decode(t, `{"body": [{"equipe": "803006"}]}`)
	if rows := ExtractRows(doc); len(rows) != 1 {
		t.Fatalf("expected bare array under wrapper, got %d rows", len(rows))
	}
}

func TestExtractRows_UnrecognizedShapeIsEmptyNotError(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		`{"unexpected": true}`,
		`{"results": []}`,
		`{"results": [{"tables": []}]}`,
		`"just a string"`,
		`42`,
	} {
		if rows := ExtractRows(decode(t, raw)); len(rows) != 0 {
			t.Fatalf("document %s: expected no rows, got %d", raw, len(rows))
		}
	}
}

func TestRawRow_FieldResolution(t *testing.T) {
	t.Parallel()

	legacy := RawRow{"equipe": "803006", "data": "2025-06-01", "producao": 12.5}
	current := RawRow{"team_code": "803007", "date": "2025-06-02", "production": "7.25"}
	numericCode := RawRow{"equipe": float64(803008), "data": "2025-06-03", "producao": float64(3)}

	if code, ok := legacy.TeamCode(); !ok || code != "803006" {
		t.Fatalf("legacy team code: got %q ok=%t", code, ok)
	}
	if code, ok := current.TeamCode(); !ok || code != "803007" {
		t.Fatalf("current team code: got %q ok=%t", code, ok)
	}
	if code, ok := numericCode.TeamCode(); !ok || code != "803008" {
		t.Fatalf("numeric team code: got %q ok=%t", code, ok)
	}

	if date, ok := current.Date(); !ok || date != "2025-06-02" {
		t.Fatalf("current date: got %q ok=%t", date, ok)
	}
	if legacy.ProductionValue() != 12.5 {
		t.Fatalf("legacy value: got %v", legacy.ProductionValue())
	}
	if current.ProductionValue() != 7.25 {
		t.Fatalf("string value: got %v", current.ProductionValue())
	}

	var empty RawRow = map[string]any{"producao": "not-a-number"}
	if _, ok := empty.TeamCode(); ok {
		t.Fatal("expected missing team code")
	}
	if empty.ProductionValue() != 0 {
		t.Fatalf("unparsable value should be zero, got %v", empty.ProductionValue())
	}
}
