package payload

// Recognized document shapes, in priority order:
//
//	{"rows": [...]}                           direct export
//	{"results": [{"tables": [{"rows": ...}]}]} report-export wrapper
//	[...]                                      bare row array
//
// Either shape may additionally be nested one level under a generic "body"
// wrapper, a habit of some senders' HTTP action blocks.
const wrapperKey = "body"

// ExtractRows locates the tabular row array inside one decoded document.
// It never fails: a document with no recognized shape yields an empty slice,
// and whether that matters is decided across the whole payload.
func ExtractRows(doc any) []RawRow {
	if wrapped, ok := unwrap(doc); ok {
		if rows := rowsFromDocument(wrapped); len(rows) > 0 {
			return rows
		}
	}

	return rowsFromDocument(doc)
}

func unwrap(doc any) (any, bool) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, false
	}
	inner, ok := obj[wrapperKey]
	return inner, ok
}

func rowsFromDocument(doc any) []RawRow {
	switch v := doc.(type) {
	case map[string]any:
		if rows, ok := v["rows"].([]any); ok {
			return coerceRows(rows)
		}
		if rows := rowsFromReportExport(v); rows != nil {
			return rows
		}
	case []any:
		return coerceRows(v)
	}

	return nil
}

// rowsFromReportExport walks the fixed results[0].tables[0].rows path used by
// the report-export shape.
func rowsFromReportExport(doc map[string]any) []RawRow {
	results, ok := doc["results"].([]any)
	if !ok || len(results) == 0 {
		return nil
	}
	first, ok := results[0].(map[string]any)
	if !ok {
		return nil
	}
	tables, ok := first["tables"].([]any)
	if !ok || len(tables) == 0 {
		return nil
	}
	table, ok := tables[0].(map[string]any)
	if !ok {
		return nil
	}
	rows, ok := table["rows"].([]any)
	if !ok {
		return nil
	}

	return coerceRows(rows)
}

func coerceRows(items []any) []RawRow {
	out := make([]RawRow, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, RawRow(obj))
		}
	}

	return out
}
