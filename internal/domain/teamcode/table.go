package teamcode

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

// The shipped table covers the codes the upstream automation tool currently
// emits. Operators can point TEAM_CODE_MAP_PATH at a replacement file to
// extend it without a deploy.
//
//go:embed teamcodes.json
var embeddedTable []byte

// Entry maps one external code to the canonical team name used by the fleet
// administration subsystem.
type Entry struct {
	Code string `json:"code" validate:"required"`
	Team string `json:"team" validate:"required"`
}

// Table resolves external team codes to canonical team names.
type Table struct {
	teamByCode map[string]string
}

// Load builds the table from the file at path, or from the embedded default
// when path is empty.
func Load(path string) (*Table, error) {
	raw := embeddedTable
	if strings.TrimSpace(path) != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read team code map %s: %w", path, err)
		}
		raw = fileRaw
	}

	var entries []Entry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse team code map: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("team code map is empty")
	}

	validate := validator.New()
	teamByCode := make(map[string]string, len(entries))
	for idx, entry := range entries {
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("team code map entry %d: %w", idx, err)
		}
		teamByCode[strings.TrimSpace(entry.Code)] = strings.TrimSpace(entry.Team)
	}

	return &Table{teamByCode: teamByCode}, nil
}

// Normalize maps an external code to its canonical team name. Exact match
// wins; otherwise one trailing letter suffix is stripped and the lookup
// retried. Unknown codes pass through unchanged and fail team resolution
// downstream, which is the expected path for retired crews.
func (t *Table) Normalize(code string) string {
	code = strings.TrimSpace(code)
	if name, ok := t.teamByCode[code]; ok {
		return name
	}

	if stripped, ok := stripSuffixLetter(code); ok {
		if name, ok := t.teamByCode[stripped]; ok {
			return name
		}
	}

	return code
}

// Len reports how many codes the table knows, for startup logging.
func (t *Table) Len() int {
	return len(t.teamByCode)
}

func stripSuffixLetter(code string) (string, bool) {
	if len(code) < 2 {
		return "", false
	}

	last := code[len(code)-1]
	if (last >= 'a' && last <= 'z') || (last >= 'A' && last <= 'Z') {
		return code[:len(code)-1], true
	}

	return "", false
}
