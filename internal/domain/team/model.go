package team

import (
	"fmt"
	"strings"
)

// Team is a production crew registered by the fleet administration subsystem.
// The sync pipeline only reads it to resolve canonical names to ids.
type Team struct {
	ID   int64
	Name string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// IndexByName builds the name→id lookup the aggregator resolves rows against.
// Later duplicates win, matching how the admin subsystem treats renames.
func IndexByName(teams []Team) map[string]int64 {
	index := make(map[string]int64, len(teams))
	for _, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		index[name] = t.ID
	}

	return index
}
