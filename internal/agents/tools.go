package agents

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/agent-hub/internal/registry"
)

// Catalog is the subset of the tool registry used for attach-time validation.
type Catalog interface {
	Lookup(key string) (registry.ToolMetadata, bool)
	ValidateConfig(key string, config map[string]any) error
}

// ValidateEntry checks a single entry against the catalog. Config is
// validated against the key's schema only when the entry is served by the
// key's own handler.
func ValidateEntry(catalog Catalog, entry ToolEntry) error {
	if strings.TrimSpace(entry.Key) == "" {
		return fmt.Errorf("%w: tool key is required", ErrInvalidInput)
	}
	if _, ok := catalog.Lookup(entry.Key); !ok {
		return fmt.Errorf("%w: unknown tool key %q", ErrConfiguration, entry.Key)
	}
	if entry.HandlerName() != entry.Key {
		return nil
	}
	if err := catalog.ValidateConfig(entry.Key, entry.Config); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// ValidateTools checks every entry and rejects duplicate keys.
func ValidateTools(catalog Catalog, entries []ToolEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := ValidateEntry(catalog, e); err != nil {
			return err
		}
		if _, dup := seen[e.Key]; dup {
			return fmt.Errorf("%w: %s", ErrConflict, e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	return nil
}

// AttachTool returns entries with entry appended.
func AttachTool(catalog Catalog, entries []ToolEntry, entry ToolEntry) ([]ToolEntry, error) {
	if err := ValidateEntry(catalog, entry); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Key == entry.Key {
			return nil, fmt.Errorf("%w: %s", ErrConflict, entry.Key)
		}
	}
	if entry.Config == nil {
		entry.Config = map[string]any{}
	}

	out := make([]ToolEntry, 0, len(entries)+1)
	out = append(out, entries...)
	return append(out, entry), nil
}

// DetachTool returns entries without key along with the removed entry.
func DetachTool(entries []ToolEntry, key string) ([]ToolEntry, ToolEntry, error) {
	for i, e := range entries {
		if e.Key == key {
			out := make([]ToolEntry, 0, len(entries)-1)
			out = append(out, entries[:i]...)
			out = append(out, entries[i+1:]...)
			return out, e, nil
		}
	}
	return nil, ToolEntry{}, fmt.Errorf("%w: %s", ErrToolNotFound, key)
}

func normalizeTools(entries []ToolEntry) []ToolEntry {
	if entries == nil {
		return []ToolEntry{}
	}
	for i := range entries {
		if entries[i].Config == nil {
			entries[i].Config = map[string]any{}
		}
	}
	return entries
}
