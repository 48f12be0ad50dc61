package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one object in the output manifest.
type ManifestEntry struct {
	Object   string   `json:"object"`
	Locator  string   `json:"locator,omitempty"`
	Order    string   `json:"rotate_order,omitempty"`
	Samples  int      `json:"samples"`
	Preview  string   `json:"preview,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing a run. previews maps object
// names to preview image paths relative to the manifest.
func WriteManifest(path string, results []Result, previews map[string]string) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Object:   r.Object,
			Samples:  r.Samples,
			Preview:  previews[r.Object],
			Warnings: r.Warnings,
			Error:    r.Error,
		}
		if r.Success {
			e.Locator = r.Locator.Name
			e.Order = r.Locator.RotationOrder.String()
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
