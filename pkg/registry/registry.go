// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LoadDocument reads and validates a seed registry document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// ParseDocument validates raw JSON against the document schema and decodes it.
func ParseDocument(data []byte) (*Document, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("seed registry validation failed: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return nil, fmt.Errorf("seed registry document is invalid: %s", strings.Join(details, "; "))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed registry decode failed: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Activities))
	for _, a := range doc.Activities {
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("seed registry document is invalid: duplicate activity name %q", a.Name)
		}
		seen[a.Name] = struct{}{}
	}

	return &doc, nil
}

// Builtin returns the default Mergington High seed registry.
func Builtin() *Document {
	return &Document{
		Version:     "1.0",
		LastUpdated: "2024-09-02",
		Activities: []SeedActivity{
			{
				Name:            "Chess Club",
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
			{
				Name:            "Programming Class",
				Description:     "Learn programming fundamentals and build software projects",
				Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 20,
				Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
			},
			{
				Name:            "Soccer Team",
				Description:     "Join the school soccer team and compete in local leagues",
				Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
				MaxParticipants: 18,
				Participants:    []string{"alex@mergington.edu", "jordan@mergington.edu"},
			},
			{
				Name:            "Drama Club",
				Description:     "Act in plays and improve your stage presence",
				Schedule:        "Tuesdays, 3:30 PM - 5:00 PM",
				MaxParticipants: 15,
				Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
			},
			{
				Name:            "Science Club",
				Description:     "Conduct experiments and explore scientific concepts",
				Schedule:        "Thursdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 16,
				Participants:    []string{"oliver@mergington.edu"},
			},
			{
				Name:            "Art Studio",
				Description:     "Express yourself through painting, drawing and sculpture",
				Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
				MaxParticipants: 14,
				Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
			},
		},
	}
}
