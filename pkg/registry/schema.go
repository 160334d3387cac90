// pkg/registry/schema.go
package registry

// Document is the on-disk seed registry format.
type Document struct {
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
	Activities  []SeedActivity `json:"activities"`
}

// SeedActivity is one activity entry in the seed registry document.
type SeedActivity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"maxParticipants"`
	Participants    []string `json:"participants"`
}

// documentSchema validates the seed registry document before any entry is
// trusted. Cross-activity name uniqueness is checked separately in Go;
// JSON Schema cannot express it.
const documentSchema = `{
  "type": "object",
  "required": ["version", "activities"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "activities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "schedule", "maxParticipants"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "schedule": {"type": "string"},
          "maxParticipants": {"type": "integer", "minimum": 1},
          "participants": {
            "type": "array",
            "items": {"type": "string", "minLength": 3},
            "uniqueItems": true
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`
