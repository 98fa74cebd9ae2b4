package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID is a record identifier normalized to its string form.
//
// Legacy festival data stores the same identifier as a string, a number or an
// extended-JSON object ({"$oid": "..."}) depending on which tool wrote it.
// ID accepts all three so comparisons are always string against string.
type ID string

// NormalizeID trims surrounding whitespace and quotes from an identifier
func NormalizeID(s string) ID {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return ID(s)
}

// String returns the normalized string value
func (id ID) String() string {
	return string(id)
}

// Equal compares two ids after normalization
func (id ID) Equal(other ID) bool {
	return NormalizeID(string(id)) == NormalizeID(string(other))
}

// IsZero reports whether the id is empty after normalization
func (id ID) IsZero() bool {
	return NormalizeID(string(id)) == ""
}

// UnmarshalJSON implements json.Unmarshaler for ID
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = NormalizeID(s)
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		*id = NormalizeID(n.String())
		return nil
	}

	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(data, &oid); err == nil && oid.OID != "" {
		*id = NormalizeID(oid.OID)
		return nil
	}

	return fmt.Errorf("ID: cannot unmarshal %s", string(data))
}

// UnmarshalYAML implements yaml.Unmarshaler for ID
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*id = ""
			return nil
		}
		*id = NormalizeID(node.Value)
		return nil
	case yaml.MappingNode:
		var oid struct {
			OID string `yaml:"$oid"`
		}
		if err := node.Decode(&oid); err != nil {
			return err
		}
		*id = NormalizeID(oid.OID)
		return nil
	default:
		return fmt.Errorf("ID: cannot unmarshal yaml node at line %d", node.Line)
	}
}
