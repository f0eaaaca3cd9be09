package checks

// Spec is the declarative form of a check as written in a suite file.
// Which fields apply depends on Type; see the builders in registry.go.
type Spec struct {
	Type     string   `yaml:"type" json:"type"`
	Key      string   `yaml:"key,omitempty" json:"key,omitempty"`
	Keys     []string `yaml:"keys,omitempty" json:"keys,omitempty"`
	Path     string   `yaml:"path,omitempty" json:"path,omitempty"`
	Value    any      `yaml:"value,omitempty" json:"value,omitempty"`
	Null     bool     `yaml:"null,omitempty" json:"null,omitempty"` // json_path: value must be JSON null
	Pattern  string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Contains string   `yaml:"contains,omitempty" json:"contains,omitempty"`
	Selector string   `yaml:"selector,omitempty" json:"selector,omitempty"`
	XPath    string   `yaml:"xpath,omitempty" json:"xpath,omitempty"`
	Header   string   `yaml:"header,omitempty" json:"header,omitempty"`
	Status   int      `yaml:"status,omitempty" json:"status,omitempty"`
	// Range is an inclusive "min-max" status range, e.g. "200-299".
	Range  string         `yaml:"range,omitempty" json:"range,omitempty"`
	Schema map[string]any `yaml:"schema,omitempty" json:"schema,omitempty"`
	Checks []Spec         `yaml:"checks,omitempty" json:"checks,omitempty"`
}
