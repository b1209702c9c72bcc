package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Subject kinds.
const (
	SubjectPublish  = "publish"
	SubjectBehavior = "behavior"
)

// Stage operators.
const (
	OpMap    = "map"
	OpFilter = "filter"
	OpScan   = "scan"
	OpTake   = "take"
)

// Scenario describes one pipeline run.
type Scenario struct {
	// Name identifies the scenario in traces and the store.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	Source Source `yaml:"source"`

	// Stages are applied in order to the source (or to the subject, when
	// one is configured).
	Stages []Stage `yaml:"stages,omitempty"`

	// Subject routes the source through a subject shared by all
	// subscribers. Empty means each subscriber subscribes to the pipeline
	// independently.
	Subject string `yaml:"subject,omitempty"`

	// Initial is the starting value of a behavior subject.
	Initial int `yaml:"initial,omitempty"`

	// Subscribers is the number of subscribers. Zero means one.
	Subscribers int `yaml:"subscribers,omitempty"`
}

// Source is a finite sequence of integers, terminated by Error when set and
// by completion otherwise.
type Source struct {
	Values []int  `yaml:"values,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Stage is one operator applied to the stream.
type Stage struct {
	Op    string `yaml:"op"`
	Fn    string `yaml:"fn,omitempty"`
	Count int    `yaml:"count,omitempty"`
	Arg   int    `yaml:"arg,omitempty"`
}

// SubscriberCount returns the effective number of subscribers.
func (s *Scenario) SubscriberCount() int {
	if s.Subscribers <= 0 {
		return 1
	}
	return s.Subscribers
}

// Load reads, validates and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: "failed to read scenario file", Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse validates and decodes scenario YAML. name is used in error
// messages.
func Parse(name string, data []byte) (*Scenario, error) {
	if err := Validate(name, data); err != nil {
		return nil, err
	}

	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: "failed to decode YAML", Path: name, Err: err}
	}

	if err := validateScenario(&s); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: err.Error(), Path: name}
	}
	return &s, nil
}

// validateScenario checks constraints the schema cannot express.
func validateScenario(s *Scenario) error {
	for i, st := range s.Stages {
		if st.Op == OpMap && st.Fn == "fail_on" && st.Arg == 0 {
			return fmt.Errorf("stage %d: fail_on requires a non-zero arg", i)
		}
		if st.Op != OpTake && st.Count != 0 {
			return fmt.Errorf("stage %d: count applies only to take", i)
		}
	}
	if s.Subject == "" && s.Initial != 0 {
		return fmt.Errorf("initial applies only to a behavior subject")
	}
	if s.Subject == SubjectPublish && s.Initial != 0 {
		return fmt.Errorf("initial applies only to a behavior subject")
	}
	return nil
}
