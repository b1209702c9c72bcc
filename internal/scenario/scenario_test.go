package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioPath(name string) string {
	return filepath.Join("..", "..", "testdata", "scenarios", name)
}

func TestLoad_ExampleScenarios(t *testing.T) {
	tests := []struct {
		file        string
		name        string
		stages      int
		subject     string
		subscribers int
	}{
		{"squares.yaml", "squares", 2, "", 1},
		{"fused_maps.yaml", "fused_maps", 3, "", 1},
		{"fail_on.yaml", "fail_on", 2, "", 1},
		{"source_error.yaml", "source_error", 1, "", 1},
		{"take.yaml", "take", 2, "", 1},
		{"multicast.yaml", "multicast", 1, SubjectPublish, 2},
		{"behavior.yaml", "behavior", 1, SubjectBehavior, 2},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := Load(scenarioPath(tt.file))
			require.NoError(t, err)
			assert.Equal(t, tt.name, s.Name)
			assert.Len(t, s.Stages, tt.stages)
			assert.Equal(t, tt.subject, s.Subject)
			assert.Equal(t, tt.subscribers, s.SubscriberCount())
		})
	}
}

func TestLoad_DecodesFields(t *testing.T) {
	s, err := Load(scenarioPath("source_error.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []int{5, 6}, s.Source.Values)
	assert.Equal(t, "upstream closed", s.Source.Error)
	assert.Equal(t, Stage{Op: OpScan, Fn: "sum"}, s.Stages[0])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(scenarioPath("does_not_exist.yaml"))
	require.Error(t, err)
	assert.True(t, IsLoadError(err, ErrCodeRead))
}

func TestLoad_SchemaRejectsWrongFunction(t *testing.T) {
	_, err := Load(scenarioPath("invalid_stage.yaml"))
	require.Error(t, err)
	assert.True(t, IsLoadError(err, ErrCodeSchema), "got %v", err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{
			name: "malformed yaml",
			yaml: "name: [",
			code: ErrCodeParse,
		},
		{
			name: "missing name",
			yaml: "source: {values: [1]}",
			code: ErrCodeSchema,
		},
		{
			name: "unknown field",
			yaml: "name: x\nsource: {values: [1]}\nsourse: {}",
			code: ErrCodeSchema,
		},
		{
			name: "unknown op",
			yaml: "name: x\nsource: {values: [1]}\nstages: [{op: flatmap}]",
			code: ErrCodeSchema,
		},
		{
			name: "take without count",
			yaml: "name: x\nsource: {values: [1]}\nstages: [{op: take}]",
			code: ErrCodeSchema,
		},
		{
			name: "non-integer value",
			yaml: "name: x\nsource: {values: [a]}",
			code: ErrCodeSchema,
		},
		{
			name: "too many subscribers",
			yaml: "name: x\nsource: {values: [1]}\nsubscribers: 100",
			code: ErrCodeSchema,
		},
		{
			name: "fail_on without arg",
			yaml: "name: x\nsource: {values: [1]}\nstages: [{op: map, fn: fail_on}]",
			code: ErrCodeInvalid,
		},
		{
			name: "count on map",
			yaml: "name: x\nsource: {values: [1]}\nstages: [{op: map, fn: inc, count: 2}]",
			code: ErrCodeInvalid,
		},
		{
			name: "initial without behavior subject",
			yaml: "name: x\nsource: {values: [1]}\ninitial: 3",
			code: ErrCodeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline.yaml", []byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, IsLoadError(err, tt.code), "want %s, got %v", tt.code, err)
		})
	}
}

func TestLoadError_Format(t *testing.T) {
	err := &LoadError{Code: ErrCodeInvalid, Message: "bad stage", Path: "x.yaml"}
	assert.Equal(t, "x.yaml: INVALID_SCENARIO: bad stage", err.Error())
	assert.False(t, IsLoadError(assert.AnError, ErrCodeInvalid))
}
