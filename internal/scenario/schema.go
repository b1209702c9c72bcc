package scenario

import (
	_ "embed"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDef  cue.Value
	schemaErr  error
)

// loadSchema compiles the embedded schema once per process.
func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = err
			return
		}
		schemaDef = v.LookupPath(cue.ParsePath("#Scenario"))
		schemaErr = schemaDef.Err()
	})
	return schemaCtx, schemaDef, schemaErr
}

// Validate checks YAML scenario data against the schema. filename is used
// only in error positions.
func Validate(filename string, data []byte) error {
	ctx, def, err := loadSchema()
	if err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: "schema failed to compile", Err: err}
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return &LoadError{Code: ErrCodeParse, Message: "malformed YAML", Path: filename, Err: err}
	}

	v := ctx.BuildFile(file)
	if err := v.Err(); err != nil {
		return &LoadError{Code: ErrCodeParse, Message: "malformed YAML", Path: filename, Err: err}
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: "scenario does not match schema", Path: filename, Err: err}
	}
	return nil
}
