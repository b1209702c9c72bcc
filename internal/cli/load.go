package cli

import (
	"errors"

	"github.com/roach88/rxcore/internal/scenario"
)

// loadCodes maps scenario load error codes to CLI error codes.
var loadCodes = map[string]string{
	scenario.ErrCodeRead:            ErrCodeNotFound,
	scenario.ErrCodeParse:           ErrCodeParse,
	scenario.ErrCodeSchema:          ErrCodeSchema,
	scenario.ErrCodeInvalid:         ErrCodeInvalid,
	scenario.ErrCodeUnknownFunction: ErrCodeUnknownFn,
}

// loadScenario loads path and reports any failure through f. The returned
// error carries the exit code: ExitCommandError when the file cannot be
// read, ExitFailure when its content is invalid.
func loadScenario(f *OutputFormatter, path string) (*scenario.Scenario, error) {
	s, err := scenario.Load(path)
	if err == nil {
		f.VerboseLog("Loaded scenario %q from %s", s.Name, path)
		return s, nil
	}
	return nil, reportScenarioError(f, err)
}

// reportScenarioError outputs err and wraps it with the matching exit code.
func reportScenarioError(f *OutputFormatter, err error) error {
	var le *scenario.LoadError
	if !errors.As(err, &le) {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeGeneric, err)
	}

	code, ok := loadCodes[le.Code]
	if !ok {
		code = ErrCodeGeneric
	}
	var details any
	if le.Err != nil {
		details = le.Err.Error()
	}
	_ = f.Error(code, le.Message, details)

	if le.Code == scenario.ErrCodeRead {
		return WrapExitError(ExitCommandError, code, err)
	}
	return WrapExitError(ExitFailure, code, err)
}
