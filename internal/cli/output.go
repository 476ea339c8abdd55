package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Failure is the only shape printed when a command does not succeed.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewFailure(err error) Failure {
	return Failure{Success: false, Error: err.Error()}
}

// Execute runs op and prints exactly one JSON object to w: op's result, or a
// Failure carrying the error text. A panic inside op is recovered and printed
// as a Failure. The returned exit code is 0 only when op succeeded.
func Execute(w io.Writer, op func() (any, error)) int {
	code := ExitSuccess
	result, err := safely(op)
	if err != nil {
		log.Err(err).Msg("command failed")
		result, code = NewFailure(err), ExitFailure
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Err(err).Msg("failed to encode result")
		payload, _ = json.Marshal(NewFailure(err))
		code = ExitFailure
	}
	if _, err := fmt.Fprintln(w, string(payload)); err != nil {
		log.Err(err).Msg("failed to write result")
		return ExitFailure
	}
	return code
}

// Fail prints a Failure for err and returns the failure exit code. It is used
// before a command has anything to execute, such as on a usage error.
func Fail(w io.Writer, err error) int {
	return Execute(w, func() (any, error) { return nil, err })
}

func safely(op func() (any, error)) (result any, returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("stack", string(debug.Stack())).Msgf("Recovered from panic: %v", r)
			result = nil
			returnError = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	return op()
}
