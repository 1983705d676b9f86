package utils

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// HandleError logs failure and returns it as an error with a uniform message:
//   - error   -> "Error: <message>", wrapping the original so errors.Is/As still work
//   - string  -> "Error: <string>"
//   - other   -> "Unknown error: <json>"
//
// A nil failure returns nil.
func HandleError(logger *zerolog.Logger, failure any) error {
	switch f := failure.(type) {
	case nil:
		return nil

	case error:
		logger.Error().Err(f).Msg(f.Error())
		return errors.Wrap(f, "Error")

	case string:
		logger.Error().Msg(f)
		return errors.New("Error: " + f)

	default:
		logger.Error().Interface("error", f).Msg("unknown error")
		encoded, err := json.Marshal(f)
		if err != nil {
			return errors.Errorf("Unknown error: %v", f)
		}
		return errors.Errorf("Unknown error: %s", encoded)
	}
}
