package api

import (
	"encoding/json"

	"github.com/juju/errors"
	"github.com/mitchellh/mapstructure"
)

// decodePayload parses body as a JSON object and decodes it into out, which
// must be a pointer to a struct with mapstructure tags. Keys out has no field
// for are returned rather than rejected.
func decodePayload(body string, out any) ([]string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, errors.Annotate(err, "parsing request body")
	}

	if raw == nil {
		return nil, errors.NotValidf("request body is not an object")
	}

	var md mapstructure.Metadata

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   out,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Annotate(err, "decoding request body")
	}

	return md.Unused, nil
}
