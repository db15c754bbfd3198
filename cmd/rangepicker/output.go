package main

import (
	"encoding/json"
	"io"

	"github.com/go-faster/errors"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return withCode(exitIO, errors.Wrap(err, "json encode"))
	}
	return nil
}
