// internal/api/respond.go
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	commonerrors "internship-recommender/internal/common/errors"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, commonerrors.NewPayloadTooLargeError(tooLarge.Limit)
		}
		return nil, commonerrors.NewMalformedRequestError(err)
	}
	return data, nil
}

// decodeObject decodes a JSON object body. An empty body or a JSON null is
// an empty object; numbers stay json.Number.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	data, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]interface{}{}, nil
	}

	var v interface{}
	if err := decodeNumbers(data, &v); err != nil {
		return nil, commonerrors.NewMalformedRequestError(err)
	}
	switch body := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return body, nil
	default:
		return nil, commonerrors.NewMalformedRequestError(fmt.Errorf("expected a JSON object, got %T", v))
	}
}

// decodeLenient never fails: anything that is not a JSON object reads as {}.
func decodeLenient(w http.ResponseWriter, r *http.Request) map[string]interface{} {
	body, err := decodeObject(w, r)
	if err != nil {
		return map[string]interface{}{}
	}
	return body
}

func decodeNumbers(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
