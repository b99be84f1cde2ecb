package valueio

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// decodeJSON keeps numbers as json.Number. Integers snapshot as Int, or as Uint
// above the int64 range, and integers too large for either keep their exact
// text as a Number scalar; none is rounded through float64.
func decodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decoding json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decoding json: trailing data after the document")
	}
	return v, nil
}
