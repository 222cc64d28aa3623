package pgrepos

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// jsonb stores any JSON-encodable value in a JSONB column.
type jsonb struct {
	v interface{}
}

func (j jsonb) Value() (driver.Value, error) {
	b, err := json.Marshal(j.v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding jsonb")
	}
	return string(b), nil
}

func (j *jsonb) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		return nil
	default:
		return errors.Errorf("jsonb: unsupported type %T", src)
	}
	return errors.Wrap(json.Unmarshal(b, j.v), "decoding jsonb")
}
