package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// CopyStruct copies exported fields with matching names from source to
// target. Used for model <-> domain conversions where the shapes line up.
func CopyStruct(target any, source any) error {
	if err := copier.Copy(target, source); err != nil {
		return errors.Wrap(err, "convert: copy struct")
	}
	return nil
}

// StructToJSON serializes a value with sonic. Used for debug output and
// websocket payloads where encoding speed matters more than reflection
// safety.
func StructToJSON(v any) ([]byte, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "convert: marshal")
	}
	return data, nil
}

// JSONToStruct deserializes sonic-encoded data into target.
func JSONToStruct(data []byte, target any) error {
	if err := sonic.Unmarshal(data, target); err != nil {
		return errors.Wrap(err, "convert: unmarshal")
	}
	return nil
}
