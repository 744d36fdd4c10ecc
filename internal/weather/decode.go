package weather

import (
	"github.com/go-viper/mapstructure/v2"
)

// decode converts a decoded JSON document into T using its json tags.
// Weak typing lets numeric strings and float-encoded integers through.
// Unknown keys are ignored and missing keys leave zero values.
func decode[T any](doc any) (*T, error) {
	var result T

	config := &mapstructure.DecoderConfig{
		Result:           &result,
		WeaklyTypedInput: true,
		TagName:          "json",
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(doc); err != nil {
		return nil, err
	}

	return &result, nil
}
