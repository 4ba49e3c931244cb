package query

import (
	"fmt"
	"math"
)

// ValueError reports a caller-supplied value that has no JSON representation,
// e.g. a non-finite float.
type ValueError struct {
	Value interface{}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("value %v (%[1]T) cannot be represented in JSON", e.Value)
}

// jsonValue vets a caller-supplied primitive before it's placed in a request
// body. Non-finite floats would otherwise fail deep inside json.Marshal with
// an error that doesn't name the offending field value. Slices are checked
// element-wise, order untouched; maps are checked value-wise.
func jsonValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ValueError{Value: v}
		}
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, &ValueError{Value: v}
		}
	case []interface{}:
		converted := make([]interface{}, 0, len(v))
		for _, element := range v {
			c, err := jsonValue(element)
			if err != nil {
				return nil, err
			}

			converted = append(converted, c)
		}

		return converted, nil
	case map[string]interface{}:
		converted := make(map[string]interface{}, len(v))
		for key, element := range v {
			c, err := jsonValue(element)
			if err != nil {
				return nil, err
			}

			converted[key] = c
		}

		return converted, nil
	}

	return value, nil
}

func jsonValues(values []interface{}) ([]interface{}, error) {
	converted, err := jsonValue(values)
	if err != nil {
		return nil, err
	}

	return converted.([]interface{}), nil
}
