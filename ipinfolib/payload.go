package ipinfolib

import (
	"errors"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/9seconds/ipinfo/optional"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	errNotAnObject = errors.New("payload is not a JSON object")
)

// payload is a decoded JSON object. Values are whatever encoding/json
// produces for interface{}: strings, float64, bool, nil, []interface{}
// and map[string]interface{}.
type payload map[string]interface{}

func decodePayload(data []byte) (payload, error) {
	var raw interface{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errNotAnObject
	}

	return payload(obj), nil
}

func (p payload) str(key string) optional.Value[string] {
	if value, ok := p[key].(string); ok {
		return optional.Some(value)
	}

	return optional.None[string]()
}

func (p payload) boolean(key string) optional.Value[bool] {
	switch value := p[key].(type) {
	case bool:
		return optional.Some(value)
	case string:
		if parsed, err := strconv.ParseBool(value); err == nil {
			return optional.Some(parsed)
		}
	}

	return optional.None[bool]()
}

func (p payload) float(key string) optional.Value[float64] {
	switch value := p[key].(type) {
	case float64:
		return optional.Some(value)
	case string:
		return parseFloat(value)
	}

	return optional.None[float64]()
}

func (p payload) integer(key string) optional.Value[int] {
	switch value := p[key].(type) {
	case float64:
		if value == float64(int(value)) {
			return optional.Some(int(value))
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return optional.Some(parsed)
		}
	}

	return optional.None[int]()
}

func (p payload) strings(key string) optional.Value[[]string] {
	values, ok := p[key].([]interface{})
	if !ok {
		return optional.None[[]string]()
	}

	rv := make([]string, 0, len(values))

	for _, v := range values {
		if vv, ok := v.(string); ok {
			rv = append(rv, vv)
		}
	}

	return optional.Some(rv)
}

func (p payload) object(key string) (payload, bool) {
	value, ok := p[key].(map[string]interface{})

	return payload(value), ok
}

func parseFloat(value string) optional.Value[float64] {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return optional.None[float64]()
	}

	return optional.Some(parsed)
}

func deepCopy(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		rv := make(map[string]interface{}, len(v))

		for k, item := range v {
			rv[k] = deepCopy(item)
		}

		return rv
	case payload:
		return deepCopy(map[string]interface{}(v))
	case []interface{}:
		rv := make([]interface{}, len(v))

		for i, item := range v {
			rv[i] = deepCopy(item)
		}

		return rv
	}

	return value
}
