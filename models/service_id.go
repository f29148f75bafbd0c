package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ServiceID identifies a service within a catalog. The catalog may use
// strings or integers for ids; the JSON kind is kept so that the string
// "1" and the number 1 never compare equal.
type ServiceID struct {
	value   string
	numeric bool
}

// StringID builds a string-kinded id.
func StringID(s string) ServiceID {
	return ServiceID{value: s}
}

// IntID builds a number-kinded id.
func IntID(n int64) ServiceID {
	return ServiceID{value: canonicalNumber(float64(n)), numeric: true}
}

// canonicalNumber spells a numeric id the same way whatever JSON form it
// arrived in, so 1, 1.0 and 1e0 are one id and -0 is 0.
func canonicalNumber(f float64) string {
	if f == 0 {
		f = 0 // drops the sign of -0
	}
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (id ServiceID) String() string { return id.value }

func (id ServiceID) IsNumeric() bool { return id.numeric }

func (id ServiceID) IsZero() bool { return id.value == "" }

func (id ServiceID) Equal(other ServiceID) bool {
	return id.numeric == other.numeric && id.value == other.value
}

func (id ServiceID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ServiceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ServiceID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("service id must be a string or a number: %w", err)
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return fmt.Errorf("service id %s is out of range: %w", n, err)
	}
	*id = ServiceID{value: canonicalNumber(f), numeric: true}
	return nil
}
