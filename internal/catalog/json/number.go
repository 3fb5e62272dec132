package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number accepts a JSON number, a numeric string or null.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*n = 0
			return nil
		}
		data = []byte(raw)
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", data)
	}

	*n = Number(value)
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

// Integer is a Number that must be whole, used for ids and counts.
type Integer int

func (i *Integer) UnmarshalJSON(data []byte) error {
	var n Number
	if err := n.UnmarshalJSON(data); err != nil {
		return err
	}

	value := n.Float()
	if value != math.Trunc(value) || math.IsInf(value, 0) || math.Abs(value) > math.MaxInt32 {
		return fmt.Errorf("invalid integer %s", bytes.TrimSpace(data))
	}

	*i = Integer(value)
	return nil
}

func (i Integer) Int() int {
	return int(i)
}
