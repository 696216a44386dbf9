package helpers

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// JSONParseSafe parses value as JSON. With a primary body the parsed value becomes its
// context; without one the parsed value is returned. Invalid JSON renders the inverse body.
func JSONParseSafe(value interface{}, b *Block) interface{} {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			return b.Else()
		}
		s = fmt.Sprint(value)
	}

	if !gjson.Valid(s) {
		return b.Else()
	}
	parsed := gjson.Parse(s).Value()

	if b != nil && b.Fn != nil {
		return b.render(parsed, nil)
	}
	return parsed
}
