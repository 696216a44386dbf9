package helpers

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Truncate returns the first n user-perceived characters of s. Values that are not
// strings are formatted first.
func Truncate(s interface{}, n int) string {
	str, ok := s.(string)
	if !ok {
		if s == nil {
			return ""
		}
		str = fmt.Sprint(s)
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(str)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String()
}
