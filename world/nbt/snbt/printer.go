package snbt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/df-mc/mcdbcodec/world/nbt"
)

// String renders v in dense form: no whitespace beyond what's required to
// separate tokens. Parsing String's output must reproduce v exactly
// round-trip, modulo whitespace.
func String(v any) string {
	var sb strings.Builder
	writeValue(&sb, v, "", "")
	return sb.String()
}

// StringIndent renders v in the indented "alternate form", using indent as
// the per-level indentation string (e.g. two spaces).
func StringIndent(v any, indent string) string {
	var sb strings.Builder
	writeValue(&sb, v, indent, "")
	return sb.String()
}

func writeValue(sb *strings.Builder, v any, indent, depth string) {
	switch t := v.(type) {
	case int8:
		sb.WriteString(strconv.FormatInt(int64(t), 10))
		sb.WriteByte('b')
	case int16:
		sb.WriteString(strconv.FormatInt(int64(t), 10))
		sb.WriteByte('s')
	case int32:
		sb.WriteString(strconv.FormatInt(int64(t), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(t, 10))
		sb.WriteByte('l')
	case float32:
		sb.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 32))
		sb.WriteByte('f')
	case float64:
		sb.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		sb.WriteByte('d')
	case string:
		writeQuotedString(sb, t)
	case []byte:
		writeTypedArray(sb, "B", len(t), func(i int) string { return strconv.Itoa(int(int8(t[i]))) + "b" })
	case []int32:
		writeTypedArray(sb, "I", len(t), func(i int) string { return strconv.Itoa(int(t[i])) })
	case []int64:
		writeTypedArray(sb, "L", len(t), func(i int) string { return strconv.FormatInt(t[i], 10) + "l" })
	case *nbt.List:
		writeList(sb, t, indent, depth)
	case *nbt.Compound:
		writeCompound(sb, t, indent, depth)
	default:
		sb.WriteString(fmt.Sprintf("%v", t))
	}
}

func writeQuotedString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

func writeTypedArray(sb *strings.Builder, prefix string, n int, elem func(i int) string) {
	sb.WriteByte('[')
	sb.WriteString(prefix)
	sb.WriteByte(';')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(elem(i))
	}
	sb.WriteByte(']')
}

func writeList(sb *strings.Builder, l *nbt.List, indent, depth string) {
	if len(l.Values) == 0 {
		sb.WriteString("[]")
		return
	}
	nextDepth := depth + indent
	sb.WriteByte('[')
	for i, v := range l.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(nextDepth)
		}
		writeValue(sb, v, indent, nextDepth)
	}
	if indent != "" {
		sb.WriteByte('\n')
		sb.WriteString(depth)
	}
	sb.WriteByte(']')
}

func writeCompound(sb *strings.Builder, c *nbt.Compound, indent, depth string) {
	keys := c.Keys()
	if len(keys) == 0 {
		sb.WriteString("{}")
		return
	}
	nextDepth := depth + indent
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		if indent != "" {
			sb.WriteByte('\n')
			sb.WriteString(nextDepth)
		}
		writeKey(sb, k)
		sb.WriteByte(':')
		if indent != "" {
			sb.WriteByte(' ')
		}
		v, _ := c.Get(k)
		writeValue(sb, v, indent, nextDepth)
	}
	if indent != "" {
		sb.WriteByte('\n')
		sb.WriteString(depth)
	}
	sb.WriteByte('}')
}

func writeKey(sb *strings.Builder, k string) {
	if isBareIdentifier(k) {
		sb.WriteString(k)
		return
	}
	writeQuotedString(sb, k)
}

func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isUnquotedChar(s[i]) {
			return false
		}
	}
	return true
}
