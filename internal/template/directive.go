package template

import "strings"

// splitDirective decodes a raw attribute name. argOffset is the byte offset
// of the argument inside raw, or -1 when there is none.
func splitDirective(raw string) (name string, bound bool, arg string, argOffset int) {
	var rest string
	offset := 0
	switch {
	case strings.HasPrefix(raw, ":"):
		name, rest, offset = "bind", raw[1:], 1
	case strings.HasPrefix(raw, "@"):
		name, rest, offset = "on", raw[1:], 1
	case strings.HasPrefix(raw, "#"):
		name, rest, offset = "slot", raw[1:], 1
	case strings.HasPrefix(raw, "v-"):
		body := raw[2:]
		dirName, dirArg, hasArg := strings.Cut(body, ":")
		dirName, _, _ = strings.Cut(dirName, ".")
		if !hasArg {
			return dirName, true, "", -1
		}
		name, rest, offset = dirName, dirArg, 2+len(dirName)+1
	default:
		return raw, false, "", -1
	}
	arg = rest
	// dynamic arguments keep their brackets; modifiers follow them
	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "]"); end >= 0 {
			arg = rest[:end+1]
		}
	} else if i := strings.IndexByte(rest, '.'); i >= 0 {
		arg = rest[:i]
	}
	if arg == "" {
		return name, true, "", -1
	}
	return name, true, arg, offset
}
