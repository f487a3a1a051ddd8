package journal

import "strings"

// replay applies ops per session in first-seen session order and joins
// the results.
func replay(ops []sessionOp) string {
	var (
		order    []string
		sessions = map[string][]rune{}
	)
	for _, op := range ops {
		buf, seen := sessions[op.session]
		if !seen {
			order = append(order, op.session)
		}
		switch op.Kind {
		case OpAppend:
			buf = append(buf, []rune(op.Text)...)
		case OpRemove:
			buf = buf[:len(buf)-min(op.Count, len(buf))]
		}
		sessions[op.session] = buf
	}

	var sb strings.Builder
	for _, s := range order {
		sb.WriteString(string(sessions[s]))
	}
	return sb.String()
}
