package status

// Equal reports whether a and b have the same length and the same id at
// every position. Text and level are not compared, so an edit that keeps
// the id in place is not seen as a change.
func Equal(a, b []Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// Filter returns the messages whose id is not in ignored. The result is a
// new slice; msgs is not modified.
func Filter(msgs []Message, ignored map[string]struct{}) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if _, skip := ignored[m.ID]; skip {
			continue
		}
		out = append(out, m)
	}
	return out
}
