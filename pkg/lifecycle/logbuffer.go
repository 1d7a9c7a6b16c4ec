package lifecycle

// LogBuffer is the ordered list of status lines for the current job.
// A positive limit keeps only the newest limit lines.
type LogBuffer struct {
	lines []string
	limit int
}

// NewLogBuffer returns an empty buffer. limit <= 0 means unbounded.
func NewLogBuffer(limit int) *LogBuffer {
	if limit < 0 {
		limit = 0
	}
	return &LogBuffer{limit: limit}
}

// Append adds line at the end.
func (b *LogBuffer) Append(line string) {
	b.lines = append(b.lines, line)
	if b.limit > 0 && len(b.lines) > b.limit {
		drop := len(b.lines) - b.limit
		b.lines = append(b.lines[:0], b.lines[drop:]...)
	}
}

// Lines returns a copy of the buffered lines in insertion order.
func (b *LogBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int {
	return len(b.lines)
}

// Clear empties the buffer.
func (b *LogBuffer) Clear() {
	b.lines = nil
}
