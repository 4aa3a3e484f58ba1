// Package conversation defines what crosses the transport boundary: the
// callback codec that turns button data into domain commands, and the
// Reply a transport renders back to the user.
package conversation

// Option is one inline button. Data is the encoded command.
type Option struct {
	Label string
	Data  string
}

// Reply is the engine's answer to one event.
type Reply struct {
	Text    string
	Options [][]Option
	// Edit hints that the transport should replace the message carrying
	// the pressed button instead of sending a new one.
	Edit bool
}

// Column lays options out one per row.
func Column(opts ...Option) [][]Option {
	rows := make([][]Option, len(opts))
	for i, o := range opts {
		rows[i] = []Option{o}
	}
	return rows
}

// Grid lays options out perRow to a row; the last row may be shorter.
func Grid(opts []Option, perRow int) [][]Option {
	if perRow <= 0 {
		perRow = 1
	}
	var rows [][]Option
	for i := 0; i < len(opts); i += perRow {
		end := min(i+perRow, len(opts))
		row := make([]Option, end-i)
		copy(row, opts[i:end])
		rows = append(rows, row)
	}
	return rows
}

// Flatten returns the options in reading order.
func (r Reply) Flatten() []Option {
	var out []Option
	for _, row := range r.Options {
		out = append(out, row...)
	}
	return out
}
