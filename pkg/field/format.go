package field

// Formatter renders a field value without going through templates. context is
// whatever the descriptor's FormatInput hook returns alongside the value,
// the bound record by default; args are the extra arguments given to
// SetFormat.
type Formatter func(value any, context any, args ...any) (string, error)

type format struct {
	fn   Formatter
	args []any
}

// SetFormat attaches a custom formatter. While one is set Render returns the
// formatter output and skips template resolution. A nil fn clears it.
func (f *Field) SetFormat(fn Formatter, args ...any) *Field {
	if fn == nil {
		f.format = nil
		return f
	}
	f.format = &format{fn: fn, args: append([]any(nil), args...)}
	return f
}

// HasFormat reports whether a custom formatter is attached.
func (f *Field) HasFormat() bool {
	return f.format != nil
}

func (f *Field) callFormatter(value, context any) (string, error) {
	return f.format.fn(value, context, f.format.args...)
}
