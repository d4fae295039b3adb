// Package fields provides the built-in field types for admin scaffolding:
// Key, Text, Textarea, Number, Boolean, Email and Enum. Each embeds
// *field.Field, declares the attributes it accepts and overrides the page hooks
// its templates need. Registry returns a field.TypeRegistry holding all of
// them so definitions can refer to types by name.
package fields
