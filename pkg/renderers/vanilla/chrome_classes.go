package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage        ChromeClass = "fieldkit-page"
	ClassTable       ChromeClass = "fieldkit-table"
	ClassField       ChromeClass = "fieldkit-field"
	ClassLabel       ChromeClass = "fieldkit-label"
	ClassControl     ChromeClass = "fieldkit-control"
	ClassDescription ChromeClass = "fieldkit-description"
	ClassActions     ChromeClass = "fieldkit-actions"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":        string(ClassPage),
		"table":       string(ClassTable),
		"field":       string(ClassField),
		"label":       string(ClassLabel),
		"control":     string(ClassControl),
		"description": string(ClassDescription),
		"actions":     string(ClassActions),
	}
}
