package content

// ColumnPosition is a horizontal placement in the 8-column landing grid.
// Integer positions 1 through 8 map to ColumnFirst through ColumnLast; the
// string aliases "first", "middle" and "last" cover the named positions.
// ColumnMiddle has no integer form.
type ColumnPosition int

const (
	ColumnFirst ColumnPosition = iota + 1
	Column2
	Column3
	Column4
	Column5
	Column6
	Column7
	ColumnLast
	ColumnMiddle
)

// String returns the content-document spelling of the position.
func (p ColumnPosition) String() string {
	switch p {
	case ColumnFirst:
		return "first"
	case ColumnMiddle:
		return "middle"
	case ColumnLast:
		return "last"
	case Column2, Column3, Column4, Column5, Column6, Column7:
		return string('0' + rune(p))
	default:
		return "invalid"
	}
}

// ColumnRange is the start/end placement of a field in the grid.
type ColumnRange struct {
	Start ColumnPosition
	End   ColumnPosition
}

// Validation rule kinds understood by the decoder.
const (
	ValidationEmail  = "email"
	ValidationFilled = "filled"
)

// ValidationSpec is one declared validation rule. Message is only set for
// "filled" rules and carries the error text shown when the rule fails.
type ValidationSpec struct {
	Kind    string
	Message string
}

// SubmitLabels holds the submit-button label for each submission status.
type SubmitLabels struct {
	Waiting    string
	Submitting string
	Error      string
	Submitted  string
}

// FieldSpec is the closed union of field descriptions a document can
// declare. Consumers switch exhaustively over TextField and CheckboxField.
type FieldSpec interface {
	// FieldID returns the field's unique identifier.
	FieldID() string
	// Columns returns the field's placement in the layout grid.
	Columns() ColumnRange

	isFieldSpec()
}

// TextField describes a single-line text input.
type TextField struct {
	ID          string
	Title       string
	Layout      ColumnRange
	Description string // optional; empty when the document omits it
	Validation  []ValidationSpec
}

func (f TextField) FieldID() string { return f.ID }

func (f TextField) Columns() ColumnRange { return f.Layout }

func (TextField) isFieldSpec() {}

// CheckboxField describes a checkbox input. RequiredMessage, when non-empty,
// means the box must be checked before submission and carries the error text
// shown when it is not.
type CheckboxField struct {
	ID              string
	Layout          ColumnRange
	Description     string
	RequiredMessage string
}

func (f CheckboxField) FieldID() string { return f.ID }

func (f CheckboxField) Columns() ColumnRange { return f.Layout }

func (CheckboxField) isFieldSpec() {}

// FormDocument is the decoded landing-page content: hero copy, the ordered
// field list and the submission endpoint. It is immutable once decoded.
type FormDocument struct {
	// Hero holds the hero copy as ordered markdown blocks.
	Hero          []string
	SubmissionURL string
	SubmitLabels  SubmitLabels
	// Autofocus is the id of the field that should receive focus on load.
	Autofocus string
	Fields    []FieldSpec
}

// Field returns the field declared with the given id.
func (d *FormDocument) Field(id string) (FieldSpec, bool) {
	if d == nil {
		return nil, false
	}
	for _, field := range d.Fields {
		if field.FieldID() == id {
			return field, true
		}
	}
	return nil, false
}
