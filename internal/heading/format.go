package heading

// DefaultFormatID is the id of the default block format.
const DefaultFormatID = "paragraph"

// Format describes a block format.
type Format struct {
	// ID is the model element name of blocks in this format.
	ID string

	// ViewTag is the HTML tag the block renders as.
	ViewTag string

	// Label is the display name.
	Label string
}

// IsZero returns true for the zero Format.
func (f Format) IsZero() bool {
	return f == Format{}
}

// String returns the format id.
func (f Format) String() string {
	return f.ID
}

// builtinDefault is used when a registry has no formats at all.
var builtinDefault = Format{ID: DefaultFormatID, ViewTag: "p", Label: "Paragraph"}
