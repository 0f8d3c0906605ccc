package models

// DataType is the declared type of a dynamic client field.
type DataType string

const (
	// FieldText is a free-text field.
	FieldText DataType = "TEXT"

	// FieldDate is a calendar-date field. Values are stored canonically as
	// YYYY-MM-DD strings.
	FieldDate DataType = "DATE"
)

// Valid reports whether t is one of the supported field data types.
func (t DataType) Valid() bool {
	return t == FieldText || t == FieldDate
}

// Protected field names. These three columns always exist on the Client
// table, are never removable and are never offered for hiding by the UI.
const (
	FieldNameClientID  = "clientID"
	FieldNameFirstName = "firstName"
	FieldNameLastName  = "lastName"
)

// FieldMetadata is one row of the FieldMetadata table. The table mirrors
// the live Client column set one-to-one: every column has exactly one
// metadata row, created at startup for pre-existing columns and on every
// successful field addition. Rows are never deleted.
type FieldMetadata struct {
	// FieldName is the Client column name this row describes.
	FieldName string `json:"fieldName"`

	// DataType is TEXT or DATE.
	DataType DataType `json:"dataType"`

	// IsRequired marks the field as mandatory on the add/edit form. For
	// custom fields this is enforced at the application layer only; the
	// underlying column stays nullable.
	IsRequired bool `json:"isRequired"`

	// IsHidden removes the field from the details view and from search.
	IsHidden bool `json:"isHidden"`

	// IsProtected is true only for clientID, firstName and lastName.
	IsProtected bool `json:"isProtected"`
}

// TableName returns the name of the database table holding field metadata.
func (f FieldMetadata) TableName() string {
	return "FieldMetadata"
}
