package models

// ClientSummary is the minimal client projection used by list views and
// search results. The full record is dynamic (columns are added at runtime)
// and is represented by [ClientRecord] instead of a fixed struct.
type ClientSummary struct {
	// ClientID is the system-generated, immutable primary key.
	ClientID int64 `json:"clientID"`

	// FirstName and LastName are the two protected, always-present name
	// columns. They are never hidden and never removable.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ClientRecord is one full client row. Because the Client table's column set
// grows at runtime, the record is a column-name → value mapping rather than
// a compile-time struct. Columns preserves the result-schema column order so
// callers can render fields deterministically.
type ClientRecord struct {
	Columns []string       `json:"columns"`
	Values  map[string]any `json:"values"`
}

// Get returns the value stored under column name, or nil when the column is
// absent from the record.
func (r ClientRecord) Get(name string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[name]
}

// TableName returns the name of the database table holding client rows.
func (r ClientRecord) TableName() string {
	return "Client"
}
