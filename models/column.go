package models

// Column describes one column of a live table as reported by SQLite's
// table_info pragma. Operations that accept caller-supplied field names
// filter them against this introspected set, never against a compile-time
// struct, because the Client column set grows at runtime.
type Column struct {
	// CID is the column's ordinal position in the table.
	CID int `json:"cid"`

	// Name is the column name.
	Name string `json:"name"`

	// Type is the declared SQL type (TEXT, DATE, INTEGER, ...).
	Type string `json:"type"`

	// NotNull reports whether the column carries a NOT NULL constraint.
	NotNull bool `json:"notnull"`

	// DefaultValue is the declared default, nil when none.
	DefaultValue any `json:"dflt_value"`

	// IsPrimaryKey reports whether the column is part of the primary key.
	IsPrimaryKey bool `json:"pk"`
}
