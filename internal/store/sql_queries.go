package store

const (
	listClients = `SELECT clientID, firstName, lastName
		FROM Client
		ORDER BY lastName, firstName;`

	getClient = `SELECT *
		FROM Client
		WHERE clientID = ?;`

	getAllClients = `SELECT *
		FROM Client;`

	deleteClient = `DELETE FROM Client
		WHERE clientID = ?;`

	listNotesByClient = `SELECT noteID, clientID, createdOn, noteType, content
		FROM History
		WHERE clientID = ?
		ORDER BY createdOn DESC, noteID DESC;`

	getNote = `SELECT noteID, clientID, createdOn, noteType, content
		FROM History
		WHERE noteID = ?;`

	insertNote = `INSERT INTO History (clientID, noteType, content)
		VALUES (?, ?, ?);`

	deleteNote = `DELETE FROM History
		WHERE noteID = ?;`

	getAllNoteContent = `SELECT clientID, content
		FROM History;`

	listFieldMetadata = `SELECT fieldName, dataType, isRequired, isHidden, isProtected
		FROM FieldMetadata
		ORDER BY isProtected DESC, fieldName;`

	getFieldMetadata = `SELECT fieldName, dataType, isRequired, isHidden, isProtected
		FROM FieldMetadata
		WHERE fieldName = ?;`

	insertFieldMetadata = `INSERT INTO FieldMetadata (fieldName, dataType, isRequired, isHidden, isProtected)
		VALUES (?, ?, ?, ?, ?);`

	setFieldHidden = `UPDATE FieldMetadata
		SET isHidden = ?
		WHERE fieldName = ?;`

	getHiddenFieldNames = `SELECT fieldName
		FROM FieldMetadata
		WHERE isHidden = 1;`
)
