package repository

// Filter narrows a List call to records where one recognized field equals
// the given value. Recognized fields per resource:
//
//	account: email, roleid
//	card:    title, manacost, cardstatus
//
// Unrecognized fields must be rejected by the calling layer; repositories
// refuse them with apperr.ErrValidation rather than guessing a column.
type Filter struct {
	Field string
	Value any
}
