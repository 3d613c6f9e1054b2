package entity

// Card is a trading-card record. Title is the natural key; uniqueness is
// checked by the lifecycle service before insert and backstopped by a
// UNIQUE constraint in the store. Optional fields are omitted from the
// wire shape when absent, never sent as null.
type Card struct {
	CardID     int64     `json:"cardid,omitempty" validate:"omitempty,min=1"`
	Title      string    `json:"title" validate:"required,max=50"`
	ManaCost   int       `json:"manacost" validate:"omitempty,min=0"`
	Power      string    `json:"power,omitempty" validate:"omitempty,max=50"`
	Toughness  string    `json:"toughness,omitempty" validate:"omitempty,max=50"`
	Link       string    `json:"link" validate:"required,uri,max=255"`
	Ability    string    `json:"ability,omitempty" validate:"omitempty,max=255"`
	FlavorText string    `json:"flavortext,omitempty" validate:"omitempty,max=255"`
	CardStatus string    `json:"cardstatus" validate:"required,max=50"`
	Subtypes   []Subtype `json:"subtypes,omitempty" validate:"omitempty,dive"`
}

// Subtype is a card classification related to cards via a join table.
// Rows in the join table are dependents of the card: written right after
// the card insert, removed right before the card delete.
type Subtype struct {
	SubtypeID int64  `json:"subtypeid" validate:"required,min=1"`
	Subtitle  string `json:"subtitle,omitempty" validate:"omitempty,max=50"`
}
