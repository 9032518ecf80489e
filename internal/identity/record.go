package identity

// Role names one of the two roster positions the engine resolves against.
type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// Roles returns the roster roles in resolution order. Primary wins
// classification ties against secondary, so the order here is load-bearing.
func Roles() []Role {
	return []Role{RolePrimary, RoleSecondary}
}

// ParseRole maps a user-supplied role name to a Role.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RolePrimary, RoleSecondary:
		return Role(value), true
	}
	return "", false
}

// Field names one descriptive attribute of an identity record.
type Field string

const (
	FieldDisplayName Field = "display_name"
	FieldFullName    Field = "full_name"
	FieldLogin       Field = "login"
	FieldEmail       Field = "email"
	FieldExternalID  Field = "external_id"
)

// Fields returns the descriptive fields in declaration order. Duplicate
// elision keeps the earlier field of an identical pair, and classification
// ties break toward the earlier field, so this order is part of the engine's
// contract.
func Fields() []Field {
	return []Field{FieldDisplayName, FieldFullName, FieldLogin, FieldEmail, FieldExternalID}
}

// Record is a raw roster member as supplied by the roster source. The engine
// treats records as read-only and returns them unmodified when hydrating
// matched rows.
type Record struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Login       string `json:"login,omitempty"`
	Email       string `json:"email,omitempty"`
	ExternalID  string `json:"external_id,omitempty"`
}

// Value returns the raw value of the named descriptive field.
func (r Record) Value(field Field) string {
	switch field {
	case FieldDisplayName:
		return r.DisplayName
	case FieldFullName:
		return r.FullName
	case FieldLogin:
		return r.Login
	case FieldEmail:
		return r.Email
	case FieldExternalID:
		return r.ExternalID
	}
	return ""
}

// Roster is an ordered reference population for one role. Label is the
// human-facing name used in rejection reasons and CLI output (for example
// "students"); it defaults to the role name when empty.
type Roster struct {
	Role    Role
	Label   string
	Records []Record
}

// DisplayLabel returns the label to use in user-facing text.
func (ro Roster) DisplayLabel() string {
	if ro.Label != "" {
		return ro.Label
	}
	return string(ro.Role)
}

// ByID builds a lookup from identifier to raw record for hydration.
func (ro Roster) ByID() map[string]Record {
	byID := make(map[string]Record, len(ro.Records))
	for _, rec := range ro.Records {
		byID[rec.ID] = rec
	}
	return byID
}
