package common

// Editable dialogs take printable keys as text while IsEditing is true, even
// when a binding in their scope uses the same key.
type Editable interface {
	IsEditing() bool
}
