package domain

// Text is an optional gateway field value.
// A Text is present only when it carries a non-empty value; Some("") is
// indistinguishable from None(). Conditional elements are emitted only for
// present values.
type Text struct {
	value string
	set   bool
}

// Some returns a Text holding v. An empty v yields an absent Text.
func Some(v string) Text {
	return Text{value: v, set: v != ""}
}

// None returns an absent Text.
func None() Text {
	return Text{}
}

// Get returns the value and whether it is present.
func (t Text) Get() (string, bool) {
	return t.value, t.set
}

// IsSet reports whether the value is present.
func (t Text) IsSet() bool {
	return t.set
}

// Value returns the value, or "" when absent.
func (t Text) Value() string {
	return t.value
}

// Or returns the value, or fallback when absent.
func (t Text) Or(fallback string) string {
	if !t.set {
		return fallback
	}
	return t.value
}
