package render

// Details is the visibility flag for the questions and interview sections.
// The zero value is hidden.
type Details struct {
	visible bool
}

// Toggle flips visibility.
func (d *Details) Toggle() {
	d.visible = !d.visible
}

// Hide resets to hidden.
func (d *Details) Hide() {
	d.visible = false
}

// Visible reports the current state.
func (d Details) Visible() bool {
	return d.visible
}
