package stamp

// Instruction is one renderable unit bound to a template page. It is a
// closed set: StaticText, ItemsList, or FinalTotal.
type Instruction interface {
	isInstruction()
}

// StaticText draws a single value at a fixed position.
type StaticText struct {
	Text  string
	X     float64
	Y     float64
	Align Align
}

// ItemsList draws every item row of the request, walking down the page.
type ItemsList struct {
	Rows    []LineItem
	Section ItemsSection
}

// FinalTotal draws the document total below the last item row. It is only
// emitted directly after an ItemsList and is skipped by the renderer when
// Value is empty or no row was drawn.
type FinalTotal struct {
	Value   string
	Section ItemsSection
}

func (StaticText) isInstruction() {}
func (ItemsList) isInstruction()  {}
func (FinalTotal) isInstruction() {}
