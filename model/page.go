package model

// Column is one column zone with its median lines (sorted top to bottom)
type Column struct {
	Zone  ColumnZone
	Lines []*MedianLine
}

// PageLayout is the analysed geometry of one page
type PageLayout struct {
	Width   int // Page width in pixels
	Height  int // Page height in pixels
	Columns []Column
}

// NewPageLayout creates an empty layout with given dimensions
func NewPageLayout(width, height int) *PageLayout {
	return &PageLayout{
		Width:   width,
		Height:  height,
		Columns: make([]Column, 0),
	}
}

// AddColumn appends a column
func (p *PageLayout) AddColumn(col Column) {
	p.Columns = append(p.Columns, col)
}

// Zones returns the column zones in left-to-right order
func (p *PageLayout) Zones() []ColumnZone {
	zones := make([]ColumnZone, len(p.Columns))
	for i, c := range p.Columns {
		zones[i] = c.Zone
	}
	return zones
}

// LineCount returns the number of median lines on the page
func (p *PageLayout) LineCount() int {
	n := 0
	for _, c := range p.Columns {
		n += len(c.Lines)
	}
	return n
}

// Line returns the line at (column, index), or nil when out of range
func (p *PageLayout) Line(column, index int) *MedianLine {
	if column < 0 || column >= len(p.Columns) {
		return nil
	}
	lines := p.Columns[column].Lines
	if index < 0 || index >= len(lines) {
		return nil
	}
	return lines[index]
}
