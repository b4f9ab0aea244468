package surface

// Circle is a recorded FillCircle call.
type Circle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"color"`
}

// Line is a recorded StrokeLine call.
type Line struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
	Width float64 `json:"width"`
}

// CommandList records the draw calls issued since the last Clear.
type CommandList struct {
	W       int      `json:"w"`
	H       int      `json:"h"`
	Circles []Circle `json:"circles"`
	Lines   []Line   `json:"lines"`
	Clears  int      `json:"-"`
}

func NewCommandList() *CommandList { return &CommandList{} }

func (c *CommandList) Clear() {
	c.Circles = c.Circles[:0]
	c.Lines = c.Lines[:0]
	c.Clears++
}

func (c *CommandList) FillCircle(x, y, r float64, col Color) {
	c.Circles = append(c.Circles, Circle{X: x, Y: y, R: r, Color: col.Hex()})
}

func (c *CommandList) StrokeLine(x0, y0, x1, y1 float64, s Stroke) {
	c.Lines = append(c.Lines, Line{
		X0: x0, Y0: y0, X1: x1, Y1: y1,
		Color: s.Color.Hex(), Alpha: s.Alpha, Width: s.Width,
	})
}

func (c *CommandList) Size() (int, int) { return c.W, c.H }

func (c *CommandList) Resize(w, h int) {
	c.W, c.H = w, h
	c.Circles = c.Circles[:0]
	c.Lines = c.Lines[:0]
}
