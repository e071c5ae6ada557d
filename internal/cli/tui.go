package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rxtimeline/pkg/core/axis"
	"github.com/matzehuels/rxtimeline/pkg/core/content"
	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
)

// One terminal cell covers cellWidth x cellHeight view units.
const (
	cellWidth  = 8.0
	cellHeight = 16.0

	zoomStep = 1.25
	panCells = 4

	// chromeRows is the header and footer around the canvas.
	chromeRows = 2
)

// =============================================================================
// TimelineModel - Interactive chart
// =============================================================================

// saveFunc persists the activities after the user moved some.
type saveFunc func(context.Context, rxio.Dataset) error

// TimelineModel is the bubbletea model of the view command. Every key press
// becomes a chart event; the canvas is redrawn from the resulting view model.
type TimelineModel struct {
	tl    *timeline.Timeline
	title string
	save  saveFunc

	width, height int
	cursor        int // index into the current view's events
	lane          int // index into the current view's lanes, -1 for none
	moved         int
	status        string
}

// NewTimelineModel wraps tl. save may be nil when the source is read-only.
func NewTimelineModel(tl *timeline.Timeline, title string, save saveFunc) TimelineModel {
	return TimelineModel{tl: tl, title: title, save: save, width: 80, height: 24, lane: -1}
}

func (m TimelineModel) Init() tea.Cmd {
	return m.resize()
}

// resize sizes the chart to the canvas.
func (m TimelineModel) resize() tea.Cmd {
	rows := max(m.height-chromeRows, 1)
	m.tl.Dispatch(state.Resized{Width: float64(m.width) * cellWidth, Height: float64(rows) * cellHeight})
	return nil
}

// savedMsg reports the result of a save.
type savedMsg struct{ err error }

func (m TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.resize()
	case savedMsg:
		if msg.err != nil {
			m.status = StyleError.Render("save failed: " + msg.err.Error())
		} else {
			m.status = StyleSuccess.Render(fmt.Sprintf("saved %d moved activities", m.moved))
			m.moved = 0
		}
		return m, nil
	case tea.KeyMsg:
		if m.tl.State().Drag != nil {
			return m.updateDrag(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// updateBrowse handles keys while no drag is in progress.
func (m TimelineModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vm := m.tl.View()
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "o":
		m.tl.Dispatch(state.OrientationFlipped{})
	case "+", "=":
		m.zoom(zoomStep)
	case "-":
		m.zoom(1 / zoomStep)
	case "0":
		m.tl.Dispatch(state.ZoomReset{})
	case "left", "h":
		m.pan(vm, -1)
	case "right", "l":
		m.pan(vm, 1)
	case "up", "k":
		m.pan(vm, -1)
	case "down", "j":
		m.pan(vm, 1)
	case "tab":
		if n := len(vm.Events); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case "shift+tab":
		if n := len(vm.Events); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case "]":
		m.hoverLane(vm, 1)
	case "[":
		m.hoverLane(vm, -1)
	case " ":
		if m.lane >= 0 && m.lane < len(vm.Resources) {
			m.tl.Dispatch(state.ResourceSelected{Resource: vm.Resources[m.lane].ID})
		}
	case "d", "enter":
		if e, ok := m.current(vm); ok {
			if e.DisableDrag {
				m.status = StyleWarning.Render(e.Title + " cannot be moved")
				break
			}
			m.tl.Dispatch(state.Dragged{ActivityID: e.ID})
		}
	case "w":
		if m.save == nil {
			m.status = StyleWarning.Render("this source cannot be saved")
			break
		}
		st := m.tl.State()
		ds := rxio.Dataset{Resources: st.Resources, Activities: st.Activities}
		save := m.save
		return m, func() tea.Msg { return savedMsg{err: save(context.Background(), ds)} }
	}
	return m, nil
}

// updateDrag handles keys while an activity is being dragged: arrows move
// it by one cell, enter drops it and esc cancels.
func (m TimelineModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	drag := *m.tl.State().Drag
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.tl.Dispatch(state.DragEnded{})
		m.status = "move cancelled"
	case "enter", "d":
		mv, err := m.tl.Drop()
		if err != nil {
			m.status = StyleError.Render(err.Error())
			break
		}
		m.moved++
		m.status = StyleSuccess.Render(fmt.Sprintf("moved to %s at %s", mv.Series, mv.Start.Format("2006-01-02 15:04")))
	case "left", "h":
		drag.DX -= cellWidth
	case "right", "l":
		drag.DX += cellWidth
	case "up", "k":
		drag.DY -= cellHeight
	case "down", "j":
		drag.DY += cellHeight
	}
	if m.tl.State().Drag != nil {
		m.tl.Dispatch(state.Dragged(drag))
	}
	return m, nil
}

func (m *TimelineModel) zoom(factor float64) {
	z := state.Identity
	if s := m.tl.State(); s.Zoom != nil {
		z = *s.Zoom
	}
	z.K *= factor
	m.tl.Dispatch(state.Zoomed{Zoom: z})
}

// pan shifts the time axis by panCells cells in dir.
func (m *TimelineModel) pan(vm timeline.ViewModel, dir float64) {
	z := state.Identity
	if s := m.tl.State(); s.Zoom != nil {
		z = *s.Zoom
	}
	if vm.TimeOrientation == orient.Horizontal {
		z.X -= dir * panCells * cellWidth
	} else {
		z.Y -= dir * panCells * cellHeight
	}
	m.tl.Dispatch(state.Zoomed{Zoom: z})
}

func (m *TimelineModel) hoverLane(vm timeline.ViewModel, dir int) {
	n := len(vm.Resources)
	if n == 0 {
		return
	}
	m.lane = ((m.lane+dir)%n + n) % n
	m.tl.Dispatch(state.ResourceHovered{Resource: vm.Resources[m.lane].ID})
}

// current returns the event under the cursor.
func (m TimelineModel) current(vm timeline.ViewModel) (content.EventRectangle, bool) {
	if len(vm.Events) == 0 {
		return content.EventRectangle{}, false
	}
	return vm.Events[min(m.cursor, len(vm.Events)-1)], true
}

func (m TimelineModel) View() string {
	vm := m.tl.View()
	rows := max(m.height-chromeRows, 1)
	cv := newCanvas(m.width, rows)
	cur, hasCur := m.current(vm)

	for _, r := range vm.Resources {
		k := cellLane
		if r.Hovered || r.Selected {
			k = cellLaneActive
		}
		cv.fill(r.Rect(), '·', k)
	}
	for _, a := range []orientedAxis{{vm.TimeAxis, vm.TimeOrientation}, {vm.ResourceAxis, vm.TimeOrientation.Flip()}} {
		cv.axis(a)
	}
	for _, e := range vm.Events {
		k := cellEvent
		switch {
		case e.Dragged:
			k = cellDragged
		case hasCur && e.ID == cur.ID:
			k = cellCursor
		}
		cv.fill(e.Rect(), '█', k)
		cv.label(e.Rect(), e.Title, k)
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	if hasCur {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %s", cur.Series, cur.Title)))
	}
	b.WriteString("\n")
	b.WriteString(cv.String())
	b.WriteString("\n")
	for _, d := range vm.Diagnostics {
		b.WriteString(StyleWarning.Render(d.Message) + "  ")
	}
	if m.status != "" {
		b.WriteString(m.status + "  ")
	}
	if m.tl.State().Drag != nil {
		b.WriteString(StyleDim.Render("arrows move  ⏎ drop  esc cancel"))
	} else {
		b.WriteString(StyleDim.Render("o flip  +/- zoom  0 reset  arrows pan  tab next  [ ] lane  ␣ select  d move  w save  q quit"))
	}
	return b.String()
}

type orientedAxis struct {
	ax          axis.Axis
	orientation orient.Orientation
}

// =============================================================================
// Canvas
// =============================================================================

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLane
	cellLaneActive
	cellAxis
	cellEvent
	cellCursor
	cellDragged
)

var cellStyles = [...]lipgloss.Style{
	cellEmpty:      lipgloss.NewStyle(),
	cellLane:       lipgloss.NewStyle().Foreground(colorDim),
	cellLaneActive: lipgloss.NewStyle().Foreground(colorCyan),
	cellAxis:       lipgloss.NewStyle().Foreground(colorGray),
	cellEvent:      lipgloss.NewStyle().Foreground(colorBlue),
	cellCursor:     lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	cellDragged:    lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
}

// canvas is a grid of styled runes in terminal cells.
type canvas struct {
	w, h  int
	runes [][]rune
	kinds [][]cellKind
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), kinds: make([][]cellKind, h)}
	for i := range h {
		c.runes[i] = []rune(strings.Repeat(" ", w))
		c.kinds[i] = make([]cellKind, w)
	}
	return c
}

func (c *canvas) set(col, row int, r rune, k cellKind) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.runes[row][col] = r
	c.kinds[row][col] = k
}

// cells returns the half-open cell span covering [from, from+size) view
// units; a non-empty extent always covers at least one cell.
func cells(from, size, unit float64) (int, int) {
	lo := int(math.Floor(from / unit))
	hi := int(math.Ceil((from + size) / unit))
	if size > 0 && hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func (c *canvas) fill(r geom.Rect, ch rune, k cellKind) {
	c0, c1 := cells(r.X, r.Width, cellWidth)
	r0, r1 := cells(r.Y, r.Height, cellHeight)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			c.set(col, row, ch, k)
		}
	}
}

func (c *canvas) text(col, row int, s string, k cellKind) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r, k)
	}
}

// label writes s inside r on its first row, truncated to fit.
func (c *canvas) label(r geom.Rect, s string, k cellKind) {
	c0, c1 := cells(r.X, r.Width, cellWidth)
	r0, _ := cells(r.Y, r.Height, cellHeight)
	room := c1 - c0
	if room < 3 || s == "" {
		return
	}
	runes := []rune(s)
	if len(runes) > room {
		runes = append(runes[:room-1], '…')
	}
	c.text(c0, r0, string(runes), k)
}

// axis draws the baseline and tick labels of one axis. Labels of a vertical
// axis end at their anchor; labels of a horizontal axis start at it.
func (c *canvas) axis(a orientedAxis) {
	if l := a.ax.Line; l != nil {
		ch := orient.Match(a.orientation, '│', '─')
		c.fill(geom.Rect{
			X: min(l.Start.X, l.End.X), Y: min(l.Start.Y, l.End.Y),
			Width: max(math.Abs(l.End.X-l.Start.X), 1), Height: max(math.Abs(l.End.Y-l.Start.Y), 1),
		}, ch, cellAxis)
	}

	for _, t := range a.ax.TickMarks {
		p := t.Position.Add(t.LabelOffset)
		col, row := int(p.X/cellWidth), int(p.Y/cellHeight)
		if a.orientation == orient.Vertical {
			col -= len([]rune(t.Label))
		}
		c.text(col, row, t.Label, cellAxis)
	}
}

// String renders the grid, styling runs of equal kind together.
func (c *canvas) String() string {
	var b strings.Builder
	for row := range c.h {
		if row > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for col := 1; col <= c.w; col++ {
			if col < c.w && c.kinds[row][col] == c.kinds[row][start] {
				continue
			}
			run := string(c.runes[row][start:col])
			b.WriteString(cellStyles[c.kinds[row][start]].Render(run))
			start = col
		}
	}
	return b.String()
}
