package termhost

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/field"
	"github.com/iw2rmb/quill/focus"
	"github.com/iw2rmb/quill/render"
)

const defaultTick = 50 * time.Millisecond

// Entry is one labeled field shown by the model.
type Entry struct {
	Label  string
	Config field.Config
}

// Options configures a Model. Zero values select defaults.
type Options struct {
	KeyMap    *KeyMap
	Clipboard Clipboard
	// Tick is the frame interval driving the caret blink.
	Tick time.Duration
	// Width and Height are the initial size used until the first
	// tea.WindowSizeMsg.
	Width, Height int
}

// Model is a Bubble Tea program that stacks fields vertically, one label
// column on the left, and drives a field.Host once per tick.
type Model struct {
	host    *field.Host
	shaper  *CellShaper
	painter Painter
	keys    KeyMap
	clip    Clipboard
	help    help.Model
	tick    time.Duration

	ids    []focus.ID
	labels []string
	labelW int

	width, height int
	lastTick      time.Time
	frame         field.Frame
	submits       []Submission
	status        string

	LabelStyle  lipgloss.Style
	StatusStyle lipgloss.Style
}

// Submission is a submitted field value with its label.
type Submission struct {
	Label string
	Text  string
}

type tickMsg time.Time

// New builds the host and its fields and activates the first enabled one.
// Terminal cells are the layout unit, so every font is one cell tall and the
// line caret one cell wide.
func New(entries []Entry, opt Options) Model {
	shaper := NewCellShaper()
	m := Model{
		host:        field.NewHost(shaper),
		shaper:      shaper,
		painter:     Painter{Atlas: shaper.CellAtlas()},
		keys:        DefaultKeyMap(),
		clip:        opt.Clipboard,
		help:        help.New(),
		tick:        opt.Tick,
		width:       opt.Width,
		height:      opt.Height,
		LabelStyle:  lipgloss.NewStyle().Faint(true),
		StatusStyle: lipgloss.NewStyle().Italic(true),
	}
	if opt.KeyMap != nil {
		m.keys = *opt.KeyMap
	}
	if m.clip == nil {
		m.clip = &MemoryClipboard{}
	}
	if m.tick <= 0 {
		m.tick = defaultTick
	}
	if m.width <= 0 {
		m.width = 80
	}
	if m.height <= 0 {
		m.height = 24
	}

	for _, e := range entries {
		cfg := e.Config
		cfg.Font = field.Font{Family: cfg.Font.Family, Size: 1, LineHeight: 1}
		cfg.Style.CaretWidth = 1
		f := m.host.Add(cfg)
		m.ids = append(m.ids, f.ID())
		m.labels = append(m.labels, e.Label)
		if e.Label != "" {
			m.labelW = max(m.labelW, lipgloss.Width(e.Label)+1)
		}
	}
	for _, id := range m.ids {
		if m.host.Activate(id) {
			break
		}
	}
	m.layout()
	m.frame = m.host.Frame(0)
	return m
}

// Host exposes the underlying field host.
func (m Model) Host() *field.Host { return m.host }

// Submissions returns every value submitted so far.
func (m Model) Submissions() []Submission { return append([]Submission(nil), m.submits...) }

func (m Model) Init() tea.Cmd { return m.tickCmd() }

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = max(msg.Width, 0), max(msg.Height, 0)
		m.layout()
		m.runFrame(0)
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.runFrame(dt)
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.updateMouse(msg)
		m.runFrame(0)
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active, hasActive := m.host.Active()
	singleLine := hasActive && active.Config().Mode.IsSingleLine()

	intents, action := m.keys.Translate(msg, singleLine)
	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionNextField:
		m.cycleFocus(1)
	case ActionPrevField:
		m.cycleFocus(-1)
	case ActionCopy:
		if hasActive {
			m.copySelection(active)
		}
	case ActionCut:
		if hasActive && m.copySelection(active) {
			m.host.SendActive(field.Delete(buffer.DeleteSelection, buffer.Backward))
		}
	case ActionPaste:
		m.pasteClipboard()
	}
	if len(intents) > 0 {
		m.host.SendActive(intents...)
	}
	m.runFrame(0)
	return m, nil
}

func (m *Model) copySelection(f *field.Field) bool {
	s := f.Buffer().SelectedText()
	if s == "" {
		return false
	}
	if err := m.clip.WriteText(s); err != nil {
		log.Debug().Err(err).Msg("clipboard write failed")
		return false
	}
	return true
}

func (m *Model) pasteClipboard() {
	s, err := m.clip.ReadText()
	if err != nil {
		log.Debug().Err(err).Msg("clipboard read failed")
		return
	}
	if s == "" {
		return
	}
	// Normalize newlines from external sources.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	m.host.SendActive(field.Insert(s))
}

// cycleFocus activates the next enabled field in dir, wrapping around.
func (m *Model) cycleFocus(dir int) {
	n := len(m.ids)
	if n == 0 {
		return
	}
	cur := -1
	if id, ok := m.host.Focus().Active(); ok {
		for i, x := range m.ids {
			if x == id {
				cur = i
				break
			}
		}
	}
	if cur < 0 && dir < 0 {
		cur = 0
	}
	for step := 1; step <= n; step++ {
		i := ((cur+dir*step)%n + n) % n
		if m.host.Activate(m.ids[i]) {
			return
		}
	}
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	p := render.Vec2{X: float32(msg.X - m.labelW), Y: float32(msg.Y)}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonLeft:
			m.host.Pointer(field.PointerEvent{Kind: field.PointerPress, Pos: p, Extend: msg.Shift})
		case tea.MouseButtonWheelUp:
			m.scrollAt(p, 0, -1)
		case tea.MouseButtonWheelDown:
			m.scrollAt(p, 0, 1)
		case tea.MouseButtonWheelLeft:
			m.scrollAt(p, -1, 0)
		case tea.MouseButtonWheelRight:
			m.scrollAt(p, 1, 0)
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.host.Pointer(field.PointerEvent{Kind: field.PointerDrag, Pos: p})
		}
	case tea.MouseActionRelease:
		m.host.Pointer(field.PointerEvent{Kind: field.PointerRelease, Pos: p})
	}
}

func (m *Model) scrollAt(p render.Vec2, dx, dy float32) {
	if f, ok := m.host.FieldAt(p); ok {
		f.Queue(field.ScrollBy(dx, dy))
	}
}

func (m *Model) runFrame(dt time.Duration) {
	m.frame = m.host.Frame(dt)
	for _, ev := range m.frame.Submits {
		label := m.labelOf(ev.Field)
		m.submits = append(m.submits, Submission{Label: label, Text: ev.Text})
		m.status = fmt.Sprintf("%s submitted %q", label, ev.Text)
		log.Info().Str("field", label).Int("len", len(ev.Text)).Msg("submitted")
	}
}

func (m *Model) labelOf(id focus.ID) string {
	for i, x := range m.ids {
		if x == id {
			if m.labels[i] != "" {
				return m.labels[i]
			}
			return fmt.Sprintf("field %d", i+1)
		}
	}
	return ""
}

// areaSize is the painted region right of the labels, above the footer.
func (m Model) areaSize() (int, int) {
	return max(m.width-m.labelW, 0), max(m.height-2, 0)
}

// layout stacks the fields with one blank row between them.
func (m *Model) layout() {
	w, _ := m.areaSize()
	y := 0
	for _, id := range m.ids {
		f, ok := m.host.Field(id)
		if !ok {
			continue
		}
		size := f.Measure(field.Constraints{Available: float32(w)}, 1)
		h := int(math.Ceil(float64(size.Y)))
		f.SetBounds(render.RectAt(render.Vec2{Y: float32(y)}, render.Vec2{X: float32(w), Y: float32(h)}), nil, true)
		y += h + 1
	}
}

func (m Model) View() string {
	w, h := m.areaSize()
	area := strings.Split(m.painter.Paint(w, h, m.frame.Primitives()), "\n")

	labels := make([]string, len(area))
	for i, id := range m.ids {
		f, ok := m.host.Field(id)
		if !ok {
			continue
		}
		row := int(f.Bounds().Min.Y)
		if row >= 0 && row < len(labels) && m.labels[i] != "" {
			labels[row] = m.labels[i]
		}
	}

	var sb strings.Builder
	for i, row := range area {
		if m.labelW > 0 {
			sb.WriteString(m.LabelStyle.Width(m.labelW).Render(labels[i]))
		}
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	sb.WriteString(m.StatusStyle.Render(m.status))
	sb.WriteByte('\n')
	sb.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return sb.String()
}
