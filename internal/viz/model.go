package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/recart/internal/render"
)

const (
	defaultCols = 80
	defaultRows = 24
	defaultFPS  = 30
	chromeRows  = 6
)

type TickMsg time.Time

// Options configure a viewer Model. Zero values pick defaults.
type Options struct {
	Title      string
	LevelScale float64
	Decay      float64
	FPS        int
	Theme      string
	// Source overrides the keyboard-driven level.
	Source LevelSource
	// Luminance is drawn as a sparkline under the frame when set.
	Luminance []float64
}

// Model displays one frame at a time, chosen from a level signal or by
// autoplay.
type Model struct {
	frames    []*render.Frame
	title     string
	source    LevelSource
	scale     float64
	fps       int
	autoplay  bool
	offset    int
	cols      int
	rows      int
	theme     Theme
	luminance []float64
}

func NewModel(frames []*render.Frame, opts Options) Model {
	scale := opts.LevelScale
	if scale <= 0 {
		scale = 1
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	source := opts.Source
	if source == nil {
		source = NewDecayLevel(opts.Decay)
	}
	return Model{
		frames:    frames,
		title:     opts.Title,
		source:    source,
		scale:     scale,
		fps:       fps,
		cols:      defaultCols,
		rows:      defaultRows - chromeRows,
		theme:     GetTheme(opts.Theme),
		luminance: opts.Luminance,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Current is the index of the frame on screen.
func (m Model) Current() int {
	n := len(m.frames)
	if n == 0 {
		return 0
	}
	k := (Select(m.source.Level(), m.scale, n) + m.offset) % n
	if k < 0 {
		k += n
	}
	return k
}

func (m Model) Autoplay() bool { return m.autoplay }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if b, ok := m.source.(interface{ Bump(float64) }); ok {
				b.Bump(m.scale)
			}
		case "p":
			m.autoplay = !m.autoplay
		case "left", "h":
			m.step(-1)
		case "right", "l":
			m.step(1)
		case "t":
			m.theme = nextTheme(m.theme)
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		m.rows = max(msg.Height-chromeRows, 1)
	case TickMsg:
		if t, ok := m.source.(interface{ Tick() }); ok {
			t.Tick()
		}
		if m.autoplay {
			m.step(1)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step(dir int) {
	if n := len(m.frames); n > 0 {
		m.offset = ((m.offset+dir)%n + n) % n
	}
}

func (m Model) View() string {
	st := newStyles(m.theme)

	var s strings.Builder
	title := m.title
	if title == "" {
		title = "recart"
	}
	s.WriteString(st.header.Render(strings.ToUpper(title)) + "\n")

	if len(m.frames) == 0 {
		s.WriteString(st.help.Render("no frames") + "\n")
		return s.String()
	}

	k := m.Current()
	s.WriteString(NewCanvas(m.frames[k], m.cols, m.rows).String() + "\n")

	status := st.paused.Render("LEVEL")
	if m.autoplay {
		status = st.playing.Render("AUTOPLAY")
	}
	level := m.source.Level()
	frac := math.Mod(level, m.scale) / m.scale
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		status, "  ",
		st.label.Render("frame"), st.value.Render(fmt.Sprintf("%d/%d", k+1, len(m.frames))), "  ",
		st.label.Render("level"), st.value.Render(fmt.Sprintf("%.1f", level)), " ",
		st.spark.Render(ProgressBar(frac, 10)),
	)
	s.WriteString(line + "\n")

	if len(m.luminance) > 0 {
		s.WriteString(st.label.Render("luma") + st.spark.Render(SparklineChart(m.luminance, min(m.cols-8, 60))) + "\n")
	}

	s.WriteString(st.help.Render("SP:Bump  P:Autoplay  ←→:Step  T:Theme  Q:Quit"))
	return s.String()
}

// Run shows frames in an alternate-screen viewer until the user quits.
func Run(frames []*render.Frame, opts Options) error {
	_, err := tea.NewProgram(NewModel(frames, opts), tea.WithAltScreen()).Run()
	return err
}
