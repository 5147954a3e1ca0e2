package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	crawldto "wikitrail/internal/modules/crawl/dto"
	gamedto "wikitrail/internal/modules/game/dto"
	apperrors "wikitrail/internal/platform/errors"
	"wikitrail/internal/ui/components"
	"wikitrail/internal/ui/theme"
	gameview "wikitrail/internal/ui/views/game"
	rulesview "wikitrail/internal/ui/views/rules"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type crawlPort interface {
	Build(ctx context.Context, startTopic string, width, depth int, progress func()) (crawldto.BuildOutput, error)
	Budget(width, depth int) crawldto.BudgetOutput
	StartingCandidates(ctx context.Context) ([]string, error)
	SuggestStarts(candidates []string, n int) []string
}

type gamePort interface {
	Start(input gamedto.StartInput) (gamedto.ViewOutput, error)
	Move(direction string) (gamedto.ViewOutput, error)
}

// Settings fixes the shape of every game played in one session.
type Settings struct {
	Width       int
	Depth       int
	Hints       bool
	StartTopic  string
	RandomStart bool
}

const suggestionCount = 5

type phase int

const (
	phaseLoading phase = iota
	phasePicking
	phaseBuilding
	phasePlaying
	phaseFailed
)

// ─── async messages ───────────────────────────────────────────────────────────

type candidatesLoadedMsg struct {
	candidates []string
	err        error
}

type startTopicMsg struct{ topic string }

type buildProgressMsg struct{}

type builtMsg struct {
	out crawldto.BuildOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous link")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next link")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "step back")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "follow link")),
		NewGame: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "rules")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Right, k.Left, k.NewGame, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NewGame, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It walks one session through choosing a
// start, building the hidden tree and playing on it; game rules live behind
// the ports.
type Model struct {
	crawl    crawlPort
	game     gamePort
	settings Settings

	keys     keyMap
	help     help.Model
	showHelp bool
	picker   components.Picker
	spinner  spinner.Model
	progress progress.Model

	phase      phase
	candidates []string
	start      string
	visited    int
	total      int
	view       gamedto.ViewOutput
	err        error
	status     string

	cancel     context.CancelFunc
	progressCh chan struct{}

	width  int
	height int
}

func NewModel(crawl crawlPort, game gamePort, settings Settings) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		crawl:    crawl,
		game:     game,
		settings: settings,
		keys:     defaultKeys(),
		help:     help.New(),
		picker:   components.NewPicker(),
		spinner:  sp,
		progress: progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Mauve))),
		phase:    phaseLoading,
		status:   "fetching starting topics",
	}
	if err := m.budgetErr(); err != nil {
		m = m.fail(err)
		m.status = "rerun with a smaller width or depth"
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.phase == phaseFailed {
		return nil
	}
	first := m.loadCandidatesCmd()
	if m.settings.StartTopic != "" {
		topic := m.settings.StartTopic
		first = func() tea.Msg { return startTopicMsg{topic: topic} }
	}
	return tea.Batch(m.spinner.Tick, first)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.picker.SetWidth(min(m.width-4, 72))
		m.progress.Width = max(10, min(m.width-16, 60))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd

	case candidatesLoadedMsg:
		if msg.err != nil {
			return m.fail(fmt.Errorf("fetch starting topics: %w", msg.err)), nil
		}
		m.candidates = msg.candidates
		return m.chooseStart()

	case startTopicMsg:
		return m.beginBuild(msg.topic)

	case buildProgressMsg:
		m.visited++
		return m, waitForProgress(m.progressCh)

	case builtMsg:
		return m.finishBuild(msg)

	case components.PickerSubmitMsg:
		return m.beginBuild(msg.Topic)

	case components.PickerCancelMsg:
		if m.view.GameID == "" {
			return m, tea.Quit
		}
		m.phase = phasePlaying
		m.status = "kept the current game"
		return m, nil

	case tea.KeyMsg:
		if m.phase == phasePicking && msg.String() != "ctrl+c" {
			break
		}
		return m.handleKey(msg)
	}

	if m.phase == phasePicking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.NewGame):
		if m.phase == phasePlaying || m.phase == phaseFailed {
			return m.newGame()
		}
	case m.phase != phasePlaying:
	case key.Matches(msg, m.keys.Up):
		return m.move("up")
	case key.Matches(msg, m.keys.Down):
		return m.move("down")
	case key.Matches(msg, m.keys.Left):
		return m.move("left")
	case key.Matches(msg, m.keys.Right):
		return m.move("right")
	}
	return m, nil
}

func (m Model) move(direction string) (tea.Model, tea.Cmd) {
	view, err := m.game.Move(direction)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.view = view
	if view.Finished() {
		m.status = "game over, press n for another"
	}
	return m, nil
}

// ─── game lifecycle ──────────────────────────────────────────────────────────

func (m Model) newGame() (tea.Model, tea.Cmd) {
	if err := m.budgetErr(); err != nil {
		return m.fail(err), nil
	}
	m.err = nil
	switch {
	case m.settings.StartTopic != "":
		return m.beginBuild(m.settings.StartTopic)
	case len(m.candidates) > 0:
		return m.chooseStart()
	default:
		m.phase = phaseLoading
		m.status = "fetching starting topics"
		return m, m.loadCandidatesCmd()
	}
}

func (m Model) chooseStart() (tea.Model, tea.Cmd) {
	if m.settings.RandomStart {
		picks := m.crawl.SuggestStarts(m.candidates, 1)
		if len(picks) == 0 {
			return m.fail(fmt.Errorf("no starting topics available")), nil
		}
		return m.beginBuild(picks[0])
	}
	m.phase = phasePicking
	m.status = "choose where the trail begins"
	cmd := m.picker.Open(m.candidates, m.crawl.SuggestStarts(m.candidates, suggestionCount))
	return m, cmd
}

func (m Model) beginBuild(topic string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan struct{})

	m.phase = phaseBuilding
	m.start = topic
	m.visited = 0
	m.total = m.crawl.Budget(m.settings.Width, m.settings.Depth).Nodes
	m.cancel = cancel
	m.progressCh = ch
	m.status = "building a trail from " + topic

	return m, tea.Batch(
		buildCmd(ctx, m.crawl, topic, m.settings.Width, m.settings.Depth, ch),
		waitForProgress(ch),
	)
}

func (m Model) finishBuild(msg builtMsg) (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if msg.err != nil {
		return m.fail(fmt.Errorf("build from %q: %w", m.start, msg.err)), nil
	}
	view, err := m.game.Start(gamedto.StartInput{
		Tree:       msg.out.Tree,
		AnswerPath: msg.out.AnswerPath,
		Width:      msg.out.Width,
		Depth:      msg.out.Depth,
		Hints:      m.settings.Hints,
	})
	if err != nil {
		return m.fail(err), nil
	}
	m.view = view
	m.phase = phasePlaying
	m.status = fmt.Sprintf("%d topics fetched, find the way to %s", msg.out.Visited, view.Target)
	return m, nil
}

// budgetErr reports an oversized tree before any topic is fetched.
func (m Model) budgetErr() error {
	b := m.crawl.Budget(m.settings.Width, m.settings.Depth)
	if b.Allowed {
		return nil
	}
	return fmt.Errorf("%w: width %d depth %d needs %d nodes, limit %d", apperrors.ErrNodeBudget, b.Width, b.Depth, b.Nodes, b.MaxNodes)
}

func (m Model) fail(err error) Model {
	m.phase = phaseFailed
	m.err = err
	m.status = "press n to try again"
	return m
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := theme.Title.Render("wikitrail") + "  " + theme.Muted.Render(m.settingsLine())

	var body string
	switch {
	case m.showHelp:
		body = rulesview.Render(m.start, m.settings.Depth, m.settings.Hints, m.width-4) + m.help.FullHelpView(m.keys.FullHelp())
	case m.phase == phaseLoading:
		body = m.spinner.View() + " fetching starting topics…"
	case m.phase == phasePicking:
		body = m.picker.View()
	case m.phase == phaseBuilding:
		body = m.buildingView()
	case m.phase == phasePlaying:
		body = gameview.Render(m.view)
		if summary := gameview.Summary(m.view); summary != "" {
			body += "\n\n" + summary
		}
	case m.phase == phaseFailed:
		body = theme.Incorrect.Render("error: " + m.err.Error())
	}

	footer := theme.Muted.Render(m.status)
	if !m.showHelp {
		footer += "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer))
}

func (m Model) buildingView() string {
	var sb strings.Builder
	sb.WriteString(m.spinner.View() + " following links from " + theme.Hot.Render(m.start) + "\n\n")
	percent := 0.0
	if m.total > 0 {
		percent = min(1, float64(m.visited)/float64(m.total))
	}
	sb.WriteString(m.progress.ViewAs(percent))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d", m.visited, m.total)))
	return sb.String()
}

func (m Model) settingsLine() string {
	hints := "off"
	if m.settings.Hints {
		hints = "on"
	}
	return fmt.Sprintf("width %d · depth %d · hints %s", m.settings.Width, m.settings.Depth, hints)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCandidatesCmd() tea.Cmd {
	crawl := m.crawl
	return func() tea.Msg {
		candidates, err := crawl.StartingCandidates(context.Background())
		return candidatesLoadedMsg{candidates: candidates, err: err}
	}
}

// buildCmd runs the crawl off the update loop. Each visited node is handed to
// the UI over ch, which is closed once the build returns.
func buildCmd(ctx context.Context, crawl crawlPort, topic string, width, depth int, ch chan<- struct{}) tea.Cmd {
	return func() tea.Msg {
		defer close(ch)
		out, err := crawl.Build(ctx, topic, width, depth, func() {
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
			}
		})
		return builtMsg{out: out, err: err}
	}
}

func waitForProgress(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return buildProgressMsg{}
	}
}
