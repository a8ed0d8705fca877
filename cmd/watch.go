package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rsummers618/hearthbreaker/internal/game"
)

var watchCmd = &cobra.Command{
	Use:   "watch <replay>",
	Short: "Step through a replay in an interactive viewer",
	Long: `watch plays a replay back to the end, capturing the board after every
event, and opens a viewer that steps through the captured frames. Use the
arrow keys to move between events.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)
)

// frame is one captured moment of the replayed game: what happened and how
// the board looked right after.
type frame struct {
	event string
	board string
}

// frameRecorder observes the replayed game and snapshots the board after
// every notable event.
type frameRecorder struct {
	game.BaseObserver
	g      *game.Game
	frames []frame
}

func (r *frameRecorder) capture(event string) {
	r.frames = append(r.frames, frame{event: event, board: renderBoard(r.g)})
}

func (r *frameRecorder) PreGameComplete(g *game.Game) {
	r.capture("Opening hands drawn and mulligans resolved")
}

func (r *frameRecorder) TurnStarted(g *game.Game) {
	r.capture(fmt.Sprintf("Turn %d: %s", g.TurnNumber, g.CurrentPlayer().Name))
}

func (r *frameRecorder) CardPlayed(p *game.Player, index int, card *game.Card) {
	r.capture(fmt.Sprintf("%s plays %s", p.Name, card.Name))
}

func (r *frameRecorder) PowerUsed(p *game.Player) {
	r.capture(fmt.Sprintf("%s uses the hero power", p.Name))
}

func (r *frameRecorder) AttackLaunched(attacker, target *game.Character) {
	r.capture(fmt.Sprintf("%s attacks %s", attacker.Name, target.Name))
}

func (r *frameRecorder) TurnEnding(g *game.Game) {
	r.capture(fmt.Sprintf("%s ends the turn", g.CurrentPlayer().Name))
}

func renderBoard(g *game.Game) string {
	var b strings.Builder
	for i, p := range g.Players {
		marker := "  "
		if !g.Over && i == g.Current {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s (%s)  HP %d/%d  Mana %d/%d  Hand %d  Deck %d\n",
			marker, p.Name, p.Deck.Class, p.Hero.Health, p.Hero.MaxHealth,
			p.Mana, p.MaxMana, len(p.Hand), p.Deck.Remaining())
		if len(p.Minions) == 0 {
			b.WriteString("    (empty board)\n")
		}
		for j, m := range p.Minions {
			fmt.Fprintf(&b, "    [%d] %s %d/%d", j+1, m.Name, m.Attack, m.Health)
			if m.Exhausted {
				b.WriteString(" (exhausted)")
			}
			b.WriteString("\n")
		}
		if i == 0 {
			b.WriteString("\n")
		}
	}
	if g.Over {
		fmt.Fprintf(&b, "\nGame over. Winner: %s", winnerName(g.Winner))
	}
	return b.String()
}

type watchModel struct {
	name   string
	frames []frame
	idx    int
	log    viewport.Model
	width  int
	height int
	err    error
}

func newWatchModel(name string, frames []frame, err error) watchModel {
	vp := viewport.New(0, 0)
	return watchModel{name: name, frames: frames, log: vp, err: err}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "right", "l", " ", "enter":
			if m.idx < len(m.frames)-1 {
				m.idx++
			}
		case "left", "h":
			if m.idx > 0 {
				m.idx--
			}
		case "home", "g":
			m.idx = 0
		case "end", "G":
			m.idx = len(m.frames) - 1
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.refreshLog()
	return m, nil
}

// refreshLog rebuilds the event log up to the current frame and sizes the
// viewport to whatever vertical space the board box leaves over.
func (m *watchModel) refreshLog() {
	var lines []string
	for i := 0; i <= m.idx && i < len(m.frames); i++ {
		prefix := "  "
		if i == m.idx {
			prefix = "> "
		}
		lines = append(lines, prefix+m.frames[i].event)
	}
	m.log.SetContent(strings.Join(lines, "\n"))

	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderBoardBox())
	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	m.log.Width = m.width - 4
	m.log.Height = m.height - titleH - stateH - infoH - 4
	if m.log.Height < 4 {
		m.log.Height = 4
	}
	m.log.GotoBottom()
}

func (m *watchModel) renderBoardBox() string {
	board := "No frames captured."
	if m.idx < len(m.frames) {
		board = m.frames[m.idx].board
	}
	return stateBoxStyle.Width(m.width - 4).Render(board)
}

func (m watchModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" hearthbreaker | %s | event %d/%d ",
		m.name, m.idx+1, len(m.frames)))
	boardBox := m.renderBoardBox()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.log.View())

	help := "(left/right to step, home/end to jump, q to quit)"
	if m.err != nil {
		help = fmt.Sprintf("playback stopped early: %v | %s", m.err, help)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		boardBox,
		logBox,
		infoStyle.Render(help),
	)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	r, err := loadReplay(path)
	if err != nil {
		return err
	}

	db := newCardDB()
	pb, err := reconstructPlayback(r, db)
	if err != nil {
		return err
	}
	rec := &frameRecorder{g: pb.Game()}
	pb.Game().AddObserver(rec)
	runErr := pb.Run()
	if len(rec.frames) == 0 {
		if runErr != nil {
			return runErr
		}
		return fmt.Errorf("replay %s produced no events", path)
	}

	m := newWatchModel(filepath.Base(path), rec.frames, runErr)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
