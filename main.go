package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aschmelyun/captioncraft/internal/config"
	"github.com/aschmelyun/captioncraft/internal/logger"
	"github.com/aschmelyun/captioncraft/internal/overlay"
	"github.com/aschmelyun/captioncraft/internal/playback"
	"github.com/aschmelyun/captioncraft/internal/render"
	"github.com/aschmelyun/captioncraft/internal/session"
)

const VERSION = "1.0.0"

const (
	headerRows = 1
	footerRows = 3
)

type keyMap struct {
	Play      key.Binding
	Back      key.Binding
	Forward   key.Binding
	Placement key.Binding
	Highlight key.Binding
	Theme     key.Binding
	Hide1     key.Binding
	Hide2     key.Binding
	Languages key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Back, k.Forward, k.Placement, k.Highlight, k.Theme, k.Languages, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Back, k.Forward},
		{k.Placement, k.Highlight, k.Theme},
		{k.Hide1, k.Hide2, k.Languages, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		Back:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back")),
		Forward:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "forward")),
		Placement: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overlay")),
		Highlight: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "highlight")),
		Theme:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "theme")),
		Hide1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "hide primary")),
		Hide2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "hide secondary")),
		Languages: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "languages")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (i item) FilterValue() string { return i.code }

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	checkbox := "☐"
	if i.rank != session.Unranked {
		checkbox = "◼"
	}
	str := fmt.Sprintf("%s %-6s", checkbox, i.code)
	switch {
	case i.err != nil:
		str += ErrorStyle.Render(" unavailable")
	case i.rank != session.Unranked:
		str += TimestampStyle.Render(" " + i.rank.String())
	}

	fn := ItemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return SelectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}
	fmt.Fprint(w, fn(str))
}

func newModel(sess *session.Session, clock *playback.Clock, cfg *config.Config, load tea.Cmd, log *zap.Logger) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	l := list.New(nil, itemDelegate{}, 32, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	l.SetShowPagination(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "primary")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "secondary")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "deselect")),
		}
	}

	return model{
		session:    sess,
		clock:      clock,
		log:        log,
		load:       load,
		tick:       cfg.Playback.Tick,
		seekStep:   cfg.Playback.SeekStep,
		spinner:    s,
		help:       help.New(),
		keys:       defaultKeyMap(),
		loading:    load != nil,
		loadingMsg: "Loading transcripts...",
		list:       l,
	}
}

func (m model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spinner.Tick, m.load)
	}
	return tickCmd(m.tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(min(40, msg.Width), max(3, msg.Height-headerRows-2))
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		if m.loading || m.picking {
			return m, nil
		}
		return m.updateMouse(msg), nil

	case transcriptsLoadedMsg:
		m.session.Load(msg.result)
		if m.clock.Duration() <= 0 {
			m.clock.SetDuration(m.session.Duration())
		}
		m.statuses = append(m.statuses, msg.result.Summary())
		for _, lang := range m.session.Tracks().FailedLanguages() {
			m.statuses = append(m.statuses, fmt.Sprintf("%s unavailable: %v", lang, m.session.Tracks().Failed(lang)))
		}
		m.loading = false
		m.clock.Play()
		m.lastTick = time.Now()
		return m, tickCmd(m.tick)

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() && m.clock.Playing() {
			m.clock.Advance(now.Sub(m.lastTick))
		}
		m.lastTick = now
		return m, tickCmd(m.tick)

	case errorMsg:
		m.log.Error("load failed", zap.Error(msg.err))
		m.statuses = append(m.statuses, msg.err.Error())
		m.loading = false
		m.errorMsg = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.loading || m.errorMsg != "" {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Play):
		m.clock.Toggle()
	case key.Matches(msg, m.keys.Back):
		m.clock.SeekBy(-m.seekStep)
	case key.Matches(msg, m.keys.Forward):
		m.clock.SeekBy(m.seekStep)
	case key.Matches(msg, m.keys.Placement):
		m.session.TogglePlacement()
	case key.Matches(msg, m.keys.Highlight):
		m.session.SetHighlighting(!m.session.Highlighting())
	case key.Matches(msg, m.keys.Theme):
		m.session.SetDark(!m.session.Dark())
	case key.Matches(msg, m.keys.Hide1):
		m.toggleHidden(0)
	case key.Matches(msg, m.keys.Hide2):
		m.toggleHidden(1)
	case key.Matches(msg, m.keys.Languages):
		m.picking = true
		m.list.SetItems(languageItems(m.session))
	}
	return m, nil
}

func (m model) toggleHidden(slot int) {
	if sel := m.session.Selected(); slot < len(sel) {
		m.session.ToggleHidden(sel[slot])
	}
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "l", "q":
		m.picking = false
		return m, nil
	case "enter", "1", "2", "x":
		i, ok := m.list.SelectedItem().(item)
		if !ok {
			return m, nil
		}
		rank := session.Primary
		switch msg.String() {
		case "2":
			rank = session.Secondary
		case "x":
			rank = session.Unranked
		}
		m.session.SetRank(i.code, rank)
		m.log.Info("language rank changed", zap.String("lang", i.code), zap.Stringer("rank", rank))
		idx := m.list.Index()
		m.list.SetItems(languageItems(m.session))
		m.list.Select(idx)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// videoRect is the screen region standing in for the video.
func (m model) videoRect() render.Rect {
	reserved := headerRows + footerRows
	if m.session.Placement() == session.Below {
		reserved += max(1, len(m.session.Visible())) * 2
	}
	return render.Rect{Left: 0, Top: headerRows, Width: max(m.width, 1), Height: max(m.height-reserved, 3)}
}

func (m model) container(video render.Rect) overlay.Container {
	return overlay.Container{
		Left:   float64(video.Left),
		Top:    float64(video.Top),
		Width:  float64(video.Width),
		Height: float64(video.Height),
	}
}

// overlayRect is the overlay box in screen cells.
func (m model) overlayRect(video render.Rect) render.Rect {
	_, r := render.PlaceOverlay(m.session.Frame(m.clock.Now()), m.session.Overlay().Geometry(), video.Width, video.Height)
	r.Left += video.Left
	r.Top += video.Top
	return r
}

func (m model) progressRow() int {
	video := m.videoRect()
	row := video.Top + video.Height
	if m.session.Placement() == session.Below {
		row += max(1, len(m.session.Visible())) * 2
	}
	return row
}

func (m model) updateMouse(msg tea.MouseMsg) model {
	video := m.videoRect()
	box := m.container(video)
	p := overlay.Pointer{Source: overlay.Mouse, X: float64(msg.X), Y: float64(msg.Y)}
	ctl := m.session.Overlay()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if m.session.Placement() == session.Overlay {
			if target, ok := m.overlayRect(video).Hit(msg.X, msg.Y); ok {
				ctl.PointerDown(target, p, box)
				return m
			}
		}
		if msg.Y == m.progressRow() && m.width > 0 {
			m.clock.Seek(float64(msg.X) / float64(m.width) * m.clock.Duration())
		}
	case tea.MouseActionMotion:
		ctl.PointerMove(p, box)
	case tea.MouseActionRelease:
		if ctl.PointerUp() {
			g := ctl.Geometry()
			m.log.Debug("overlay moved",
				zap.Float64("x", g.X),
				zap.Float64("y", g.Y),
				zap.Float64("width", g.Width),
			)
		}
	}
	return m
}

func (m model) View() string {
	header := BulletStyle.Render("┌") + TitleStyle.Render("captioncraft") + DimTextStyle.Render(" "+m.title)
	if m.quitting {
		return styleOutput(m.statuses)
	}
	if m.errorMsg != "" {
		return header + "\n" + styleOutput(m.statuses) + "\nPress 'q' to quit"
	}
	if m.loading {
		return header + "\n" + m.spinner.View() + m.loadingMsg
	}
	if m.picking {
		return header + "\n" + m.list.View()
	}

	video := m.videoRect()
	lines := m.session.Frame(m.clock.Now())

	var b strings.Builder
	b.WriteString(header + "\n")

	if m.session.Placement() == session.Overlay {
		canvas, _ := render.PlaceOverlay(lines, m.session.Overlay().Geometry(), video.Width, video.Height)
		b.WriteString(canvas)
	} else {
		glyph := "▶"
		if !m.clock.Playing() {
			glyph = "❚❚"
		}
		b.WriteString(lipgloss.Place(video.Width, video.Height, lipgloss.Center, lipgloss.Center, VideoStyle.Render(glyph)))
		b.WriteString("\n")
		b.WriteString(m.belowCaptions(lines))
	}
	b.WriteString("\n")

	b.WriteString(m.progressLine() + "\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) belowCaptions(lines []render.Line) string {
	rows := max(1, len(m.session.Visible())) * 2
	var out []string
	for _, l := range lines {
		out = append(out, render.RenderLine(l, m.width))
	}
	for _, lang := range m.session.Unavailable() {
		if !m.session.Hidden(lang) {
			out = append(out, ErrorStyle.Render(lang+" unavailable"))
		}
	}
	return lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(strings.Join(out, "\n"))
}

func (m model) progressLine() string {
	stamp := formatTimestamp(m.clock.Now()) + " / " + formatTimestamp(m.clock.Duration())
	return TimestampStyle.Render(stamp+" ") + progressBar(m.width-lipgloss.Width(stamp)-1, m.clock.Progress())
}

func (m model) statusLine() string {
	flag := func(name string, on bool) string {
		if on {
			return FlagOnStyle.Render(name)
		}
		return FlagOffStyle.Render(name)
	}
	parts := []string{
		flag(m.session.Placement().String(), m.session.Placement() == session.Overlay),
		flag("highlight", m.session.Highlighting()),
		flag("dark", m.session.Dark()),
	}
	for _, lang := range m.session.Selected() {
		parts = append(parts, flag(lang, !m.session.Hidden(lang)))
	}
	if len(m.statuses) > 0 {
		st := DimTextStyle
		if len(m.session.Tracks().FailedLanguages()) == 0 {
			st = SuccessStyle
		}
		parts = append(parts, st.Render(m.statuses[0]))
	}
	return strings.Join(parts, " · ")
}

func main() {
	root := &cobra.Command{
		Use:          "captioncraft",
		Short:        "Play multi-language captions with part-of-speech highlighting",
		Version:      VERSION,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("config", config.DefaultPath, "Config file")
	root.Flags().String("dir", "", "Directory of <lang>.json / <lang>.vtt transcripts")
	root.Flags().String("api", "", "Transcript API base URL")
	root.Flags().String("video", "", "Video URL or ID for the transcript API")
	root.Flags().StringSlice("lang", nil, "Languages to load (default: all available)")
	root.Flags().Bool("overlay", false, "Start with captions in the overlay box")
	root.Flags().Float64("duration", 0, "Media duration in seconds (default: end of the last caption)")

	// Hidden tuning flag
	root.Flags().Duration("tick", 0, "Playback tick interval")
	_ = root.Flags().MarkHidden("tick")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, BulletStyle.Render("└")+ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	fmt.Println(BulletStyle.Render("┌") + TitleStyle.Render("captioncraft"))

	if cfg.Source.APIURL != "" && cfg.Source.Token == "" {
		if cfg.Source.Token, err = resolveToken(); err != nil {
			return err
		}
	}

	src, title, err := newSource(cfg, log)
	if err != nil {
		return err
	}

	sess := session.New(session.Options{
		Palette:      cfg.Palette,
		BaseStyle:    cfg.DefaultStyle,
		Overrides:    cfg.Languages,
		Dark:         cfg.DarkMode,
		Highlighting: cfg.Highlighting,
		Placement:    session.ParsePlacement(cfg.Placement),
		Geometry:     cfg.Geometry(),
		Primary:      cfg.Primary,
		Secondary:    cfg.Secondary,
		Logger:       log.Named("session"),
	})

	duration, _ := cmd.Flags().GetFloat64("duration")
	langs, _ := cmd.Flags().GetStringSlice("lang")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newModel(sess, playback.NewClock(duration), cfg, loadTranscriptsCmd(ctx, src, langs, log.Named("source")), log)
	m.title = title

	log.Info("starting",
		zap.String("config", cfg.Path()),
		zap.String("source", title),
		zap.Strings("langs", langs),
	)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if fm, ok := final.(model); ok && len(fm.statuses) > 0 {
		fmt.Print(styleOutput(fm.statuses))
	}
	return nil
}

// applyFlags lets explicit command-line flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Source.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("api") {
		api, _ := flags.GetString("api")
		cfg.Source.APIURL = strings.TrimRight(api, "/")
	}
	if flags.Changed("video") {
		cfg.Source.Video, _ = flags.GetString("video")
	}
	if flags.Changed("overlay") {
		if on, _ := flags.GetBool("overlay"); on {
			cfg.Placement = "overlay"
		} else {
			cfg.Placement = "below"
		}
	}
	if flags.Changed("tick") {
		cfg.Playback.Tick, _ = flags.GetDuration("tick")
	}
	return cfg.Validate()
}
