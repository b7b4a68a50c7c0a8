// Package tui provides the Bubble Tea terminal karaoke player.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kvmet/tanukioke/internal/audio"
	"github.com/kvmet/tanukioke/internal/config"
	ioutils "github.com/kvmet/tanukioke/internal/io"
	"github.com/kvmet/tanukioke/internal/lrx"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "tui")

// Player is the transport the UI drives. *audio.Transport implements it.
type Player interface {
	audio.Sampler

	LoadTracks(ctx context.Context, specs []audio.TrackSpec, baseDir string) error
	Play() error
	Pause()
	Stop()
	Seek(pos time.Duration) error
	SetVolume(id string, v float64) error
	Tracks() []audio.TrackInfo
}

// Model is the Bubble Tea model for the player.
type Model struct {
	ctx      context.Context
	player   Player
	settings *config.Settings
	keys     keyMap
	help     help.Model
	progress progress.Model

	path  string
	doc   *lrx.Document
	lyric lyricView

	snap       audio.Snapshot
	tracks     []audio.TrackInfo
	selected   int
	syncOffset float64
	loading    bool
	status     string
	err        error

	width  int
	height int
}

// NewModel creates a player for the song at path. Stems are loaded when
// the program starts.
func NewModel(ctx context.Context, player Player, doc *lrx.Document, path string, settings *config.Settings) Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 50

	return Model{
		ctx:      ctx,
		player:   player,
		settings: settings,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: prog,
		path:     path,
		doc:      doc,
		lyric:    newLyricView(doc, settings),
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Message types
type (
	// tickMsg requests a new frame.
	tickMsg struct{}

	// tracksLoadedMsg is sent when LoadTracks returns.
	tracksLoadedMsg struct {
		Err error
	}

	// playedMsg is sent when Play returns. Play may reopen every stem after
	// a seek, so it runs as a command.
	playedMsg struct {
		Err error
	}

	// lyricsChangedMsg carries the re-parsed document after the LRX file
	// changed on disk.
	lyricsChangedMsg struct {
		Doc *lrx.Document
		Err error
	}
)

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTracks(), m.tick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.snap = m.player.Snapshot()
		return m, cmd

	case tickMsg:
		m.snap = m.player.Snapshot()
		if m.snap.Ended() {
			logger.Debug("Playback reached the end")
			m.player.Stop()
			m.snap = m.player.Snapshot()
		}
		return m, m.tick()

	case tracksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.tracks = m.player.Tracks()
		if m.selected >= len(m.tracks) {
			m.selected = 0
		}
		m.status = fmt.Sprintf("Loaded %d track(s)", len(m.tracks))
		m.snap = m.player.Snapshot()
		return m, nil

	case playedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		}
		m.snap = m.player.Snapshot()
		return m, nil

	case lyricsChangedMsg:
		if msg.Err != nil {
			logger.WithError(msg.Err).Warn("Keeping previous lyrics")
			m.err = msg.Err
			return m, nil
		}
		return m, m.setDocument(msg.Doc)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.player.Stop()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case m.loading:
		// Transport controls wait for the stems.

	case key.Matches(msg, m.keys.PlayPause):
		if m.player.Snapshot().Playing {
			m.player.Pause()
			return nil
		}
		return m.play()

	case key.Matches(msg, m.keys.Stop):
		m.player.Stop()

	case key.Matches(msg, m.keys.SeekBack):
		return m.seekBy(-m.settings.SeekStep())

	case key.Matches(msg, m.keys.SeekForward):
		return m.seekBy(m.settings.SeekStep())

	case key.Matches(msg, m.keys.SelectTrack):
		if i := int(msg.String()[0] - '1'); i < len(m.tracks) {
			m.selected = i
		}

	case key.Matches(msg, m.keys.VolumeUp):
		m.changeVolume(m.settings.VolumeStep)

	case key.Matches(msg, m.keys.VolumeDown):
		m.changeVolume(-m.settings.VolumeStep)

	case key.Matches(msg, m.keys.LyricsLater), key.Matches(msg, m.keys.LyricsSoon):
		m.syncOffset += syncStep(msg.String())

	case key.Matches(msg, m.keys.ResetSync):
		m.syncOffset = 0
	}
	return nil
}

// seekBy moves the position by delta within the song. Playback resumes
// from the new position if it was running.
func (m *Model) seekBy(delta time.Duration) tea.Cmd {
	snap := m.player.Snapshot()

	pos := snap.Position + delta
	if pos < 0 {
		pos = 0
	}
	if snap.Duration > 0 && pos > snap.Duration {
		pos = snap.Duration
	}

	if err := m.player.Seek(pos); err != nil {
		m.err = err
		return nil
	}
	if snap.Playing {
		return m.play()
	}
	return nil
}

func (m *Model) changeVolume(delta float64) {
	if m.selected >= len(m.tracks) {
		return
	}
	t := &m.tracks[m.selected]

	if err := m.player.SetVolume(t.ID, t.Volume+delta); err != nil {
		m.err = err
		return
	}
	m.tracks = m.player.Tracks()
}

// setDocument swaps in a re-parsed document. Stems are reloaded only when
// the track declarations changed.
func (m *Model) setDocument(doc *lrx.Document) tea.Cmd {
	reload := !slices.Equal(trackSpecs(m.doc), trackSpecs(doc))

	m.doc = doc
	m.lyric = newLyricView(doc, m.settings)
	m.err = nil
	m.status = "Lyrics reloaded"
	logger.WithField("reload_tracks", reload).Info("Lyrics changed on disk")

	if !reload {
		return nil
	}
	m.loading = true
	return m.loadTracks()
}

// lyricPosition is the position in seconds used to place the lyrics.
func (m Model) lyricPosition() float64 {
	return m.snap.Position.Seconds() + m.doc.Offset().Seconds() + m.syncOffset
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.settings.FrameInterval(), func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m Model) loadTracks() tea.Cmd {
	ctx, player := m.ctx, m.player
	specs := trackSpecs(m.doc)
	baseDir := filepath.Dir(m.path)

	return func() tea.Msg {
		return tracksLoadedMsg{Err: player.LoadTracks(ctx, specs, baseDir)}
	}
}

func (m Model) play() tea.Cmd {
	player := m.player
	return func() tea.Msg {
		return playedMsg{Err: player.Play()}
	}
}

// View renders the UI.
func (m Model) View() string {
	header := titleStyle.Render("♪ " + songTitle(m.doc, m.path))
	footer := m.viewFooter()

	height := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if height < 1 {
		height = 1
	}

	return header + "\n" + m.lyric.Render(m.lyricPosition(), m.width, height) + "\n" + footer
}

func (m Model) viewFooter() string {
	var b strings.Builder

	b.WriteString(m.progress.ViewAs(m.snap.Progress()))
	b.WriteString(" ")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%s / %s", formatTime(m.snap.Position), formatTime(m.snap.Duration))))
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(m.stateLabel()))
	b.WriteString("\n")

	b.WriteString(m.viewTracks())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	case m.syncOffset != 0:
		b.WriteString(warningStyle.Render(fmt.Sprintf("Lyrics offset %+.1fs", m.syncOffset)))
	default:
		b.WriteString(dimStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) stateLabel() string {
	switch {
	case m.loading:
		return "loading"
	case m.snap.Playing:
		return "playing"
	case m.snap.Paused:
		return "paused"
	default:
		return "stopped"
	}
}

func (m Model) viewTracks() string {
	if len(m.tracks) == 0 {
		return dimStyle.Render("No tracks")
	}

	parts := make([]string, len(m.tracks))
	for i, t := range m.tracks {
		label := fmt.Sprintf("%d %s %3.0f%%", i+1, t.Name, t.Volume*100)
		if i == m.selected {
			parts[i] = selectedStyle.Render("▸ " + label)
		} else {
			parts[i] = dimStyle.Render("  " + label)
		}
	}
	return strings.Join(parts, "  ")
}

// formatTime formats d as m:ss.
func formatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Run starts the player for the song at path and blocks until the user
// quits. When settings.WatchLyrics is set, edits to the file are picked up
// while playing.
func Run(ctx context.Context, player Player, doc *lrx.Document, path string, settings *config.Settings) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, player, doc, path, settings), tea.WithAltScreen(), tea.WithContext(ctx))

	if settings.WatchLyrics {
		w, err := ioutils.WatchFile(ctx, path, 200*time.Millisecond, func() {
			doc, err := lrx.ReadFile(path)
			p.Send(lyricsChangedMsg{Doc: doc, Err: err})
		})
		if err != nil {
			logger.WithError(err).Warn("Lyrics will not reload on change")
		} else {
			defer w.Close()
		}
	}

	_, err := p.Run()
	return err
}
