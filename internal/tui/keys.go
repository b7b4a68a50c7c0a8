package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause   key.Binding
	Stop        key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	SelectTrack key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding
	LyricsLater key.Binding
	LyricsSoon  key.Binding
	ResetSync   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "rewind"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "forward"),
		),
		SelectTrack: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "select track"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("up", "k", "+", "="),
			key.WithHelp("↑", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓", "volume down"),
		),
		LyricsLater: key.NewBinding(
			key.WithKeys("[", "{"),
			key.WithHelp("[/{", "lyrics later"),
		),
		LyricsSoon: key.NewBinding(
			key.WithKeys("]", "}"),
			key.WithHelp("]/}", "lyrics sooner"),
		),
		ResetSync: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset sync"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.SeekBack, k.SeekForward, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Stop, k.SeekBack, k.SeekForward},
		{k.SelectTrack, k.VolumeUp, k.VolumeDown},
		{k.LyricsLater, k.LyricsSoon, k.ResetSync},
		{k.Help, k.Quit},
	}
}

// syncStep returns the lyric offset change for a sync key: shifted
// brackets move in bigger steps.
func syncStep(k string) float64 {
	switch k {
	case "[":
		return -0.1
	case "]":
		return 0.1
	case "{":
		return -0.5
	case "}":
		return 0.5
	}
	return 0
}
