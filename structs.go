package main

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aschmelyun/captioncraft/internal/playback"
	"github.com/aschmelyun/captioncraft/internal/session"
	"github.com/aschmelyun/captioncraft/internal/source"
)

type transcriptsLoadedMsg struct {
	result source.Result
}

type tickMsg time.Time

type errorMsg struct {
	err error
}

type model struct {
	session *session.Session
	clock   *playback.Clock
	log     *zap.Logger

	load     tea.Cmd
	tick     time.Duration
	lastTick time.Time
	seekStep float64
	title    string

	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	loading    bool
	loadingMsg string
	quitting   bool
	errorMsg   string
	statuses   []string

	// language picker
	picking bool
	list    list.Model

	width  int
	height int
}

type item struct {
	code string
	rank session.Rank
	err  error
}

type itemDelegate struct{}
