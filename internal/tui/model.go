// Package tui renders the kitchen board: a two-column terminal display
// of active and done orders fed by the polling engine, with a blocking
// alert overlay for each newly arrived order.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/creamcroissant/foodpos/internal/ordersync"
)

// Model is the kitchen board TUI model. All order state lives in the
// ordersync.Board projection; the model only holds cursor and terminal
// geometry.
type Model struct {
	board *ordersync.Board
	sub   *ordersync.Subscription

	// selected indexes into the active column.
	selected int

	width  int
	height int

	polled  bool
	lastErr error

	keys keyMap
}

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Advance     key.Binding
	Acknowledge key.Binding
	Reject      key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "advance status"),
		),
		Acknowledge: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "accept"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewModel builds the board model over a running poll subscription.
func NewModel(board *ordersync.Board, sub *ordersync.Subscription) Model {
	return Model{
		board: board,
		sub:   sub,
		keys:  defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.sub),
		waitForPollError(m.sub),
	)
}

// Messages.

type snapshotMsg struct {
	snap ordersync.Snapshot
}

type pollErrorMsg struct {
	err error
}

type subscriptionClosedMsg struct{}

type actionDoneMsg struct {
	err error
}

// Commands.

func waitForSnapshot(sub *ordersync.Subscription) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-sub.Snapshots()
		if !ok {
			return subscriptionClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

func waitForPollError(sub *ordersync.Subscription) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-sub.Errors()
		if !ok {
			return subscriptionClosedMsg{}
		}
		return pollErrorMsg{err: err}
	}
}

func (m Model) advanceOrder(id int64) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: m.board.AdvanceStatus(context.Background(), id)}
	}
}

func (m Model) rejectOrder(id int64) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: m.board.RejectOrder(context.Background(), id)}
	}
}
