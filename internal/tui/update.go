package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		m.polled = true
		m.lastErr = nil
		m.board.ApplySnapshot(msg.snap)
		m.clampSelection()
		return m, waitForSnapshot(m.sub)

	case pollErrorMsg:
		m.lastErr = msg.err
		m.board.ApplyError()
		return m, waitForPollError(m.sub)

	case actionDoneMsg:
		// A rejected write leaves the board untouched; the next poll
		// shows the authoritative state either way.
		m.lastErr = msg.err
		return m, nil

	case subscriptionClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.sub.Stop()
		return m, tea.Quit
	}

	// A new-order alert blocks every other interaction until the order
	// is accepted or rejected.
	if alert, ok := m.board.CurrentAlert(); ok {
		switch {
		case key.Matches(msg, m.keys.Acknowledge):
			m.board.AcknowledgeOrder(alert.ID)
			return m, nil
		case key.Matches(msg, m.keys.Reject):
			return m, m.rejectOrder(alert.ID)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.board.Snapshot().Active)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Advance):
		active := m.board.Snapshot().Active
		if m.selected >= 0 && m.selected < len(active) {
			return m, m.advanceOrder(active[m.selected].ID)
		}
	}
	return m, nil
}

func (m *Model) clampSelection() {
	active := m.board.Snapshot().Active
	if m.selected >= len(active) {
		m.selected = len(active) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
