package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/creamcroissant/foodpos/internal/repository"
	"github.com/creamcroissant/foodpos/internal/support/money"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.polled {
		return styleMuted.Render("\n  waiting for first poll...\n")
	}

	if alert, ok := m.board.CurrentAlert(); ok {
		return m.renderAlert(alert)
	}

	snap := m.board.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	columnWidth := m.columnWidth()
	active := m.renderColumn("ACTIVE", snap.Active, columnWidth, m.selected)
	done := m.renderColumn("DONE", snap.Done, columnWidth, -1)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, active, " ", done))

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("↑/↓ select · enter advance · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHeader() string {
	title := styleTitle.Render("Kitchen Board")
	if m.board.Degraded() {
		return lipgloss.JoinHorizontal(lipgloss.Center,
			title,
			styleDegraded.Render("  ⚠ cannot reach server, showing last known orders"),
		)
	}
	if m.lastErr != nil {
		return lipgloss.JoinHorizontal(lipgloss.Center,
			title,
			styleMuted.Render("  retrying..."),
		)
	}
	return title
}

func (m Model) renderColumn(name string, orders []*repository.Order, width, selected int) string {
	var b strings.Builder
	b.WriteString(styleColumnHeader.Render(fmt.Sprintf("%s (%d)", name, len(orders))))
	b.WriteString("\n")

	if len(orders) == 0 {
		b.WriteString(styleMuted.Render("  no orders"))
		b.WriteString("\n")
	}
	for i, order := range orders {
		style := styleCard
		if i == selected {
			style = styleCardSelected
		}
		b.WriteString(style.Width(width).Render(renderOrderCard(order)))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width + 4).Render(b.String())
}

func renderOrderCard(order *repository.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("#%d  %s  %s\n",
		order.ID,
		order.Destination().String(),
		statusBadge(string(order.Status)),
	))

	var total int64
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("  %d× %s\n", item.Quantity, item.MenuItemName))
		if item.Notes != "" {
			b.WriteString(styleMuted.Render("     " + item.Notes))
			b.WriteString("\n")
		}
		total += item.Price * int64(item.Quantity)
	}

	b.WriteString(styleMuted.Render(fmt.Sprintf("  %s · %s",
		money.FormatSatang(total),
		age(order.CreatedAt),
	)))
	return b.String()
}

func (m Model) renderAlert(order *repository.Order) string {
	var b strings.Builder
	b.WriteString(styleDegraded.Render("NEW ORDER"))
	b.WriteString("\n\n")
	b.WriteString(renderOrderCard(order))
	if queued := m.board.PendingAlerts() - 1; queued > 0 {
		b.WriteString("\n")
		b.WriteString(styleMuted.Render(fmt.Sprintf("%d more waiting", queued)))
	}
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("a accept · x reject"))

	box := styleAlertBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func age(createdAt int64) string {
	d := time.Since(time.Unix(createdAt, 0)).Round(time.Second)
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}

func (m Model) columnWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := (m.width - 10) / 2
	if w < 30 {
		w = 30
	}
	return w
}
