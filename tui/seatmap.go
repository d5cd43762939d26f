package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cinebook-cli/booking"
)

func (m *appModel) moveCursor(key string) {
	rows := m.inv.Theater.Rows
	cols := m.inv.Theater.SeatsPerRow
	if rows == 0 || cols == 0 {
		return
	}
	switch key {
	case "up", "k":
		m.cursorRow--
	case "down", "j":
		m.cursorRow++
	case "left", "h":
		m.cursorSeat--
	case "right", "l":
		m.cursorSeat++
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorRow > rows-1 {
		m.cursorRow = rows - 1
	}
	if m.cursorSeat < 0 {
		m.cursorSeat = 0
	}
	if m.cursorSeat > cols-1 {
		m.cursorSeat = cols - 1
	}
}

func (m *appModel) toggleSeatUnderCursor() {
	seat, ok := m.inv.SeatAt(m.cursorRow+1, m.cursorSeat+1)
	if !ok {
		return
	}
	changed := m.selection.Toggle(seat.Id, m.inv.Reserved)
	if changed {
		m.notice = ""
	}
}

func (m appModel) seatMapView() string {
	if m.inv.Theater.Rows == 0 || m.inv.Theater.SeatsPerRow == 0 || len(m.inv.Seats) == 0 {
		return "No seat map data."
	}

	grid := m.inv.Grid()
	rows := m.inv.Theater.Rows
	cols := m.inv.Theater.SeatsPerRow

	rowWidth := 2
	for r := 1; r <= rows; r++ {
		if l := len(booking.RowLabel(r)); l > rowWidth {
			rowWidth = l
		}
	}

	cellWidth := 2
	if m.showSeatNumbers {
		for _, row := range grid {
			for _, seat := range row {
				if seat == nil {
					continue
				}
				if l := len(fmt.Sprint(seat.SeatNumber)); l > cellWidth {
					cellWidth = l
				}
			}
		}
	}

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	seatStyleReserved := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleVIP := lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	available := 0
	reserved := 0
	vip := 0

	var b strings.Builder

	gridWidth := cols*(cellWidth+1) - 1
	screenBar := screenBarBlock(gridWidth, "SCREEN")
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenBorderStyle.Render(screenBar.top))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenStyle.Render(screenBar.mid))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowWidth+1))
	b.WriteString(screenBorderStyle.Render(screenBar.bot))
	b.WriteString("\n\n")

	for r := 0; r < rows; r++ {
		label := booking.RowLabel(r + 1)
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, label))
		for c := 0; c < cols; c++ {
			seat := grid[r][c]
			if seat == nil {
				b.WriteString(strings.Repeat(" ", cellWidth))
				if c < cols-1 {
					b.WriteString(" ")
				}
				continue
			}

			status := booking.ClassifySeat(*seat, m.inv.Reserved, m.selection)
			token := "[]"
			switch status {
			case booking.StatusReserved:
				reserved++
				token = "XX"
			case booking.StatusSelected:
				token = "()"
			case booking.StatusVIP:
				vip++
			default:
				available++
			}
			text := token
			if m.showSeatNumbers && status != booking.StatusReserved {
				text = fmt.Sprint(seat.SeatNumber)
			}
			rendered := padCell(text, cellWidth)
			switch status {
			case booking.StatusReserved:
				rendered = seatStyleReserved.Render(rendered)
			case booking.StatusSelected:
				rendered = seatStyleSelected.Render(rendered)
			case booking.StatusVIP:
				rendered = seatStyleVIP.Render(rendered)
			default:
				rendered = seatStyleAvailable.Render(rendered)
			}
			if r == m.cursorRow && c == m.cursorSeat {
				rendered = cursorStyle.Render(padCell(text, cellWidth))
			}
			b.WriteString(rendered)
			if c < cols-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, label))
	}

	legend := "Legend: [] available • () selected • XX reserved • first 3 rows VIP"
	if m.showSeatNumbers {
		legend = "Legend: color shows status • green available • orange selected • red reserved • purple VIP"
	}
	counts := fmt.Sprintf("Available: %d • VIP: %d • Reserved: %d • Selected: %d/%d",
		available, vip, reserved, m.selection.Count(), booking.MaxSeatsPerBooking)

	return b.String() + "\n" + hint(legend) + "\n" + hint(counts) + "\n\n" + m.summaryView()
}

func (m appModel) summaryView() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Booking Summary")}

	labels := m.selection.Labels(m.inv.Seats)
	if len(labels) == 0 {
		lines = append(lines, "Seats: none selected")
	} else {
		lines = append(lines, fmt.Sprintf("Seats (%d): %s", len(labels), strings.Join(labels, ", ")))
		unit := m.inv.Showtime.Price.Float()
		lines = append(lines,
			fmt.Sprintf("Tickets: %.2f", unit*float64(m.selection.Count())),
			fmt.Sprintf("Booking fee: %.2f", booking.ServiceFee),
			lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Total: %.2f", booking.TotalPrice(unit, m.selection.Count()))),
		)
	}
	if m.notice != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.notice))
	}
	lines = append(lines, "", hint(fmt.Sprintf("Maximum %d seats per booking", booking.MaxSeatsPerBooking)))
	return strings.Join(lines, "\n")
}

func (m appModel) confirmDialogView() string {
	headerChip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)

	labels := m.selection.Labels(m.inv.Seats)
	unit := m.inv.Showtime.Price.Float()
	total := booking.TotalPrice(unit, m.selection.Count())

	content := strings.Join([]string{
		headerChip.Render("Confirm Your Booking"),
		"",
		m.inv.Showtime.Movie.Title,
		m.inv.Showtime.ShowTime.Format("Mon Jan 2 2006 15:04"),
		m.inv.Theater.Name,
		"",
		fmt.Sprintf("Seats: %s", strings.Join(labels, ", ")),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Total: %.2f", total)),
		"",
		hint("ENTER confirm • ESC cancel"),
	}, "\n")

	panelStyle := lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		MarginTop(1)
	panel := panelStyle.Render(content)
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
