// Package ui provides the Bubble Tea interface for editing a sample and
// inspecting its statistics and charts.
package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/numstat/internal/dataio"
	"github.com/verte-zerg/numstat/internal/model"
	"github.com/verte-zerg/numstat/internal/sample"
	"github.com/verte-zerg/numstat/internal/stats"
	"github.com/verte-zerg/numstat/internal/store"
)

const (
	focusInput = iota
	focusList
)

const (
	promptNone = iota
	promptEdit
	promptImport
	promptExport
)

const (
	listWidth      = 26
	minChartHeight = 4
	// title, range line, axis, tick labels, axis name, trailing blank
	chartChrome = 6
)

var accentColors = map[string]lipgloss.Color{
	"dark":  lipgloss.Color("#C89A3A"),
	"light": lipgloss.Color("#2563EB"),
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea sample editor.
type Model struct {
	sample  *sample.Sample
	history *store.Store
	cfg     model.Config

	focus     int
	prompt    int
	activeTab int

	input       textinput.Model
	promptInput textinput.Model
	promptError string
	list        table.Model
	listLayout  tableLayout
	chart       viewport.Model

	summary    *model.Summary
	summaryMsg string
	errMsg     string
	statusMsg  string

	width  int
	height int
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs the UI around s. history records undo snapshots and
// may be nil, in which case undo is unavailable. Snapshots left in history by
// an earlier session are discarded.
func NewModel(s *sample.Sample, history *store.Store, cfg model.Config) *Model {
	if s == nil {
		s = &sample.Sample{}
	}
	if cfg.Zoom == 0 {
		cfg.Zoom = sample.DefaultZoom
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	s.SetZoom(cfg.Zoom)
	m := &Model{
		sample:    s,
		history:   history,
		cfg:       cfg,
		activeTab: tabIndex(cfg.Chart),
	}
	if history != nil {
		if err := history.Clear(context.Background()); err != nil {
			m.errMsg = fmt.Sprintf("failed to reset history: %v", err)
		}
	}
	m.initInputs()
	m.initList()
	m.chart = viewport.New(0, 0)
	m.setFocus(focusInput)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.prompt != promptNone {
		return fitLines(m.renderPrompt(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.input = newInput("Add: ")
	m.input.Placeholder = "type a number and press enter"
	m.promptInput = newInput("")
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) initList() {
	keys := table.DefaultKeyMap()
	keys.LineUp = key.NewBinding(key.WithKeys("up"))
	keys.LineDown = key.NewBinding(key.WithKeys("down"))
	keys.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	keys.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	keys.GotoTop = key.NewBinding(key.WithKeys("home", "g"))
	keys.GotoBottom = key.NewBinding(key.WithKeys("end", "G"))
	m.list = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Value", Width: listWidth - 8},
		}),
		table.WithKeyMap(keys),
		table.WithHeight(1),
	)
	m.list.SetStyles(listTableStyles())
}

func listTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func tabIndex(kind model.ChartKind) int {
	for i, k := range model.ChartKinds {
		if k == kind {
			return i
		}
	}
	return 0
}

func (m *Model) activeKind() model.ChartKind {
	return model.ChartKinds[m.activeTab]
}

func (m *Model) setFocus(focus int) tea.Cmd {
	m.focus = focus
	if focus == focusInput {
		m.list.Blur()
		return m.input.Focus()
	}
	m.input.Blur()
	m.list.Focus()
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s", "alt+enter":
		m.clearMessages()
		m.calculate()
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		m.clearMessages()
		m.submitEntry()
		return m, nil
	case tea.KeyTab, tea.KeyEsc:
		return m, m.setFocus(focusList)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitEntry() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	v, err := sample.ParseValue(text)
	if err != nil {
		m.errMsg = fmt.Sprintf("invalid number %q", text)
		return
	}
	if err := m.apply("add", func() error { return m.sample.Add(v) }); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.input.SetValue("")
	m.list.SetCursor(m.sample.Len() - 1)
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clearMessages()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus(focusInput)
	case "left", "h":
		m.moveTab(-1)
	case "right", "l":
		m.moveTab(1)
	case "+", "=":
		m.sample.ZoomIn()
		m.renderPanel()
	case "-":
		m.sample.ZoomOut()
		m.renderPanel()
	case "K":
		m.moveSelected(-1)
	case "J":
		m.moveSelected(1)
	case "e":
		return m.startPrompt(promptEdit)
	case "d":
		m.deleteSelected()
	case "a":
		m.run("sort", func() error { m.sample.SortAscending(); return nil })
	case "z":
		m.run("sort", func() error { m.sample.SortDescending(); return nil })
	case "r":
		m.run("reset order", func() error { m.sample.ResetOrder(); return nil })
	case "C":
		if m.sample.Len() > 0 {
			m.run("clear", func() error { m.sample.Clear(); return nil })
		}
	case "u":
		m.undo()
	case "c":
		m.calculate()
	case "t":
		m.toggleTheme()
	case "i":
		return m.startPrompt(promptImport)
	case "x":
		return m.startPrompt(promptExport)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.chart, cmd = m.chart.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply runs a sample mutation and records the previous values for undo.
func (m *Model) apply(label string, mutate func() error) error {
	before := m.sample.Values()
	if err := mutate(); err != nil {
		return err
	}
	m.refresh()
	if m.history == nil {
		return nil
	}
	if _, err := m.history.Push(context.Background(), label, before); err != nil {
		m.errMsg = fmt.Sprintf("failed to record %s: %v", label, err)
	}
	return nil
}

func (m *Model) run(label string, mutate func() error) {
	if err := m.apply(label, mutate); err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) moveSelected(delta int) {
	from := m.list.Cursor()
	to := from + delta
	if to < 0 || to >= m.sample.Len() {
		return
	}
	m.run("move", func() error { return m.sample.Move(from, to) })
	m.list.SetCursor(to)
}

func (m *Model) deleteSelected() {
	if m.sample.Len() == 0 {
		m.errMsg = "no value selected"
		return
	}
	idx := m.list.Cursor()
	m.run("delete", func() error { return m.sample.Delete(idx) })
}

func (m *Model) undo() {
	if m.history == nil {
		m.errMsg = "undo is unavailable"
		return
	}
	snap, err := m.history.Pop(context.Background())
	if errors.Is(err, store.ErrEmpty) {
		m.statusMsg = "Nothing to undo."
		return
	}
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to undo: %v", err)
		return
	}
	if err := m.sample.Replace(snap.Values); err != nil {
		m.errMsg = fmt.Sprintf("failed to undo: %v", err)
		return
	}
	m.refresh()
	m.statusMsg = fmt.Sprintf("Undid %s.", snap.Label)
}

func (m *Model) calculate() {
	summary, err := stats.Summarize(m.sample.Values())
	if err != nil {
		m.summary = nil
		m.summaryMsg = "Please enter at least two numbers."
	} else {
		m.summary = &summary
		m.summaryMsg = ""
	}
	m.renderPanel()
}

func (m *Model) toggleTheme() {
	if m.cfg.Theme == "light" {
		m.cfg.Theme = "dark"
	} else {
		m.cfg.Theme = "light"
	}
	m.renderPanel()
}

func (m *Model) moveTab(delta int) {
	count := len(model.ChartKinds)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.renderPanel()
}

func (m *Model) clearMessages() {
	m.errMsg = ""
	m.statusMsg = ""
}

func (m *Model) startPrompt(kind int) (tea.Model, tea.Cmd) {
	m.promptError = ""
	switch kind {
	case promptEdit:
		v, err := m.sample.At(m.list.Cursor())
		if err != nil {
			m.errMsg = "no value selected"
			return m, nil
		}
		m.promptInput.Prompt = "Value: "
		m.promptInput.SetValue(strconv.FormatFloat(v, 'g', -1, 64))
	case promptImport:
		m.promptInput.Prompt = "Import from: "
		m.promptInput.SetValue("")
	case promptExport:
		m.promptInput.Prompt = "Export to: "
		m.promptInput.SetValue(dataio.DefaultExportName)
	}
	m.prompt = kind
	m.promptInput.CursorEnd()
	return m, m.promptInput.Focus()
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		if err := m.applyPrompt(strings.TrimSpace(m.promptInput.Value())); err != nil {
			m.promptError = err.Error()
			return m, nil
		}
		m.closePrompt()
		return m, nil
	}
	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptError = ""
	m.promptInput.Blur()
}

func (m *Model) applyPrompt(text string) error {
	switch m.prompt {
	case promptEdit:
		v, err := sample.ParseValue(text)
		if err != nil {
			return fmt.Errorf("invalid number %q", text)
		}
		idx := m.list.Cursor()
		return m.apply("edit", func() error { return m.sample.Edit(idx, v) })
	case promptImport:
		if text == "" {
			return errors.New("enter a file path")
		}
		values, err := dataio.Import(text)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("no numbers found in %s", text)
		}
		if err := m.apply("import", func() error { return m.sample.Replace(values) }); err != nil {
			return err
		}
		m.statusMsg = fmt.Sprintf("Imported %d values.", len(values))
	case promptExport:
		if text == "" {
			text = dataio.DefaultExportName
		}
		values := m.sample.Values()
		if err := dataio.Export(text, values); err != nil {
			return err
		}
		m.statusMsg = fmt.Sprintf("Exported %d values to %s.", len(values), text)
	}
	return nil
}

// refresh resets the summary and redraws the list and chart after a mutation.
func (m *Model) refresh() {
	m.summary = nil
	m.summaryMsg = ""
	m.syncList()
	m.renderPanel()
}

func (m *Model) syncList() {
	values := m.sample.Values()
	rows := make([]table.Row, len(values))
	for i, v := range values {
		rows[i] = table.Row{strconv.Itoa(i + 1), strconv.FormatFloat(v, 'g', -1, 64)}
	}
	m.list.SetRows(rows)
	m.listLayout.rowCount = len(rows)
	if len(rows) > 0 && m.list.Cursor() >= len(rows) {
		m.list.SetCursor(len(rows) - 1)
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.setListSize(listWidth, bodyHeight)
	m.chart.Width = m.chartWidth()
	m.chart.Height = bodyHeight
	m.input.Width = maxInt(10, m.width-lipgloss.Width(m.input.Prompt)-2)
	m.promptInput.Width = maxInt(10, modalInnerWidth(m.width)-lipgloss.Width(m.promptInput.Prompt))
	m.renderPanel()
}

func (m *Model) setListSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.listLayout.width == width && m.listLayout.height == viewportHeight {
		return
	}
	m.listLayout.width = width
	m.listLayout.height = viewportHeight
	m.list.SetWidth(width)
	m.list.SetHeight(viewportHeight)
	viewportHeight = m.adjustListHeight(height)
	if m.listLayout.height != viewportHeight {
		m.listLayout.height = viewportHeight
		m.list.SetHeight(viewportHeight)
	}
}

func (m *Model) adjustListHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.list.Height()
	viewHeight := lipgloss.Height(m.list.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(m.navStyle(true).Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 2
	if m.errMsg != "" || m.statusMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) chartWidth() int {
	width := m.width - listWidth - 1
	if width < 1 {
		return 1
	}
	return width
}

func (m *Model) navStyle(active bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true)
	if active {
		accent, ok := accentColors[m.cfg.Theme]
		if !ok {
			accent = accentColors["dark"]
		}
		return style.Foreground(lipgloss.Color("#F0F0F0")).Bold(true).BorderForeground(accent)
	}
	return style.Foreground(lipgloss.Color("#B0B0B0")).BorderForeground(lipgloss.Color("#4A4A4A"))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(model.ChartKinds))
	for i, kind := range model.ChartKinds {
		parts = append(parts, m.navStyle(i == m.activeTab).Render(kind.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + headerStyle.Render(truncateLine(m.statusLine(), m.width))
}

func (m *Model) statusLine() string {
	focus := "input"
	if m.focus == focusList {
		focus = "list"
	}
	line := fmt.Sprintf("Values: %d  Zoom: %d%%", m.sample.Len(), m.sample.Zoom())
	if depth, ok := m.undoDepth(); ok {
		line += fmt.Sprintf("  Undo: %d", depth)
	}
	return line + fmt.Sprintf("  Theme: %s  Focus: %s", m.cfg.Theme, focus)
}

func (m *Model) undoDepth() (int, bool) {
	if m.history == nil {
		return 0, false
	}
	n, err := m.history.Count(context.Background())
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m *Model) renderHelp() string {
	if m.focus == focusInput {
		return headerStyle.Render(truncateLine("enter: add  ctrl+s/alt+enter: calculate  tab: list  ctrl+c: quit", m.width))
	}
	help := "up/down: select  K/J: move  e: edit  d: delete  a/z: sort  r: reset  C: clear  u: undo  " +
		"c: calculate  +/-: zoom  left/right: chart  t: theme  i: import  x: export  tab: input  q: quit"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	lines := []string{m.input.View(), m.renderHelp()}
	switch {
	case m.errMsg != "":
		lines = append(lines, errorStyle.Render(m.errMsg))
	case m.statusMsg != "":
		lines = append(lines, statusStyle.Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	var list string
	if m.sample.Len() == 0 {
		list = "No values."
	} else {
		list = tableMutedStyle.Render(m.list.View())
	}
	left := fitLines(list, listWidth, height)
	right := fitLines(m.chart.View(), m.chartWidth(), height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m *Model) renderPrompt() string {
	title := "Edit Value"
	switch m.prompt {
	case promptImport:
		title = "Import CSV or XLSX"
	case promptExport:
		title = "Export CSV or XLSX"
	}
	body := []string{
		cardValueStyle.Render(title),
		m.promptInput.View(),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.promptError != "" {
		body = append(body, errorStyle.Render(m.promptError))
	}
	accent, ok := accentColors[m.cfg.Theme]
	if !ok {
		accent = accentColors["dark"]
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth(m.width)).
		Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderPanel redraws the summary and the active chart into the chart viewport.
func (m *Model) renderPanel() {
	width := m.chartWidth()
	if m.width <= 0 {
		width = 80
	}
	summary := m.renderSummary(width)
	_, bodyHeight, _ := m.layoutHeights()
	plotHeight := bodyHeight - chartChrome
	if summary != "" {
		plotHeight -= lipgloss.Height(summary) + 1
	}
	if plotHeight < minChartHeight {
		plotHeight = minChartHeight
	}
	chart := renderChart(m.sample.Values(), m.activeKind(), m.sample.Zoom(), stats.PlotOptions{
		Title:      m.activeKind().Title(),
		XAxis:      m.cfg.XAxis,
		YAxis:      m.cfg.YAxis,
		Width:      stats.PlotWidthFor(width),
		Height:     plotHeight,
		Theme:      m.cfg.Theme,
		ForceColor: true,
	})
	if summary != "" {
		chart = summary + "\n\n" + chart
	}
	m.chart.SetContent(chart)
}

func (m *Model) renderSummary(width int) string {
	if m.summaryMsg != "" {
		return errorStyle.Render(m.summaryMsg)
	}
	if m.summary == nil {
		return ""
	}
	rows := stats.SummaryRows(*m.summary, m.cfg.Decimals)
	cards := make([]string, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, metricCard(row[0], row[1]))
	}
	trend := headerStyle.Render(truncateLine(stats.TrendLine(m.sample.Values()), width))
	return trend + "\n" + joinCards(cards, width)
}

func renderChart(values []float64, kind model.ChartKind, zoom int, opts stats.PlotOptions) string {
	if len(values) == 0 {
		return "No values yet. Type a number and press enter."
	}
	var buf bytes.Buffer
	if err := stats.RenderChart(&buf, values, kind, float64(zoom), opts); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}
