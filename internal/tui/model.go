package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/handlewatch/internal/config"
	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/metrics"
	"github.com/agbru/handlewatch/internal/sampler"
	"github.com/agbru/handlewatch/internal/scheduler"
	"github.com/agbru/handlewatch/internal/sysmon"
)

// Poller is the part of *scheduler.Poller the dashboard drives.
type Poller interface {
	RunOnce(ctx context.Context) (sampler.Snapshot, error)
	Start(interval time.Duration) error
	Stop()
	Wait()
	State() scheduler.State
	Filter() string
	SetFilter(filter string)
}

var _ Poller = (*scheduler.Poller)(nil)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the height left for the table and metrics panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight - SummaryPanelHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// tableWidth returns the width allocated to the process table.
func (l LayoutManager) tableWidth() int {
	return l.width * TablePanelWidthPercent / 100
}

// metricsWidth returns the width allocated to the metrics panel.
func (l LayoutManager) metricsWidth() int {
	return l.width - l.tableWidth()
}

// Layout constants for the TUI dashboard.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 5
	TablePanelWidthPercent = 72
)

// tickInterval paces the state and runtime refresh.
const tickInterval = 500 * time.Millisecond

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header    HeaderModel
	summary   SummaryModel
	processes ProcessTableModel
	metrics   MetricsModel
	footer    FooterModel

	keymap KeyMap

	LayoutManager

	ctx      context.Context
	poller   Poller
	interval time.Duration
	exitCode int
}

// NewModel creates a dashboard over p. The poller must publish its results
// to the Bridge whose program runs this model.
func NewModel(ctx context.Context, p Poller, cfg config.AppConfig, version string) Model {
	km := DefaultKeyMap()
	return Model{
		header:    NewHeaderModel(version, p.Filter(), cfg.Interval),
		summary:   NewSummaryModel(),
		processes: NewProcessTableModel(),
		metrics:   NewMetricsModel(),
		footer:    NewFooterModel(km),
		keymap:    km,
		ctx:       ctx,
		poller:    p,
		interval:  cfg.Interval,
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init starts the repeating session and the background readers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCmd(m.poller, m.interval),
		hostRAMCmd(m.ctx),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.footer.Editing() {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ResultMsg:
		if msg.Result.Err != nil {
			// The previous snapshot stays on screen.
			m.footer.SetError(msg.Result.Err)
			return m, nil
		}
		snap := msg.Result.Snapshot
		m.footer.SetError(nil)
		m.summary.Update(snap)
		m.processes.SetSamples(snap.FilterUsed, snap.Matched, snap.Timestamp)
		return m, nil

	case SessionMsg:
		if msg.Err != nil {
			m.footer.SetError(msg.Err)
		}
		m.header.SetState(m.poller.State())
		return m, nil

	case StoppedMsg, PassDoneMsg:
		m.header.SetState(m.poller.State())
		return m, nil

	case HostRAMMsg:
		if msg.Err == nil {
			m.header.SetHostRAM(msg.Bytes)
		}
		return m, nil

	case TickMsg:
		m.header.SetState(m.poller.State())
		return m, tea.Batch(sampleRuntimeCmd(), sampleSysStatsCmd(m.ctx), tickCmd())

	case RuntimeMsg:
		m.metrics.UpdateRuntime(msg.Stats)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.poller.Stop()
		return m, tea.Quit
	}

	if m.footer.Editing() {
		var cmd tea.Cmd
		m.footer, cmd = m.footer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.RunOnce):
		m.header.SetState(scheduler.Running)
		return m, runOnceCmd(m.ctx, m.poller)

	case key.Matches(msg, m.keymap.Toggle):
		if m.poller.State() == scheduler.Repeating {
			m.poller.Stop()
			return m, waitCmd(m.poller)
		}
		return m, startCmd(m.poller, m.interval)

	case key.Matches(msg, m.keymap.IntervalUp):
		return m.changeInterval(config.NextInterval(m.interval))

	case key.Matches(msg, m.keymap.IntervalDown):
		return m.changeInterval(config.PrevInterval(m.interval))

	case key.Matches(msg, m.keymap.Filter):
		cmd := m.footer.StartEditing(m.poller.Filter())
		return m, cmd

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.processes, cmd = m.processes.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.footer.StopEditing()
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		raw := m.footer.StopEditing()
		filter := strings.TrimSpace(raw)
		if filter == "" {
			m.footer.SetError(apperrors.InvalidFilterError{Filter: raw})
			return m, nil
		}
		m.poller.SetFilter(filter)
		m.header.SetFilter(filter)
		m.footer.SetError(nil)
		if m.poller.State() == scheduler.Repeating {
			// The running session picks the filter up on its next pass.
			return m, nil
		}
		return m, runOnceCmd(m.ctx, m.poller)

	case msg.Type == tea.KeyCtrlC:
		m.poller.Stop()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.footer, cmd = m.footer.Update(msg)
	return m, cmd
}

// changeInterval records the new interval and, when a session is active,
// restarts it so the new pace applies at once.
func (m Model) changeInterval(d time.Duration) (tea.Model, tea.Cmd) {
	m.interval = d
	m.header.SetInterval(d)
	if m.poller.State() != scheduler.Repeating {
		return m, nil
	}
	m.poller.Stop()
	return m, restartCmd(m.poller, d)
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.processes.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.summary.View(),
		body,
		m.footer.View(),
	)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.summary.SetSize(m.width, SummaryPanelHeight)
	m.processes.SetSize(m.tableWidth(), m.bodyHeight())
	m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
// The poller must already publish to bridge.Sink.
func Run(ctx context.Context, p Poller, bridge *Bridge, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, p, cfg, version)

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so the sink can Send.
	bridge.SetProgram(prog)
	defer bridge.SetProgram(nil)

	finalModel, err := prog.Run()
	p.Stop()
	p.Wait()
	if err != nil {
		// A signal ends the dashboard the same way q does.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// startCmd starts a repeating session off the update loop.
func startCmd(p Poller, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		return SessionMsg{Interval: interval, Err: p.Start(interval)}
	}
}

// restartCmd waits for the stopped session to drain, then starts a new one.
func restartCmd(p Poller, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		p.Wait()
		return SessionMsg{Interval: interval, Err: p.Start(interval)}
	}
}

// waitCmd reports when the stopped session's loop has exited.
func waitCmd(p Poller) tea.Cmd {
	return func() tea.Msg {
		p.Wait()
		return StoppedMsg{}
	}
}

// runOnceCmd runs an on-demand pass. Its result is delivered by the sink.
func runOnceCmd(ctx context.Context, p Poller) tea.Cmd {
	return func() tea.Msg {
		_, _ = p.RunOnce(ctx)
		return PassDoneMsg{}
	}
}

// hostRAMCmd reads the installed physical memory once.
func hostRAMCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		b, err := sysmon.TotalRAM(ctx)
		return HostRAMMsg{Bytes: b, Err: err}
	}
}

// sampleRuntimeCmd reads runtime memory stats and returns a RuntimeMsg.
func sampleRuntimeCmd() tea.Cmd {
	return func() tea.Msg {
		return RuntimeMsg{Stats: metrics.ReadRuntime()}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
