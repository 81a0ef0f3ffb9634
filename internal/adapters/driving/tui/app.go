package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/views/record"
	"github.com/custodia-labs/storycsv/internal/adapters/driving/tui/views/rows"
	"github.com/custodia-labs/storycsv/internal/core/ports/driving"
)

// App is the row browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	ctx   context.Context

	// path is the browsed file; maxWidth cuts values in the row list.
	path     string
	maxWidth int

	styles *styles.Styles
	keymap *keymap.KeyMap

	rowsView   *rows.View
	recordView *record.View
	statusBar  *status.Bar

	report      *driving.InspectReport
	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser for the tab-delimited file at path.
func NewApp(ports *Ports, path string, maxWidth int) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if path == "" {
		return nil, fmt.Errorf("creating app: %w", ErrMissingPath)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		path:        path,
		maxWidth:    max(1, maxWidth),
		styles:      s,
		keymap:      km,
		rowsView:    rows.NewView(s, km),
		recordView:  record.NewView(s, km),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewRows,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("storycsv - "+a.path),
		a.loadReport(),
	)
}

// loadReport reads every data row of the file.
func (a *App) loadReport() tea.Cmd {
	return func() tea.Msg {
		report, err := a.ports.Inspect.Inspect(a.ctx, driving.InspectRequest{
			Path:     a.path,
			MaxRows:  math.MaxInt,
			MaxWidth: a.maxWidth,
		})
		return messages.ReportLoaded{Report: report, Err: err}
	}
}

// export writes the spreadsheet copy next to the file.
func (a *App) export() tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Inspect.Export(a.ctx, driving.ExportRequest{Path: a.path})
		return messages.ExportCompleted{Result: result, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		cmd = a.handleKeyMsg(msg)

	case messages.ReportLoaded:
		a.rowsView, cmd = a.rowsView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.report = msg.Report
			a.err = nil
			a.statusBar.SetState(status.StateReady)
		}

	case messages.RowSelected:
		a.recordView.SetRow(a.report, msg.Index)
		a.currentView = messages.ViewRecord
		a.statusBar.SetState(status.StateRecord)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewRows && a.err == nil {
			a.statusBar.SetState(status.StateReady)
		}

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetState(status.StateExported)
			a.statusBar.SetMessage(msg.Result.OutputPath)
		}

	case messages.ErrorOccurred:
		a.setError(msg.Err)

	case messages.Quit:
		return a, tea.Quit
	}

	a.statusBar.SetPosition(a.rowsView.Selected()+1, a.rowsView.RowCount())
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	k := msg.String()
	if k == "ctrl+c" {
		return tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			a.currentView = messages.ViewRows
		} else if keymap.Matches(k, a.keymap.Quit) {
			return tea.Quit
		}

	case messages.ViewRecord:
		a.recordView, cmd = a.recordView.Update(msg)

	case messages.ViewRows:
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return tea.Quit
		case keymap.Matches(k, a.keymap.Help):
			a.currentView = messages.ViewHelp
		case keymap.Matches(k, a.keymap.Export):
			return a.export()
		default:
			if a.statusBar.State() == status.StateExported {
				a.statusBar.SetState(status.StateReady)
			}
			a.rowsView, cmd = a.rowsView.Update(msg)
		}
	}
	return cmd
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewRecord:
		body = a.recordView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.rowsView.View()
	}

	// Pin the status bar to the last line.
	if pad := a.height - 1 - strings.Count(body, "\n"); pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, a.styles.Help.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("[esc] back to rows"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Report returns the loaded file, or nil before loading.
func (a *App) Report() *driving.InspectReport {
	return a.report
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions. One line is kept for the
// status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.rowsView.SetDimensions(width, height-1)
	a.recordView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
