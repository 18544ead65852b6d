package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mkessler/quickcap/internal/application"
	"github.com/mkessler/quickcap/internal/domain/capture"
	"github.com/mkessler/quickcap/internal/infrastructure/wiring"
)

var (
	captureProjectID int
	captureUserID    int
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Interactively capture a note and turn it into a task",
	Long: `Capture opens an interactive session: write a note, let the AI
structure it, review the preview, and commit it to the tracker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}

		values, err := services.Settings.All()
		if err != nil {
			return err
		}
		projectID := captureProjectID
		if projectID == 0 {
			projectID = values.DefaultProject()
		}
		if projectID == 0 {
			return fmt.Errorf("no project id: pass --project or set default_project")
		}
		userID := captureUserID
		if userID == 0 {
			userID = values.DefaultUser()
		}

		m, err := newCaptureModel(services, projectID, userID)
		if err != nil {
			return err
		}
		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("capture session failed: %w", err)
		}
		return nil
	},
}

func init() {
	captureCmd.Flags().IntVar(&captureProjectID, "project", 0, "Target project id (defaults to the configured default_project)")
	captureCmd.Flags().IntVar(&captureUserID, "user", 0, "Acting user id (defaults to the configured default_user)")
	RootCmd.AddCommand(captureCmd)
}

// Styles
var (
	captureHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#2563EB")).
				PaddingLeft(1).
				PaddingRight(1)

	previewBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	captureOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	captureErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	captureHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type analyzeResultMsg struct {
	preview *capture.Preview
	err     error
}

type commitResultMsg struct {
	result *application.CaptureResult
	err    error
}

type captureModel struct {
	services  *wiring.Services
	session   *capture.Session
	projectID int
	userID    int

	note    textarea.Model
	spinner spinner.Model
	preview *capture.Preview
	result  *application.CaptureResult
	err     error
}

func newCaptureModel(services *wiring.Services, projectID, userID int) (captureModel, error) {
	session, err := capture.NewSession()
	if err != nil {
		return captureModel{}, err
	}

	ta := textarea.New()
	ta.Placeholder = "Write your note, then press Ctrl+S to analyze..."
	ta.Focus()
	ta.SetWidth(72)
	ta.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return captureModel{
		services:  services,
		session:   session,
		projectID: projectID,
		userID:    userID,
		note:      ta,
		spinner:   sp,
	}, nil
}

func (m captureModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m captureModel) analyzeCmd(text string) tea.Cmd {
	return func() tea.Msg {
		draft, _, err := m.services.Analyze.Analyze(context.Background(), text)
		if err != nil {
			return analyzeResultMsg{err: err}
		}
		return analyzeResultMsg{preview: m.services.Analyze.Preview(draft)}
	}
}

func (m captureModel) commitCmd() tea.Cmd {
	preview := m.preview
	return func() tea.Msg {
		result, err := m.services.Captures.Materialize(context.Background(), preview.Draft(m.projectID), m.userID)
		return commitResultMsg{result: result, err: err}
	}
}

func (m captureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case analyzeResultMsg:
		if msg.err != nil {
			m.err = msg.err
			_ = m.session.Transition(capture.EventFail)
			return m, nil
		}
		m.preview = msg.preview
		_ = m.session.Transition(capture.EventAnalyzed)
		return m, nil

	case commitResultMsg:
		if msg.err != nil {
			m.err = msg.err
			_ = m.session.Transition(capture.EventFail)
			return m, nil
		}
		m.result = msg.result
		_ = m.session.Transition(capture.EventResolved)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.session.Current() == capture.StateDraft {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m captureModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.session.Current() {
	case capture.StateDraft:
		if msg.String() == "ctrl+s" {
			text := strings.TrimSpace(m.note.Value())
			if text == "" {
				return m, nil
			}
			if err := m.session.Transition(capture.EventAnalyze); err != nil {
				return m, nil
			}
			return m, tea.Batch(m.spinner.Tick, m.analyzeCmd(text))
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd

	case capture.StatePreview:
		switch msg.String() {
		case "enter", "y":
			if err := m.session.Transition(capture.EventCommit); err != nil {
				return m, nil
			}
			return m, tea.Batch(m.spinner.Tick, m.commitCmd())
		case "e":
			_ = m.session.Transition(capture.EventReset)
			m.note.Focus()
			return m, textarea.Blink
		case "q":
			return m, tea.Quit
		}

	case capture.StateDone:
		switch msg.String() {
		case "n":
			_ = m.session.Transition(capture.EventReset)
			m.note.Reset()
			m.preview = nil
			m.result = nil
			m.note.Focus()
			return m, textarea.Blink
		case "q", "enter":
			return m, tea.Quit
		}

	case capture.StateFailed:
		switch msg.String() {
		case "r":
			_ = m.session.Transition(capture.EventReset)
			m.err = nil
			m.note.Focus()
			return m, textarea.Blink
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m captureModel) View() string {
	header := captureHeaderStyle.Render(fmt.Sprintf("quickcap · project %d", m.projectID))

	var body string
	switch m.session.Current() {
	case capture.StateDraft:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.note.View(),
			captureHintStyle.Render("[Ctrl+S] Analyze  [Ctrl+C] Quit"),
		)

	case capture.StateAnalyzing:
		body = fmt.Sprintf("%s Analyzing note...", m.spinner.View())

	case capture.StatePreview:
		body = lipgloss.JoinVertical(lipgloss.Left,
			previewBoxStyle.Render(renderPreview(m.preview)),
			captureHintStyle.Render("[Enter] Create task  [e] Edit note  [q] Quit"),
		)

	case capture.StateCommitting:
		body = fmt.Sprintf("%s Creating task...", m.spinner.View())

	case capture.StateDone:
		lines := []string{captureOKStyle.Render(fmt.Sprintf("Created task #%d: %s", m.result.MainTaskID, m.preview.Title))}
		for _, id := range m.result.SubtaskIDs {
			lines = append(lines, fmt.Sprintf("  subtask #%d", id))
		}
		lines = append(lines, captureHintStyle.Render("\n[n] New capture  [q] Quit"))
		body = strings.Join(lines, "\n")

	case capture.StateFailed:
		body = lipgloss.JoinVertical(lipgloss.Left,
			captureErrStyle.Render(fmt.Sprintf("Error: %v", m.err)),
			captureHintStyle.Render("[r] Back to note  [q] Quit"),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body) + "\n"
}

func renderPreview(p *capture.Preview) string {
	lines := []string{
		fmt.Sprintf("%s %s", p.CategoryIcon, p.Title),
		fmt.Sprintf("Category: %s   Priority: %s", p.CategoryName, p.PriorityLabel),
	}
	if p.Deadline != "" {
		lines = append(lines, fmt.Sprintf("Deadline: %s", p.Deadline))
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	if len(p.Subtasks) > 0 {
		lines = append(lines, "", "Subtasks:")
		for _, sub := range p.Subtasks {
			lines = append(lines, fmt.Sprintf("  - %s", sub))
		}
	}
	if len(p.Tags) > 0 {
		lines = append(lines, "", "Tags: "+strings.Join(p.Tags, ", "))
	}
	return strings.Join(lines, "\n")
}
