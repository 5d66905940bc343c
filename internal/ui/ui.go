// Package ui renders command output and the progress spinner.
package ui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Provider provides terminal output for commands
type Provider interface {
	// RunWithSpinner runs operation while a spinner shows message
	RunWithSpinner(message string, operation func() error) error

	// ShowInfo displays an informational message
	ShowInfo(message string)

	// Title displays a large title with extra spacing
	Title(message string)

	// ShowHeading displays a heading
	ShowHeading(message string)

	// ShowKeyValue displays a key-value pair with bold key
	ShowKeyValue(key, value string)

	// NewLine prints a blank line
	NewLine()

	// ShowError displays an error message
	ShowError(err error)

	// ShowSuccess displays a success message
	ShowSuccess(message string)
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	key     lipgloss.Style
	errText lipgloss.Style
	success lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		heading: r.NewStyle().Bold(true),
		key:     r.NewStyle().Bold(true),
		errText: r.NewStyle().Foreground(lipgloss.Color("160")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// BubbleteaUI implementation of the UI Provider interface.
type BubbleteaUI struct {
	stdout         io.Writer
	stderr         io.Writer
	out            styles
	errOut         styles
	programOptions []tea.ProgramOption
}

// New creates a new UI instance writing to the process streams
func New() *BubbleteaUI {
	return newUI(os.Stdout, os.Stderr, nil)
}

// NewWithOptions creates a new UI instance with custom streams, used by tests
func NewWithOptions(stdout, stderr io.Writer, input io.Reader) *BubbleteaUI {
	var options []tea.ProgramOption

	if input != nil {
		options = append(options, tea.WithInput(input))
	}

	if stdout != nil {
		options = append(options, tea.WithOutput(stdout))
	}

	// no TTY in tests
	options = append(options, tea.WithoutRenderer())

	return newUI(stdout, stderr, options)
}

func newUI(stdout, stderr io.Writer, options []tea.ProgramOption) *BubbleteaUI {
	return &BubbleteaUI{
		stdout:         stdout,
		stderr:         stderr,
		out:            newStyles(lipgloss.NewRenderer(stdout)),
		errOut:         newStyles(lipgloss.NewRenderer(stderr)),
		programOptions: options,
	}
}

// RunWithSpinner runs a function with a bubbletea spinner
func (ui *BubbleteaUI) RunWithSpinner(message string, operation func() error) error {
	model := newSpinnerModel(message)
	program := tea.NewProgram(model, ui.programOptions...)

	go func() {
		err := operation()
		if err != nil {
			program.Send(operationErrorMsg{err})
		} else {
			program.Send(operationSuccessMsg{})
		}
	}()

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}

	spinnerModel := finalModel.(SpinnerModel)
	if spinnerModel.interrupted {
		return ErrInterrupted
	}
	return spinnerModel.operationError
}

// ShowInfo displays an informational message
func (ui *BubbleteaUI) ShowInfo(message string) {
	fmt.Fprintln(ui.stdout, message)
}

// Title displays a large title with extra spacing
func (ui *BubbleteaUI) Title(message string) {
	fmt.Fprintf(ui.stdout, "\n%s\n\n", ui.out.title.Render(message))
}

// ShowHeading displays a heading
func (ui *BubbleteaUI) ShowHeading(message string) {
	fmt.Fprintf(ui.stdout, "%s\n\n", ui.out.heading.Render(message))
}

// ShowError prints an error message to stderr
func (ui *BubbleteaUI) ShowError(err error) {
	if err != nil {
		fmt.Fprintln(ui.stderr, ui.errOut.errText.Render("Error: "+err.Error()))
	}
}

// ShowSuccess displays a success message
func (ui *BubbleteaUI) ShowSuccess(message string) {
	fmt.Fprintln(ui.stdout, ui.out.success.Render(message))
}

// ShowKeyValue displays a key-value pair with bold key
func (ui *BubbleteaUI) ShowKeyValue(key, value string) {
	fmt.Fprintf(ui.stdout, "%s %s\n", ui.out.key.Render(key+":"), value)
}

// NewLine prints a blank line
func (ui *BubbleteaUI) NewLine() {
	fmt.Fprintln(ui.stdout)
}
