// Package app is the interactive reports screen.
package app

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/auth"
)

// Auth is the part of the auth provider the screen drives.
type Auth interface {
	auth.StateReader
	Start(ctx context.Context) auth.Status
	Watch(fn func(auth.Status))
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

// Downloader saves the report of the signed-in user.
type Downloader interface {
	Download(ctx context.Context, dir string) (string, error)
}

// statusMsg signals that the auth state changed; the model re-reads it.
type statusMsg struct{}

type (
	loginMsg  struct{ err error }
	logoutMsg struct{ err error }
)

type downloadMsg struct {
	path string
	err  error
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	auth    Auth
	reports Downloader
	dir     string

	status      auth.Status
	spinner     spinner.Model
	downloading bool
	notice      string
	err         string
}

// New creates the screen. The auth state is read from a, which must not have
// been started yet.
func New(ctx context.Context, a Auth, reports Downloader, dir string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle.UnsetMarginBottom()

	return Model{
		ctx:     ctx,
		auth:    a,
		reports: reports,
		dir:     dir,
		status:  a.Status(),
		spinner: s,
	}
}

// Run opens the screen and blocks until the user quits.
func Run(ctx context.Context, a Auth, reports Downloader, dir string, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(New(ctx, a, reports, dir), opts...)
	a.Watch(func(auth.Status) { p.Send(statusMsg{}) })

	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m Model) start() tea.Msg {
	m.auth.Start(m.ctx)
	return statusMsg{}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = m.auth.Status()
		if m.status == auth.StatusAuthenticated {
			m.err = ""
		}
		return m, nil

	case loginMsg:
		if msg.err != nil {
			m.err = errorText(msg.err)
			return m, nil
		}
		m.notice = "Complete the sign-in in your browser."
		return m, nil

	case logoutMsg:
		m.status = m.auth.Status()
		m.downloading = false
		m.notice = ""
		m.err = ""
		if msg.err != nil {
			m.notice = "Signed out locally, the server could not be reached."
		}
		return m, nil

	case downloadMsg:
		m.downloading = false
		if msg.err != nil {
			m.err = errorText(msg.err)
			m.notice = ""
			return m, nil
		}
		m.err = ""
		m.notice = fmt.Sprintf("Report saved to %s", msg.path)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	switch m.status {
	case auth.StatusUnauthenticated:
		if msg.String() == "l" {
			m.err = ""
			m.notice = ""
			return m, m.login
		}
	case auth.StatusAuthenticated:
		switch msg.String() {
		case "d":
			if m.downloading {
				return m, nil
			}
			m.downloading = true
			m.err = ""
			m.notice = ""
			return m, m.download
		case "o":
			return m, m.logout
		}
	}
	return m, nil
}

func (m Model) login() tea.Msg {
	return loginMsg{err: m.auth.Login(m.ctx)}
}

func (m Model) logout() tea.Msg {
	return logoutMsg{err: m.auth.Logout(m.ctx)}
}

func (m Model) download() tea.Msg {
	path, err := m.reports.Download(m.ctx, m.dir)
	return downloadMsg{path: path, err: err}
}

func (m Model) View() string {
	switch m.status {
	case auth.StatusLoading:
		// nothing but the spinner until the session check resolves
		return m.spinner.View() + "\n"
	case auth.StatusUnauthenticated:
		return m.loginView()
	default:
		return m.reportsView()
	}
}

func (m Model) loginView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("BionicPRO Reports"))
	sb.WriteString("\n")
	sb.WriteString(textStyle.Render("Sign in to view your prosthesis usage reports."))
	sb.WriteString("\n\n")
	m.writeMessages(&sb)
	sb.WriteString(helpStyle.Render("l login • q quit"))

	return cardStyle.Render(sb.String())
}

func (m Model) reportsView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Usage Reports"))
	sb.WriteString("\n")
	if m.downloading {
		sb.WriteString(m.spinner.View() + " Generating Report...")
	} else {
		sb.WriteString(textStyle.Render("Download your prosthesis usage report."))
	}
	sb.WriteString("\n\n")
	m.writeMessages(&sb)
	sb.WriteString(helpStyle.Render("d download report • o logout • q quit"))

	return cardStyle.Render(sb.String())
}

// errorText renders err as a sentence for the screen.
func errorText(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

func (m Model) writeMessages(sb *strings.Builder) {
	if m.notice != "" {
		sb.WriteString(successStyle.Render(m.notice))
		sb.WriteString("\n\n")
	}
	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}
}
