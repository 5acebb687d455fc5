package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/storyloom/engine/pkg/generation"
)

const PlaceHolderText = "Describe your story concept here..."

// stage identifies which screen the console is showing.
type stage int

const (
	stageSelect stage = iota
	stageConcept
	stageLoading
	stageResult
)

// axis options presented in the selection screen, in display order.
var (
	tensionOptions  = []string{"safety", "identity"}
	endingOptions   = []string{"hea", "bittersweet", "tragic"}
	modifierOptions = []string{"none", "secret", "love_triangle", "both"}
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config   *ConsoleConfig
	client   *http.Client
	stage    stage
	width    int
	height   int
	err      error
	ready    bool
	copied   bool
	loading  bool
	progress int

	// Selection state
	field        int // 0=tension 1=ending 2=modifier
	tensionIdx   int
	endingIdx    int
	modifierIdx  int
	availability *generation.Availability

	// Concept and result state
	textarea textarea.Model
	viewport viewport.Model
	result   *GenerateResponse

	showQuitModal bool
}

type availabilityMsg struct {
	availability *generation.Availability
	err          error
}

type generationMsg struct {
	response *GenerateResponse
	err      error
}

type progressTickMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	chapterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")) // green

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:   cfg,
		client:   client,
		stage:    stageSelect,
		textarea: ta,
		viewport: vp,
	}
}

func (m ConsoleUI) selectedTension() string  { return tensionOptions[m.tensionIdx] }
func (m ConsoleUI) selectedEnding() string   { return endingOptions[m.endingIdx] }
func (m ConsoleUI) selectedModifier() string { return modifierOptions[m.modifierIdx] }

func (m ConsoleUI) Init() tea.Cmd {
	return m.checkAvailability()
}

func (m ConsoleUI) checkAvailability() tea.Cmd {
	tension, ending, modifier := m.selectedTension(), m.selectedEnding(), m.selectedModifier()
	return func() tea.Msg {
		availability, err := checkAvailability(m.client, m.config.APIBaseURL, tension, ending, modifier)
		return availabilityMsg{availability, err}
	}
}

func (m ConsoleUI) runGeneration(concept string) tea.Cmd {
	req := GenerateRequest{
		Concept:  concept,
		Tension:  m.selectedTension(),
		Ending:   m.selectedEnding(),
		Modifier: m.selectedModifier(),
	}
	return func() tea.Msg {
		resp, err := runGeneration(m.client, m.config.APIBaseURL, req)
		return generationMsg{resp, err}
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height - 4
		m.textarea.SetWidth(m.width - 8)
		m.ready = true
		if m.result != nil {
			m.writeResultContent()
		}

	case availabilityMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.availability = msg.availability
		}
		return m, nil

	case generationMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.stage = stageConcept
			m.textarea.Focus()
			return m, textarea.Blink
		}
		m.err = nil
		m.result = msg.response
		m.stage = stageResult
		m.writeResultContent()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progress++
			return m, progressTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.stage {
		case stageSelect:
			return m.updateSelect(msg)
		case stageConcept:
			return m.updateConcept(msg)
		case stageLoading:
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				m.showQuitModal = true
			}
			return m, nil
		case stageResult:
			return m.updateResult(msg)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil

	case tea.KeyTab, tea.KeyRight:
		m.field = (m.field + 1) % 3
		return m, nil

	case tea.KeyShiftTab, tea.KeyLeft:
		m.field = (m.field + 2) % 3
		return m, nil

	case tea.KeyUp:
		m.cycleOption(-1)
		return m, m.checkAvailability()

	case tea.KeyDown:
		m.cycleOption(1)
		return m, m.checkAvailability()

	case tea.KeyEnter:
		if m.availability == nil || !m.availability.Allowed {
			return m, nil
		}
		m.stage = stageConcept
		m.textarea.Focus()
		return m, textarea.Blink
	}
	return m, nil
}

func (m *ConsoleUI) cycleOption(delta int) {
	cycle := func(idx, size int) int {
		return (idx + delta + size) % size
	}
	switch m.field {
	case 0:
		m.tensionIdx = cycle(m.tensionIdx, len(tensionOptions))
	case 1:
		m.endingIdx = cycle(m.endingIdx, len(endingOptions))
	case 2:
		m.modifierIdx = cycle(m.modifierIdx, len(modifierOptions))
	}
	m.availability = nil
}

func (m ConsoleUI) updateConcept(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.showQuitModal = true
		return m, nil

	case tea.KeyEsc:
		m.stage = stageSelect
		m.textarea.Blur()
		return m, nil

	case tea.KeyCtrlD:
		concept := strings.TrimSpace(m.textarea.Value())
		if len(concept) < 10 {
			m.err = fmt.Errorf("concept is too short")
			return m, nil
		}
		m.err = nil
		m.stage = stageLoading
		m.loading = true
		m.progress = 0
		return m, tea.Batch(m.runGeneration(concept), progressTick())
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil
	}

	switch msg.String() {
	case "ctrl+y":
		if m.result != nil {
			data, err := json.MarshalIndent(m.result.Output, "", "  ")
			if err == nil {
				if err := clipboard.WriteAll(string(data)); err == nil {
					m.copied = true
				}
			}
		}
		return m, nil

	case "n":
		// Start over with a fresh selection
		m.stage = stageSelect
		m.result = nil
		m.copied = false
		m.textarea.Reset()
		return m, m.checkAvailability()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.stage == stageConcept {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}
	return m, nil
}

// writeResultContent renders the generation output into the viewport.
func (m *ConsoleUI) writeResultContent() {
	if m.result == nil || m.result.Output == nil {
		return
	}
	out := m.result.Output
	wrapWidth := m.viewport.Width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(out.Blueprint.Name) + "\n")
	content.WriteString(promptStyle.Render(fmt.Sprintf("generation %s · %d chapters", m.result.ID, len(out.Chapters))) + "\n\n")

	content.WriteString(labelStyle.Render("Concept") + "\n")
	content.WriteString(wordwrap.String(out.ConceptSummary, wrapWidth) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", wrapWidth)) + "\n\n")

	for _, ch := range out.Chapters {
		content.WriteString(chapterStyle.Render(fmt.Sprintf("Chapter %d — %s", ch.Chapter, ch.Function)) + "\n")
		content.WriteString(wordwrap.String(ch.Description, wrapWidth) + "\n\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoTop()
}

func (m ConsoleUI) renderSelect() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("STORYLOOM") + "\n\n")
	content.WriteString("Choose the shape of your story.\n\n")

	renderField := func(idx int, label, value string) {
		line := fmt.Sprintf("%-10s %s", label, value)
		if m.field == idx {
			content.WriteString(selectedItemStyle.Render("▶ " + line))
		} else {
			content.WriteString(itemStyle.Render("  " + line))
		}
		content.WriteString("\n")
	}
	renderField(0, "Tension", m.selectedTension())
	renderField(1, "Ending", m.selectedEnding())
	renderField(2, "Modifier", m.selectedModifier())
	content.WriteString("\n")

	switch {
	case m.err != nil:
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.availability == nil:
		content.WriteString(loadingStyle.Render("Checking availability...") + "\n")
	case m.availability.Allowed:
		content.WriteString(okStyle.Render("✓ "+m.availability.BlueprintName) + "\n")
	default:
		content.WriteString(errorStyle.Render("✗ "+m.availability.Reason) + "\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("↑/↓ change · ←/→ switch field · Enter continue · Ctrl+C quit"))

	modal := modalStyle.Width(70).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderConcept() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("STORY CONCEPT") + "\n\n")
	content.WriteString(fmt.Sprintf("%s · %s · %s\n\n",
		m.selectedTension(), m.selectedEnding(), m.selectedModifier()))
	content.WriteString(m.textarea.View() + "\n\n")

	if m.err != nil {
		content.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	content.WriteString(promptStyle.Render("Ctrl+D generate · Esc back · Ctrl+C quit"))

	modal := modalStyle.Width(m.textarea.Width() + 8).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderLoading() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GENERATING") + "\n\n")
	content.WriteString(loadingStyle.Render("Drafting your chapter outline...") + "\n\n")
	content.WriteString(m.renderProgressBar())

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderResult() string {
	footer := "Ctrl+Y copy JSON · n new story · Ctrl+C quit"
	if m.copied {
		footer = "Copied to clipboard! · n new story · Ctrl+C quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		"",
		promptStyle.Render(footer),
	)
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(40).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	switch m.stage {
	case stageSelect:
		return m.renderSelect()
	case stageConcept:
		return m.renderConcept()
	case stageLoading:
		return m.renderLoading()
	case stageResult:
		return m.renderResult()
	}
	return ""
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	const width = 50
	const totalFrames = 40
	frame := m.progress % totalFrames
	filled := (frame * width) / totalFrames

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
