// Package tui provides the interactive Bubble Tea assessment and report screens.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/guardianshield/shieldplan/internal/assessment"
	"github.com/guardianshield/shieldplan/internal/calc"
	"github.com/guardianshield/shieldplan/internal/cli"
	"github.com/guardianshield/shieldplan/internal/config"
	"github.com/guardianshield/shieldplan/internal/logger"
	"github.com/guardianshield/shieldplan/internal/model"
	"github.com/guardianshield/shieldplan/internal/pipeline"
	"github.com/guardianshield/shieldplan/internal/store"
	"github.com/guardianshield/shieldplan/internal/tui/components"
	"github.com/guardianshield/shieldplan/internal/tui/theme"
)

// SubmittedMsg is sent when the final section has been committed and the
// report derived from the stored snapshot.
type SubmittedMsg struct {
	Report model.Report
	Err    error
}

// ReportLoadedMsg is sent when a stored assessment has been loaded for viewing.
type ReportLoadedMsg struct {
	Report      model.Report
	FlowEntered bool
	Err         error
}

// FlowEnteredMsg is sent once the IUL flow flag has been written.
type FlowEnteredMsg struct {
	Err error
}

type mode int

const (
	modeSetup mode = iota
	modeWizard
	modeRowMenu
	modeRowForm
	modeSubmitting
	modeLoading
	modeReport
)

// Options configures an App.
type Options struct {
	Store   store.ProfileStore
	Logger  *logger.Logger
	Now     func() time.Time
	Session string

	// Seed prefills the wizard, for example from an imported profile.
	Seed *model.Profile

	// Config is saved after the first-run setup form when NeedSetup is set.
	Config    *config.Config
	NeedSetup bool
}

// formState holds the values huh binds to. It lives behind a pointer so that
// every copy of App shares it.
type formState struct {
	section   sectionValues
	menu      string
	rowID     string
	asset     assetValues
	liability liabilityValues
	setup     SetupValues
}

// App is the root Bubble Tea model.
type App struct {
	ctx     context.Context
	wiz     *assessment.Wizard
	st      store.ProfileStore
	log     *logger.Logger
	now     func() time.Time
	session string
	cfg     *config.Config

	// UI state
	width    int
	height   int
	mode     mode
	form     *huh.Form
	vals     *formState
	notice   string
	showHelp bool
	spinner  spinner.Model

	// Report state
	report      *model.Report
	activeTab   int
	iul         *calc.IULResult
	flowEntered bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 140
	minContentHeight = 5
)

func newApp(ctx context.Context, opts Options) App {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		ctx:     ctx,
		wiz:     assessment.New(assessment.WithClock(opts.Now)),
		st:      opts.Store,
		log:     opts.Logger,
		now:     opts.Now,
		session: opts.Session,
		cfg:     opts.Config,
		vals:    &formState{},
		spinner: sp,
	}
}

// NewApp creates the assessment wizard. A seeded wizard starts at the first
// section that still needs input.
func NewApp(ctx context.Context, opts Options) App {
	a := newApp(ctx, opts)
	if opts.Seed != nil {
		if err := a.wiz.Seed(*opts.Seed); err != nil {
			a.notice = describeErr(err)
		} else {
			a.wiz.FastForward()
		}
	}
	if opts.NeedSetup && opts.Config != nil {
		a.mode = modeSetup
		a.vals.setup = SetupValuesFrom(*opts.Config)
		a.form = NewSetupForm(&a.vals.setup)
		return a
	}
	a.openSection()
	return a
}

// NewReportApp opens straight into the report for an already stored assessment.
func NewReportApp(ctx context.Context, opts Options) App {
	a := newApp(ctx, opts)
	a.mode = modeLoading
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion, a.spinner.Tick}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	if a.mode == modeLoading {
		cmds = append(cmds, loadReportCmd(a.ctx, a.st, a.now))
	}
	return tea.Batch(cmds...)
}

// openSection shows the form for the wizard's current section.
func (a *App) openSection() tea.Cmd {
	sec := a.wiz.Section()
	p := a.wiz.Profile()
	a.vals.section = valuesFrom(p)

	switch sec {
	case assessment.SectionAssets, assessment.SectionLiabilities:
		a.mode = modeRowMenu
		a.form = newRowMenu(sec, p, &a.vals.menu)
	default:
		a.mode = modeWizard
		a.form = newSectionForm(sec, &a.vals.section)
	}
	return a.initForm()
}

func (a *App) initForm() tea.Cmd {
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.contentWidth(), 100))
	}
	return a.form.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(a.contentWidth(), 100))
		}
		return a, nil

	case tea.MouseMsg:
		if a.mode != modeReport || a.showHelp || a.iul != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.mode {
		case modeSetup, modeWizard, modeRowMenu, modeRowForm:
			if key == "ctrl+b" && a.mode != modeSetup {
				return a, a.goBack()
			}
			return a.updateForm(msg)
		case modeReport:
			return a.updateReportKeys(key)
		}
		return a, nil

	case spinner.TickMsg:
		if a.mode == modeSubmitting || a.mode == modeLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case SubmittedMsg:
		if msg.Err != nil {
			a.log.Warn("submitting assessment", "error", msg.Err)
			a.notice = describeErr(msg.Err)
			return a, a.openSection()
		}
		a.log.Info("assessment submitted", "score", msg.Report.Suitability.Score)
		a.showReport(msg.Report)
		return a, nil

	case ReportLoadedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, store.ErrAbsent) {
				a.notice = "No assessment stored yet. Complete the assessment first."
				return a, a.openSection()
			}
			a.notice = msg.Err.Error()
			return a, tea.Quit
		}
		a.showReport(msg.Report)
		a.flowEntered = msg.FlowEntered
		return a, nil

	case FlowEnteredMsg:
		if msg.Err != nil {
			a.log.Error("entering IUL flow", "error", msg.Err)
			a.notice = "Could not save progress: " + msg.Err.Error()
			return a, nil
		}
		a.flowEntered = true
		res := illustrate(*a.report)
		a.iul = &res
		return a, nil
	}

	if a.form != nil && a.mode <= modeRowForm {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a *App) showReport(r model.Report) {
	a.report = &r
	a.mode = modeReport
	a.form = nil
	a.notice = ""
	a.activeTab = 0
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		return a, a.formCompleted()
	case huh.StateAborted:
		if a.mode == modeSetup {
			return a, a.openSection()
		}
		if a.mode == modeRowForm {
			return a, a.openSection()
		}
		return a, tea.Quit
	}
	return a, cmd
}

// formCompleted applies a finished form and decides what comes next.
func (a *App) formCompleted() tea.Cmd {
	a.notice = ""
	sec := a.wiz.Section()

	switch a.mode {
	case modeSetup:
		a.vals.setup.Apply(a.cfg)
		if err := config.Save(*a.cfg); err != nil {
			a.log.Warn("saving config", "error", err)
			a.notice = "Could not save config: " + err.Error()
		}
		return a.openSection()

	case modeWizard:
		if err := applySection(a.wiz, sec, a.vals.section); err != nil {
			a.notice = describeErr(err)
			return a.openSection()
		}
		return a.advance()

	case modeRowMenu:
		return a.menuChosen(sec, a.vals.menu)

	case modeRowForm:
		var err error
		if sec == assessment.SectionAssets {
			err = applyAsset(a.wiz, a.vals.rowID, a.vals.asset)
		} else {
			err = applyLiability(a.wiz, a.vals.rowID, a.vals.liability)
		}
		if err != nil {
			a.notice = describeErr(err)
		}
		return a.openSection()
	}
	return nil
}

func (a *App) menuChosen(sec assessment.Section, choice string) tea.Cmd {
	switch {
	case choice == actionContinue:
		return a.advance()
	case choice == actionBack:
		return a.goBack()
	case choice == actionAdd:
		return a.openRowForm(sec, "")
	case strings.HasPrefix(choice, actionEdit):
		return a.openRowForm(sec, strings.TrimPrefix(choice, actionEdit))
	case strings.HasPrefix(choice, actionRemove):
		id := strings.TrimPrefix(choice, actionRemove)
		if sec == assessment.SectionAssets {
			a.wiz.RemoveAsset(id)
		} else {
			a.wiz.RemoveLiability(id)
		}
	}
	return a.openSection()
}

// openRowForm edits the row with id, or a new row when id is blank.
func (a *App) openRowForm(sec assessment.Section, id string) tea.Cmd {
	p := a.wiz.Profile()
	a.vals.rowID = id
	a.mode = modeRowForm

	if sec == assessment.SectionAssets {
		a.vals.asset = assetValues{Type: string(model.AssetChecking)}
		if i := p.AssetByID(id); i >= 0 {
			a.vals.asset = assetValuesFrom(p.Assets[i])
		}
		a.form = newAssetForm(&a.vals.asset)
	} else {
		a.vals.liability = liabilityValues{Type: string(model.LiabilityCreditCard)}
		if i := p.LiabilityByID(id); i >= 0 {
			a.vals.liability = liabilityValuesFrom(p.Liabilities[i])
		}
		a.form = newLiabilityForm(&a.vals.liability)
	}
	return a.initForm()
}

// advance moves past the current section. The last section commits in the
// background since it touches the store.
func (a *App) advance() tea.Cmd {
	if int(a.wiz.Section()) == model.SectionCount {
		if err := a.wiz.Check(); err != nil {
			a.notice = describeErr(err)
			return a.openSection()
		}
		a.mode = modeSubmitting
		a.form = nil
		return tea.Batch(a.spinner.Tick, submitCmd(a.ctx, a.wiz, a.st, a.now))
	}

	if _, err := a.wiz.Next(a.ctx, a.st); err != nil {
		a.notice = describeErr(err)
	}
	return a.openSection()
}

func (a *App) goBack() tea.Cmd {
	if a.mode == modeRowForm {
		return a.openSection()
	}
	if a.wiz.Previous() {
		a.notice = ""
	}
	return a.openSection()
}

func (a App) updateReportKeys(key string) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "esc":
		a.iul = nil
		return a, nil
	case "i":
		if a.iul != nil {
			return a, nil
		}
		if !a.report.Suitability.Recommend && !a.flowEntered {
			a.notice = "IUL is not recommended for this profile."
			return a, nil
		}
		a.notice = ""
		return a, enterFlowCmd(a.ctx, a.st)
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		a.iul = nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		a.iul = nil
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				a.iul = nil
			}
		}
	}
	return a, nil
}

func submitCmd(ctx context.Context, wiz *assessment.Wizard, st store.ProfileStore, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		if _, err := wiz.Next(ctx, st); err != nil {
			return SubmittedMsg{Err: err}
		}
		p, err := st.Load(ctx)
		if err != nil {
			return SubmittedMsg{Err: err}
		}
		return SubmittedMsg{Report: pipeline.Derive(p, now())}
	}
}

func loadReportCmd(ctx context.Context, st store.ProfileStore, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		p, err := st.Load(ctx)
		if err != nil {
			return ReportLoadedMsg{Err: err}
		}
		entered, err := st.DerivedFlowEntered(ctx)
		if err != nil {
			return ReportLoadedMsg{Err: err}
		}
		return ReportLoadedMsg{Report: pipeline.Derive(p, now()), FlowEntered: entered}
	}
}

func enterFlowCmd(ctx context.Context, st store.ProfileStore) tea.Cmd {
	return func() tea.Msg {
		return FlowEnteredMsg{Err: st.MarkDerivedFlowEntered(ctx, true)}
	}
}

var fieldLabels = map[string]string{
	"FirstName":    "first name",
	"LastName":     "last name",
	"Email":        "email",
	"DateOfBirth":  "date of birth",
	"State":        "state",
	"AnnualIncome": "annual income",
}

// describeErr turns wizard errors into one line for the form header.
func describeErr(err error) string {
	var ge *model.GateError
	if errors.As(err, &ge) {
		names := make([]string, len(ge.Fields))
		for i, f := range ge.Fields {
			if l, ok := fieldLabels[f]; ok {
				names[i] = l
			} else {
				names[i] = f
			}
		}
		return "Required: " + strings.Join(names, ", ")
	}
	if errors.Is(err, model.ErrInvalidProfile) {
		return "Please review: " + strings.TrimPrefix(err.Error(), model.ErrInvalidProfile.Error()+": ")
	}
	return err.Error()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}

	switch a.mode {
	case modeSubmitting, modeLoading:
		return a.viewLoading()
	case modeReport:
		return a.viewReport()
	}
	return a.viewWizard()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  shieldplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	label := " Preparing your report..."
	if a.mode == modeSubmitting {
		label = " Saving your assessment..."
	}

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ shieldplan"))
	b.WriteString(subtitleStyle.Render(" · Financial Risk Assessment"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(label))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	bindings := []struct{ key, desc string }{
		{"s r t c", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"i", "Explore the IUL strategy"},
		{"Esc", "Close the IUL view"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewWizard() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Alert).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ shieldplan"))
	b.WriteString(mutedStyle.Render(" · Financial Risk Assessment"))
	b.WriteString("\n\n")

	if a.mode != modeSetup {
		sec := a.wiz.Section()
		b.WriteString(components.StepProgress(int(sec), model.SectionCount, min(cw, 80)))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(sec.Info().Description))
		b.WriteString("\n")
		if sec == assessment.SectionAssets || sec == assessment.SectionLiabilities {
			b.WriteString(a.renderRunningTotals())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if a.notice != "" {
		b.WriteString(noticeStyle.Render(a.notice))
		b.WriteString("\n\n")
	}
	if a.form != nil {
		b.WriteString(a.form.View())
	}

	hints := "enter next · ctrl+b back · ctrl+c quit"
	if a.mode == modeSetup {
		hints = "enter next · shift+tab back · ctrl+c skip"
	}
	statusBar := components.RenderStatusBar(w, hints, a.session)

	contentH := max(h-lipgloss.Height(statusBar), minContentHeight)
	content := padHeight(truncateHeight(b.String(), contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Padding(0, 2).Render(content))

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (a App) renderRunningTotals() string {
	t := theme.Active
	tot := a.wiz.Totals()
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	if a.wiz.Section() == assessment.SectionAssets {
		return label.Render("Total assets ") + value.Render(cli.FormatCurrency(tot.TotalAssets)) +
			label.Render("  tax-free ") + lipgloss.NewStyle().Foreground(t.TaxFree).Render(cli.FormatCurrency(tot.TaxFreeAssets)) +
			label.Render("  tax-deferred ") + lipgloss.NewStyle().Foreground(t.TaxDeferred).Render(cli.FormatCurrency(tot.TaxDeferredAssets)) +
			label.Render("  taxable ") + lipgloss.NewStyle().Foreground(t.Taxable).Render(cli.FormatCurrency(tot.TaxableAssets))
	}
	return label.Render("Total liabilities ") + value.Render(cli.FormatCurrency(tot.TotalLiabilities)) +
		label.Render("  mortgage ") + value.Render(cli.FormatCurrency(tot.MortgageDebt)) +
		label.Render("  consumer ") + value.Render(cli.FormatCurrency(tot.TotalLiabilities-tot.MortgageDebt))
}

func (a App) viewReport() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)

	sub := subStyle.Render(" Prepared for ") + nameStyle.Render(a.report.ClientName) +
		subStyle.Render("  "+a.report.GeneratedAt.Format("January 2, 2006"))
	if a.notice != "" {
		sub += subStyle.Render("  ") + noticeStyle.Render(a.notice)
	}
	header := components.RenderTabBar(a.activeTab, w) + "\n" + rowStyle.Render(sub)

	hints := "s r t c tabs · ←/→ switch · ? help · q quit"
	if a.report.Suitability.Recommend || a.flowEntered {
		hints = "s r t c tabs · i IUL strategy · ? help · q quit"
	}
	statusBar := components.RenderStatusBar(w, hints, a.session)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.iul != nil:
		content = a.renderIUL(cw)
	case a.activeTab == 0:
		content = a.renderSummaryTab(cw)
	case a.activeTab == 1:
		content = a.renderRecommendationsTab(cw)
	case a.activeTab == 2:
		content = a.renderBucketsTab(cw)
	case a.activeTab == 3:
		content = a.renderCoverageTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the report tab under column x, or -1.
func (a App) tabAtX(x int) int {
	return components.TabAtX(x, a.activeTab)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
