package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/danielhkuo/pokepick/cliparse"
	"github.com/danielhkuo/pokepick/controller"
	"github.com/danielhkuo/pokepick/fetcher"
	"github.com/danielhkuo/pokepick/models"
	"github.com/danielhkuo/pokepick/view"
	"github.com/danielhkuo/pokepick/viewport"
)

const helpText = " [black:gold]/[-:-] search  [black:gold]←/→[-:-] page  [black:gold]↑/↓[-:-] card  [black:gold]enter[-:-] select  [black:gold]f[-:-] fight  [black:gold]q[-:-] quit "

const (
	pageCatalog = "catalog"
	pageFight   = "fight"
)

type tviewUI struct {
	app    *tview.Application
	pages  *tview.Pages
	search *tview.InputField
	prev   *tview.Button
	next   *tview.Button
	label  *tview.TextView
	cards  *tview.TextView
	status *tview.TextView
	fight  *tview.TextView

	ctrl     *controller.PageController
	client   *fetcher.Client
	cfg      cliparse.ClientConfig
	animator *viewport.Animator
	ctx      context.Context

	// Owned by the UI goroutine
	state    controller.State
	mounted  []*view.Card
	starts   []int
	cursor   int
	loadedAt time.Time

	// Scroll window at the last visibility report
	seenOffset int
	seenHeight int
	opponent *models.CreatureSummary
}

func newUI(ctrl *controller.PageController, client *fetcher.Client, cfg cliparse.ClientConfig) *tviewUI {
	ui := &tviewUI{
		app:      tview.NewApplication(),
		ctrl:     ctrl,
		client:   client,
		cfg:      cfg,
		animator: viewport.New(nil),
		ctx:      context.Background(),
	}
	ui.build()
	return ui
}

func (ui *tviewUI) build() {
	ui.search = tview.NewInputField().SetLabel(" Search ").SetFieldWidth(0).SetPlaceholder("name...")
	ui.search.SetChangedFunc(func(text string) {
		ui.ctrl.SetDraft(text)
	})
	ui.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			ui.ctrl.SubmitSearch()
		}
		ui.app.SetFocus(ui.cards)
	})

	ui.prev = tview.NewButton("< Prev").SetSelectedFunc(func() {
		ui.ctrl.Pagination().ClickPrev()
	})
	ui.next = tview.NewButton("Next >").SetSelectedFunc(func() {
		ui.ctrl.Pagination().ClickNext()
	})
	ui.label = tview.NewTextView().SetTextAlign(tview.AlignCenter)

	header := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(ui.search, 0, 3, true).
		AddItem(ui.prev, 10, 0, false).
		AddItem(ui.label, 16, 0, false).
		AddItem(ui.next, 10, 0, false)

	ui.cards = tview.NewTextView().SetDynamicColors(true).SetWrap(false).SetScrollable(true)
	ui.cards.SetBorder(true).SetTitle(" Catalog ")
	ui.cards.SetInputCapture(ui.cardKeys)

	ui.status = tview.NewTextView().SetDynamicColors(true).SetText(helpText)

	catalog := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(ui.cards, 0, 1, true).
		AddItem(ui.status, 1, 0, false)

	ui.fight = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	ui.fight.SetBorder(true).SetTitle(" Fight  [r] new opponent  [esc] back ")
	ui.fight.SetInputCapture(ui.fightKeys)

	ui.pages = tview.NewPages().
		AddPage(pageCatalog, catalog, true, true).
		AddPage(pageFight, ui.fight, true, false)
}

// Run starts the controller and blocks until the user quits or ctx ends.
func (ui *tviewUI) Run(ctx context.Context) error {
	ui.ctx = ctx
	ui.ctrl.OnChange(func(s controller.State) {
		// OnChange may fire on the UI goroutine; QueueUpdateDraw blocks there
		go ui.app.QueueUpdateDraw(func() { ui.apply(s) })
	})

	go func() {
		<-ctx.Done()
		ui.app.Stop()
	}()

	ui.ctrl.Start(ctx)
	defer ui.animator.Disconnect()

	ui.app.SetAfterDrawFunc(ui.afterDraw)
	return ui.app.SetRoot(ui.pages, true).EnableMouse(true).SetFocus(ui.cards).Run()
}

// apply adopts a newer controller state.
func (ui *tviewUI) apply(s controller.State) {
	if s.Version <= ui.state.Version {
		return
	}
	catalogChanged := !sameCatalog(ui.state.Catalog, s.Catalog)
	ui.state = s
	if !s.Loading {
		ui.loadedAt = time.Now()
	}

	if catalogChanged {
		ui.mount(s.Catalog)
	}
	ui.render()
}

// mount replaces the card set. New cards get fresh markers.
func (ui *tviewUI) mount(catalog []models.CreatureSummary) {
	ui.mounted = ui.mounted[:0]
	markers := make([]*viewport.Marker, 0, 2*len(catalog))
	for _, c := range catalog {
		card := view.NewCard(c, ui.selectName)
		ui.mounted = append(ui.mounted, card)
		markers = append(markers, card.Markers()...)
	}
	ui.animator.Reset(markers...)
	ui.cursor = 0
	ui.cards.ScrollToBeginning()
}

// selectName runs on the UI goroutine so the write lands before a
// following quit key is handled.
func (ui *tviewUI) selectName(name string) {
	if err := ui.ctrl.Select(name); err != nil {
		ui.status.SetText(fmt.Sprintf(" [red]could not save selection: %s[-]", tview.Escape(err.Error())))
	}
}

func (ui *tviewUI) render() {
	var b strings.Builder
	heights := make([]int, len(ui.mounted))
	for i, card := range ui.mounted {
		text := view.RenderCard(card, ui.state.SelectedName, ui.cfg.IconBase)
		if i == ui.cursor {
			text = "[black:gold] ▶ [-:-]\n" + text
		} else {
			text = "\n" + text
		}
		heights[i] = strings.Count(text, "\n")
		b.WriteString(text)
	}
	if len(ui.mounted) == 0 && !ui.state.Loading {
		b.WriteString("[gray]no creatures match[-]\n")
	}
	ui.starts = cardStarts(heights)
	ui.cards.SetText(b.String())

	pager := ui.ctrl.Pagination()
	ui.label.SetText(pager.Label())
	ui.prev.SetDisabled(!pager.PrevEnabled())
	ui.next.SetDisabled(!pager.NextEnabled())

	ui.status.SetText(ui.statusLine())
	ui.reportVisibility()
}

func (ui *tviewUI) statusLine() string {
	s := ui.state
	parts := []string{fmt.Sprintf("%s creatures", humanize.Comma(int64(s.Count)))}
	if s.CommittedQuery != "" {
		parts = append(parts, fmt.Sprintf("matching %q", tview.Escape(s.CommittedQuery)))
	}
	if s.Loading {
		parts = append(parts, "[yellow]loading…[-]")
	} else if !ui.loadedAt.IsZero() {
		parts = append(parts, "updated "+humanize.Time(ui.loadedAt))
	}
	return " " + strings.Join(parts, " · ") + "   " + helpText
}

// reportVisibility tells the animator which markers are in the scroll
// window and redraws when any of them transitions.
func (ui *tviewUI) reportVisibility() {
	offset, _ := ui.cards.GetScrollOffset()
	_, _, _, height := ui.cards.GetInnerRect()
	ui.seenOffset, ui.seenHeight = offset, height

	fired := false
	for i, card := range ui.mounted {
		// The name ring is the first card line, the inner ring the second
		outerRow := ui.starts[i] + 1
		innerRow := ui.starts[i] + 2
		if ui.animator.VisibilityChanged(card.Outer.ID, rowVisible(outerRow, offset, height)) {
			fired = true
		}
		if ui.animator.VisibilityChanged(card.Inner.ID, rowVisible(innerRow, offset, height)) {
			fired = true
		}
	}
	if fired {
		ui.render()
	}
}

// scrolled reports whether the card window moved or resized since the
// last visibility report.
func (ui *tviewUI) scrolled() bool {
	offset, _ := ui.cards.GetScrollOffset()
	_, _, _, height := ui.cards.GetInnerRect()
	return offset != ui.seenOffset || height != ui.seenHeight
}

// afterDraw catches mouse wheel scrolls and terminal resizes. It runs
// inside a draw, so the report is queued rather than run in place.
func (ui *tviewUI) afterDraw(tcell.Screen) {
	if ui.scrolled() {
		go ui.app.QueueUpdateDraw(ui.reportVisibility)
	}
}

func (ui *tviewUI) moveCursor(delta int) {
	if len(ui.mounted) == 0 {
		return
	}
	ui.cursor = min(max(ui.cursor+delta, 0), len(ui.mounted)-1)
	ui.render()
	ui.cards.ScrollTo(ui.starts[ui.cursor], 0)
	ui.reportVisibility()
}

func (ui *tviewUI) cardKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		ui.moveCursor(-1)
		return nil
	case tcell.KeyDown:
		ui.moveCursor(1)
		return nil
	case tcell.KeyLeft:
		ui.ctrl.Pagination().ClickPrev()
		return nil
	case tcell.KeyRight:
		ui.ctrl.Pagination().ClickNext()
		return nil
	case tcell.KeyEnter:
		if ui.cursor < len(ui.mounted) {
			ui.mounted[ui.cursor].Select()
		}
		return nil
	}

	switch event.Rune() {
	case '/':
		ui.app.SetFocus(ui.search)
		return nil
	case 'k':
		ui.moveCursor(-1)
		return nil
	case 'j':
		ui.moveCursor(1)
		return nil
	case 'p':
		ui.ctrl.Pagination().ClickPrev()
		return nil
	case 'n':
		ui.ctrl.Pagination().ClickNext()
		return nil
	case ' ':
		if ui.cursor < len(ui.mounted) {
			ui.mounted[ui.cursor].Select()
		}
		return nil
	case 'f':
		ui.showFight()
		return nil
	case 'q':
		ui.app.Stop()
		return nil
	}
	return event
}

func (ui *tviewUI) fightKeys(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		ui.pages.SwitchToPage(pageCatalog)
		ui.app.SetFocus(ui.cards)
		return nil
	}
	switch event.Rune() {
	case 'r':
		ui.opponent = nil
		ui.showFight()
		return nil
	case 'q':
		ui.app.Stop()
		return nil
	}
	return event
}

// showFight renders health bars for the selection and a random opponent.
func (ui *tviewUI) showFight() {
	ui.pages.SwitchToPage(pageFight)
	ui.app.SetFocus(ui.fight)
	ui.fight.SetText("[yellow]loading fighters…[-]")

	selected := ui.state.SelectedName
	known := ui.state.Catalog
	opponent := ui.opponent

	go func() {
		mine, err := ui.findCreature(selected, known)
		if err != nil {
			slog.Error("failed to load selected creature", "name", selected, "error", err)
		}
		if opponent == nil {
			o, err := ui.client.Random(ui.ctx)
			if err != nil {
				slog.Error("failed to load opponent", "error", err)
			} else {
				opponent = &o
			}
		}

		ui.app.QueueUpdateDraw(func() {
			ui.opponent = opponent
			ui.fight.SetText(renderFight(mine, opponent, view.FullHP{}))
		})
	}()
}

// findCreature returns the named creature from the loaded page or, failing
// that, from a search for its name.
func (ui *tviewUI) findCreature(name string, known []models.CreatureSummary) (*models.CreatureSummary, error) {
	if name == "" {
		return nil, nil
	}
	for i := range known {
		if known[i].Name == name {
			return &known[i], nil
		}
	}
	result, err := ui.client.Fetch(ui.ctx, 1, name)
	if err != nil {
		return nil, err
	}
	for i := range result.Data {
		if result.Data[i].Name == name {
			return &result.Data[i], nil
		}
	}
	return nil, nil
}

func renderFight(mine, opponent *models.CreatureSummary, hp view.HPSource) string {
	var b strings.Builder
	b.WriteString("[::b]Your pick[::-]\n")
	if mine != nil {
		b.WriteString(view.RenderHealthBar(view.NewHealthBar(*mine, hp), view.DefaultBarCells))
	} else {
		b.WriteString("[gray]nothing selected, pick a card first[-]\n")
	}
	b.WriteString("\n[::b]Opponent[::-]\n")
	if opponent != nil {
		b.WriteString(view.RenderHealthBar(view.NewHealthBar(*opponent, hp), view.DefaultBarCells))
	} else {
		b.WriteString("[red]no opponent available[-]\n")
	}
	return b.String()
}

// cardStarts returns the first row of each card given card heights.
func cardStarts(heights []int) []int {
	starts := make([]int, len(heights))
	row := 0
	for i, h := range heights {
		starts[i] = row
		row += h
	}
	return starts
}

// rowVisible reports whether row lies in the window [offset, offset+height).
func rowVisible(row, offset, height int) bool {
	return row >= offset && row < offset+height
}

func sameCatalog(a, b []models.CreatureSummary) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
