// Package viewer is the Fyne desktop front end. It owns one session.Session and
// re-renders it through the render package whenever the user presses Plot or the
// window is resized.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/GUIPlotter/cmd/guiplotter/uihelpers"
	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/loader"
	"github.com/iafilius/GUIPlotter/src/logging"
	"github.com/iafilius/GUIPlotter/src/render"
	"github.com/iafilius/GUIPlotter/src/session"
)

// Options configures Run.
type Options struct {
	Files  []string
	Loader loader.TableLoader
	Width  int
	Height int
}

type axisPanel struct {
	list     *widget.List
	selected int
}

type uiState struct {
	app    fyne.App
	window fyne.Window
	loader loader.TableLoader
	sess   *session.Session

	currentTable   int
	selectedColumn string

	// widgets
	datasetList *widget.List
	columnList  *widget.List
	xSelect     *widget.Select
	labelEntry  *widget.Entry
	axes        map[dataset.Axis]*axisPanel
	statusLabel *widget.Label
	chartImg    *canvas.Image

	// plot options
	xLabel, leftLabel, rightLabel *widget.Entry
	xScale, leftScale, rightScale *widget.Entry
	xMin, xMax                    *widget.Entry
	leftMin, leftMax              *widget.Entry
	rightMin, rightMax            *widget.Entry
	xLog, leftLog, rightLog       *widget.Check
	legend                        *widget.Check

	lastChart          *render.Chart
	defaultW, defaultH int
}

// Run opens the main window, loads opts.Files and blocks until the window closes.
func Run(opts Options) error {
	if opts.Loader == nil {
		opts.Loader = loader.NewAuto()
	}
	a := app.NewWithID("com.guiplotter.viewer")
	w := a.NewWindow("GUI Plotter")
	w.Resize(fyne.NewSize(1400, 900))

	state := &uiState{
		app:          a,
		window:       w,
		loader:       opts.Loader,
		sess:         session.New(),
		currentTable: -1,
		defaultW:     opts.Width,
		defaultH:     opts.Height,
	}
	w.SetContent(buildUI(state))
	w.SetMainMenu(buildMenu(state))
	state.redraw()
	if len(opts.Files) > 0 {
		state.loadFiles(opts.Files)
	}
	watchResize(state)
	w.ShowAndRun()
	return nil
}

func buildUI(state *uiState) fyne.CanvasObject {
	cfg := render.DefaultConfig()

	// data panel
	state.datasetList = widget.NewList(
		func() int { return state.sess.TableCount() },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(uihelpers.DatasetDisplay(state.sess.Table(id)))
		},
	)
	state.datasetList.OnSelected = func(id widget.ListItemID) { state.selectDataset(id) }
	openBtn := widget.NewButton("Open…", func() { openFileDialog(state) })
	dataCard := widget.NewCard("Data", "", container.NewBorder(openBtn, nil, nil, nil, state.datasetList))

	// column panel
	state.xSelect = widget.NewSelect(nil, nil)
	state.xSelect.PlaceHolder = "(select X column)"
	state.columnList = widget.NewList(
		func() int { return len(state.columns()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			cols := state.columns()
			if id < len(cols) {
				o.(*widget.Label).SetText(cols[id])
			}
		},
	)
	state.columnList.OnSelected = func(id widget.ListItemID) {
		cols := state.columns()
		if id < len(cols) {
			state.selectColumn(cols[id])
		}
	}
	state.labelEntry = widget.NewEntry()
	state.labelEntry.SetPlaceHolder("Series label")
	addLeft := widget.NewButton("Add to Left Axis", func() { state.addSeries(dataset.AxisLeft) })
	addRight := widget.NewButton("Add to Right Axis", func() { state.addSeries(dataset.AxisRight) })
	columnTop := widget.NewForm(widget.NewFormItem("X column", state.xSelect))
	columnBottom := container.NewVBox(
		widget.NewForm(widget.NewFormItem("Label", state.labelEntry)),
		container.NewGridWithColumns(2, addLeft, addRight),
	)
	columnCard := widget.NewCard("Columns", "", container.NewBorder(columnTop, columnBottom, nil, nil, state.columnList))

	// selected series
	state.axes = map[dataset.Axis]*axisPanel{}
	seriesCards := container.NewGridWithRows(2,
		seriesPanel(state, dataset.AxisLeft, "Left Axis Series"),
		seriesPanel(state, dataset.AxisRight, "Right Axis Series"),
	)

	// plot options
	entry := func(text string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(text)
		return e
	}
	state.xLabel, state.leftLabel, state.rightLabel = entry(cfg.XLabel), entry(cfg.LeftLabel), entry(cfg.RightLabel)
	state.xScale, state.leftScale, state.rightScale = entry(cfg.XScale), entry(cfg.LeftScale), entry(cfg.RightScale)
	state.xMin, state.xMax = entry(""), entry("")
	state.leftMin, state.leftMax = entry(""), entry("")
	state.rightMin, state.rightMax = entry(""), entry("")
	state.xLog = widget.NewCheck("Log", nil)
	state.leftLog = widget.NewCheck("Log", nil)
	state.rightLog = widget.NewCheck("Log", nil)
	state.legend = widget.NewCheck("Show legend", nil)
	state.legend.SetChecked(cfg.ShowLegend)

	axisRow := func(min, max, scale *widget.Entry, log *widget.Check) fyne.CanvasObject {
		min.SetPlaceHolder("min")
		max.SetPlaceHolder("max")
		scale.SetPlaceHolder("scale")
		return container.NewGridWithColumns(4, min, max, scale, log)
	}
	options := widget.NewForm(
		widget.NewFormItem("X label", state.xLabel),
		widget.NewFormItem("Left label", state.leftLabel),
		widget.NewFormItem("Right label", state.rightLabel),
		widget.NewFormItem("X axis", axisRow(state.xMin, state.xMax, state.xScale, state.xLog)),
		widget.NewFormItem("Left axis", axisRow(state.leftMin, state.leftMax, state.leftScale, state.leftLog)),
		widget.NewFormItem("Right axis", axisRow(state.rightMin, state.rightMax, state.rightScale, state.rightLog)),
		widget.NewFormItem("", state.legend),
	)
	plotBtn := widget.NewButton("Plot", func() { state.plot() })
	plotBtn.Importance = widget.HighImportance
	clearBtn := widget.NewButton("Clear", func() { state.clear() })
	exportBtn := widget.NewButton("Export…", func() { exportChart(state) })
	optionsCard := widget.NewCard("Plot Options", "", container.NewVBox(options, container.NewGridWithColumns(3, plotBtn, clearBtn, exportBtn)))

	// chart
	state.chartImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.chartImg.FillMode = canvas.ImageFillContain
	state.chartImg.SetMinSize(fyne.NewSize(640, 400))
	state.statusLabel = widget.NewLabel(uihelpers.StatusText(0, 0, 0))

	left := container.NewVSplit(
		container.NewHSplit(dataCard, columnCard),
		container.NewHSplit(seriesCards, container.NewVScroll(optionsCard)),
	)
	split := container.NewHSplit(left, state.chartImg)
	split.Offset = 0.45
	return container.NewBorder(nil, state.statusLabel, nil, nil, split)
}

func seriesPanel(state *uiState, axis dataset.Axis, title string) fyne.CanvasObject {
	p := &axisPanel{selected: -1}
	state.axes[axis] = p
	p.list = widget.NewList(
		func() int { return len(state.sess.SelectionsForAxis(axis)) },
		func() fyne.CanvasObject {
			swatch := canvas.NewRectangle(color.Black)
			swatch.SetMinSize(fyne.NewSize(14, 14))
			return container.NewHBox(swatch, widget.NewLabel(""))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			sels := state.sess.SelectionsForAxis(axis)
			if id >= len(sels) {
				return
			}
			sel := sels[id]
			row := o.(*fyne.Container)
			if c, err := dataset.ParseColor(sel.Color); err == nil {
				sw := row.Objects[0].(*canvas.Rectangle)
				sw.FillColor = c
				sw.Refresh()
			}
			name := ""
			if t := state.sess.Table(sel.TableIndex); t != nil {
				name = t.Name()
			}
			row.Objects[1].(*widget.Label).SetText(uihelpers.SeriesDisplay(sel, name))
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) { p.selected = id }
	p.list.OnUnselected = func(widget.ListItemID) { p.selected = -1 }
	remove := widget.NewButton("Remove", func() { state.removeSeries(axis) })
	recolor := widget.NewButton("Color…", func() { state.changeColor(axis) })
	return widget.NewCard(title, "", container.NewBorder(nil, container.NewGridWithColumns(2, remove, recolor), nil, nil, p.list))
}

func buildMenu(state *uiState) *fyne.MainMenu {
	open := fyne.NewMenuItem("Open…", func() { openFileDialog(state) })
	recent := fyne.NewMenuItem("Open Recent", nil)
	var items []*fyne.MenuItem
	for _, p := range recentFiles(state) {
		path := p
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(path, 60), func() { state.loadFiles([]string{path}) }))
	}
	if len(items) > 0 {
		items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Clear Recent", func() {
			clearRecentFiles(state)
			state.window.SetMainMenu(buildMenu(state))
		}))
	} else {
		recent.Disabled = true
	}
	recent.ChildMenu = fyne.NewMenu("", items...)
	export := fyne.NewMenuItem("Export Chart…", func() { exportChart(state) })
	return fyne.NewMainMenu(fyne.NewMenu("File", open, recent, fyne.NewMenuItemSeparator(), export))
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		state.loadFiles([]string{path})
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter(loader.FileFilter()))
	d.Show()
}

// loadFiles loads paths in one call. On failure nothing is added.
func (s *uiState) loadFiles(paths []string) {
	tables, err := s.loader.Load(paths)
	if err != nil {
		logging.Errorf("load failed: %v", err)
		dialog.ShowError(err, s.window)
		return
	}
	start := s.sess.AddTables(tables...)
	for _, t := range tables {
		addRecentFile(s, t.Path())
	}
	s.window.SetMainMenu(buildMenu(s))
	s.datasetList.Refresh()
	s.datasetList.Select(start)
	s.refreshStatus()
}

func (s *uiState) columns() []string {
	if t := s.sess.Table(s.currentTable); t != nil {
		return t.Columns()
	}
	return nil
}

func (s *uiState) selectDataset(i int) {
	t := s.sess.Table(i)
	if t == nil {
		return
	}
	s.currentTable = i
	s.selectedColumn = ""
	// only numeric columns can drive the X axis
	cols := t.NumericColumns()
	s.xSelect.Options = cols
	if x := uihelpers.PickXColumn(cols, s.xSelect.Selected); x != "" {
		s.xSelect.SetSelected(x)
	} else {
		s.xSelect.ClearSelected()
	}
	s.columnList.UnselectAll()
	s.columnList.Refresh()
}

func (s *uiState) selectColumn(name string) {
	t := s.sess.Table(s.currentTable)
	if t == nil {
		return
	}
	s.selectedColumn = name
	s.labelEntry.SetText(dataset.DefaultLabel(t, name))
}

func (s *uiState) addSeries(axis dataset.Axis) {
	t := s.sess.Table(s.currentTable)
	switch {
	case t == nil:
		dialog.ShowInformation("Add series", "Select a dataset first.", s.window)
		return
	case s.selectedColumn == "":
		dialog.ShowInformation("Add series", "Select a column to plot first.", s.window)
		return
	case s.xSelect.Selected == "":
		dialog.ShowInformation("Add series", "Select an X column first.", s.window)
		return
	case !t.HasColumn(s.xSelect.Selected):
		dialog.ShowError(fmt.Errorf("dataset %q has no column %q", t.Name(), s.xSelect.Selected), s.window)
		return
	}
	if _, err := s.sess.AddSeries(s.currentTable, s.selectedColumn, axis, s.labelEntry.Text); err != nil {
		dialog.ShowError(err, s.window)
		return
	}
	s.labelEntry.SetText("")
	s.axes[axis].list.Refresh()
	s.refreshStatus()
}

// selectedMaster maps the highlighted row of axis back to the session list.
func (s *uiState) selectedMaster(axis dataset.Axis) (int, bool) {
	p := s.axes[axis]
	if p.selected < 0 {
		return 0, false
	}
	return s.sess.MasterIndex(axis, p.selected)
}

func (s *uiState) removeSeries(axis dataset.Axis) {
	i, ok := s.selectedMaster(axis)
	if !ok || !s.sess.RemoveSeries(i) {
		dialog.ShowInformation("Remove series", "Select a series to remove.", s.window)
		return
	}
	p := s.axes[axis]
	p.list.UnselectAll()
	p.selected = -1
	p.list.Refresh()
	s.refreshStatus()
}

func (s *uiState) changeColor(axis dataset.Axis) {
	i, ok := s.selectedMaster(axis)
	if !ok {
		dialog.ShowInformation("Series color", "Select a series first.", s.window)
		return
	}
	picker := dialog.NewColorPicker("Series color", "Pick a color for the selected series", func(c color.Color) {
		if err := s.sess.SetColor(i, dataset.FormatColor(c)); err != nil {
			dialog.ShowError(err, s.window)
			return
		}
		s.axes[axis].list.Refresh()
	}, s.window)
	picker.Advanced = true
	if c, err := dataset.ParseColor(s.sess.Selections()[i].Color); err == nil {
		picker.SetColor(c)
	}
	picker.Show()
}

func (s *uiState) config() render.Config {
	return render.Config{
		XColumn:    s.xSelect.Selected,
		XLabel:     s.xLabel.Text,
		LeftLabel:  s.leftLabel.Text,
		RightLabel: s.rightLabel.Text,
		XScale:     s.xScale.Text,
		LeftScale:  s.leftScale.Text,
		RightScale: s.rightScale.Text,
		XMin:       s.xMin.Text,
		XMax:       s.xMax.Text,
		LeftMin:    s.leftMin.Text,
		LeftMax:    s.leftMax.Text,
		RightMin:   s.rightMin.Text,
		RightMax:   s.rightMax.Text,
		XLog:       s.xLog.Checked,
		LeftLog:    s.leftLog.Checked,
		RightLog:   s.rightLog.Checked,
		ShowLegend: s.legend.Checked,
	}
}

func (s *uiState) plot() {
	snap := s.sess.Snapshot()
	c, warnings, err := render.Render(snap.Tables, snap.Selections, s.config())
	if err != nil {
		var re *render.RenderError
		if errors.As(err, &re) && re.Kind == render.NoSeries {
			dialog.ShowInformation("Plot", "Add at least one series to plot.", s.window)
		} else {
			dialog.ShowError(err, s.window)
		}
		return
	}
	s.lastChart = c
	s.redraw()
	if len(warnings) > 0 {
		msgs := make([]string, len(warnings))
		for i, w := range warnings {
			msgs[i] = w.String()
		}
		dialog.ShowInformation("Some series were skipped", uihelpers.WarningsText(msgs), s.window)
	}
}

// clear wipes the figure. Selections are only removed through Remove.
func (s *uiState) clear() {
	s.lastChart = nil
	s.redraw()
}

// chartSize follows the chart canvas, or the configured size before layout.
func (s *uiState) chartSize() (int, int) {
	if s.chartImg != nil {
		if sz := s.chartImg.Size(); sz.Width > 1 && sz.Height > 1 {
			return uihelpers.ComputeChartDimensions(int(sz.Width), int(sz.Height))
		}
	}
	return uihelpers.ComputeChartDimensions(s.defaultW, s.defaultH)
}

func (s *uiState) redraw() {
	defer logging.TimeTrack(time.Now(), "redraw")
	w, h := s.chartSize()
	if s.lastChart == nil {
		s.chartImg.Image = render.Placeholder(w, h, "Load data, add series and press Plot.")
	} else {
		s.chartImg.Image = s.lastChart.Image(w, h)
	}
	s.chartImg.Refresh()
}

func (s *uiState) refreshStatus() {
	left := len(s.sess.SelectionsForAxis(dataset.AxisLeft))
	right := len(s.sess.SelectionsForAxis(dataset.AxisRight))
	s.statusLabel.SetText(uihelpers.StatusText(s.sess.TableCount(), left, right))
}

func exportChart(state *uiState) {
	if state.lastChart == nil {
		dialog.ShowInformation("Export", "No chart to export. Press Plot first.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		w, h := state.chartSize()
		format := render.FormatForPath(wc.URI().Path(), render.FormatPNG)
		if err := state.lastChart.Write(wc, format, w, h); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		logging.Infof("exported chart to %s", wc.URI().Path())
	}, state.window)
	fs.SetFileName("chart.png")
	fs.Show()
}

// watchResize re-renders when the window size changes. Fyne has no resize
// callback, so the canvas size is polled.
func watchResize(state *uiState) {
	c := state.window.Canvas()
	if c == nil {
		return
	}
	prev := c.Size()
	done := make(chan struct{})
	state.window.SetOnClosed(func() { close(done) })
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				sz := c.Size()
				if sz != prev {
					prev = sz
					fyne.Do(func() { state.redraw() })
				}
			}
		}
	}()
}

// recent files, kept in the app preferences
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	var out []string
	for _, p := range strings.Split(raw, "\n") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	list := []string{path}
	for _, f := range recentFiles(state) {
		if f != path && len(list) < 10 {
			list = append(list, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(list, "\n"))
}

func clearRecentFiles(state *uiState) {
	state.app.Preferences().SetString("recentFiles", "")
}
