package ui

import (
	"image"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"pkt.systems/pslog"

	"github.com/OpenTraceLab/OpenTraceWave/internal/config"
	"github.com/OpenTraceLab/OpenTraceWave/internal/session"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/message"
)

type panelIcons struct {
	addAll   *widget.Icon
	clear    *widget.Icon
	filter   *widget.Icon
	expand   *widget.Icon
	collapse *widget.Icon
	leaf     *widget.Icon
}

// App drives the Gio hierarchy panel.
type App struct {
	Window  *app.Window
	Theme   *theme.Theme
	Session *session.State

	cfg    config.Config
	colors Colors
	log    pslog.Logger

	ops     op.Ops
	queue   message.Queue
	actions hierarchy.Actions

	filterEditor widget.Editor
	addAllBtn    widget.Clickable
	caseBtn      widget.Clickable
	clearBtn     widget.Clickable
	typeBtn      widget.Clickable
	typeMenu     *menu.DropdownMenu

	scopeList   layout.List
	varList     layout.List
	treeList    layout.List
	displayList layout.List

	scopeRows rowClicks
	varRows   rowClicks
	treeRows  rowClicks

	icons panelIcons
}

// New wires the window, theme and session together.
func New(window *app.Window, cfg config.Config, state *session.State, logger pslog.Logger) (*App, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	colors := NewColors(palette)
	a := &App{
		Window:       window,
		Theme:        newTheme(colors),
		Session:      state,
		cfg:          cfg,
		colors:       colors,
		log:          logger,
		filterEditor: widget.Editor{SingleLine: true},
		scopeList:    layout.List{Axis: layout.Vertical},
		varList:      layout.List{Axis: layout.Vertical},
		treeList:     layout.List{Axis: layout.Vertical},
		displayList:  layout.List{Axis: layout.Vertical},
	}
	a.actions = hierarchy.Actions{Queue: &a.queue}
	a.filterEditor.SetText(state.Filter().Pattern)
	a.typeMenu = a.buildTypeMenu()
	a.initIcons()
	return a, nil
}

// Run processes Gio events until the window is closed. Messages queued
// while laying out frame N are applied before frame N+1 is laid out.
func (a *App) Run() error {
	for {
		e := a.Window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			a.Session.Drain(&a.queue)
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
			if a.queue.Len() > 0 {
				a.Window.Invalidate()
			}
		}
	}
}

func (a *App) initIcons() {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			a.log.Warn("ui: failed to load icon", "icon", name, "err", err)
			return nil
		}
		return icon
	}
	a.icons = panelIcons{
		addAll:   makeIcon(icons.ContentAddCircleOutline, "add all"),
		clear:    makeIcon(icons.ContentClear, "clear"),
		filter:   makeIcon(icons.ContentFilterList, "filter"),
		expand:   makeIcon(icons.NavigationChevronRight, "expand"),
		collapse: makeIcon(icons.NavigationExpandMore, "collapse"),
		leaf:     makeIcon(icons.ImageBrightness1, "leaf"),
	}
}

func (a *App) buildTypeMenu() *menu.DropdownMenu {
	types := filter.AllNameFilterTypes()
	opts := make([]menu.MenuOption, 0, len(types))
	for _, t := range types {
		typ := t
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.actions.SelectFilterType(typ)
				a.Window.Invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, typ.String())
				if typ == a.Session.Filter().Type {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, a.colors.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	in := a.Session.Input(a.cfg.Style(), a.cfg.ScopeOptions())
	frame := hierarchy.Build(in)

	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(320))
			gtx.Constraints.Min.X = width
			gtx.Constraints.Max.X = width
			return a.layoutPanelSurface(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.layoutHierarchy(gtx, in, frame)
			})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, a.layoutDisplayed)
		}),
	)
}

func (a *App) layoutPanelSurface(gtx layout.Context, body layout.Widget) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			rr := gtx.Dp(unit.Dp(10))
			paint.FillShape(gtx.Ops, a.colors.Bg2, clip.RRect{
				Rect: image.Rectangle{Max: gtx.Constraints.Max},
				NW:   rr, NE: rr, SW: rr, SE: rr,
			}.Op(gtx.Ops))
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min = gtx.Constraints.Max
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, body)
		}),
	)
}

// layoutDisplayed lists what has been added to the viewer so far.
func (a *App) layoutDisplayed(gtx layout.Context) layout.Dimensions {
	vars := a.Session.Variables()
	items := a.Session.Items()
	total := len(vars) + len(items)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H6(a.Theme.Theme, "Displayed").Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if total == 0 {
				lbl := material.Body2(a.Theme.Theme, "Nothing added yet.")
				lbl.Color = a.colors.SectionLabel
				return lbl.Layout(gtx)
			}
			return a.displayList.Layout(gtx, total, func(gtx layout.Context, idx int) layout.Dimensions {
				text := ""
				if idx < len(vars) {
					text = vars[idx].FullPath()
				} else {
					text = items[idx-len(vars)].String()
				}
				return material.Body2(a.Theme.Theme, text).Layout(gtx)
			})
		}),
	)
}

func (a *App) invalidate() {
	if a.Window != nil {
		a.Window.Invalidate()
	}
}
