package ui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
)

// rowClicks holds one clickable per visible row plus one for its expander.
type rowClicks struct {
	row    []widget.Clickable
	toggle []widget.Clickable
}

func (r *rowClicks) ensure(n int) {
	if len(r.row) < n {
		r.row = append(r.row, make([]widget.Clickable, n-len(r.row))...)
		r.toggle = append(r.toggle, make([]widget.Clickable, n-len(r.toggle))...)
	}
}

func (a *App) layoutHierarchy(gtx layout.Context, in hierarchy.Input, frame hierarchy.Frame) layout.Dimensions {
	if in.Data == nil {
		lbl := material.Body2(a.Theme.Theme, "No data loaded.")
		lbl.Color = a.colors.SectionLabel
		return lbl.Layout(gtx)
	}
	if frame.Style == hierarchy.Tree {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutFilterBar(gtx, in, frame)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return a.layoutRows(gtx, &a.treeList, &a.treeRows, frame.Tree)
			}),
		)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.Subtitle2(a.Theme.Theme, "Scopes").Layout),
		layout.Flexed(0.4, func(gtx layout.Context) layout.Dimensions {
			return a.layoutRows(gtx, &a.scopeList, &a.scopeRows, frame.Scopes)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Rigid(material.Subtitle2(a.Theme.Theme, "Variables").Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutFilterBar(gtx, in, frame)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Flexed(0.6, func(gtx layout.Context) layout.Dimensions {
			return a.layoutRows(gtx, &a.varList, &a.varRows, frame.Variables)
		}),
	)
}

// layoutFilterBar draws add-all, the filter input, the type menu, the case
// toggle and the clear button. Every interaction is queued.
func (a *App) layoutFilterBar(gtx layout.Context, in hierarchy.Input, frame hierarchy.Frame) layout.Dimensions {
	for a.addAllBtn.Clicked(gtx) {
		a.actions.AddAll(in)
		a.invalidate()
	}
	for a.caseBtn.Clicked(gtx) {
		a.actions.ToggleCaseInsensitive(frame.Filter)
		a.invalidate()
	}
	for a.clearBtn.Clicked(gtx) {
		a.actions.ClearFilter()
		a.filterEditor.SetText("")
		a.invalidate()
	}
	if a.typeBtn.Clicked(gtx) {
		a.typeMenu.ToggleVisibility(gtx)
	}
	for {
		ev, ok := a.filterEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.ChangeEvent); ok {
			if text := a.filterEditor.Text(); text != frame.Filter.Pattern {
				a.actions.EditFilter(text)
				a.invalidate()
			}
		}
	}
	if focused := gtx.Focused(&a.filterEditor); focused != a.Session.FilterFocused() {
		a.actions.FocusFilter(focused)
		a.invalidate()
	}
	if !gtx.Focused(&a.filterEditor) && a.filterEditor.Text() != frame.Filter.Pattern {
		a.filterEditor.SetText(frame.Filter.Pattern)
	}

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.iconButton(gtx, &a.addAllBtn, a.icons.addAll, "Add all variables from active scope")
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.layoutFilterInput(gtx, frame.FilterError)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			dims := a.iconButton(gtx, &a.typeBtn, a.icons.filter, frame.Filter.Type.String())
			a.typeMenu.Layout(gtx, a.Theme)
			return dims
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(a.Theme.Theme, &a.caseBtn, "Aa")
			btn.Inset = layout.UniformInset(unit.Dp(6))
			if frame.Filter.CaseInsensitive {
				btn.Background = a.colors.Bg
				btn.Color = a.colors.Fg
			} else {
				btn.Background = accent
			}
			return btn.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.iconButton(gtx, &a.clearBtn, a.icons.clear, "Clear filter")
		}),
	)
}

func (a *App) layoutFilterInput(gtx layout.Context, invalid bool) layout.Dimensions {
	bg, fg := a.colors.Bg, a.colors.Fg
	if invalid {
		bg, fg = a.colors.ErrorBg, a.colors.ErrorFg
	}
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			rr := gtx.Dp(unit.Dp(4))
			paint.FillShape(gtx.Ops, bg, clip.RRect{
				Rect: image.Rectangle{Max: gtx.Constraints.Min},
				NW:   rr, NE: rr, SW: rr, SE: rr,
			}.Op(gtx.Ops))
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				ed := material.Editor(a.Theme.Theme, &a.filterEditor, "Filter")
				ed.Color = fg
				return ed.Layout(gtx)
			})
		}),
	)
}

func (a *App) iconButton(gtx layout.Context, click *widget.Clickable, icon *widget.Icon, desc string) layout.Dimensions {
	if icon == nil {
		btn := material.Button(a.Theme.Theme, click, desc)
		btn.Inset = layout.UniformInset(unit.Dp(6))
		return btn.Layout(gtx)
	}
	btn := material.IconButton(a.Theme.Theme, click, icon, desc)
	btn.Size = unit.Dp(18)
	btn.Inset = layout.UniformInset(unit.Dp(6))
	btn.Background = color.NRGBA{}
	btn.Color = a.colors.Fg
	return btn.Layout(gtx)
}

// layoutRows draws rows through a virtualized list; only the rows that
// intersect the viewport are laid out.
func (a *App) layoutRows(gtx layout.Context, list *layout.List, clicks *rowClicks, rows []hierarchy.Row) layout.Dimensions {
	clicks.ensure(len(rows))
	return list.Layout(gtx, len(rows), func(gtx layout.Context, idx int) layout.Dimensions {
		row := rows[idx]
		for clicks.toggle[idx].Clicked(gtx) {
			a.actions.Toggle(row)
			a.invalidate()
		}
		for clicks.row[idx].Clicked(gtx) {
			a.actions.Activate(row)
			a.invalidate()
		}
		return a.layoutRow(gtx, row, &clicks.row[idx], &clicks.toggle[idx])
	})
}

func (a *App) layoutRow(gtx layout.Context, row hierarchy.Row, click, toggle *widget.Clickable) layout.Dimensions {
	indent := unit.Dp(14 * float32(row.Depth))
	return layout.Inset{Left: indent}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutExpander(gtx, row, toggle)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return a.layoutRowLabel(gtx, row, click.Hovered())
				})
			}),
		)
	})
}

func (a *App) layoutExpander(gtx layout.Context, row hierarchy.Row, toggle *widget.Clickable) layout.Dimensions {
	size := gtx.Dp(unit.Dp(16))
	gtx.Constraints.Min = image.Pt(size, size)
	gtx.Constraints.Max = gtx.Constraints.Min
	if !row.Expandable {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
	icon := a.icons.expand
	if row.Expanded {
		icon = a.icons.collapse
	}
	return toggle.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if icon == nil {
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}
		return icon.Layout(gtx, a.colors.Fg)
	})
}

func (a *App) layoutRowLabel(gtx layout.Context, row hierarchy.Row, hovered bool) layout.Dimensions {
	var lbl material.LabelStyle
	switch row.Kind {
	case hierarchy.RowParameterHeader:
		lbl = material.Subtitle2(a.Theme.Theme, row.Label)
		lbl.Color = a.colors.SectionLabel
	case hierarchy.RowParameter:
		lbl = material.Body2(a.Theme.Theme, row.Label)
		lbl.Color = a.colors.SectionLabel
	default:
		lbl = material.Body2(a.Theme.Theme, row.Label)
		lbl.Color = a.colors.Fg
	}
	var bg color.NRGBA
	switch {
	case row.Active:
		bg = a.colors.ActiveRow
	case hovered:
		bg = a.colors.Bg
	}
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			if bg.A > 0 {
				paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
			}
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2), Left: unit.Dp(4)}.Layout(gtx, lbl.Layout)
		}),
	)
}
