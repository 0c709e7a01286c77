package plotwin

import (
	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vggio"
	"os"
)

// PlotsWidget draws a row of plots side by side.
type PlotsWidget struct {
	Plots []*plot.Plot
	DPI   int
}

func (p *PlotsWidget) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	wAdjusted := vg.Points(float64(size.X) * vg.Inch.Points() / float64(p.DPI))
	hAdjusted := vg.Points(float64(size.Y) * vg.Inch.Points() / float64(p.DPI))
	cnv := vggio.New(gtx, wAdjusted, hAdjusted, vggio.UseDPI(p.DPI))
	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(p.Plots),
		PadX: vg.Millimeter * 5,
	}
	canvases := plot.Align([][]*plot.Plot{p.Plots}, tiles, draw.New(cnv))
	for i, pl := range p.Plots {
		pl.Draw(canvases[0][i])
	}
	return layout.Dimensions{Size: size}
}

// DisplayPlots opens a window showing the plots, and exits the process once it is closed.
func DisplayPlots(title string, plots ...*plot.Plot) error {
	widget := &PlotsWidget{
		Plots: plots,
		DPI:   128,
	}

	go func() {
		win := app.NewWindow(
			app.Title(title),
			app.Size(
				unit.Px(float32(512*len(plots))),
				unit.Px(512),
			),
		)
		defer win.Close()

		for e := range win.Events() {
			switch e := e.(type) {
			case system.FrameEvent:
				ops := new(op.Ops)
				gtx := layout.NewContext(ops, e)
				layout.UniformInset(unit.Dp(30)).Layout(gtx, widget.Layout)
				e.Frame(ops)

			case key.Event:
				switch e.Name {
				case "Q", key.NameEscape:
					win.Close()
				}

			case system.DestroyEvent:
				os.Exit(0)
			}
		}
	}()

	app.Main()
	return nil
}
