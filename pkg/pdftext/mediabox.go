package pdftext

import (
	"github.com/ledongthuc/pdf"
)

type rect struct {
	llx, lly, urx, ury float64
}

func (r rect) width() float64  { return r.urx - r.llx }
func (r rect) height() float64 { return r.ury - r.lly }

// mediaBox returns the page's MediaBox, walking up the page tree for an
// inherited one and falling back to US Letter
func mediaBox(page pdf.Page) rect {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		if r, ok := parseRect(v.Key("MediaBox")); ok {
			return r
		}
	}
	return rect{urx: Letter[0], ury: Letter[1]}
}

func parseRect(v pdf.Value) (rect, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return rect{}, false
	}
	r := rect{
		llx: v.Index(0).Float64(),
		lly: v.Index(1).Float64(),
		urx: v.Index(2).Float64(),
		ury: v.Index(3).Float64(),
	}
	if r.urx < r.llx {
		r.llx, r.urx = r.urx, r.llx
	}
	if r.ury < r.lly {
		r.lly, r.ury = r.ury, r.lly
	}
	if r.width() <= 0 || r.height() <= 0 {
		return rect{}, false
	}
	return r, true
}
