// Package model: navigasi indikator dan progres pengisian form penilaian.
package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Navigator menyimpan posisi indikator aktif, selalu di [0, length-1].
type Navigator struct {
	index  int
	length int
}

func NewNavigator(length, index int) *Navigator {
	if length < 0 {
		length = 0
	}
	n := &Navigator{length: length}
	n.Jump(index)
	return n
}

func (n *Navigator) Index() int  { return n.index }
func (n *Navigator) Length() int { return n.length }

// HasCurrent: false untuk list kosong.
func (n *Navigator) HasCurrent() bool { return n.length > 0 }

func (n *Navigator) HasPrev() bool { return n.index > 0 }
func (n *Navigator) HasNext() bool { return n.index < n.length-1 }

func (n *Navigator) Next() { n.Jump(n.index + 1) }
func (n *Navigator) Prev() { n.Jump(n.index - 1) }

func (n *Navigator) Jump(i int) {
	switch {
	case n.length == 0 || i < 0:
		n.index = 0
	case i > n.length-1:
		n.index = n.length - 1
	default:
		n.index = i
	}
}

// CompletionPercentage = terisi / total * 100, dibulatkan 2 desimal.
// Nilai untuk indikator di luar daftar tidak dihitung.
func CompletionPercentage(indicators []uuid.UUID, filled map[uuid.UUID]bool) float64 {
	if len(indicators) == 0 {
		return 0
	}
	n := 0
	for _, id := range indicators {
		if filled[id] {
			n++
		}
	}
	return math.Round(float64(n)/float64(len(indicators))*100*100) / 100
}

// DisplayValue: "75%" untuk nilai tersimpan, "-" kalau belum diisi.
func DisplayValue(pct *float64) string {
	if pct == nil {
		return "-"
	}
	v := *pct
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}
