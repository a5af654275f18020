package model

import (
	"errors"
	"fmt"
	"strings"
)

const Quarters = 4

type Field string

const (
	FieldAnalisis Field = "analisis_pencapaian"
	FieldHambatan Field = "hambatan_kendala"
	FieldRencana  Field = "rencana_tindak_lanjut"
)

var ErrUnknownField = errors.New("field evaluasi tidak dikenal")

var quarterLabels = [Quarters]string{"Q1 (Jan-Mar)", "Q2 (Apr-Jun)", "Q3 (Jul-Sep)", "Q4 (Okt-Des)"}

// QuarterLabel: label triwulan 1..4; di luar rentang di-clamp.
func QuarterLabel(q int) string {
	return quarterLabels[clampQuarter(q)-1]
}

// IsComplete: ketiga narasi terisi setelah trim.
func IsComplete(analisis, hambatan, rencana string) bool {
	return strings.TrimSpace(analisis) != "" &&
		strings.TrimSpace(hambatan) != "" &&
		strings.TrimSpace(rencana) != ""
}

type Narrative struct {
	AnalisisPencapaian  string `json:"analisis_pencapaian"`
	HambatanKendala     string `json:"hambatan_kendala"`
	RencanaTindakLanjut string `json:"rencana_tindak_lanjut"`
}

func (n Narrative) Complete() bool {
	return IsComplete(n.AnalisisPencapaian, n.HambatanKendala, n.RencanaTindakLanjut)
}

// Missing: field yang masih kosong, urut tampilan form.
func (n Narrative) Missing() []Field {
	out := make([]Field, 0, 3)
	if strings.TrimSpace(n.AnalisisPencapaian) == "" {
		out = append(out, FieldAnalisis)
	}
	if strings.TrimSpace(n.HambatanKendala) == "" {
		out = append(out, FieldHambatan)
	}
	if strings.TrimSpace(n.RencanaTindakLanjut) == "" {
		out = append(out, FieldRencana)
	}
	return out
}

/* ===========================================================
 * Drafts: empat draft triwulan yang independen
 * =========================================================== */

type Drafts struct {
	current int // 1..4
	items   [Quarters]Narrative
	saved   [Quarters]*EvaluationModel
}

// NewDrafts mulai dari triwulan q (di-clamp ke 1..4).
func NewDrafts(q int) *Drafts {
	return &Drafts{current: clampQuarter(q)}
}

// Load mengisi draft dari baris tersimpan; baris di luar 1..4 diabaikan.
func (d *Drafts) Load(rows []EvaluationModel) {
	for i := range rows {
		q := rows[i].PeriodeTriwulan
		if q < 1 || q > Quarters {
			continue
		}
		row := rows[i]
		d.items[q-1] = row.Narrative()
		d.saved[q-1] = &row
	}
}

func (d *Drafts) Select(q int) { d.current = clampQuarter(q) }

func (d *Drafts) Next() {
	if d.current < Quarters {
		d.current++
	}
}

func (d *Drafts) Prev() {
	if d.current > 1 {
		d.current--
	}
}

func (d *Drafts) Quarter() int { return d.current }

func (d *Drafts) Current() Narrative { return d.items[d.current-1] }

// Edit mengubah satu field di draft triwulan aktif saja.
func (d *Drafts) Edit(f Field, value string) error {
	n := &d.items[d.current-1]
	switch f {
	case FieldAnalisis:
		n.AnalisisPencapaian = value
	case FieldHambatan:
		n.HambatanKendala = value
	case FieldRencana:
		n.RencanaTindakLanjut = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

func (d *Drafts) Complete(q int) bool { return d.items[clampQuarter(q)-1].Complete() }

func (d *Drafts) Draft(q int) Narrative { return d.items[clampQuarter(q)-1] }

// Saved: baris tersimpan untuk triwulan q, nil kalau belum pernah disimpan.
func (d *Drafts) Saved(q int) *EvaluationModel { return d.saved[clampQuarter(q)-1] }

func clampQuarter(q int) int {
	switch {
	case q < 1:
		return 1
	case q > Quarters:
		return Quarters
	default:
		return q
	}
}
