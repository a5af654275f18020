// Package scoring menurunkan persentase capaian indikator dari input mentah.
// Semua fungsi di sini murni (tanpa I/O) dan dipakai ulang oleh auto-save,
// katalog indikator, dan backfill.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	TypeScoring           = "scoring"
	TypeTargetAchievement = "target_achievement"

	PeriodicityAnnual  = "annual"
	PeriodicityMonthly = "monthly"

	MinScale = 0
	MaxScale = 10
)

var (
	ErrUnknownType         = errors.New("tipe indikator tidak dikenal")
	ErrUnknownPeriodicity  = errors.New("periodisitas tidak dikenal")
	ErrEmptyCriteria       = errors.New("kriteria skoring kosong")
	ErrInvalidScaleKey     = errors.New("kunci skala bukan bilangan bulat")
	ErrScaleOutOfRange     = errors.New("kunci skala di luar rentang 0-10")
	ErrScaleKeyNotFound    = errors.New("nilai skala tidak ada di kriteria indikator")
	ErrMissingScore        = errors.New("selected_score wajib diisi untuk indikator skoring")
	ErrMissingAchievement  = errors.New("actual_achievement wajib diisi untuk indikator target")
	ErrMissingTarget       = errors.New("target_percentage, total_sasaran, dan periodicity wajib diisi")
	ErrTargetOutOfRange    = errors.New("target_percentage harus 0-100")
	ErrNegativeSasaran     = errors.New("total_sasaran tidak boleh negatif")
	ErrNegativeAchievement = errors.New("actual_achievement tidak boleh negatif")
	ErrZeroPeriodTarget    = errors.New("target periode bernilai 0, persentase tidak terdefinisi")
)

// IndicatorRule adalah bagian konfigurasi indikator yang menentukan cara skoring.
type IndicatorRule struct {
	Type             string
	ScoringCriteria  map[string]string
	TargetPercentage *float64
	TotalSasaran     *int
	Periodicity      string
}

// Input mentah dari petugas. Hanya satu field yang relevan sesuai tipe indikator.
type Input struct {
	SelectedScore     *int
	ActualAchievement *int
}

type Result struct {
	Percentage        float64
	SelectedScore     *int
	ActualAchievement *int
	PeriodTarget      *int
}

// ScalePercentage: (s/10)*100, tanpa clamp.
func ScalePercentage(s int) float64 {
	return float64(s) / MaxScale * 100
}

// ParseScaleKey memastikan key ada di criteria dan berupa bilangan bulat.
func ParseScaleKey(criteria map[string]string, key string) (int, error) {
	if _, ok := criteria[key]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrScaleKeyNotFound, key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScaleKey, key)
	}
	return n, nil
}

// PeriodTarget menghitung target satu triwulan.
// annual: round(P/100*T/4), monthly: round(P/100*T*3).
func PeriodTarget(p float64, t int, periodicity string) (int, error) {
	var raw float64
	switch periodicity {
	case PeriodicityAnnual:
		raw = p * float64(t) / 400
	case PeriodicityMonthly:
		raw = p * float64(t) * 3 / 100
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPeriodicity, periodicity)
	}
	return int(math.Round(raw)), nil
}

// AchievementPercentage: clamp(0, 100, a/periodTarget*100), dibulatkan 2 desimal.
func AchievementPercentage(a, periodTarget int) (float64, error) {
	if a < 0 {
		return 0, ErrNegativeAchievement
	}
	if periodTarget <= 0 {
		return 0, ErrZeroPeriodTarget
	}
	pct := float64(a) / float64(periodTarget) * 100
	if pct > 100 {
		pct = 100
	}
	return round2(pct), nil
}

// Calculate memilih rumus sesuai tipe indikator.
func Calculate(rule IndicatorRule, in Input) (Result, error) {
	switch rule.Type {
	case TypeScoring:
		if in.SelectedScore == nil {
			return Result{}, ErrMissingScore
		}
		s := *in.SelectedScore
		if !hasScale(rule.ScoringCriteria, s) {
			return Result{}, fmt.Errorf("%w: %d", ErrScaleKeyNotFound, s)
		}
		return Result{
			Percentage:    ScalePercentage(s),
			SelectedScore: &s,
		}, nil

	case TypeTargetAchievement:
		if in.ActualAchievement == nil {
			return Result{}, ErrMissingAchievement
		}
		pt, err := RulePeriodTarget(rule)
		if err != nil {
			return Result{}, err
		}
		a := *in.ActualAchievement
		pct, err := AchievementPercentage(a, pt)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Percentage:        pct,
			ActualAchievement: &a,
			PeriodTarget:      &pt,
		}, nil

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownType, rule.Type)
	}
}

// RulePeriodTarget: PeriodTarget dari field indikator bertipe target.
func RulePeriodTarget(rule IndicatorRule) (int, error) {
	if rule.TargetPercentage == nil || rule.TotalSasaran == nil || rule.Periodicity == "" {
		return 0, ErrMissingTarget
	}
	return PeriodTarget(*rule.TargetPercentage, *rule.TotalSasaran, rule.Periodicity)
}

// ValidateRule menolak konfigurasi yang tidak bisa diskor, dipanggil saat input indikator.
func ValidateRule(rule IndicatorRule) error {
	switch rule.Type {
	case TypeScoring:
		if len(rule.ScoringCriteria) == 0 {
			return ErrEmptyCriteria
		}
		for key := range rule.ScoringCriteria {
			n, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidScaleKey, key)
			}
			if n < MinScale || n > MaxScale {
				return fmt.Errorf("%w: %q", ErrScaleOutOfRange, key)
			}
		}
		return nil

	case TypeTargetAchievement:
		if rule.TargetPercentage == nil || rule.TotalSasaran == nil || rule.Periodicity == "" {
			return ErrMissingTarget
		}
		if p := *rule.TargetPercentage; p < 0 || p > 100 {
			return ErrTargetOutOfRange
		}
		if *rule.TotalSasaran < 0 {
			return ErrNegativeSasaran
		}
		pt, err := RulePeriodTarget(rule)
		if err != nil {
			return err
		}
		if pt == 0 {
			return ErrZeroPeriodTarget
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, rule.Type)
	}
}

func hasScale(criteria map[string]string, s int) bool {
	for key := range criteria {
		if n, err := strconv.Atoi(strings.TrimSpace(key)); err == nil && n == s {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
