package dto

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
)

/* =========================
 * Cluster
 * ========================= */

type CreateClusterRequest struct {
	NamaKlaster string `json:"nama_klaster" validate:"required,max=200"`
	Urutan      int    `json:"urutan" validate:"gte=0"`
}

type UpdateClusterRequest struct {
	NamaKlaster *string `json:"nama_klaster" validate:"omitempty,min=1,max=200"`
	Urutan      *int    `json:"urutan" validate:"omitempty,gte=0"`
}

func (r UpdateClusterRequest) ApplyToModel(m *model.ClusterModel) {
	if r.NamaKlaster != nil {
		m.NamaKlaster = strings.TrimSpace(*r.NamaKlaster)
	}
	if r.Urutan != nil {
		m.Urutan = *r.Urutan
	}
}

type ClusterResponse struct {
	ID          uuid.UUID `json:"id"`
	BundleID    uuid.UUID `json:"bundle_id"`
	NamaKlaster string    `json:"nama_klaster"`
	Urutan      int       `json:"urutan"`
}

func NewClusterResponse(m *model.ClusterModel) ClusterResponse {
	return ClusterResponse{ID: m.ID, BundleID: m.BundleID, NamaKlaster: m.NamaKlaster, Urutan: m.Urutan}
}

/* =========================
 * Indicator
 * ========================= */

type CreateIndicatorRequest struct {
	Urutan              int               `json:"urutan" validate:"gte=0"`
	NamaIndikator       string            `json:"nama_indikator" validate:"required"`
	DefinisiOperasional *string           `json:"definisi_operasional"`
	Type                string            `json:"type" validate:"required,oneof=scoring target_achievement"`
	ScoringCriteria     map[string]string `json:"scoring_criteria"`
	TargetPercentage    *float64          `json:"target_percentage"`
	TotalSasaran        *int              `json:"total_sasaran"`
	Satuan              *string           `json:"satuan" validate:"omitempty,max=50"`
	Periodicity         string            `json:"periodicity" validate:"omitempty,oneof=annual monthly"`
}

func (r CreateIndicatorRequest) ToModel(clusterID uuid.UUID) *model.IndicatorModel {
	m := &model.IndicatorModel{
		ClusterID:           clusterID,
		Urutan:              r.Urutan,
		NamaIndikator:       strings.TrimSpace(r.NamaIndikator),
		DefinisiOperasional: r.DefinisiOperasional,
		Type:                r.Type,
		ScoringCriteria:     datatypes.NewJSONType(r.ScoringCriteria),
		TargetPercentage:    r.TargetPercentage,
		TotalSasaran:        r.TotalSasaran,
		Satuan:              r.Satuan,
		Periodicity:         r.Periodicity,
	}
	if m.Periodicity == "" {
		m.Periodicity = scoring.PeriodicityAnnual
	}
	return m
}

type UpdateIndicatorRequest struct {
	Urutan              *int              `json:"urutan" validate:"omitempty,gte=0"`
	NamaIndikator       *string           `json:"nama_indikator" validate:"omitempty,min=1"`
	DefinisiOperasional *string           `json:"definisi_operasional"`
	Type                *string           `json:"type" validate:"omitempty,oneof=scoring target_achievement"`
	ScoringCriteria     map[string]string `json:"scoring_criteria"`
	TargetPercentage    *float64          `json:"target_percentage"`
	TotalSasaran        *int              `json:"total_sasaran"`
	Satuan              *string           `json:"satuan" validate:"omitempty,max=50"`
	Periodicity         *string           `json:"periodicity" validate:"omitempty,oneof=annual monthly"`
}

func (r UpdateIndicatorRequest) ApplyToModel(m *model.IndicatorModel) {
	if r.Urutan != nil {
		m.Urutan = *r.Urutan
	}
	if r.NamaIndikator != nil {
		m.NamaIndikator = strings.TrimSpace(*r.NamaIndikator)
	}
	if r.DefinisiOperasional != nil {
		m.DefinisiOperasional = r.DefinisiOperasional
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.ScoringCriteria != nil {
		m.ScoringCriteria = datatypes.NewJSONType(r.ScoringCriteria)
	}
	if r.TargetPercentage != nil {
		m.TargetPercentage = r.TargetPercentage
	}
	if r.TotalSasaran != nil {
		m.TotalSasaran = r.TotalSasaran
	}
	if r.Satuan != nil {
		m.Satuan = r.Satuan
	}
	if r.Periodicity != nil {
		m.Periodicity = *r.Periodicity
	}
}

type ScaleOption struct {
	Value      int     `json:"value"`
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

type IndicatorResponse struct {
	ID                  uuid.UUID         `json:"id"`
	ClusterID           uuid.UUID         `json:"cluster_id"`
	Urutan              int               `json:"urutan"`
	NamaIndikator       string            `json:"nama_indikator"`
	DefinisiOperasional *string           `json:"definisi_operasional"`
	Type                string            `json:"type"`
	ScoringCriteria     map[string]string `json:"scoring_criteria,omitempty"`
	ScaleOptions        []ScaleOption     `json:"scale_options,omitempty"`
	TargetPercentage    *float64          `json:"target_percentage,omitempty"`
	TotalSasaran        *int              `json:"total_sasaran,omitempty"`
	Satuan              *string           `json:"satuan,omitempty"`
	Periodicity         string            `json:"periodicity,omitempty"`
	PeriodTarget        *int              `json:"period_target,omitempty"`
}

func NewIndicatorResponse(m *model.IndicatorModel) IndicatorResponse {
	resp := IndicatorResponse{
		ID:                  m.ID,
		ClusterID:           m.ClusterID,
		Urutan:              m.Urutan,
		NamaIndikator:       m.NamaIndikator,
		DefinisiOperasional: m.DefinisiOperasional,
		Type:                m.Type,
	}
	switch m.Type {
	case scoring.TypeScoring:
		criteria := m.ScoringCriteria.Data()
		resp.ScoringCriteria = criteria
		resp.ScaleOptions = ScaleOptions(criteria)
	case scoring.TypeTargetAchievement:
		resp.TargetPercentage = m.TargetPercentage
		resp.TotalSasaran = m.TotalSasaran
		resp.Satuan = m.Satuan
		resp.Periodicity = m.Periodicity
		if pt, err := scoring.RulePeriodTarget(m.Rule()); err == nil {
			resp.PeriodTarget = &pt
		}
	}
	return resp
}

// ScaleOptions: pilihan skala terurut naik; kunci yang bukan angka dilewati.
func ScaleOptions(criteria map[string]string) []ScaleOption {
	out := make([]ScaleOption, 0, len(criteria))
	for key, label := range criteria {
		n, err := scoring.ParseScaleKey(criteria, key)
		if err != nil {
			continue
		}
		out = append(out, ScaleOption{Value: n, Label: label, Percentage: scoring.ScalePercentage(n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

/* =========================
 * Catalog (dikelompokkan per klaster)
 * ========================= */

type ClusterCatalogResponse struct {
	ClusterID   uuid.UUID           `json:"cluster_id"`
	NamaKlaster string              `json:"nama_klaster"`
	Urutan      int                 `json:"urutan"`
	Indicators  []IndicatorResponse `json:"indicators"`
}

func GroupCatalog(items []model.CatalogItem) []ClusterCatalogResponse {
	out := make([]ClusterCatalogResponse, 0)
	idx := make(map[uuid.UUID]int)
	for i := range items {
		it := &items[i]
		pos, ok := idx[it.ClusterID]
		if !ok {
			pos = len(out)
			idx[it.ClusterID] = pos
			out = append(out, ClusterCatalogResponse{
				ClusterID:   it.ClusterID,
				NamaKlaster: it.NamaKlaster,
				Urutan:      it.ClusterUrutan,
			})
		}
		out[pos].Indicators = append(out[pos].Indicators, NewIndicatorResponse(&it.Indicator))
	}
	return out
}
