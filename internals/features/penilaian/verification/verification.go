// Package verification: aturan verifikasi bersama untuk assessment & evaluasi triwulan.
package verification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
)

var ErrCommentRequired = errors.New("komentar wajib diisi untuk status revisi")

// Request: body PATCH .../verification
type Request struct {
	Status  string  `json:"verification_status" validate:"required,oneof=pending approved revision"`
	Comment *string `json:"verification_comment" validate:"omitempty,max=2000"`
}

// Record: nilai yang ditulis ke kolom verified_*.
type Record struct {
	Status     string
	VerifiedBy uuid.UUID
	VerifiedAt time.Time
	Comment    *string
}

// Build memvalidasi request lalu membentuk Record.
func (r Request) Build(verifier uuid.UUID, now time.Time) (Record, error) {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	var comment *string
	if r.Comment != nil {
		if c := strings.TrimSpace(*r.Comment); c != "" {
			comment = &c
		}
	}
	if status == constants.VerificationRevision && comment == nil {
		return Record{}, ErrCommentRequired
	}
	return Record{Status: status, VerifiedBy: verifier, VerifiedAt: now, Comment: comment}, nil
}
