package verification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
)

func TestBuildRequiresCommentForRevision(t *testing.T) {
	verifier := uuid.New()
	now := time.Now()

	blank := "   "
	_, err := Request{Status: constants.VerificationRevision, Comment: &blank}.Build(verifier, now)
	assert.ErrorIs(t, err, ErrCommentRequired)

	note := " lampirkan bukti "
	rec, err := Request{Status: "Revision", Comment: &note}.Build(verifier, now)
	require.NoError(t, err)
	assert.Equal(t, constants.VerificationRevision, rec.Status)
	assert.Equal(t, "lampirkan bukti", *rec.Comment)
	assert.Equal(t, verifier, rec.VerifiedBy)

	rec, err = Request{Status: constants.VerificationApproved}.Build(verifier, now)
	require.NoError(t, err)
	assert.Nil(t, rec.Comment)
}
