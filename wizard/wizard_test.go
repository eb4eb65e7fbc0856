// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmops/fieldsync/models"
)

func testSequencer(t *testing.T) *Sequencer {
	t.Helper()
	seq, err := NewSequencer(FarmInspection(), models.RequestContext{
		RequestID:     42,
		RequestNumber: "REQ-2025-0042",
	})
	require.NoError(t, err)
	return seq
}

func TestEntryRequiresContext(t *testing.T) {
	_, err := NewSequencer(FarmInspection(), models.RequestContext{})
	assert.ErrorIs(t, err, ErrInvalidContext)

	_, err = NewSequencer(FarmInspection(), models.RequestContext{RequestID: 42})
	assert.ErrorIs(t, err, ErrInvalidContext)
}

func TestStartsAtFirstSection(t *testing.T) {
	seq := testSequencer(t)
	assert.Equal(t, models.SectionPersonalInfo, seq.Current().Name)
	assert.Equal(t, 0, seq.CurrentIndex())
}

func TestAdvanceMovesByExactlyOne(t *testing.T) {
	seq := testSequencer(t)

	assert.True(t, seq.Advance())
	assert.Equal(t, models.SectionIDProof, seq.Current().Name)
	assert.Equal(t, 1, seq.CurrentIndex())
}

func TestAdvanceStopsAtEnd(t *testing.T) {
	seq := testSequencer(t)
	for i := 0; i < len(FarmInspection().Sections)-1; i++ {
		assert.True(t, seq.Advance())
	}
	assert.Equal(t, models.SectionHarvestStorage, seq.Current().Name)
	assert.False(t, seq.Advance(), "advance past the last section")
	assert.Equal(t, models.SectionHarvestStorage, seq.Current().Name)
}

func TestJumpAheadIsSilentlyIgnored(t *testing.T) {
	seq := testSequencer(t)
	seq.Advance() // on id_proof

	seq.GoToSection(models.SectionEconomical)

	assert.Equal(t, models.SectionIDProof, seq.Current().Name, "jump ahead must not move the cursor")
}

func TestBackNavigationAllowed(t *testing.T) {
	seq := testSequencer(t)
	seq.Advance()
	seq.Advance() // on finance_info

	seq.GoToSection(models.SectionPersonalInfo)
	assert.Equal(t, models.SectionPersonalInfo, seq.Current().Name)

	// Returning forward to an already-reached section is not yet allowed:
	// the cursor moved back with us
	seq.GoToSection(models.SectionFinanceInfo)
	assert.Equal(t, models.SectionPersonalInfo, seq.Current().Name)
}

func TestUnknownSectionIgnored(t *testing.T) {
	seq := testSequencer(t)
	seq.GoToSection("no_such_section")
	assert.Equal(t, models.SectionPersonalInfo, seq.Current().Name)
}

func TestContextIsCarried(t *testing.T) {
	seq := testSequencer(t)
	seq.Advance()

	rc := seq.Context()
	assert.Equal(t, int64(42), rc.RequestID)
	assert.Equal(t, "REQ-2025-0042", rc.RequestNumber)
}

func TestFarmInspectionOrder(t *testing.T) {
	w := FarmInspection()
	want := []string{
		models.SectionPersonalInfo,
		models.SectionIDProof,
		models.SectionFinanceInfo,
		models.SectionLandInfo,
		models.SectionInvestmentInfo,
		models.SectionCultivationInfo,
		models.SectionCroppingSystems,
		models.SectionProfitRisk,
		models.SectionEconomical,
		models.SectionLabour,
		models.SectionHarvestStorage,
	}
	require.Len(t, w.Sections, len(want))
	for i, name := range want {
		assert.Equal(t, name, w.Sections[i].Name)
	}
}

func TestByName(t *testing.T) {
	_, ok := ByName("farm_inspection")
	assert.True(t, ok)
	_, ok = ByName("capital_request")
	assert.True(t, ok)
	_, ok = ByName("nope")
	assert.False(t, ok)
}
