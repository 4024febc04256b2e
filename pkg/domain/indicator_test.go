package domain_test

import (
	"testing"

	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseOrientation(t *testing.T) {
	o, err := domain.ParseOrientation("")
	assert.NoError(t, err)
	assert.Equal(t, domain.Horizontal, o)

	o, err = domain.ParseOrientation("vertical")
	assert.NoError(t, err)
	assert.Equal(t, domain.Vertical, o)

	_, err = domain.ParseOrientation("diagonal")
	assert.ErrorIs(t, err, domain.ErrInvalidOrientation)
}

func TestDropIndicator_Validate(t *testing.T) {
	shown := domain.DropIndicator{Visible: true, TargetContainerID: "row-1", InsertIndex: 2}

	assert.NoError(t, shown.Validate(2), "index equal to child count appends")
	assert.ErrorIs(t, shown.Validate(1), domain.ErrIndexOutOfBounds)

	shown.InsertIndex = domain.NoIndex
	assert.NoError(t, shown.Validate(0))

	shown.InsertIndex = -2
	assert.ErrorIs(t, shown.Validate(5), domain.ErrIndexOutOfBounds)

	assert.ErrorIs(t, domain.NewDropIndicator().Validate(3), domain.ErrIndicatorHidden)
}

func TestDropIndicator_TargetHiddenIsReset(t *testing.T) {
	ind := domain.DropIndicator{Visible: false, TargetContainerID: "stale", InsertIndex: 4}
	id, idx, ok := ind.Target()
	assert.False(t, ok)
	assert.Equal(t, "", id)
	assert.Equal(t, domain.NoIndex, idx)
}

func TestDropZone(t *testing.T) {
	all := domain.DropZone{ID: "root", Kind: domain.ZoneContainer}
	assert.True(t, all.Allows("anything"))
	assert.Equal(t, domain.Horizontal, all.Orientation())

	row := domain.DropZone{ID: "row-1", Kind: domain.ZoneRow, Accepts: []string{"buttons"}}
	assert.True(t, row.Allows("buttons"))
	assert.False(t, row.Allows("cards"))
	assert.Equal(t, domain.Vertical, row.Orientation())
}
