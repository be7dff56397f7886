package spatial_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearutop/spatial"
	"github.com/vearutop/spatial/internal/testsupport"
)

type fakeInspector struct {
	count   int
	primary int
	props   spatial.PropertyMap
}

func (f fakeInspector) ImageCount() int                 { return f.count }
func (f fakeInspector) PrimaryIndex() int               { return f.primary }
func (f fakeInspector) Properties() spatial.PropertyMap { return f.props }

func TestPlanStereo(t *testing.T) {
	c, err := spatial.Open(testsupport.StereoMPO(t))
	require.NoError(t, err)

	plan, err := spatial.Plan(c)
	require.NoError(t, err)
	assert.Equal(t, []spatial.PlanEntry{
		{Index: 0, Role: spatial.RolePrimary},
		{Index: 1, Role: spatial.RoleLeft},
		{Index: 2, Role: spatial.RoleRight},
	}, plan.Entries)
	require.NotNil(t, plan.Pair)
	assert.Equal(t, spatial.StereoPair{Left: 1, Right: 2}, *plan.Pair)
}

func TestPlanPrimaryOnly(t *testing.T) {
	plan, err := spatial.Plan(fakeInspector{count: 2, primary: 1, props: spatial.PropertyMap{}})
	require.NoError(t, err)
	assert.Equal(t, []spatial.PlanEntry{{Index: 1, Role: spatial.RolePrimary}}, plan.Entries)
	assert.Nil(t, plan.Pair)
}

func TestPlanPrimaryMayBeStereoView(t *testing.T) {
	plan, err := spatial.Plan(fakeInspector{count: 2, primary: 0, props: spatial.PropertyMap{
		spatial.KeyGroups: []spatial.PropertyMap{stereoGroup(0, 1)},
	}})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 3)
	assert.Equal(t, 0, plan.Entries[0].Index)
	assert.Equal(t, 0, plan.Entries[1].Index)
}

func TestPlanSameImageBothViews(t *testing.T) {
	plan, err := spatial.Plan(fakeInspector{count: 3, primary: 0, props: spatial.PropertyMap{
		spatial.KeyGroups: []spatial.PropertyMap{stereoGroup(1, 1)},
	}})
	require.NoError(t, err)
	assert.Equal(t, []spatial.PlanEntry{
		{Index: 0, Role: spatial.RolePrimary},
		{Index: 1, Role: spatial.RoleLeft},
		{Index: 1, Role: spatial.RoleRight},
	}, plan.Entries)
}

func TestPlanErrors(t *testing.T) {
	_, err := spatial.Plan(fakeInspector{count: 0})
	assert.True(t, errors.Is(err, spatial.ErrNoImages))

	_, err = spatial.Plan(fakeInspector{count: 2, primary: 2})
	assert.ErrorIs(t, err, spatial.ErrPrimaryIndex)

	_, err = spatial.Plan(fakeInspector{count: 2, primary: -1})
	assert.ErrorIs(t, err, spatial.ErrPrimaryIndex)
}
