package ion_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asabr-go/asabr/bundle"
	"github.com/asabr-go/asabr/cpparse/ion"
)

const samplePlan = `
# ION contact plan editor directives
a contact 0 100 1 2 100000
a range 0 100 1 2 5
a contact 50 150 2 3 200000
`

func TestParse_BuildsGraph(t *testing.T) {
	g, err := ion.Parse(strings.NewReader(samplePlan))
	require.NoError(t, err)
	require.Equal(t, 3, g.NodeCount())

	c0 := g.ContactByID(0)
	require.NotNil(t, c0)
	require.Equal(t, bundle.Date(0), c0.Info.Start)
	require.Equal(t, bundle.Date(100), c0.Info.End)

	c1 := g.ContactByID(1)
	require.NotNil(t, c1)
	require.Equal(t, bundle.Date(50), c1.Info.Start)
}

func TestParse_NoCoalescing(t *testing.T) {
	const overlapping = `
a contact 0 50 1 2 100000
a contact 25 75 1 2 100000
`
	g, err := ion.Parse(strings.NewReader(overlapping))
	require.NoError(t, err)

	count := 0
	for i := bundle.ContactID(0); g.ContactByID(i) != nil; i++ {
		count++
	}
	require.Equal(t, 2, count)
}

func TestParse_RangeWithoutContactIsIgnored(t *testing.T) {
	const plan = `
a range 0 100 1 2 5
`
	g, err := ion.Parse(strings.NewReader(plan))
	require.NoError(t, err)
	require.Nil(t, g.ContactByID(0))
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	const plan = `
not a valid directive
a contact 0 50 1 2 100000
`
	g, err := ion.Parse(strings.NewReader(plan))
	require.NoError(t, err)
	require.NotNil(t, g.ContactByID(0))
}
