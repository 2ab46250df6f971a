package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/uav-mission-research/internal/core"
)

func TestProblem_FromDemo(t *testing.T) {
	t.Parallel()

	s := Demo()
	require.NoError(t, Validate(s))

	prob, err := s.Problem()
	require.NoError(t, err)
	require.NoError(t, prob.Validate())

	// Three schedulable areas with IDs assigned in file order, one obstacle.
	tasks := prob.TaskAreas()
	require.Len(t, tasks, 3)
	for i, area := range tasks {
		assert.Equal(t, core.TaskID(i), area.Task.ID)
	}
	assert.Equal(t, "west field", tasks[0].Task.Name)
	assert.Equal(t, core.FlyThrough, tasks[2].Kind)
	assert.Len(t, prob.Obstacles(), 1)

	assert.Equal(t, DefaultUAV().AirspeedMps, prob.UAV.Airspeed)
	assert.InDelta(t, math.Pi/4, prob.StartOrientation.Radians(), 1e-12)
}

func TestProblem_DefaultsTaskNames(t *testing.T) {
	t.Parallel()

	content := `name: unnamed
start: {lon: 14.4, lat: 45.3}
areas:
  - kind: coverage
    polygon: [{lon: 1, lat: 1}, {lon: 2, lat: 1}, {lon: 2, lat: 2}]
`
	s, err := Parse([]byte(content))
	require.NoError(t, err)

	prob, err := s.Problem()
	require.NoError(t, err)
	assert.Equal(t, "task-0", prob.TaskAreas()[0].Task.Name)
}

func TestProblem_UnknownKind(t *testing.T) {
	t.Parallel()

	// Built directly, bypassing Validate.
	s := &Scenario{
		Name:  "bad",
		UAV:   DefaultUAV(),
		Areas: []Area{{Kind: "orbit", Polygon: []Point{{1, 1}, {2, 1}, {2, 2}}}},
	}
	_, err := s.Problem()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task kind")
}

func TestProblem_ObstacleCarriesNoTask(t *testing.T) {
	t.Parallel()

	prob, err := Demo().Problem()
	require.NoError(t, err)

	for _, area := range prob.Areas {
		if area.Kind.IsObstacle() {
			assert.Nil(t, area.Task)
		} else {
			assert.NotNil(t, area.Task)
		}
	}
}
