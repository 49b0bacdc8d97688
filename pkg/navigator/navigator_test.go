package navigator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

func sampleSet(t *testing.T) *models.ProjectSet {
	t.Helper()

	backend := models.NewOptionNode()
	backend.Set("API", models.NewExecutable(models.OpenEditor{Path: "api"}))
	backend.Set("Worker", models.NewExecutable(models.RunCommand{Path: "worker", Command: "make run"}))

	services := models.NewOptionNode()
	services.Set("Backend", models.NewGroup(backend))
	services.Set("Everything", models.NewExecutable(models.Wait{Seconds: 1}))

	root := models.NewOptionNode()
	root.Set("Services", models.NewGroup(services))
	root.Set("Editor", models.NewExecutable(models.OpenEditor{}))

	set := models.NewProjectSet()
	require.NoError(t, set.Add(&models.Project{Name: "shop", Path: "/srv/shop", Options: root}))
	require.NoError(t, set.Add(&models.Project{Name: "blog", Path: "/srv/blog"}))
	return set
}

func TestSelectProject(t *testing.T) {
	nav := New(sampleSet(t))

	state, err := nav.SelectProject("shop")
	require.NoError(t, err)
	assert.True(t, state.AtRoot())
	assert.Empty(t, state.Path())
	assert.Equal(t, "shop", state.Project().Name)
	assert.Equal(t, []Entry{
		{Label: "Services", Type: models.OptionTypeGroup},
		{Label: "Editor", Type: models.OptionTypeExecutable},
	}, state.Entries())

	_, err = nav.SelectProject("missing")
	assert.ErrorIs(t, err, ErrUnknownProject)
	var navErr *NavError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "missing", navErr.Label)
}

func TestDescendAndAscend(t *testing.T) {
	state, err := New(sampleSet(t)).SelectProject("shop")
	require.NoError(t, err)
	root := state.Current()

	require.NoError(t, state.Descend("Services"))
	require.NoError(t, state.Descend("Backend"))
	assert.Equal(t, []string{"Services", "Backend"}, state.Path())
	assert.Equal(t, []string{"API", "Worker"}, state.Current().Labels())

	require.NoError(t, state.Ascend())
	assert.Equal(t, []string{"Backend", "Everything"}, state.Current().Labels())
	require.NoError(t, state.Ascend())
	assert.Same(t, root, state.Current())
	assert.True(t, state.AtRoot())
}

func TestNavigationErrorsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		prepare []string
		op      func(*State) error
		wantErr error
	}{
		{
			name:    "ascend at root",
			op:      func(s *State) error { return s.Ascend() },
			wantErr: ErrAtRoot,
		},
		{
			name:    "descend into executable",
			op:      func(s *State) error { return s.Descend("Editor") },
			wantErr: ErrNotAGroup,
		},
		{
			name:    "descend into executable below root",
			prepare: []string{"Services"},
			op:      func(s *State) error { return s.Descend("Everything") },
			wantErr: ErrNotAGroup,
		},
		{
			name:    "descend into unknown label",
			op:      func(s *State) error { return s.Descend("Nope") },
			wantErr: ErrUnknownOption,
		},
		{
			name:    "walk stops and rolls back",
			op:      func(s *State) error { return s.Walk("Services", "Backend", "API") },
			wantErr: ErrNotAGroup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := New(sampleSet(t)).SelectProject("shop")
			require.NoError(t, err)
			require.NoError(t, state.Walk(tt.prepare...))

			before := state.Current()
			beforePath := state.Path()

			err = tt.op(state)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Same(t, before, state.Current())
			assert.Equal(t, beforePath, state.Path())
		})
	}
}

func TestSelectableActions(t *testing.T) {
	state, err := New(sampleSet(t)).SelectProject("shop")
	require.NoError(t, err)

	_, ok := state.SelectableActions("Services")
	assert.False(t, ok, "groups are not executable")

	_, ok = state.SelectableActions("Nope")
	assert.False(t, ok)

	actions, ok := state.SelectableActions("Editor")
	require.True(t, ok)
	require.Len(t, actions, 1)
	assert.Equal(t, models.OpenEditor{}, actions[0])

	// The returned slice is a copy.
	actions[0] = models.Wait{}
	again, _ := state.SelectableActions("Editor")
	assert.Equal(t, models.OpenEditor{}, again[0])
}

func TestReset(t *testing.T) {
	state, err := New(sampleSet(t)).SelectProject("shop")
	require.NoError(t, err)
	require.NoError(t, state.Walk("Services", "Backend"))

	state.Reset()
	assert.True(t, state.AtRoot())
	assert.Same(t, state.Project().Options, state.Current())
}

// genTree builds a random option tree of bounded depth.
func genTree(t *rapid.T, depth int) *models.OptionNode {
	node := models.NewOptionNode()
	n := rapid.IntRange(1, 4).Draw(t, fmt.Sprintf("width-%d", depth))
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("opt-%d-%d", depth, i)
		if depth > 0 && rapid.Bool().Draw(t, "group-"+label) {
			node.Set(label, models.NewGroup(genTree(t, depth-1)))
		} else {
			node.Set(label, models.NewExecutable(models.Wait{Seconds: 1}))
		}
	}
	return node
}

func groupLabels(node *models.OptionNode) []string {
	var out []string
	for _, label := range node.Labels() {
		opt, _ := node.Get(label)
		if opt.Type() == models.OptionTypeGroup {
			out = append(out, label)
		}
	}
	return out
}

func TestDescendAscendRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		set := models.NewProjectSet()
		if err := set.Add(&models.Project{Name: "p", Path: "/p", Options: genTree(t, 4)}); err != nil {
			t.Fatal(err)
		}
		state, err := New(set).SelectProject("p")
		if err != nil {
			t.Fatal(err)
		}
		root := state.Current()

		steps := rapid.IntRange(0, 6).Draw(t, "steps")
		descended := 0
		for i := 0; i < steps; i++ {
			groups := groupLabels(state.Current())
			if len(groups) == 0 {
				break
			}
			label := rapid.SampledFrom(groups).Draw(t, "label")
			if err := state.Descend(label); err != nil {
				t.Fatalf("descend %q: %v", label, err)
			}
			descended++
		}
		if state.Depth() != descended {
			t.Fatalf("depth = %d, want %d", state.Depth(), descended)
		}

		for i := 0; i < descended; i++ {
			if err := state.Ascend(); err != nil {
				t.Fatalf("ascend %d: %v", i, err)
			}
		}
		if state.Current() != root || !state.AtRoot() {
			t.Fatalf("round trip did not return to root")
		}
	})
}

func TestDescendExecutableAlwaysFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		set := models.NewProjectSet()
		if err := set.Add(&models.Project{Name: "p", Path: "/p", Options: genTree(t, 2)}); err != nil {
			t.Fatal(err)
		}
		state, _ := New(set).SelectProject("p")
		for _, label := range state.Current().Labels() {
			opt, _ := state.Current().Get(label)
			if opt.Type() != models.OptionTypeExecutable {
				continue
			}
			err := state.Descend(label)
			if !assert.ErrorIs(t, err, ErrNotAGroup) {
				t.Fatalf("descend into executable %q: %v", label, err)
			}
			if !state.AtRoot() {
				t.Fatalf("failed descend mutated state")
			}
		}
	})
}
