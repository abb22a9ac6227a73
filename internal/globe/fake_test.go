package globe_test

import (
	"errors"

	"monster-globe/internal/globe"
	"monster-globe/internal/marker"
)

type fakeMesh struct {
	spec     globe.MeshSpec
	released int
	err      error
	panics   bool
}

func (m *fakeMesh) Spec() globe.MeshSpec { return m.spec }

func (m *fakeMesh) Release() error {
	if m.panics {
		panic("mesh release")
	}
	m.released++
	return m.err
}

// fakeRuntime records what the engine asks of it. failAfter > 0 makes the n-th CreateMesh fail.
type fakeRuntime struct {
	notReady   bool
	mountErr   error
	failAfter  int
	releaseErr error

	mounted  [2]int
	resized  [2]int
	meshes   []*fakeMesh
	renders  int
	released int
}

var errCreate = errors.New("create failed")

func (r *fakeRuntime) Ready() bool { return !r.notReady }

func (r *fakeRuntime) Mount(w, h int) error {
	if r.mountErr != nil {
		return r.mountErr
	}
	r.mounted = [2]int{w, h}
	return nil
}

func (r *fakeRuntime) CreateMesh(spec globe.MeshSpec) (globe.Mesh, error) {
	if r.failAfter > 0 && len(r.meshes)+1 >= r.failAfter {
		return nil, errCreate
	}
	m := &fakeMesh{spec: spec}
	r.meshes = append(r.meshes, m)
	return m, nil
}

func (r *fakeRuntime) Raycast(ray globe.Ray, targets []*globe.Node) []globe.Intersection {
	return globe.IntersectSpheres(ray, targets)
}

func (r *fakeRuntime) Render(*globe.Scene, *globe.Camera) { r.renders++ }

func (r *fakeRuntime) Resize(w, h int) { r.resized = [2]int{w, h} }

func (r *fakeRuntime) Release() error {
	r.released++
	return r.releaseErr
}

func (r *fakeRuntime) liveMeshes() int {
	n := 0
	for _, m := range r.meshes {
		if m.released == 0 {
			n++
		}
	}
	return n
}

// recorder is a globe.Selection that remembers every call.
type recorder struct {
	selected []string
	clears   int
}

func (r *recorder) Select(m *marker.Marker) { r.selected = append(r.selected, m.ID) }

func (r *recorder) Clear() { r.clears++ }
