// Package render is the raylib implementation of globe.Runtime.
package render

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"monster-globe/internal/geo"
	"monster-globe/internal/globe"
	"monster-globe/internal/mapgen"
)

// Options configures the runtime.
type Options struct {
	// ShowHitVolumes draws the invisible marker hit volumes as wireframes.
	ShowHitVolumes bool
	// TextureSeed seeds the procedural globe texture used when texture files are missing.
	TextureSeed int64
}

var hitVolumeColor = rl.NewColor(255, 64, 160, 160)

// Runtime draws globe scenes with raylib. It needs the window created by graphics.Run and must
// be used from the goroutine that owns it.
type Runtime struct {
	opts Options
	log  zerolog.Logger

	shaders       shaders
	mounted       bool
	width, height int
	meshes        map[*mesh]struct{}

	fallbackAlbedo *image.RGBA
	fallbackBump   *image.Gray
}

// New returns a runtime. It becomes Ready once the raylib window exists.
func New(opts Options, log zerolog.Logger) *Runtime {
	return &Runtime{
		opts:   opts,
		log:    log.With().Str("component", "render").Logger(),
		meshes: make(map[*mesh]struct{}),
	}
}

// Ready reports whether the window and its GL context exist.
func (r *Runtime) Ready() bool {
	return rl.IsWindowReady()
}

// Mount loads the shaders. GPU resources can only be created after the window exists.
func (r *Runtime) Mount(width, height int) error {
	if !rl.IsWindowReady() {
		return globe.ErrRuntimeUnavailable
	}
	if r.mounted {
		r.Resize(width, height)
		return nil
	}
	r.shaders = loadShaders()
	if !rl.IsShaderValid(r.shaders.lit) {
		r.log.Warn().Msg("lit shader failed to compile, falling back to unlit globe")
	}
	r.width, r.height = width, height
	r.mounted = true
	return nil
}

// Resize records the new output size. raylib resizes the framebuffer itself.
func (r *Runtime) Resize(width, height int) {
	r.width, r.height = width, height
}

// CreateMesh creates GPU resources for spheres. Invisible spheres (hit volumes) get none: they are
// only ray-cast. Points and rings are drawn immediate-mode.
func (r *Runtime) CreateMesh(spec globe.MeshSpec) (globe.Mesh, error) {
	if !r.mounted {
		return nil, globe.ErrRuntimeUnavailable
	}
	m := &mesh{spec: spec}
	if spec.Kind == globe.KindSphere && spec.Material.Visible {
		if err := r.buildSphere(m); err != nil {
			_ = m.Release()
			return nil, err
		}
	}
	r.meshes[m] = struct{}{}
	return &trackedMesh{mesh: m, owner: r}, nil
}

func (r *Runtime) buildSphere(m *mesh) error {
	spec := m.spec
	segments := spec.Segments
	if segments <= 0 {
		segments = 16
	}
	gpu, err := uploadGeometry(geo.Sphere(spec.Radius, segments))
	if err != nil {
		return fmt.Errorf("render: sphere: %w", err)
	}
	m.rl = gpu
	m.uploaded = true
	m.mtl = rl.LoadMaterialDefault()

	mat := spec.Material
	switch {
	case mat.BackFace && rl.IsShaderValid(r.shaders.glow):
		m.mtl.Shader = r.shaders.glow
		m.shader = shaderGlow
	case !mat.Unlit && rl.IsShaderValid(r.shaders.lit):
		m.mtl.Shader = r.shaders.lit
		m.shader = shaderLit
	}

	if mat.Texture != "" {
		tex := r.loadTexture(mat.Texture, func() image.Image { a, _ := r.fallback(); return a })
		rl.SetMaterialTexture(&m.mtl, rl.MapAlbedo, tex)
		m.textures = append(m.textures, tex)
	}
	if mat.Bump != "" && m.shader == shaderLit {
		tex := r.loadTexture(mat.Bump, func() image.Image { _, b := r.fallback(); return b })
		rl.SetMaterialTexture(&m.mtl, rl.MapNormal, tex)
		m.textures = append(m.textures, tex)
		m.bump = true
	}
	return nil
}

// loadTexture loads path, or uploads the procedural fallback when the file is missing or unreadable.
func (r *Runtime) loadTexture(path string, fallback func() image.Image) rl.Texture2D {
	if _, err := os.Stat(path); err == nil {
		tex := rl.LoadTexture(path)
		if rl.IsTextureValid(tex) {
			rl.GenTextureMipmaps(&tex)
			rl.SetTextureFilter(tex, rl.FilterTrilinear)
			r.log.Debug().Str("path", path).Int32("width", tex.Width).Msg("texture loaded")
			return tex
		}
		r.log.Warn().Str("path", path).Msg("texture unreadable, using procedural fallback")
	} else {
		r.log.Info().Str("path", path).Msg("texture missing, using procedural fallback")
	}
	img := rl.NewImageFromImage(fallback())
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	return tex
}

// fallback generates the procedural surface once.
func (r *Runtime) fallback() (*image.RGBA, *image.Gray) {
	if r.fallbackAlbedo == nil {
		opts := mapgen.DefaultTextureOptions()
		opts.Seed = r.opts.TextureSeed
		if opts.Seed == 0 {
			opts.Seed = 1
		}
		r.fallbackAlbedo, r.fallbackBump = mapgen.Surface(opts)
	}
	return r.fallbackAlbedo, r.fallbackBump
}

// Raycast intersects ray with each target's world-space bounding sphere using raylib's collision
// test. Hits are sorted nearest first.
func (r *Runtime) Raycast(ray globe.Ray, targets []*globe.Node) []globe.Intersection {
	rray := rl.Ray{Position: toVector3(ray.Origin), Direction: toVector3(ray.Direction)}
	var hits []globe.Intersection
	for _, n := range targets {
		if n == nil || n.Mesh == nil {
			continue
		}
		c := rl.GetRayCollisionSphere(rray, toVector3(n.WorldPosition()), n.BoundingRadius())
		if !c.Hit || c.Distance < 0 {
			continue
		}
		hits = append(hits, globe.Intersection{Node: n, Distance: c.Distance, Point: fromVector3(c.Point)})
	}
	globe.SortIntersections(hits)
	return hits
}

// Release unloads every mesh still alive and the shaders. It never panics.
func (r *Runtime) Release() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("render: release panicked: %v", p)
		}
	}()
	var errs []error
	for m := range r.meshes {
		if e := m.Release(); e != nil {
			errs = append(errs, e)
		}
	}
	clear(r.meshes)
	if r.mounted {
		r.shaders.unload()
		r.mounted = false
	}
	return errors.Join(errs...)
}

// trackedMesh forgets the mesh in its runtime once released.
type trackedMesh struct {
	*mesh
	owner *Runtime
}

func (t *trackedMesh) Release() error {
	delete(t.owner.meshes, t.mesh)
	return t.mesh.Release()
}

// unwrap returns the GPU mesh behind a globe.Mesh created by this runtime.
func unwrap(m globe.Mesh) (*mesh, bool) {
	t, ok := m.(*trackedMesh)
	if !ok || t.mesh.released {
		return nil, false
	}
	return t.mesh, true
}

// ringAxis returns the rotation that turns raylib's XY-plane circle to face along normal.
func ringAxis(normal mgl32.Vec3) (axis mgl32.Vec3, degrees float32) {
	z := mgl32.Vec3{0, 0, 1}
	n := normal.Normalize()
	axis = z.Cross(n)
	if axis.Len() < 1e-5 {
		if n[2] < 0 {
			return mgl32.Vec3{1, 0, 0}, 180
		}
		return mgl32.Vec3{1, 0, 0}, 0
	}
	cos := z.Dot(n)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return axis.Normalize(), mgl32.RadToDeg(math32.Acos(cos))
}
