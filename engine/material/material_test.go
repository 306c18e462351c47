package material

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texture(t *testing.T, r *gputest.Recorder) gpu.Handle {
	t.Helper()
	h, err := r.CreateTexture("tex", common.SolidTexture(1, 1, [4]byte{1, 2, 3, 4}))
	require.NoError(t, err)
	return h
}

func writePNG(t *testing.T, dir, name string, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestNewValidatesShininess(t *testing.T) {
	r := gputest.NewRecorder()
	d, s := texture(t, r), texture(t, r)

	_, err := New("ok", d, s, 32)
	assert.NoError(t, err)

	_, err = New("zero", d, s, 0)
	assert.ErrorIs(t, err, ErrInvalidMaterial)

	_, err = New("negative", d, s, -1)
	assert.ErrorIs(t, err, ErrInvalidMaterial)

	_, err = New("no textures", gpu.Handle{}, gpu.Handle{}, 32)
	assert.ErrorIs(t, err, ErrInvalidMaterial)
}

func TestArenaLifetime(t *testing.T) {
	r := gputest.NewRecorder()
	shared := texture(t, r)
	spec := texture(t, r)
	arena := NewArena(r)

	a, err := arena.Add(Material{Name: "a", Diffuse: shared, Specular: spec, Shininess: 32})
	require.NoError(t, err)
	b, err := arena.Add(Material{Name: "b", Diffuse: shared, Specular: shared, Shininess: 8})
	require.NoError(t, err)
	assert.Equal(t, 2, arena.Len())

	got, err := arena.Get(b)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)

	_, err = arena.Get(Handle{})
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	_, err = arena.Get(Handle{index: 99})
	assert.ErrorIs(t, err, ErrUnknownMaterial)

	arena.Release()
	assert.Equal(t, 0, r.Live(gpu.KindTexture))
	assert.Equal(t, 0, arena.Len())
	_, err = arena.Get(a)
	assert.ErrorIs(t, err, ErrUnknownMaterial)

	assert.NotPanics(t, arena.Release)
	_, err = arena.Add(Material{Name: "late", Diffuse: shared, Specular: spec, Shininess: 1})
	assert.Error(t, err)
}

func TestLoaderLoadsAndSharesTextures(t *testing.T) {
	dir := t.TempDir()
	diffuse := writePNG(t, dir, "diffuse.png", color.RGBA{R: 200, A: 255})
	specular := writePNG(t, dir, "specular.png", color.RGBA{G: 100, A: 255})

	r := gputest.NewRecorder()
	arena := NewArena(r)
	loader := NewLoader(r, WithWorkers(2))

	handles, err := loader.Load(context.Background(), arena, []Spec{
		{Name: "box", DiffusePath: diffuse, SpecularPath: specular, Shininess: 32},
		{Name: "plain", DiffusePath: diffuse, Shininess: 16},
	})
	require.NoError(t, err)
	require.Len(t, handles, 2)
	assert.Equal(t, 2, arena.Len())
	// diffuse, specular and the black fallback
	assert.Equal(t, 3, r.Live(gpu.KindTexture))

	box, err := arena.Get(handles[0])
	require.NoError(t, err)
	plain, err := arena.Get(handles[1])
	require.NoError(t, err)
	assert.Equal(t, box.Diffuse, plain.Diffuse)
	assert.NotEqual(t, box.Specular, plain.Specular)
	assert.Equal(t, float32(16), plain.Shininess)

	arena.Release()
	assert.Equal(t, 0, r.Live(gpu.KindTexture))
}

func TestLoaderFailsWholeLoadOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	diffuse := writePNG(t, dir, "diffuse.png", color.RGBA{B: 255, A: 255})

	r := gputest.NewRecorder()
	arena := NewArena(r)
	loader := NewLoader(r)

	_, err := loader.Load(context.Background(), arena, []Spec{
		{Name: "ok", DiffusePath: diffuse, Shininess: 32},
		{Name: "missing", DiffusePath: filepath.Join(dir, "nope.png"), Shininess: 32},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.png")
	assert.Equal(t, 0, arena.Len())
	assert.Equal(t, 0, r.Live(gpu.KindTexture))
}

func TestLoaderReleasesTexturesWhenArenaRejects(t *testing.T) {
	dir := t.TempDir()
	diffuse := writePNG(t, dir, "diffuse.png", color.RGBA{R: 9, A: 255})

	r := gputest.NewRecorder()
	arena := NewArena(r)
	arena.Release()

	_, err := NewLoader(r).Load(context.Background(), arena, []Spec{
		{Name: "box", DiffusePath: diffuse, Shininess: 32},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arena released")
	assert.Equal(t, 0, r.Live(gpu.KindTexture))
}

func TestUnownedSkipsTexturesHeldByAddedMaterials(t *testing.T) {
	r := gputest.NewRecorder()
	shared, own, orphan, fallback := texture(t, r), texture(t, r), texture(t, r), texture(t, r)
	added := []Material{{Name: "first", Diffuse: shared, Specular: own, Shininess: 32}}

	left := unowned([]gpu.Handle{shared, own, orphan, fallback}, added)

	assert.Equal(t, []gpu.Handle{orphan, fallback}, left)
	assert.Empty(t, unowned([]gpu.Handle{shared}, added))
}

func TestLoaderRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("definitely not an image"), 0o644))

	r := gputest.NewRecorder()
	_, err := NewLoader(r).Load(context.Background(), NewArena(r), []Spec{{Name: "bad", DiffusePath: bad, Shininess: 32}})
	assert.Error(t, err)
	assert.Equal(t, 0, r.Live(gpu.KindTexture))
}

func TestLoaderRejectsBadShininessBeforeDecoding(t *testing.T) {
	r := gputest.NewRecorder()
	_, err := NewLoader(r).Load(context.Background(), NewArena(r), []Spec{{Name: "dull", Shininess: 0}})
	assert.ErrorIs(t, err, ErrInvalidMaterial)
	assert.Empty(t, r.Calls)
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	dir := t.TempDir()
	diffuse := writePNG(t, dir, "diffuse.png", color.RGBA{R: 1, A: 255})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := gputest.NewRecorder()
	_, err := NewLoader(r).Load(ctx, NewArena(r), []Spec{{Name: "x", DiffusePath: diffuse, Shininess: 32}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.Live(gpu.KindTexture))
}
