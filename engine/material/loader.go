package material

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-lit/common"
	"github.com/Carmen-Shannon/oxy-lit/engine/gpu"
)

// Spec describes a material to load from image files.
// An empty DiffusePath yields a white diffuse map and an empty SpecularPath a black specular map.
type Spec struct {
	Name         string
	DiffusePath  string
	SpecularPath string
	Shininess    float32
}

// Loader decodes material textures concurrently and uploads them into an Arena.
type Loader interface {
	// Load decodes every texture named by specs on the worker pool, then uploads them on the
	// calling goroutine and adds one material per spec to arena. Any failure aborts the whole
	// load and releases the textures uploaded so far.
	//
	// Parameters:
	//   - ctx: cancels the load between the decode and upload phases
	//   - arena: the arena that receives the materials
	//   - specs: the materials to load
	//
	// Returns:
	//   - []Handle: one handle per spec, in order
	//   - error: error if any file is missing, corrupt or fails to upload
	Load(ctx context.Context, arena *Arena, specs []Spec) ([]Handle, error)
}

type loaderImpl struct {
	backend gpu.Backend
	logger  *slog.Logger
	decode  common.TextureDecodeOptions
	workers int
	pool    worker.DynamicWorkerPool
}

var _ Loader = &loaderImpl{}

// NewLoader creates a Loader that uploads through backend.
//
// Parameters:
//   - backend: the GPU backend textures are created on
//   - options: functional options
//
// Returns:
//   - Loader: the loader
func NewLoader(backend gpu.Backend, options ...LoaderBuilderOption) Loader {
	l := &loaderImpl{
		backend: backend,
		logger:  slog.Default(),
		decode:  common.TextureDecodeOptions{FlipVertical: true},
		workers: defaultLoaderWorkers(),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

type decoded struct {
	data common.TextureStagingData
	err  error
}

func (l *loaderImpl) Load(ctx context.Context, arena *Arena, specs []Spec) ([]Handle, error) {
	for _, s := range specs {
		if !common.IsFinite(s.Shininess) || s.Shininess <= 0 {
			return nil, fmt.Errorf("%w: %q shininess %v must be > 0", ErrInvalidMaterial, s.Name, s.Shininess)
		}
	}

	// Decode every distinct path once. Workers write to their own slot.
	paths := make([]string, 0, len(specs)*2)
	index := make(map[string]int)
	for _, s := range specs {
		for _, p := range []string{s.DiffusePath, s.SpecularPath} {
			if p == "" {
				continue
			}
			if _, ok := index[p]; !ok {
				index[p] = len(paths)
				paths = append(paths, p)
			}
		}
	}

	start := time.Now()
	results := make([]decoded, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		id, path := i, p
		l.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				data, err := common.LoadTexture(path, l.decode)
				results[id] = decoded{data: data, err: err}
				return nil, nil
			},
		})
	}
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to decode material textures: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.logger.Debug("decoded material textures", "count", len(paths), "elapsed", time.Since(start))

	var uploaded []gpu.Handle
	fail := func(err error) ([]Handle, error) {
		for _, h := range uploaded {
			l.backend.Release(h)
		}
		return nil, err
	}

	textures := make([]gpu.Handle, len(paths))
	for i, p := range paths {
		h, err := l.backend.CreateTexture(p, results[i].data)
		if err != nil {
			return fail(fmt.Errorf("failed to upload texture %s: %w", p, err))
		}
		textures[i] = h
		uploaded = append(uploaded, h)
	}

	var white, black gpu.Handle
	fallback := func(h *gpu.Handle, label string, rgba [4]byte) (gpu.Handle, error) {
		if h.IsZero() {
			created, err := l.backend.CreateTexture(label, common.SolidTexture(1, 1, rgba))
			if err != nil {
				return gpu.Handle{}, fmt.Errorf("failed to create %s texture: %w", label, err)
			}
			*h = created
			uploaded = append(uploaded, created)
		}
		return *h, nil
	}

	materials := make([]Material, len(specs))
	for i, s := range specs {
		var diffuse, specular gpu.Handle
		var err error
		if s.DiffusePath != "" {
			diffuse = textures[index[s.DiffusePath]]
		} else if diffuse, err = fallback(&white, "white", [4]byte{255, 255, 255, 255}); err != nil {
			return fail(err)
		}
		if s.SpecularPath != "" {
			specular = textures[index[s.SpecularPath]]
		} else if specular, err = fallback(&black, "black", [4]byte{0, 0, 0, 255}); err != nil {
			return fail(err)
		}
		if materials[i], err = New(s.Name, diffuse, specular, s.Shininess); err != nil {
			return fail(err)
		}
	}

	handles := make([]Handle, len(materials))
	for i, m := range materials {
		h, err := arena.Add(m)
		if err != nil {
			// The arena owns the textures of materials added before this one; free the rest.
			for _, tex := range unowned(uploaded, materials[:i]) {
				l.backend.Release(tex)
			}
			return nil, fmt.Errorf("failed to add material %q: %w", m.Name, err)
		}
		handles[i] = h
	}
	l.logger.Info("loaded materials", "materials", len(handles), "textures", len(uploaded))
	return handles, nil
}

// unowned returns the handles in uploaded that no material in owned references.
func unowned(uploaded []gpu.Handle, owned []Material) []gpu.Handle {
	held := make(map[gpu.Handle]bool, len(owned)*2)
	for _, m := range owned {
		held[m.Diffuse] = true
		held[m.Specular] = true
	}
	var out []gpu.Handle
	for _, h := range uploaded {
		if !held[h] {
			out = append(out, h)
		}
	}
	return out
}
