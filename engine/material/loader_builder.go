package material

import (
	"log/slog"
	"runtime"

	"github.com/Carmen-Shannon/oxy-lit/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loaderImpl)

func defaultLoaderWorkers() int {
	return max(1, runtime.NumCPU())
}

// WithWorkers sets the maximum number of decoding goroutines. Values < 1 are ignored.
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loaderImpl) {
		if n >= 1 {
			l.workers = n
		}
	}
}

// WithDecodeOptions overrides how image files are turned into texture data.
// The default flips images vertically to match the cube's texture coordinates.
func WithDecodeOptions(opts common.TextureDecodeOptions) LoaderBuilderOption {
	return func(l *loaderImpl) {
		l.decode = opts
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loaderImpl) {
		l.logger = common.LoggerOr(logger)
	}
}
