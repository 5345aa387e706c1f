package render

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

type compileKey struct {
	scene    uuid.UUID
	sceneRev uint64
	theme    *theme.Theme
	themeRev uint64
	opts     Options
}

// Compiler caches the last compiled draw list and recompiles only when the
// scene, the theme or the options changed since. Scene and theme revisions
// act as the dirty flag.
//
// A Compiler is not safe for concurrent use.
type Compiler struct {
	opts  Options
	key   compileKey
	last  DrawList
	valid bool
}

// NewCompiler returns a compiler using opts for every compilation.
func NewCompiler(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile returns the draw list for s under th. The second result reports
// whether the previous draw list was reused.
func (c *Compiler) Compile(ctx context.Context, s *scene.Scene, th *theme.Theme) (DrawList, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnCompileStart(ctx, s.GroupCount(), s.CrumbCount())
	start := time.Now()

	key := compileKey{
		scene:    s.ID(),
		sceneRev: s.Revision(),
		theme:    th,
		themeRev: th.Revision(),
		opts:     c.opts,
	}
	if c.valid && key == c.key {
		hooks.OnCompileComplete(ctx, len(c.last.Items), true, time.Since(start), nil)
		return c.last, true, nil
	}

	dl, err := Compile(s, th, c.opts)
	hooks.OnCompileComplete(ctx, len(dl.Items), false, time.Since(start), err)
	if err != nil {
		c.valid = false
		return DrawList{}, false, err
	}
	c.key, c.last, c.valid = key, dl, true
	return dl, false, nil
}

// Invalidate forces the next Compile to rebuild the draw list.
func (c *Compiler) Invalidate() { c.valid = false }
