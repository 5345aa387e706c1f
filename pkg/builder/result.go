package builder

import (
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Result is the outcome of a Build. Group holds every crumb that could be
// emitted; Issues lists every reference that was skipped or truncated.
// Both are returned together so one bad anchor never discards a batch.
type Result struct {
	Group   scene.GroupID
	Emitted int
	Issues  []error
}

// Err joins all issues, or returns nil when there were none.
func (r Result) Err() error {
	return stderrors.Join(r.Issues...)
}

// batch collects emitted crumbs and issues during a Build.
type batch struct {
	kind   string
	logger *log.Logger
	scene  *scene.Scene
	group  *scene.Group
	res    Result
}

func newBatch(kind string, s *scene.Scene, logger *log.Logger) *batch {
	if logger == nil {
		logger = log.Default()
	}
	return &batch{kind: kind, logger: logger, scene: s, group: scene.NewGroup(kind)}
}

func (b *batch) issue(err error) {
	b.logger.Warnf("%s: skipping: %v", b.kind, err)
	b.res.Issues = append(b.res.Issues, err)
}

func (b *batch) overflow(code errors.Code, what string, got, slots int) {
	err := errors.New(code, "%d %s for %d slots; extra ignored", got, what, slots)
	b.logger.Warnf("%s: %v", b.kind, err)
	b.res.Issues = append(b.res.Issues, err)
}

func (b *batch) emit(c scene.Crumb, style theme.StyleID) {
	id := b.scene.AddCrumb(c)
	b.group.AddCrumb(id, style, geom.Identity())
	b.res.Emitted++
}

func (b *batch) finish() Result {
	id, err := b.scene.AddGroup(*b.group)
	if err != nil {
		// Only reachable if the scene was corrupted between emit and here.
		b.res.Issues = append(b.res.Issues, err)
		return b.res
	}
	b.res.Group = id
	b.logger.Debugf("%s: emitted %d crumbs into group %d (%d issues)", b.kind, b.res.Emitted, id, len(b.res.Issues))
	return b.res
}
