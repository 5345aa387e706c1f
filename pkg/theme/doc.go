// Package theme provides named paint attributes and the style cascade used
// when a scene is flattened and rendered.
//
// # Overview
//
// A [Theme] owns a table of [Style] values. A style never stores paint
// directly; it stores the *names* of a stroke, a fill, start and end
// markers, and a font. The theme resolves those names and writes the
// resolved values into the style in place:
//
//	th := theme.New(theme.Style{Stroke: &theme.Stroke{Paint: theme.MustHex("#000"), Width: 1}}).
//	    WithStrokes(map[string]theme.Stroke{"border": {Paint: theme.MustHex("#333"), Width: 2}}).
//	    WithStyles(theme.StyleSpec{Name: "border", Stroke: "border"})
//
// # Variations
//
// Strokes and fills cascade through a tree of [Variation] overrides, for
// example a "dark" variation with a nested "print" variation.
// [Theme.UseVariation] takes the path from the root and re-resolves every
// style: for each name the deepest variation on the path that overrides it
// wins, then the original values, then the default style.
//
//	if err := th.UseVariation([]string{"dark"}); err != nil {
//	    return err
//	}
//	defer th.UseOriginalVariation()
//
// Switching costs one pass over the style table. Crumbs reference styles by
// [StyleID], so the scene is never touched.
//
// # Markers, Fonts and Gradients
//
// Markers and fonts resolve through flat name tables and do not take part
// in variations. Gradients are referenced from a [Paint] by name and are
// only looked up by render backends; a missing gradient is a render error
// (GRADIENT_MISSING), not a construction error.
package theme
