package classifier

import "regexp"

// PatternFunc reports whether a line item's text (code + " " +
// description) matches some condition.
type PatternFunc func(text string) bool

// DoubleDipGroup names a set of patterns that, when two or more are
// each satisfied by at least one line item (the same item may satisfy
// more than one), indicate the claim is billing overlapping scope. Overlap, when non-nil, picks out
// the specific pattern whose matching items are the redundant charge
// (GEN-001's impact is the sum of those items' totals).
type DoubleDipGroup struct {
	Name     string
	Patterns []PatternFunc
	Overlap  PatternFunc
}

var (
	preHungDoorPattern = regexp.MustCompile(`(?i)pre-?hung\s*door`)
	hingePattern       = regexp.MustCompile(`(?i)\bhinge`)

	wallboardDemoPattern    = regexp.MustCompile(`(?i)(wallboard|drywall).*(remove|demo|tear)`)
	wallpaperRemovePattern  = regexp.MustCompile(`(?i)wallpaper.*(remove|strip)`)

	paintWithPrimerPattern = regexp.MustCompile(`(?i)paint.*primer|primer.*paint`)
	primerOnlyPattern      = regexp.MustCompile(`(?i)primer`)

	demoPattern    = regexp.MustCompile(`(?i)demo(lition)?`)
	disposalPattern = regexp.MustCompile(`(?i)haul-?off|disposal|dump|debris\s*remov`)

	baseMoldingPattern = regexp.MustCompile(`(?i)base\s*(board|molding)`)
	capMoldingPattern  = regexp.MustCompile(`(?i)cap\s*molding`)
)

// doubleDipGroups is the static table published by the classifier. It
// is re-derived per call (cheap: five small slices) so callers never
// hold a reference to shared mutable state.
func doubleDipGroups() []DoubleDipGroup {
	return []DoubleDipGroup{
		{
			Name: "pre_hung_door_hardware",
			Patterns: []PatternFunc{
				func(t string) bool { return preHungDoorPattern.MatchString(t) },
				func(t string) bool { return hingePattern.MatchString(t) },
			},
			Overlap: func(t string) bool { return hingePattern.MatchString(t) },
		},
		{
			Name: "wallboard_wallpaper_removal",
			Patterns: []PatternFunc{
				func(t string) bool { return wallboardDemoPattern.MatchString(t) },
				func(t string) bool { return wallpaperRemovePattern.MatchString(t) },
			},
			Overlap: func(t string) bool { return wallpaperRemovePattern.MatchString(t) },
		},
		{
			Name: "paint_primer",
			Patterns: []PatternFunc{
				func(t string) bool { return paintWithPrimerPattern.MatchString(t) },
				// "primer not adjacent to paint": a standalone primer
				// line that doesn't also mention paint.
				func(t string) bool {
					return primerOnlyPattern.MatchString(t) && !paintWithPrimerPattern.MatchString(t)
				},
			},
			Overlap: func(t string) bool {
				return primerOnlyPattern.MatchString(t) && !paintWithPrimerPattern.MatchString(t)
			},
		},
		{
			Name: "demo_disposal",
			Patterns: []PatternFunc{
				func(t string) bool { return demoPattern.MatchString(t) },
				func(t string) bool { return disposalPattern.MatchString(t) },
			},
			Overlap: func(t string) bool { return disposalPattern.MatchString(t) },
		},
		{
			Name: "base_cap_molding",
			Patterns: []PatternFunc{
				func(t string) bool { return baseMoldingPattern.MatchString(t) },
				func(t string) bool { return capMoldingPattern.MatchString(t) },
			},
			Overlap: nil,
		},
	}
}

// DoubleDipGroups returns the classifier's static double-dip group
// table, in fixed order.
func DoubleDipGroups() []DoubleDipGroup {
	return doubleDipGroups()
}
