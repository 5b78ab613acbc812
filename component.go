package explorer

import (
	"regexp"
	"sort"

	"github.com/mirroir/uiexplorer/utils"
)

// Zone is the vertical band a row occupies, derived from its fractional
// Y position.
type Zone int

const (
	ZoneContent Zone = iota
	ZoneNavBar
	ZoneTabBar
)

// ChevronMode is the modern replacement for the legacy boolean
// rowHasChevron field on a ComponentDefinition (see Open Questions in
// SPEC_FULL.md/DESIGN.md: chevronMode wins when both are present).
type ChevronMode int

const (
	ChevronAny ChevronMode = iota
	ChevronRequired
	ChevronForbidden
	ChevronPreferred
)

// AbsorbCondition restricts which trailing components an absorbing
// definition may merge.
type AbsorbCondition int

const (
	AbsorbAny AbsorbCondition = iota
	AbsorbInfoOrDecorationOnly
)

// ClickTarget selects which element within a matched row becomes the
// component's tap target.
type ClickTarget int

const (
	ClickFirstNavigationElement ClickTarget = iota
	ClickFirstDismissButton
	ClickNone
)

// ComponentDefinition is the parsed form of a component-definition file
// (§6). Matching logic lives in scoreMatch below; parsing lives in
// internal/components.
type ComponentDefinition struct {
	Name     string
	Platform string

	MinElements         int
	MaxElements         int
	MaxRowHeightPt      float64
	Zone                Zone
	HasDismissButton    *bool
	HasNumericValue     *bool
	HasLongText         *bool
	MinConfidence       float64
	ExcludeNumericOnly  bool
	TextPattern         *regexp.Regexp
	ChevronMode         ChevronMode
	LegacyRowHasChevron *bool // nil = unset

	Clickable      bool
	ClickTarget    ClickTarget
	BackAfterClick bool

	AbsorbsSameRow       bool
	AbsorbsBelowWithinPt float64
	AbsorbCondition      AbsorbCondition
}

// effectiveChevronMode resolves the legacy/modern precedence rule:
// ChevronMode wins whenever it was explicitly set; otherwise the legacy
// boolean is translated, defaulting to "any" when neither is present.
func (d ComponentDefinition) effectiveChevronMode(explicitChevronMode bool) ChevronMode {
	if explicitChevronMode {
		return d.ChevronMode
	}
	if d.LegacyRowHasChevron != nil {
		if *d.LegacyRowHasChevron {
			return ChevronRequired
		}
		return ChevronForbidden
	}
	return ChevronAny
}

// RowProperties summarizes one visually grouped row of classified
// elements, computed once and matched against every ComponentDefinition.
type RowProperties struct {
	Elements          []ClassifiedElement
	ElementCount      int
	HasChevron        bool
	HasNumericValue   bool
	RowHeight         float64
	TopY              float64
	BottomY           float64
	Zone              Zone
	HasStateIndicator bool
	HasLongText       bool
	HasDismissButton  bool
	AverageConfidence float64
	NumericOnlyCount  int
	ElementTexts      []string
}

var dismissWords = map[string]struct{}{
	"cancel": {}, "close": {}, "dismiss": {}, "done": {}, "ok": {}, "x": {},
}

var numericOnlyPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// BuildRowProperties groups classified elements into rows (reusing the
// classifier's Y-proximity grouping) and computes RowProperties for each,
// deriving Zone from the fractional screen position per spec §4.3.
func BuildRowProperties(classified []ClassifiedElement, screenHeight float64) []RowProperties {
	points := make([]TapPoint, len(classified))
	for i, c := range classified {
		points[i] = c.Point
	}
	rows := groupRows(points)

	sort.Slice(rows, func(i, j int) bool {
		return minY(rows[i], points) < minY(rows[j], points)
	})

	out := make([]RowProperties, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowPropertiesFor(classified, row, screenHeight))
	}
	return out
}

func minY(row []int, points []TapPoint) float64 {
	m := points[row[0]].Y
	for _, idx := range row[1:] {
		if points[idx].Y < m {
			m = points[idx].Y
		}
	}
	return m
}

func rowPropertiesFor(classified []ClassifiedElement, row []int, screenHeight float64) RowProperties {
	var rp RowProperties
	topY, bottomY := classified[row[0]].Point.Y, classified[row[0]].Point.Y
	var confSum float64
	texts := make([]string, 0, len(row))

	for _, idx := range row {
		ce := classified[idx]
		rp.Elements = append(rp.Elements, ce)
		texts = append(texts, ce.Point.Text)

		topY = utils.Min(topY, ce.Point.Y)
		bottomY = utils.Max(bottomY, ce.Point.Y)
		confSum += ce.Point.Confidence

		if ce.Role == RoleDecoration && isChevronText(ce.Point.Text) {
			rp.HasChevron = true
		}
		if ce.HasChevronContext {
			rp.HasChevron = true
		}
		if ce.Role == RoleInfo {
			if valuePattern.MatchString(ce.Point.Text) {
				rp.HasNumericValue = true
			}
			if _, ok := stateIndicatorLiterals[normaliseText(ce.Point.Text)]; ok {
				rp.HasStateIndicator = true
			}
			if len(ce.Point.Text) > longTextLen {
				rp.HasLongText = true
			}
		}
		if numericOnlyPattern.MatchString(ce.Point.Text) {
			rp.NumericOnlyCount++
		}
		if _, ok := dismissWords[normaliseText(ce.Point.Text)]; ok {
			rp.HasDismissButton = true
		}
	}

	rp.ElementCount = len(row)
	rp.ElementTexts = texts
	rp.TopY = topY
	rp.BottomY = bottomY
	rp.RowHeight = bottomY - topY
	if len(row) > 0 {
		rp.AverageConfidence = confSum / float64(len(row))
	}
	rp.Zone = zoneFor(topY, screenHeight)
	return rp
}

func isChevronText(s string) bool {
	_, ok := chevronVariants[s]
	return ok
}

func zoneFor(y, screenHeight float64) Zone {
	if screenHeight <= 0 {
		return ZoneContent
	}
	frac := y / screenHeight
	switch {
	case frac < 0.12:
		return ZoneNavBar
	case frac > 0.88:
		return ZoneTabBar
	default:
		return ZoneContent
	}
}

// scoreMatch evaluates a RowProperties against a ComponentDefinition.
// Returns (score, matched). Hard constraints short-circuit to
// (0, false); a preferred-but-absent chevron does not gate, only scores
// lower, matching the "required/forbidden are hard; preferred scores but
// does not gate" rule in spec §4.3. This mirrors the ancestor imop
// package's dispatch-table-of-named-operations shape, generalized from
// "pick a compositing op" to "pick a component definition".
func scoreMatch(def ComponentDefinition, row RowProperties, chevronModeExplicit bool) (float64, bool) {
	effectiveCount := row.ElementCount
	if def.ExcludeNumericOnly {
		effectiveCount -= row.NumericOnlyCount
	}
	minEl, maxEl := def.MinElements, def.MaxElements
	if minEl == 0 {
		minEl = 1
	}
	if maxEl == 0 {
		maxEl = 10
	}
	if effectiveCount < minEl || effectiveCount > maxEl {
		return 0, false
	}

	maxHeight := def.MaxRowHeightPt
	if maxHeight == 0 {
		maxHeight = 100
	}
	if row.RowHeight > maxHeight {
		return 0, false
	}

	if def.Zone != row.Zone {
		return 0, false
	}

	if def.HasDismissButton != nil && *def.HasDismissButton != row.HasDismissButton {
		return 0, false
	}
	if def.HasNumericValue != nil && *def.HasNumericValue != row.HasNumericValue {
		return 0, false
	}
	if def.HasLongText != nil && *def.HasLongText != row.HasLongText {
		return 0, false
	}

	if def.MinConfidence > 0 && row.AverageConfidence < def.MinConfidence {
		return 0, false
	}

	score := 1.0
	switch def.effectiveChevronMode(chevronModeExplicit) {
	case ChevronRequired:
		if !row.HasChevron {
			return 0, false
		}
		score += 1
	case ChevronForbidden:
		if row.HasChevron {
			return 0, false
		}
	case ChevronPreferred:
		if row.HasChevron {
			score += 0.5
		}
	}

	if def.TextPattern != nil {
		matched := false
		for _, t := range row.ElementTexts {
			if def.TextPattern.MatchString(t) {
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}

	return score, true
}

// ScreenComponent is a named group of classified elements produced by
// ComponentDetector, optionally tappable.
type ScreenComponent struct {
	Name       string
	Elements   []ClassifiedElement
	TapTarget  *TapPoint
	HasChevron bool
	TopY       float64
	BottomY    float64
	Definition *ComponentDefinition
}

// DetectComponents groups classified elements into rows and matches
// each row against the provided definitions, applying absorption
// post-processing (§4.3). chevronModeExplicit reports, per
// definition, whether its source file set chevron_mode explicitly
// (vs. only the legacy field) so precedence can be resolved.
func DetectComponents(classified []ClassifiedElement, defs []ComponentDefinition, chevronModeExplicit []bool, screenHeight float64) []ScreenComponent {
	rows := BuildRowProperties(classified, screenHeight)
	components := make([]ScreenComponent, 0, len(rows))

	for _, row := range rows {
		best := -1
		bestScore := 0.0
		for i, def := range defs {
			explicit := false
			if i < len(chevronModeExplicit) {
				explicit = chevronModeExplicit[i]
			}
			score, ok := scoreMatch(def, row, explicit)
			if ok && score > bestScore {
				bestScore = score
				best = i
			}
		}

		if best == -1 {
			components = append(components, ScreenComponent{
				Name:      "unclassified",
				Elements:  row.Elements,
				TapTarget: nil,
				TopY:      row.TopY,
				BottomY:   row.BottomY,
			})
			continue
		}

		def := defs[best]
		comp := ScreenComponent{
			Name:       def.Name,
			Elements:   row.Elements,
			HasChevron: row.HasChevron,
			TopY:       row.TopY,
			BottomY:    row.BottomY,
			Definition: &defs[best],
		}
		if def.Clickable {
			comp.TapTarget = pickClickTarget(def, row)
		}
		components = append(components, comp)
	}

	sort.SliceStable(components, func(i, j int) bool { return components[i].TopY < components[j].TopY })
	return absorb(components)
}

func pickClickTarget(def ComponentDefinition, row RowProperties) *TapPoint {
	switch def.ClickTarget {
	case ClickFirstDismissButton:
		for _, ce := range row.Elements {
			if _, ok := dismissWords[normaliseText(ce.Point.Text)]; ok {
				p := ce.Point
				return &p
			}
		}
		return nil
	case ClickNone:
		return nil
	default: // ClickFirstNavigationElement
		for _, ce := range row.Elements {
			if ce.Role == RoleNavigation {
				p := ce.Point
				return &p
			}
		}
		return nil
	}
}

// absorb greedily merges subsequent components into an absorbing parent
// when they start within absorbsBelowWithinPt of the parent's bottom,
// subject to absorbCondition. Parent tapTarget is preserved. This is
// grounded on the ancestor carver's usedSeams accumulation: a forward
// scan merging trailing state into the first qualifying owner.
func absorb(components []ScreenComponent) []ScreenComponent {
	consumed := make([]bool, len(components))
	out := make([]ScreenComponent, 0, len(components))

	for i := range components {
		if consumed[i] {
			continue
		}
		parent := components[i]
		if parent.Definition == nil || parent.Definition.AbsorbsBelowWithinPt <= 0 {
			out = append(out, parent)
			continue
		}
		limit := parent.BottomY + parent.Definition.AbsorbsBelowWithinPt
		for j := i + 1; j < len(components); j++ {
			if consumed[j] {
				continue
			}
			child := components[j]
			if child.TopY > limit {
				break
			}
			if parent.Definition.AbsorbCondition == AbsorbInfoOrDecorationOnly && !isInfoOrDecorationOnly(child) {
				continue
			}
			parent.Elements = append(parent.Elements, child.Elements...)
			parent.BottomY = child.BottomY
			consumed[j] = true
		}
		out = append(out, parent)
	}
	return out
}

func isInfoOrDecorationOnly(c ScreenComponent) bool {
	for _, ce := range c.Elements {
		if ce.Role != RoleInfo && ce.Role != RoleDecoration {
			return false
		}
	}
	return true
}
