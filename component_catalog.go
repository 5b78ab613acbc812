package explorer

import (
	"regexp"

	"github.com/mirroir/uiexplorer/internal/components"
)

// LoadComponentCatalog loads the built-in component definitions and
// overlays any found on disk under the three search paths (spec §6),
// returning ready-to-match ComponentDefinitions plus a parallel slice
// recording, per definition, whether chevron_mode was set explicitly
// (vs. only the legacy row_has_chevron field). Parse failures are
// logged via Warnf and also returned; they never abort the load.
func LoadComponentCatalog(home string) ([]ComponentDefinition, []bool, []error) {
	raws, errs := components.LoadAll(home)
	for _, err := range errs {
		Warnf("component catalog: %v", err)
	}

	defs := make([]ComponentDefinition, 0, len(raws))
	explicit := make([]bool, 0, len(raws))
	for _, raw := range raws {
		def, hasChevronMode := buildDefinition(raw)
		defs = append(defs, def)
		explicit = append(explicit, hasChevronMode)
	}
	return defs, explicit, errs
}

func buildDefinition(raw components.Raw) (ComponentDefinition, bool) {
	def := ComponentDefinition{
		Name:     raw.Name,
		Platform: raw.Platform,
	}

	def.MinElements = components.FieldInt(raw, "min_elements", 1)
	def.MaxElements = components.FieldInt(raw, "max_elements", 10)
	def.MaxRowHeightPt = components.FieldFloat(raw, "max_row_height_pt", 100)
	def.MinConfidence = components.FieldFloat(raw, "min_confidence", 0)
	def.ExcludeNumericOnly, _ = components.FieldBool(raw, "exclude_numeric_only")

	if zoneStr, ok := components.FieldString(raw, "zone"); ok {
		def.Zone = parseZone(zoneStr)
	} else {
		def.Zone = ZoneContent
	}

	if v, ok := components.FieldBool(raw, "has_dismiss_button"); ok {
		def.HasDismissButton = &v
	}
	if v, ok := components.FieldBool(raw, "has_numeric_value"); ok {
		def.HasNumericValue = &v
	}
	if v, ok := components.FieldBool(raw, "has_long_text"); ok {
		def.HasLongText = &v
	}
	if pat, ok := components.FieldString(raw, "text_pattern"); ok {
		if re, err := regexp.Compile(pat); err == nil {
			def.TextPattern = re
		}
	}

	chevronModeExplicit := false
	if modeStr, ok := components.FieldString(raw, "chevron_mode"); ok {
		def.ChevronMode = parseChevronMode(modeStr)
		chevronModeExplicit = true
	}
	if legacy, ok := components.FieldBool(raw, "row_has_chevron"); ok {
		def.LegacyRowHasChevron = &legacy
	}

	def.Clickable, _ = components.FieldBool(raw, "clickable")
	if ct, ok := components.FieldString(raw, "click_target"); ok {
		def.ClickTarget = parseClickTarget(ct)
	}
	def.BackAfterClick, _ = components.FieldBool(raw, "back_after_click")

	def.AbsorbsSameRow, _ = components.FieldBool(raw, "absorbs_same_row")
	def.AbsorbsBelowWithinPt = components.FieldFloat(raw, "absorbs_below_within_pt", 0)
	if cond, ok := components.FieldString(raw, "absorb_condition"); ok && cond == "info_or_decoration_only" {
		def.AbsorbCondition = AbsorbInfoOrDecorationOnly
	} else {
		def.AbsorbCondition = AbsorbAny
	}

	return def, chevronModeExplicit
}

func parseZone(s string) Zone {
	switch s {
	case "nav_bar":
		return ZoneNavBar
	case "tab_bar":
		return ZoneTabBar
	default:
		return ZoneContent
	}
}

func parseChevronMode(s string) ChevronMode {
	switch s {
	case "required":
		return ChevronRequired
	case "forbidden":
		return ChevronForbidden
	case "preferred":
		return ChevronPreferred
	default:
		return ChevronAny
	}
}

func parseClickTarget(s string) ClickTarget {
	switch s {
	case "first_dismiss_button":
		return ClickFirstDismissButton
	case "none":
		return ClickNone
	default:
		return ClickFirstNavigationElement
	}
}
