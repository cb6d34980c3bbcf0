// Package violations detects architecture-aware anti-patterns in
// Spring source files: cross-layer dependency analysis, dependency
// direction checks, and violation rules specific to the detected
// architecture pattern.
package violations

import (
	"regexp"
	"strings"

	"stacklens/internal/arch"
)

// LayerDeps counts references from one file to each architectural
// layer, discovered through field injection and constructor injection.
type LayerDeps struct {
	Controller int `json:"controller"`
	Service    int `json:"service"`
	Repository int `json:"repository"`
	Entity     int `json:"entity"`
	Adapter    int `json:"adapter"`
	Port       int `json:"port"`
	UseCase    int `json:"usecase"`
	Gateway    int `json:"gateway"`
}

var (
	autowiredFieldRe = regexp.MustCompile(`@Autowired\s+(?:private\s+)?(\w+)\s+(\w+);`)
	constructorRe    = regexp.MustCompile(`public\s+\w+\s*\(([^)]+)\)`)
)

// AnalyzeDependencies counts cross-layer dependencies in file content.
// @Autowired field types are matched case-insensitively; constructor
// parameter lists are matched on the conventional type-name suffixes.
func AnalyzeDependencies(content string) LayerDeps {
	var deps LayerDeps

	for _, match := range autowiredFieldRe.FindAllStringSubmatch(content, -1) {
		depType := strings.ToLower(match[1])
		if strings.Contains(depType, "controller") {
			deps.Controller++
		}
		if strings.Contains(depType, "service") {
			deps.Service++
		}
		if strings.Contains(depType, "repository") || strings.Contains(depType, "dao") {
			deps.Repository++
		}
		if strings.Contains(depType, "adapter") {
			deps.Adapter++
		}
		if strings.Contains(depType, "port") {
			deps.Port++
		}
		if strings.Contains(depType, "usecase") {
			deps.UseCase++
		}
		if strings.Contains(depType, "gateway") {
			deps.Gateway++
		}
	}

	for _, match := range constructorRe.FindAllStringSubmatch(content, -1) {
		params := match[1]
		if strings.Contains(params, "Controller") {
			deps.Controller++
		}
		if strings.Contains(params, "Service") {
			deps.Service++
		}
		if strings.Contains(params, "Repository") || strings.Contains(params, "Dao") {
			deps.Repository++
		}
		if strings.Contains(params, "Adapter") {
			deps.Adapter++
		}
		if strings.Contains(params, "Port") {
			deps.Port++
		}
		if strings.Contains(params, "UseCase") {
			deps.UseCase++
		}
		if strings.Contains(params, "Gateway") {
			deps.Gateway++
		}
	}

	return deps
}

// Direction classifies whether a file's dependencies point the right
// way for the architecture it lives in.
type Direction string

const (
	DirectionCorrect       Direction = "correct"
	DirectionReversed      Direction = "reversed"
	DirectionSkipLayer     Direction = "skip_layer"
	DirectionMissingPort   Direction = "missing_port"
	DirectionRuleViolation Direction = "dependency_rule_violation"
	DirectionUnknown       Direction = "unknown"
)

// AnalyzeDirection checks dependency direction for a file's layer
// under the given architecture pattern.
func AnalyzeDirection(layer arch.Layer, deps LayerDeps, pattern arch.Pattern) Direction {
	switch pattern {
	case arch.Layered, arch.MVC:
		// Correct flow: controller -> service -> repository -> entity.
		switch layer {
		case arch.LayerController:
			if deps.Repository > 0 || deps.Entity > 0 {
				return DirectionSkipLayer
			}
			if deps.Service > 0 {
				return DirectionCorrect
			}
		case arch.LayerService:
			if deps.Controller > 0 {
				return DirectionReversed
			}
			return DirectionCorrect
		case arch.LayerRepository:
			if deps.Service > 0 || deps.Controller > 0 {
				return DirectionReversed
			}
			return DirectionCorrect
		}

	case arch.Hexagonal:
		// Correct: adapter -> port <- domain.
		switch layer {
		case arch.LayerAdapter:
			if deps.Port > 0 {
				return DirectionCorrect
			}
			return DirectionMissingPort
		case arch.LayerService:
			if deps.Adapter > 0 {
				return DirectionReversed
			}
			if deps.Port > 0 {
				return DirectionCorrect
			}
		}

	case arch.CleanArchitecture:
		// Outer layers depend on inner layers, never the reverse.
		switch layer {
		case arch.LayerController:
			if deps.UseCase > 0 || deps.Gateway > 0 {
				return DirectionCorrect
			}
			if deps.Entity > 0 || deps.Repository > 0 {
				return DirectionRuleViolation
			}
		case arch.LayerService:
			if deps.Controller > 0 {
				return DirectionReversed
			}
			if deps.Gateway > 0 || deps.Entity > 0 {
				return DirectionCorrect
			}
		}
	}

	return DirectionUnknown
}
