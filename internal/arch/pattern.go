// Package arch detects a repository's architecture pattern and the
// architectural layer of individual source files.
package arch

import (
	"path/filepath"
	"regexp"
	"strings"

	"stacklens/internal/model"
)

// Pattern is a recognized architecture style.
type Pattern string

const (
	Layered           Pattern = "layered"
	Hexagonal         Pattern = "hexagonal"
	CleanArchitecture Pattern = "clean_architecture"
	MVC               Pattern = "mvc"
)

// Detection holds the detected pattern and how confident the detector
// is in it. Confidence is the winning pattern's share of all indicator
// evidence, in [0,1].
type Detection struct {
	Pattern    Pattern `json:"pattern"`
	Confidence float64 `json:"confidence"`
}

// Content probes for architecture-specific declarations.
var (
	portInterfaceRe    = regexp.MustCompile(`interface\s+\w+Port\s*\{`)
	adapterImplRe      = regexp.MustCompile(`class\s+\w+Adapter\s+implements`)
	useCaseClassRe     = regexp.MustCompile(`class\s+\w+UseCase`)
	gatewayInterfaceRe = regexp.MustCompile(`interface\s+\w+Gateway`)
)

// DetectPattern scores architecture indicators over directory names
// and file contents and returns the dominant pattern.
//
// With no evidence at all the detector falls back to layered with low
// confidence, the default assumption for a Spring Boot repository.
// When layered and mvc score within 2 points of each other, mvc is
// preferred.
func DetectPattern(files []model.SourceFile) Detection {
	indicators := map[Pattern]int{
		Layered:           0,
		Hexagonal:         0,
		CleanArchitecture: 0,
		MVC:               0,
	}

	repoHasAdapterDir := false
	for _, dir := range uniqueDirs(files) {
		if strings.Contains(dir, "adapter") {
			repoHasAdapterDir = true
			break
		}
	}

	for _, dir := range uniqueDirs(files) {
		if strings.Contains(dir, "controller") {
			indicators[Layered] += 2
			indicators[MVC] += 2
		}
		if strings.Contains(dir, "service") {
			indicators[Layered] += 2
		}
		if strings.Contains(dir, "repository") || strings.Contains(dir, "dao") {
			indicators[Layered] += 2
		}
		if strings.Contains(dir, "entity") || strings.Contains(dir, "model") {
			indicators[Layered]++
		}

		if strings.Contains(dir, "adapter") {
			indicators[Hexagonal] += 3
		}
		if strings.Contains(dir, "port") {
			indicators[Hexagonal] += 3
		}
		if strings.Contains(dir, "domain") && repoHasAdapterDir {
			indicators[Hexagonal] += 2
		}
		if strings.Contains(dir, "infrastructure") {
			indicators[Hexagonal] += 2
		}

		if strings.Contains(dir, "usecase") {
			indicators[CleanArchitecture] += 3
		}
		if strings.Contains(dir, "gateway") {
			indicators[CleanArchitecture] += 2
		}
		if strings.Contains(dir, "presenter") {
			indicators[CleanArchitecture] += 2
		}
		if strings.Contains(dir, "interface_adapter") {
			indicators[CleanArchitecture] += 3
		}
	}

	for _, f := range files {
		if portInterfaceRe.MatchString(f.Content) {
			indicators[Hexagonal] += 2
		}
		if adapterImplRe.MatchString(f.Content) {
			indicators[Hexagonal] += 2
		}
		if useCaseClassRe.MatchString(f.Content) {
			indicators[CleanArchitecture] += 2
		}
		if gatewayInterfaceRe.MatchString(f.Content) {
			indicators[CleanArchitecture] += 2
		}
	}

	total := 0
	for _, score := range indicators {
		total += score
	}
	if total == 0 {
		return Detection{Pattern: Layered, Confidence: 0.3}
	}

	best := Layered
	for _, p := range []Pattern{Layered, Hexagonal, CleanArchitecture, MVC} {
		if indicators[p] > indicators[best] {
			best = p
		}
	}
	confidence := float64(indicators[best]) / float64(total)

	// Spring Boot repositories with near-equal layered and mvc
	// evidence are reported as mvc.
	diff := indicators[Layered] - indicators[MVC]
	if diff < 0 {
		diff = -diff
	}
	if (best == Layered || best == MVC) && diff <= 2 {
		return Detection{Pattern: MVC, Confidence: confidence}
	}

	return Detection{Pattern: best, Confidence: confidence}
}

// uniqueDirs returns the lowercased directory paths covering every
// input file, deduplicated in input order.
func uniqueDirs(files []model.SourceFile) []string {
	seen := make(map[string]struct{})
	var dirs []string

	for _, f := range files {
		dir := strings.ToLower(filepath.ToSlash(filepath.Dir(f.Path)))
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	return dirs
}
