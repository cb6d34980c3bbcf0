package violations

import (
	"regexp"

	"stacklens/internal/arch"
)

// Severity ranks how serious a detected violation is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// AtLeast reports whether s ranks at or above min.
func (s Severity) AtLeast(min Severity) bool {
	return severityRank[s] >= severityRank[min]
}

// KnownSeverity reports whether s is a recognized severity name.
func KnownSeverity(s Severity) bool {
	_, ok := severityRank[s]
	return ok
}

// Clean is the violation name reported when nothing matched.
const Clean = "clean"

// Result holds the violations found in one file and the highest
// severity among them.
type Result struct {
	Violations []string `json:"violations"`
	Severity   Severity `json:"severity"`
}

// Clean reports whether no violation was detected.
func (r Result) Clean() bool {
	return len(r.Violations) == 1 && r.Violations[0] == Clean
}

// Business-logic probes for controllers.
var businessLogicRes = []*regexp.Regexp{
	regexp.MustCompile(`(?s)if\s*\([^)]*\)\s*\{[^}]*(save|update|delete|calculate)`),
	regexp.MustCompile(`(?s)for\s*\([^)]*\)\s*\{[^}]*(process|compute)`),
	regexp.MustCompile(`\.stream\(\)\.filter\(`),
	regexp.MustCompile(`(?s)switch\s*\([^)]*\)\s*\{[^}]*case`),
}

var frameworkImportRes = []*regexp.Regexp{
	regexp.MustCompile(`import\s+org\.springframework\.`),
	regexp.MustCompile(`import\s+javax\.persistence\.`),
	regexp.MustCompile(`import\s+org\.hibernate\.`),
}

var (
	mutationCallRe        = regexp.MustCompile(`\.(save|delete|update)\(`)
	transactionalRe       = regexp.MustCompile(`@Transactional`)
	implementsPortRe      = regexp.MustCompile(`implements\s+\w+Port`)
	frameworkAnnotationRe = regexp.MustCompile(`@(Controller|RestController|Repository|Entity)`)
	persistenceAnnotRe    = regexp.MustCompile(`@(Entity|Table|Column|Id)\b`)
	broadCatchRe          = regexp.MustCompile(`catch\s*\(\s*(Exception|Throwable)\s+`)
	requestBodyRe         = regexp.MustCompile(`(?s)@(PostMapping|PutMapping).*@RequestBody`)
	validationRe          = regexp.MustCompile(`@Valid\b|@Validated\b`)
	newCouplingRe         = regexp.MustCompile(`new\s+(.*?)(Service|Repository|Dao|Adapter)\(`)
)

// Detect finds architecture-specific and common anti-pattern
// violations in one file. With nothing detected the result is the
// single violation "clean" at low severity.
func Detect(content string, layer arch.Layer, pattern arch.Pattern, deps LayerDeps) Result {
	var found []string
	severity := SeverityLow

	escalate := func(s Severity) {
		if severityRank[s] > severityRank[severity] {
			severity = s
		}
	}
	add := func(name string, s Severity) {
		found = append(found, name)
		escalate(s)
	}

	switch pattern {
	case arch.Layered, arch.MVC:
		if layer == arch.LayerController && deps.Repository > 0 {
			add("layer_skip_in_layered", SeverityHigh)
		}
		if layer == arch.LayerService && deps.Controller > 0 {
			add("reversed_dependency_in_layered", SeverityHigh)
		}
		if layer == arch.LayerController {
			for _, re := range businessLogicRes {
				if re.MatchString(content) {
					add("business_logic_in_controller_layered", SeverityMedium)
					break
				}
			}
		}
		if layer == arch.LayerService &&
			mutationCallRe.MatchString(content) && !transactionalRe.MatchString(content) {
			add("missing_transaction_in_layered", SeverityHigh)
		}

	case arch.Hexagonal:
		if layer == arch.LayerService && deps.Repository > 0 && deps.Port == 0 {
			add("missing_port_adapter_in_hexagonal", SeverityCritical)
		}
		if layer == arch.LayerService {
			for _, re := range frameworkImportRes {
				if re.MatchString(content) {
					add("framework_dependency_in_domain_hexagonal", SeverityCritical)
					break
				}
			}
		}
		if layer == arch.LayerAdapter && !implementsPortRe.MatchString(content) {
			add("adapter_without_port_hexagonal", SeverityMedium)
		}

	case arch.CleanArchitecture:
		if layer == arch.LayerController && (deps.Entity > 0 || deps.Repository > 0) {
			add("outer_depends_on_inner_clean", SeverityCritical)
		}
		if layer == arch.LayerService && frameworkAnnotationRe.MatchString(content) {
			add("usecase_framework_coupling_clean", SeverityCritical)
		}
		if layer == arch.LayerEntity && persistenceAnnotRe.MatchString(content) {
			add("entity_framework_coupling_clean", SeverityMedium)
		}
		if layer == arch.LayerService && deps.Repository > 0 && deps.Gateway == 0 {
			add("missing_gateway_interface_clean", SeverityHigh)
		}
	}

	// Common anti-patterns, independent of architecture.
	if broadCatchRe.MatchString(content) {
		add("broad_catch", SeverityMedium)
	}
	if layer == arch.LayerController &&
		requestBodyRe.MatchString(content) && !validationRe.MatchString(content) {
		add("no_validation", SeverityMedium)
	}
	if newCouplingRe.MatchString(content) {
		add("tight_coupling_new_keyword", SeverityMedium)
	}

	if len(found) == 0 {
		return Result{Violations: []string{Clean}, Severity: SeverityLow}
	}
	return Result{Violations: found, Severity: severity}
}

// ContextLabel builds the dataset label combining the primary
// violation, architecture and layer, e.g.
// "broad_catch_in_layered_service" or "clean_mvc_controller".
func ContextLabel(r Result, pattern arch.Pattern, layer arch.Layer) string {
	primary := r.Violations[0]
	if primary == Clean {
		return "clean_" + string(pattern) + "_" + string(layer)
	}
	return primary + "_in_" + string(pattern) + "_" + string(layer)
}
