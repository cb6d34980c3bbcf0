package violations

import "regexp"

// staticPattern is one entry of the architecture-agnostic anti-pattern
// table used for flat dataset exports. Checked in order, first match
// wins.
type staticPattern struct {
	name  string
	match func(content string) bool
}

var (
	staticBizLogicRe      = regexp.MustCompile(`(?s)@(RestController|Controller).*?(if|for|while|switch|\.save\(|\.delete\(|\.find)`)
	staticGodControllerRe = regexp.MustCompile(`(?s)@(RestController|Controller).*\{.*\{.*\{.*\}.*\}.*\}`)
	staticServiceWriteRe  = regexp.MustCompile(`(?s)@Service.*?(\.save\(|\.delete\(|\.update\()`)
	staticRequestBodyRe   = regexp.MustCompile(`(?s)@(PostMapping|PutMapping|RequestMapping).*?@RequestBody`)
	staticNewCouplingRe   = regexp.MustCompile(`new\s+\w+Service|new\s+\w+Repository|new\s+\w+Dao`)
)

var staticPatterns = []staticPattern{
	{
		name: "business_logic_in_controller",
		match: func(c string) bool {
			return staticBizLogicRe.MatchString(c)
		},
	},
	{
		name: "god_controller",
		match: func(c string) bool {
			return staticGodControllerRe.MatchString(c)
		},
	},
	{
		name: "missing_transaction",
		match: func(c string) bool {
			return staticServiceWriteRe.MatchString(c) && !transactionalRe.MatchString(c)
		},
	},
	{
		name: "broad_catch",
		match: func(c string) bool {
			return broadCatchRe.MatchString(c)
		},
	},
	{
		name: "no_validation",
		match: func(c string) bool {
			return staticRequestBodyRe.MatchString(c) && !validationRe.MatchString(c)
		},
	},
	{
		name: "tight_coupling",
		match: func(c string) bool {
			return staticNewCouplingRe.MatchString(c)
		},
	},
}

// DetectStatic runs the flat anti-pattern table against file content
// and returns the first matching pattern name, or "clean".
func DetectStatic(content string) string {
	for _, p := range staticPatterns {
		if p.match(content) {
			return p.name
		}
	}
	return Clean
}
