package violations

import "regexp"

// Characteristics describes what a file's code does, independent of
// whether any of it is a violation.
type Characteristics struct {
	HasBusinessLogic bool `json:"hasBusinessLogic"`
	HasDataAccess    bool `json:"hasDataAccess"`
	HasHTTPHandling  bool `json:"hasHttpHandling"`
	HasValidation    bool `json:"hasValidation"`
	HasTransaction   bool `json:"hasTransaction"`
}

var (
	charBusinessRes = []*regexp.Regexp{
		regexp.MustCompile(`if\s*\(`),
		regexp.MustCompile(`for\s*\(`),
		regexp.MustCompile(`while\s*\(`),
		regexp.MustCompile(`switch\s*\(`),
		regexp.MustCompile(`\.stream\(\)`),
	}
	charDataRes = []*regexp.Regexp{
		regexp.MustCompile(`\.(save|find|delete|update|query|execute)\(`),
		regexp.MustCompile(`@Query`),
		regexp.MustCompile(`JpaRepository`),
	}
	charHTTPRes = []*regexp.Regexp{
		regexp.MustCompile(`@(GetMapping|PostMapping|PutMapping|DeleteMapping|RequestMapping)`),
		regexp.MustCompile(`HttpServletRequest`),
		regexp.MustCompile(`HttpServletResponse`),
	}
	charValidationRe = regexp.MustCompile(`@Valid\b|@Validated\b|@NotNull\b|@NotEmpty\b`)
)

// AnalyzeCharacteristics flags the behavioral traits of file content.
func AnalyzeCharacteristics(content string) Characteristics {
	return Characteristics{
		HasBusinessLogic: anyMatch(charBusinessRes, content),
		HasDataAccess:    anyMatch(charDataRes, content),
		HasHTTPHandling:  anyMatch(charHTTPRes, content),
		HasValidation:    charValidationRe.MatchString(content),
		HasTransaction:   transactionalRe.MatchString(content),
	}
}

func anyMatch(res []*regexp.Regexp, content string) bool {
	for _, re := range res {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}
