// Package classify assigns Spring source files to architectural
// categories and scores their relevance against stack-trace tokens.
//
// Classification is a marker-presence heuristic over raw file text, not
// a semantic parse. False positives from string literals or comments
// containing a marker are an accepted limitation; behavior is defined
// by the ordered marker list below.
package classify

import (
	"strings"

	"stacklens/internal/model"
)

// rule maps literal content markers to a category. Rules are evaluated
// in order and the first match wins, so a file containing both
// @Service and @Entity classifies as service.
type rule struct {
	markers  []string
	category model.Category
}

var rules = []rule{
	{markers: []string{"@RestController", "@Controller"}, category: model.CategoryController},
	{markers: []string{"@Service"}, category: model.CategoryService},
	{markers: []string{"@Repository"}, category: model.CategoryRepository},
	{markers: []string{"@Configuration", "@Bean"}, category: model.CategoryConfig},
	{markers: []string{"@Entity", "@Table"}, category: model.CategoryEntity},
}

// Scoring weights. Token containment is worth less than an explicit
// service or configuration marker.
const (
	tokenWeight         = 2
	serviceMarkerBonus  = 3
	configMarkerBonus   = 3
	serviceScoreMarker  = "@Service"
	configScoreMarker   = "@Configuration"
)

// Classify returns exactly one category for the given file content.
// The other fallback guarantees totality.
func Classify(content string) model.Category {
	for _, r := range rules {
		for _, marker := range r.markers {
			if strings.Contains(content, marker) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// Score computes the relevance of file content against stack-trace
// tokens: 2 points per distinct token contained in the content
// (case-sensitive substring match), plus 3 if the content carries a
// @Service marker and 3 if it carries a @Configuration marker. The
// result is an unbounded non-negative ranking signal.
func Score(content string, tokens []string) int {
	score := 0
	counted := make(map[string]struct{}, len(tokens))

	for _, token := range tokens {
		if _, ok := counted[token]; ok {
			continue
		}
		counted[token] = struct{}{}
		if strings.Contains(content, token) {
			score += tokenWeight
		}
	}

	if strings.Contains(content, serviceScoreMarker) {
		score += serviceMarkerBonus
	}
	if strings.Contains(content, configScoreMarker) {
		score += configMarkerBonus
	}

	return score
}

// ClassifyAll classifies and scores every input file. The result is
// 1:1 with the input and order-preserving.
func ClassifyAll(files []model.SourceFile, tokens []string) []model.ClassifiedFile {
	classified := make([]model.ClassifiedFile, 0, len(files))

	for _, f := range files {
		classified = append(classified, model.ClassifiedFile{
			Path:      f.Path,
			Category:  Classify(f.Content),
			Relevance: Score(f.Content, tokens),
			Content:   f.Content,
		})
	}

	return classified
}
