package arch

import (
	"regexp"
	"strings"
)

// Layer is the architectural layer a file belongs to. It is a superset
// of the classification categories: adapter and port only occur in
// hexagonal codebases.
type Layer string

const (
	LayerController Layer = "controller"
	LayerService    Layer = "service"
	LayerRepository Layer = "repository"
	LayerEntity     Layer = "entity"
	LayerAdapter    Layer = "adapter"
	LayerPort       Layer = "port"
	LayerOther      Layer = "other"
)

var (
	controllerAnnotationRe = regexp.MustCompile(`@(RestController|Controller)\b`)
	serviceAnnotationRe    = regexp.MustCompile(`@Service\b`)
	repositoryAnnotationRe = regexp.MustCompile(`@Repository\b`)
	entityAnnotationRe     = regexp.MustCompile(`@Entity\b|@Table\b`)
)

// pathHints maps path keywords to layers, checked after annotations.
var pathHints = []struct {
	keywords []string
	layer    Layer
}{
	{[]string{"controller", "web", "rest", "api"}, LayerController},
	{[]string{"service", "business", "usecase"}, LayerService},
	{[]string{"repository", "dao", "jpa"}, LayerRepository},
	{[]string{"entity", "model", "domain", "dto"}, LayerEntity},
	{[]string{"adapter"}, LayerAdapter},
	{[]string{"port"}, LayerPort},
}

// DetectLayer determines the architectural layer of a file.
// Annotations are the most reliable signal and are checked first; the
// file path is the fallback.
func DetectLayer(path, content string) Layer {
	switch {
	case controllerAnnotationRe.MatchString(content):
		return LayerController
	case serviceAnnotationRe.MatchString(content):
		return LayerService
	case repositoryAnnotationRe.MatchString(content):
		return LayerRepository
	case entityAnnotationRe.MatchString(content):
		return LayerEntity
	}

	lower := strings.ToLower(path)
	for _, hint := range pathHints {
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				return hint.layer
			}
		}
	}

	return LayerOther
}
