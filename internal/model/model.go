// Package model defines the core domain types shared across the
// stacklens analysis pipeline.
package model

// SourceFile is one input file as supplied by the caller. The content
// is read-only to the analysis core.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Category is the architectural role assigned to a source file.
type Category string

const (
	CategoryController Category = "controller"
	CategoryService    Category = "service"
	CategoryRepository Category = "repository"
	CategoryConfig     Category = "config"
	CategoryEntity     Category = "entity"
	CategoryOther      Category = "other"
)

// Categories lists every valid category value.
func Categories() []Category {
	return []Category{
		CategoryController,
		CategoryService,
		CategoryRepository,
		CategoryConfig,
		CategoryEntity,
		CategoryOther,
	}
}

// FeatureModel holds aggregate structural counts for one analysis run.
// Populated once, never mutated afterward.
type FeatureModel struct {
	ArchitecturePattern string `json:"architecturePattern"`
	Loc                 int    `json:"loc"`
	Methods             int    `json:"methods"`
	Classes             int    `json:"classes"`
	Imports             int    `json:"imports"`
	Annotations         int    `json:"annotations"`
}

// ClassifiedFile is one SourceFile after classification and relevance
// scoring. Derived per run, not persisted by the core.
type ClassifiedFile struct {
	Path      string   `json:"path"`
	Category  Category `json:"category"`
	Relevance int      `json:"relevance"`
	Content   string   `json:"content"`
}

// AnalysisPayload is the request shape sent to the external analysis
// backend. It exists for the duration of one analysis run.
type AnalysisPayload struct {
	FeatureModel    *FeatureModel    `json:"featureModel"`
	ClassifiedFiles []ClassifiedFile `json:"classifiedFiles"`
	RawStackTrace   string           `json:"rawStackTrace"`
}

// RetrievedDoc is one document returned by the analysis backend.
type RetrievedDoc struct {
	Source  string `json:"source,omitempty"`
	Content string `json:"content"`
}

// BackendResponse is the response shape of the external analysis
// backend.
type BackendResponse struct {
	Answer        string         `json:"answer"`
	RetrievedDocs []RetrievedDoc `json:"retrieved_docs"`
}
