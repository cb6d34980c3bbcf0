package extract

import (
	"fmt"
	"os"

	"github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"stacklens/internal/features"
)

// LoadSCIPIndex reads and parses a SCIP index file (scip-java output).
func LoadSCIPIndex(path string) (*scip.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SCIP index %s: %w", path, err)
	}

	var index scip.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parse SCIP index %s: %w", path, err)
	}

	return &index, nil
}

// SCIPRecords maps a SCIP index to declaration records, one per
// indexed document.
//
// SCIP carries no annotation information, so annotation counts are
// zero; imports are counted from import-role occurrences. Method spans
// come from the definition's enclosing range when the indexer emitted
// one, otherwise from the symbol's own range.
func SCIPRecords(index *scip.Index) []features.FileRecord {
	if index == nil {
		return nil
	}

	records := make([]features.FileRecord, 0, len(index.Documents))
	for _, doc := range index.Documents {
		records = append(records, documentRecord(doc))
	}
	return records
}

func documentRecord(doc *scip.Document) features.FileRecord {
	rec := features.FileRecord{Path: doc.RelativePath}

	kinds := make(map[string]scip.SymbolInformation_Kind, len(doc.Symbols))
	names := make(map[string]string, len(doc.Symbols))
	for _, sym := range doc.Symbols {
		kinds[sym.Symbol] = sym.Kind
		names[sym.Symbol] = sym.DisplayName
	}

	for _, occ := range doc.Occurrences {
		if occ.SymbolRoles&int32(scip.SymbolRole_Import) != 0 {
			rec.Imports++
			continue
		}
		if occ.SymbolRoles&int32(scip.SymbolRole_Definition) == 0 {
			continue
		}

		switch kinds[occ.Symbol] {
		case scip.SymbolInformation_Class,
			scip.SymbolInformation_Interface,
			scip.SymbolInformation_Enum:
			rec.Classes = append(rec.Classes, features.ClassDecl{
				Name: names[occ.Symbol],
			})
		case scip.SymbolInformation_Method,
			scip.SymbolInformation_Constructor:
			start, end := occurrenceSpan(occ)
			rec.Methods = append(rec.Methods, features.MethodDecl{
				Name:      names[occ.Symbol],
				StartLine: start,
				EndLine:   end,
			})
		}
	}

	return rec
}

// occurrenceSpan returns the 1-indexed line span of a definition,
// preferring the enclosing range over the name range.
func occurrenceSpan(occ *scip.Occurrence) (int, int) {
	rng := occ.EnclosingRange
	if len(rng) == 0 {
		rng = occ.Range
	}

	switch len(rng) {
	case 3: // [startLine, startCol, endCol]
		return int(rng[0]) + 1, int(rng[0]) + 1
	case 4: // [startLine, startCol, endLine, endCol]
		return int(rng[0]) + 1, int(rng[2]) + 1
	default:
		return 0, 0
	}
}
