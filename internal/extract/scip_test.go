package extract

import (
	"testing"

	"github.com/sourcegraph/scip/bindings/go/scip"
)

func TestSCIPRecords(t *testing.T) {
	index := &scip.Index{
		Documents: []*scip.Document{
			{
				RelativePath: "src/main/java/app/UserService.java",
				Symbols: []*scip.SymbolInformation{
					{Symbol: "sym:UserService#", Kind: scip.SymbolInformation_Class, DisplayName: "UserService"},
					{Symbol: "sym:UserService#findAll().", Kind: scip.SymbolInformation_Method, DisplayName: "findAll"},
					{Symbol: "sym:UserService#<init>().", Kind: scip.SymbolInformation_Constructor, DisplayName: "UserService"},
				},
				Occurrences: []*scip.Occurrence{
					{
						Symbol:      "sym:UserService#",
						SymbolRoles: int32(scip.SymbolRole_Definition),
						Range:       []int32{4, 13, 24},
					},
					{
						Symbol:         "sym:UserService#findAll().",
						SymbolRoles:    int32(scip.SymbolRole_Definition),
						Range:          []int32{10, 16, 23},
						EnclosingRange: []int32{10, 4, 14, 5},
					},
					{
						Symbol:      "sym:UserService#<init>().",
						SymbolRoles: int32(scip.SymbolRole_Definition),
						Range:       []int32{6, 11, 22},
					},
					{
						Symbol:      "sym:java/util/List#",
						SymbolRoles: int32(scip.SymbolRole_Import),
						Range:       []int32{1, 7, 21},
					},
					{
						// Plain reference, not a definition.
						Symbol:      "sym:UserService#findAll().",
						SymbolRoles: 0,
						Range:       []int32{30, 8, 15},
					},
				},
			},
		},
	}

	records := SCIPRecords(index)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	rec := records[0]
	if rec.Path != "src/main/java/app/UserService.java" {
		t.Errorf("Path = %q", rec.Path)
	}
	if len(rec.Classes) != 1 || rec.Classes[0].Name != "UserService" {
		t.Errorf("Classes = %+v", rec.Classes)
	}
	if len(rec.Methods) != 2 {
		t.Fatalf("Methods = %+v, want 2 entries", rec.Methods)
	}
	if rec.Imports != 1 {
		t.Errorf("Imports = %d, want 1", rec.Imports)
	}

	// Method span comes from the enclosing range, converted to
	// 1-indexed lines.
	findAll := rec.Methods[0]
	if findAll.StartLine != 11 || findAll.EndLine != 15 {
		t.Errorf("findAll span = %d..%d, want 11..15", findAll.StartLine, findAll.EndLine)
	}

	// Constructor falls back to its single-line name range.
	init := rec.Methods[1]
	if init.StartLine != 7 || init.EndLine != 7 {
		t.Errorf("constructor span = %d..%d, want 7..7", init.StartLine, init.EndLine)
	}
}

func TestSCIPRecordsNilIndex(t *testing.T) {
	if records := SCIPRecords(nil); records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

func TestSCIPRecordsEmptyDocument(t *testing.T) {
	index := &scip.Index{Documents: []*scip.Document{{RelativePath: "Empty.java"}}}

	records := SCIPRecords(index)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if len(rec.Classes) != 0 || len(rec.Methods) != 0 || rec.Imports != 0 {
		t.Errorf("expected empty record, got %+v", rec)
	}
}
