package features

import (
	"reflect"
	"testing"
)

func sampleRecords() []FileRecord {
	return []FileRecord{
		{
			Path: "src/UserController.java",
			Classes: []ClassDecl{
				{Name: "UserController", Annotations: 2},
			},
			Methods: []MethodDecl{
				{Name: "list", Annotations: 1, StartLine: 10, EndLine: 14},
				{Name: "create", Annotations: 1, StartLine: 16, EndLine: 25},
			},
			Imports: 5,
		},
		{
			Path: "src/UserService.java",
			Classes: []ClassDecl{
				{Name: "UserService", Annotations: 1},
			},
			Methods: []MethodDecl{
				{Name: "findAll", StartLine: 8, EndLine: 10},
			},
			Imports: 3,
		},
	}
}

func TestCount(t *testing.T) {
	fm := Count(sampleRecords())

	if fm.Classes != 2 {
		t.Errorf("Classes = %d, want 2", fm.Classes)
	}
	if fm.Methods != 3 {
		t.Errorf("Methods = %d, want 3", fm.Methods)
	}
	if fm.Imports != 8 {
		t.Errorf("Imports = %d, want 8", fm.Imports)
	}
	// 2 + 1 class annotations, 1 + 1 + 0 method annotations
	if fm.Annotations != 5 {
		t.Errorf("Annotations = %d, want 5", fm.Annotations)
	}
	// spans: 5 + 10 + 3
	if fm.Loc != 18 {
		t.Errorf("Loc = %d, want 18", fm.Loc)
	}
}

func TestCountEmptyInput(t *testing.T) {
	for _, records := range [][]FileRecord{nil, {}} {
		fm := Count(records)
		if fm.Loc != 0 || fm.Methods != 0 || fm.Classes != 0 || fm.Imports != 0 || fm.Annotations != 0 {
			t.Errorf("Count(%v) = %+v, want all-zero model", records, fm)
		}
	}
}

func TestCountSkipsParseFailedFiles(t *testing.T) {
	records := append(sampleRecords(), FileRecord{
		Path:        "src/Broken.java",
		ParseFailed: true,
		// Declarations on a failed record must not be counted.
		Classes: []ClassDecl{{Name: "Broken", Annotations: 9}},
		Imports: 99,
	})

	with := Count(records)
	without := Count(sampleRecords())

	if !reflect.DeepEqual(with, without) {
		t.Errorf("parse-failed file changed counts: %+v != %+v", with, without)
	}
}

func TestCountIdempotent(t *testing.T) {
	records := sampleRecords()

	first := Count(records)
	second := Count(records)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated counts differ: %+v != %+v", first, second)
	}
}

func TestMethodDeclLines(t *testing.T) {
	tests := []struct {
		name     string
		method   MethodDecl
		expected int
	}{
		{"single line", MethodDecl{StartLine: 4, EndLine: 4}, 1},
		{"multi line", MethodDecl{StartLine: 4, EndLine: 9}, 6},
		{"inverted span contributes zero", MethodDecl{StartLine: 9, EndLine: 4}, 0},
		{"zero value", MethodDecl{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.method.Lines(); got != tt.expected {
				t.Errorf("Lines() = %d, want %d", got, tt.expected)
			}
		})
	}
}
