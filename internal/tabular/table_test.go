package tabular

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	if err == nil {
		t.Fatal("New accepted a ragged row")
	}
}

func TestNewRejectsMissingHeader(t *testing.T) {
	_, err := New(nil, nil)
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("err = %v, want ErrNoHeader", err)
	}
}

func TestColumn(t *testing.T) {
	table, err := New([]string{"name", "score"}, [][]string{
		{"jane", "10"},
		{"ann", "7"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := table.Column(0)
	if len(got) != 2 || got[0] != "jane" || got[1] != "ann" {
		t.Errorf("Column(0) = %v, want [jane ann]", got)
	}
}

func TestReadCSVFiltersBlankRows(t *testing.T) {
	input := "name,score\njane,10\n , \nann,7\n"
	table, err := ReadCSV(strings.NewReader(input), ReadOptions{TrimCells: true})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if table.RowCount() != 2 {
		t.Errorf("RowCount = %d, want 2 (blank row filtered)", table.RowCount())
	}
}

func TestReadCSVKeepBlankRows(t *testing.T) {
	input := "name,score\njane,10\n,\n"
	table, err := ReadCSV(strings.NewReader(input), ReadOptions{KeepBlankRows: true})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if table.RowCount() != 2 {
		t.Errorf("RowCount = %d, want 2", table.RowCount())
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ReadOptions{})
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("err = %v, want ErrNoHeader", err)
	}
}

func TestReadCSVRaggedInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"), ReadOptions{})
	if err == nil {
		t.Fatal("ReadCSV accepted a ragged record")
	}
}
