package main

import (
	"strings"
	"testing"
)

func TestParseIngredients(t *testing.T) {
	cases := []struct {
		format string
		input  string
	}{
		{"json", `[{"name":"абрикосовое варенье","measurement_unit":"г"},{"name":"соль","measurement_unit":"щепотка"}]`},
		{"yaml", "- name: абрикосовое варенье\n  measurement_unit: г\n- name: соль\n  measurement_unit: щепотка\n"},
		{"csv", "абрикосовое варенье,г\nсоль, щепотка\n"},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			rows, err := parseIngredients(strings.NewReader(tc.input), tc.format)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("rows=%d", len(rows))
			}
			if rows[0].Name != "абрикосовое варенье" || rows[0].MeasurementUnit != "г" {
				t.Fatalf("first row=%+v", rows[0])
			}
			if rows[1].Name != "соль" || rows[1].MeasurementUnit != "щепотка" {
				t.Fatalf("second row=%+v", rows[1])
			}
		})
	}
}

func TestParseIngredientsRejectsMalformedCSV(t *testing.T) {
	if _, err := parseIngredients(strings.NewReader("соль,г,extra\n"), "csv"); err == nil {
		t.Fatalf("expected error for three columns")
	}
}

func TestParseTags(t *testing.T) {
	rows, err := parseTags(strings.NewReader(`[{"name":"Завтрак","color":"#E26C2D","slug":"breakfast"}]`), "json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "breakfast" || rows[0].Color != "#E26C2D" {
		t.Fatalf("rows=%+v", rows)
	}
	if _, err := parseTags(strings.NewReader("x"), "csv"); err == nil {
		t.Fatalf("csv tags should be rejected")
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]string{
		"data/ingredients.json": "json",
		"tags.YML":              "yaml",
		"ingredients.csv":       "csv",
		"noext":                 "json",
	} {
		if got := formatOf(path); got != want {
			t.Fatalf("formatOf(%q)=%q want %q", path, got, want)
		}
	}
}
