package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".csv":
		return "csv"
	default:
		return "json"
	}
}

func parseIngredients(r io.Reader, format string) ([]*types.Ingredient, error) {
	var rows []*types.Ingredient
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode ingredients json: %w", err)
		}
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode ingredients yaml: %w", err)
		}
	case "csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = 2
		cr.TrimLeadingSpace = true
		for {
			rec, err := cr.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("read ingredients csv: %w", err)
			}
			rows = append(rows, &types.Ingredient{Name: rec[0], MeasurementUnit: rec[1]})
		}
	default:
		return nil, fmt.Errorf("unsupported ingredient format %q", format)
	}
	return rows, nil
}

func parseTags(r io.Reader, format string) ([]*types.Tag, error) {
	var rows []*types.Tag
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode tags json: %w", err)
		}
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode tags yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tag format %q", format)
	}
	return rows, nil
}
