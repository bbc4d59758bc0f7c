package pricefeed

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseRefresh(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    float64
		wantErr bool
	}{
		{"float last", map[string]any{"last": 28.50}, 28.50, false},
		{"string last with comma", map[string]any{"last": "28,50"}, 28.50, false},
		{"string with spaces", map[string]any{"last": "1 234,5"}, 1234.5, false},
		{"empty last falls back to bid", map[string]any{"last": "./.", "bid": 28.40}, 28.40, false},
		{"zero bid", map[string]any{"last": "./.", "bid": 0.0}, 0, true},
		{"garbage", map[string]any{"last": "n/a"}, 0, true},
		{"missing", map[string]any{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRefresh("TEST", tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRefresh() = %v, want error", got)
				}
				if !math.IsNaN(got) {
					t.Errorf("on error got = %v, want NaN", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRefresh() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseRefresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseChartSeries(t *testing.T) {
	payload := `{
		"info": {"isin": "LS000IUSD016", "chartType": "mini"},
		"series": {"intraday": {"data": [[1650000000, 1.041], [1650000600, 1.048]]}}
	}`
	var jobj any
	if err := json.Unmarshal([]byte(payload), &jobj); err != nil {
		t.Fatal(err)
	}
	got, err := parseChartSeries(jobj)
	if err != nil {
		t.Fatalf("parseChartSeries() error = %v", err)
	}
	if got != 1.048 {
		t.Errorf("parseChartSeries() = %v, want the last point 1.048", got)
	}
}

func TestParseChartSeries_Empty(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(`{"series": {}}`), &jobj); err != nil {
		t.Fatal(err)
	}
	if _, err := parseChartSeries(jobj); err == nil {
		t.Error("expected an error on a payload without data")
	}
}
