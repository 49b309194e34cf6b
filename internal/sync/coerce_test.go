package sync

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCoerceDates_ConvertsNamedFieldsRecursively(t *testing.T) {
	raw := `{
		"id": "h1",
		"posts": [
			{
				"id": "p1",
				"timestamp": "2026-08-20T09:30:00Z",
				"comments": [
					{"id": "c1", "timestamp": "2026-08-20T10:00:00Z"}
				]
			}
		]
	}`
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	got := CoerceDates(decoded, []string{"timestamp"}).(map[string]any)

	post := got["posts"].([]any)[0].(map[string]any)
	ts, ok := post["timestamp"].(time.Time)
	if !ok {
		t.Fatalf("Post timestamp not coerced: %T", post["timestamp"])
	}
	want := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("Post timestamp = %v, want %v", ts, want)
	}

	comment := post["comments"].([]any)[0].(map[string]any)
	if _, ok := comment["timestamp"].(time.Time); !ok {
		t.Errorf("Nested comment timestamp not coerced: %T", comment["timestamp"])
	}

	if id, ok := got["id"].(string); !ok || id != "h1" {
		t.Errorf("Non-date field altered: %v", got["id"])
	}
}

func TestCoerceDates_Formats(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{name: "rfc3339", value: "2026-08-20T09:30:00Z", want: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)},
		{name: "date only", value: "2026-08-20", want: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{name: "epoch millis number", value: float64(1755680400000), want: time.UnixMilli(1755680400000).UTC()},
		{name: "epoch millis string", value: "1755680400000", want: time.UnixMilli(1755680400000).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := map[string]any{"date": tt.value}
			out := CoerceDates(in, []string{"date"}).(map[string]any)
			got, ok := out["date"].(time.Time)
			if !ok {
				t.Fatalf("Not coerced: %T", out["date"])
			}
			if !got.Equal(tt.want) {
				t.Errorf("Coerced to %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoerceDates_LeavesUnparseableValuesAlone(t *testing.T) {
	in := map[string]any{
		"date": "not a date",
		"name": "2026-08-20",
	}
	out := CoerceDates(in, []string{"date"}).(map[string]any)

	if got, ok := out["date"].(string); !ok || got != "not a date" {
		t.Errorf("Unparseable date mangled: %v", out["date"])
	}
	// Fields outside the allowlist stay strings even when they look like dates.
	if got, ok := out["name"].(string); !ok || got != "2026-08-20" {
		t.Errorf("Non-listed field coerced: %v", out["name"])
	}
}

func TestCoerceDates_DoesNotMutateInput(t *testing.T) {
	in := map[string]any{"date": "2026-08-20T09:30:00Z"}
	CoerceDates(in, []string{"date"})

	if _, ok := in["date"].(string); !ok {
		t.Error("Input map was mutated")
	}
}
