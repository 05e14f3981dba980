package llm

import "testing"

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here are your suggestions:\n```json\n[{\"title\": \"First\"}]\n```\nLet me know if you need more."

	v, ok := ExtractJSON(raw)
	if !ok {
		t.Fatal("expected the fenced block to parse")
	}
	items, ok := v.([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("parsed value = %#v, want a one-element array", v)
	}
}

func TestExtractJSONBracketScan(t *testing.T) {
	raw := `Sure! {"title": "First", "description": "An idea"} hope that helps.`

	v, ok := ExtractJSON(raw)
	if !ok {
		t.Fatal("expected the brace span to parse")
	}
	obj, ok := v.(map[string]interface{})
	if !ok || obj["title"] != "First" {
		t.Fatalf("parsed value = %#v", v)
	}
}

func TestExtractJSONArrayScan(t *testing.T) {
	raw := `The ideas are: [{"title": "A"}, {"title": "B"}] as requested.`

	v, ok := ExtractJSON(raw)
	if !ok {
		t.Fatal("expected the bracket span to parse")
	}
	items, ok := v.([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("parsed value = %#v, want a two-element array", v)
	}
}

func TestExtractJSONWholeString(t *testing.T) {
	v, ok := ExtractJSON(`{"parsed": true}`)
	if !ok {
		t.Fatal("expected the whole string to parse")
	}
	if obj := v.(map[string]interface{}); obj["parsed"] != true {
		t.Fatalf("parsed value = %#v", v)
	}
}

func TestExtractJSONPlainTextFails(t *testing.T) {
	if _, ok := ExtractJSON("Sorry, I cannot produce structured output today."); ok {
		t.Fatal("plain prose must not report as parsed")
	}
	if _, ok := ExtractJSON(""); ok {
		t.Fatal("empty input must not report as parsed")
	}
}
