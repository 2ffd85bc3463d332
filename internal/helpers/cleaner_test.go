package helpers

import "testing"

func TestExtractJSONPlain(t *testing.T) {
	out, err := ExtractJSON(`{"intent":"view_categories","confidence":0.9}`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out != `{"intent":"view_categories","confidence":0.9}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestExtractJSONFenced(t *testing.T) {
	in := "```json\n{\"intent\":\"add_to_cart\"}\n```"
	out, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out != `{"intent":"add_to_cart"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestExtractJSONFencedNoLang(t *testing.T) {
	in := "```\n{\"a\":1}\n```"
	out, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out != `{"a":1}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestExtractJSONSurroundingText(t *testing.T) {
	in := "Here is the classification:\n{\"intent\":\"place_order\",\"note\":\"braces {inside} strings\"}\nThanks!"
	out, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out != `{"intent":"place_order","note":"braces {inside} strings"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestExtractJSONStringsWithBrackets(t *testing.T) {
	in := `{"name":"iPhone 15 [128GB]","tags":["{weird}"]}`
	out, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if out != in {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestExtractJSONErrors(t *testing.T) {
	cases := []string{"", "   ", "no json here", `{"unterminated":`}
	for _, in := range cases {
		if _, err := ExtractJSON(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
