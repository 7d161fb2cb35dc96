package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMarshalKeepsTextLiteral(t *testing.T) {
	data, err := Marshal(map[string]string{"title": "Café <noir> & blanc"}, "")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `{"title":"Café <noir> & blanc"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}

func TestMarshalIndentsRawMessages(t *testing.T) {
	items := []json.RawMessage{json.RawMessage(`{"z":1,"a":[1,2]}`)}
	data, err := Marshal(items, "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := "[\n  {\n    \"z\": 1,\n    \"a\": [\n      1,\n      2\n    ]\n  }\n]"
	if string(data) != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, data)
	}
}

func TestWriteCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	if err := Write(path, []int{1}, "    "); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[\n    1\n]\n" {
		t.Errorf("unexpected content: %q", data)
	}
}
