package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/phototools/internal/catalog"
	"github.com/lehigh-university-libraries/phototools/internal/editor"
	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/spf13/viper"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "phototools.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatal(err)
	}
}

func TestSortCommand(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"tdate":"2024-01-10","v":1}`,
		"b.json": `[{"tdate":"2024-03-01","v":2},{"tdate":"2024-02-15","v":3}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, "sort", dir, "--save")
	if err != nil {
		t.Fatalf("sort failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2024-03-01 to 2024-02-15 | "+filepath.Join(dir, "b.json")+" | 2") {
		t.Errorf("missing summary row:\n%s", out)
	}
	if !strings.Contains(out, "Sorted and saved 3 items from 2 files") {
		t.Errorf("missing completion message:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "sorted", "combined_sorted.json")); err != nil {
		t.Errorf("combined file not written: %v", err)
	}
}

func TestSortCommandRejectsBadOrder(t *testing.T) {
	if _, err := execute(t, "sort", t.TempDir(), "--order", "sideways"); err == nil {
		t.Error("expected an error for an unknown order")
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	if err := os.MkdirAll(input, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(input, "a.png"))
	writePNG(t, filepath.Join(input, "b.png"))
	if err := os.WriteFile(filepath.Join(input, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := writeConfig(t, dir, fmt.Sprintf("convert:\n  input: %s\n  output: %s\n  quality: 70\n", input, filepath.Join(dir, "out")))
	report := filepath.Join(dir, "report.yaml")

	out, err := execute(t, "--config", cfg, "convert", "--report", report)
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Conversion completed! Successful: 2/2") {
		t.Errorf("unexpected output:\n%s", out)
	}
	for _, name := range []string{"a.webp", "b.webp"} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(report); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestConvertCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "convert", "--input", filepath.Join(dir, "nope"), "--output", filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected an error for a missing input folder")
	}
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "portfolio.json")
	content := `[
  {"id":"a","title":"A","season":"winter","tags":["street"],"udate":"2024-01-01","featured":true},
  {"id":"b","title":"B","season":"spring","tags":["nature"],"udate":"2024-03-01","featured":false},
  {"id":"c","title":"C","season":"winter","tags":["nature"],"udate":"2024-02-01","featured":true}
]`
	if err := os.WriteFile(catalogPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := writeConfig(t, dir, "catalog:\n  path: "+catalogPath+"\n")

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "featured",
			args:     []string{"catalog", "list", "--featured"},
			contains: []string{"2024-02-01\tc\tC", "2024-01-01\ta\tA", "2 of 3 entries"},
			excludes: []string{"\tb\t"},
		},
		{
			name:     "tag",
			args:     []string{"catalog", "list", "--tag", "nature", "--limit", "1"},
			contains: []string{"\tb\t", "1 of 3 entries"},
		},
		{
			name:     "seasons",
			args:     []string{"catalog", "list", "--seasons"},
			contains: []string{"winter\nspring\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("did not expect %q in:\n%s", unwanted, out)
				}
			}
		})
	}

	t.Run("export", func(t *testing.T) {
		parquetPath := filepath.Join(dir, "export", "portfolio.parquet")
		out, err := execute(t, "--config", cfg, "catalog", "export", "--parquet", parquetPath)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(out, "Exported 3 entries") {
			t.Errorf("unexpected output: %s", out)
		}
		records, err := catalog.ReadParquet(parquetPath)
		if err != nil || len(records) != 3 {
			t.Errorf("Expected 3 exported rows, got %d (%v)", len(records), err)
		}
	})
}

type fakeSuggester struct {
	form models.Form
	err  error
	path string
}

func (f *fakeSuggester) Suggest(ctx context.Context, imagePath string) (models.Form, error) {
	f.path = imagePath
	return f.form, f.err
}

func newTestShell(t *testing.T, s suggester) (*editShell, *bytes.Buffer, string, *catalog.Store) {
	t.Helper()
	dir := t.TempDir()
	folder := filepath.Join(dir, "todo")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(folder, "a.png"))
	writePNG(t, filepath.Join(folder, "b.png"))

	store := catalog.NewStore(filepath.Join(dir, "portfolio.json"), "output.json")
	session := editor.NewSession(store, models.MustCategorySet(models.DefaultCategories))
	if err := session.Load(folder); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	return &editShell{session: session, suggester: s, out: &out}, &out, folder, store
}

func TestEditShellSession(t *testing.T) {
	shell, out, _, store := newTestShell(t, nil)

	script := strings.Join([]string{
		"title Frozen lake",
		"desc   Ice at dawn  ",
		"season winter",
		"cats 1,3",
		"featured",
		"next",
		"title Second",
		"prev",
		"show",
		"save",
		"quit",
	}, "\n")
	if err := shell.run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Metadata saved successfully") {
		t.Errorf("missing save message:\n%s", text)
	}
	if !strings.Contains(text, "Title:       Frozen lake") {
		t.Errorf("revisited image should keep its form:\n%s", text)
	}

	records, err := catalog.ReadRecords(store.CatalogPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 catalog entries, got %d", len(records))
	}
	first := records[0]
	if first.ID != "a" || first.Description != "Ice at dawn" || !first.Featured {
		t.Errorf("unexpected first record: %+v", first)
	}
	if strings.Join(first.Tags, ",") != "nature,monochrome" {
		t.Errorf("Expected nature,monochrome, got %v", first.Tags)
	}
	if first.Dimension != "4x3" {
		t.Errorf("Expected 4x3, got %s", first.Dimension)
	}
	if records[1].Title != "Second" {
		t.Errorf("Expected second record title, got %+v", records[1])
	}
}

func TestEditShellErrorsDoNotStopSession(t *testing.T) {
	shell, out, _, _ := newTestShell(t, nil)

	quit := shell.handle(context.Background(), "bogus")
	if quit {
		t.Fatal("unknown command must not quit")
	}
	shell.handle(context.Background(), "featured maybe")
	shell.handle(context.Background(), "suggest")
	shell.handle(context.Background(), "open /definitely/not/here")

	text := out.String()
	for _, want := range []string{`unknown command "bogus"`, "featured expects on or off", "suggestions are disabled", "folder does not exist"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in:\n%s", want, text)
		}
	}
	if !shell.handle(context.Background(), "q") {
		t.Error("q should quit")
	}
}

func TestEditShellSuggest(t *testing.T) {
	fake := &fakeSuggester{form: models.Form{Title: "Suggested", Categories: "2"}}
	shell, _, folder, _ := newTestShell(t, fake)

	shell.handle(context.Background(), "season summer")
	shell.handle(context.Background(), "suggest")

	if fake.path != filepath.Join(folder, "a.png") {
		t.Errorf("unexpected image path %s", fake.path)
	}
	form := shell.session.Form()
	if form.Title != "Suggested" || form.Categories != "2" || form.Season != "summer" {
		t.Errorf("unexpected form after suggestion: %+v", form)
	}

	fake.err = errors.New("model offline")
	shell.handle(context.Background(), "suggest")
	if shell.session.Form() != form {
		t.Error("a failed suggestion must leave the form unchanged")
	}
}
