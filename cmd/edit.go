package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lehigh-university-libraries/phototools/internal/catalog"
	"github.com/lehigh-university-libraries/phototools/internal/config"
	"github.com/lehigh-university-libraries/phototools/internal/editor"
	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/lehigh-university-libraries/phototools/internal/suggest"
	"github.com/spf13/cobra"
)

const editHelp = `Commands:
  title TEXT       set the title
  desc TEXT        set the description
  season TEXT      set the season
  cats 0,2         set categories by index
  featured [on|off] toggle or set featured
  next, n          store this image and go to the next one
  prev, p          store this image and go to the previous one
  save             write the working file and merge into the catalog
  suggest          ask the configured model for title, description and tags
  open FOLDER      load another folder
  show             print the current image and form
  help             print this help
  quit, q          leave without saving`

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// suggester proposes form values for an image
type suggester interface {
	Suggest(ctx context.Context, imagePath string) (models.Form, error)
}

// editShell translates typed commands into editor.Session calls
type editShell struct {
	session   *editor.Session
	suggester suggester
	out       io.Writer
}

func newEditCmd() *cobra.Command {
	var noSuggest bool

	cmd := &cobra.Command{
		Use:   "edit [FOLDER]",
		Short: "Edit portfolio metadata for a folder of images",
		Long: `Walks the JPEG and PNG images of FOLDER one at a time. Each image gets a
title, description, season, categories and a featured flag. "save" writes
every visited image to the folder's working file (output.json) and merges
them into the portfolio catalog, newest first.

` + editHelp,
		Example: `  # Edit the configured folder
  phototools edit

  # Edit a specific folder without model suggestions
  phototools edit ./images/todo --no-suggest`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := config.GetEditorFolder()
			if len(args) == 1 {
				folder = args[0]
			}

			categories, err := config.GetCategories()
			if err != nil {
				return err
			}

			store := catalog.NewStore(config.GetCatalogPath(), config.GetWorkingFile())
			store.ResetOnCorrupt = config.GetResetOnCorrupt()
			session := editor.NewSession(store, categories, editor.WithEquipment(config.GetCamera(), config.GetLens()))

			shell := &editShell{session: session, out: cmd.OutOrStdout()}
			if !noSuggest {
				svc, err := suggest.New(config.GetSuggestProvider(), config.GetSuggestModel(), config.GetSuggestTemperature(), categories)
				if err != nil {
					return err
				}
				shell.suggester = svc
			}

			if err := session.Load(folder); err != nil {
				return err
			}
			return shell.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&noSuggest, "no-suggest", false, "Disable the suggest command")

	return cmd
}

func (e *editShell) run(ctx context.Context, in io.Reader) error {
	e.show()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(e.out, "> ")
		if !scanner.Scan() {
			break
		}
		if quit := e.handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
	fmt.Fprintln(e.out)
	return scanner.Err()
}

// handle runs one command line and reports whether the shell should exit.
// Errors are printed; they never end the session.
func (e *editShell) handle(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(name) {
	case "":
		return false
	case "quit", "q", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(e.out, editHelp)
	case "show":
		e.show()
	case "title", "desc", "season", "cats", "featured":
		err = e.setField(strings.ToLower(name), arg)
	case "next", "n":
		err = e.move(editor.Next)
	case "prev", "p":
		err = e.move(editor.Prev)
	case "save":
		if err = e.session.Persist(); err == nil {
			fmt.Fprintln(e.out, "Metadata saved successfully")
		}
	case "suggest":
		err = e.suggest(ctx)
	case "open":
		if err = e.session.Load(arg); err == nil {
			e.show()
		}
	default:
		err = fmt.Errorf("unknown command %q, type help for a list", name)
	}

	if err != nil {
		fmt.Fprintf(e.out, "Error: %v\n", err)
	}
	return false
}

func (e *editShell) setField(name, value string) error {
	if e.session.State() != editor.StateBrowsing {
		return editor.ErrNotBrowsing
	}

	form := e.session.Form()
	switch name {
	case "title":
		form.Title = value
	case "desc":
		form.Description = value
	case "season":
		form.Season = value
	case "cats":
		form.Categories = value
	case "featured":
		switch strings.ToLower(value) {
		case "":
			form.Featured = !form.Featured
		case "on", "yes", "true", "1":
			form.Featured = true
		case "off", "no", "false", "0":
			form.Featured = false
		default:
			return fmt.Errorf("featured expects on or off, got %q", value)
		}
	}
	e.session.SetForm(form)
	return nil
}

func (e *editShell) move(dir editor.Direction) error {
	if err := e.session.Advance(dir); err != nil {
		return err
	}
	e.show()
	return nil
}

func (e *editShell) suggest(ctx context.Context) error {
	if e.suggester == nil {
		return fmt.Errorf("suggestions are disabled")
	}
	path, ok := e.session.CurrentPath()
	if !ok {
		return editor.ErrNotBrowsing
	}

	fmt.Fprintln(e.out, faintStyle.Render("Asking the model..."))
	suggested, err := e.suggester.Suggest(ctx, path)
	if err != nil {
		return err
	}
	e.session.SetForm(suggest.Apply(e.session.Form(), suggested))
	e.show()
	return nil
}

func (e *editShell) show() {
	switch e.session.State() {
	case editor.StateUnloadable:
		fmt.Fprintf(e.out, "No images found in %s\n", e.session.Folder())
		return
	case editor.StateEmpty:
		fmt.Fprintln(e.out, "No folder loaded")
		return
	}

	filename, id, dimension, _ := e.session.Current()
	pos, total := e.session.Position()
	form := e.session.Form()

	fmt.Fprintf(e.out, "%s %s (%s)\n", headingStyle.Render(fmt.Sprintf("[%d/%d]", pos+1, total)), filename, dimension)
	fmt.Fprintf(e.out, "  File ID:     %s\n", id)
	fmt.Fprintf(e.out, "  Title:       %s\n", form.Title)
	fmt.Fprintf(e.out, "  Description: %s\n", form.Description)
	fmt.Fprintf(e.out, "  Season:      %s\n", form.Season)
	fmt.Fprintf(e.out, "  Categories:  %s\n", form.Categories)
	fmt.Fprintf(e.out, "  Featured:    %t\n", form.Featured)

	categories := e.session.Categories()
	legend := make([]string, 0, categories.Len())
	for i, c := range categories.All() {
		legend = append(legend, fmt.Sprintf("%d: %s (%s)", i, c.Label, c.Key))
	}
	fmt.Fprintln(e.out, faintStyle.Render("  "+strings.Join(legend, "  ")))
}
