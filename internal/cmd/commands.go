// Package cmd provides the interactive menu loop for batchname.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kaeawc/batchname/internal/config"
	"github.com/kaeawc/batchname/internal/dirsession"
	"github.com/kaeawc/batchname/internal/logging"
	"github.com/kaeawc/batchname/internal/naming"
	"github.com/kaeawc/batchname/internal/perf"
	"github.com/kaeawc/batchname/internal/terminal"
	"github.com/kaeawc/batchname/internal/ui"
)

// AppName is used for the menu title and window title
const AppName = "batchname"

// Menu actions
const (
	actionCreateFolders      = "create-folders"
	actionCreateFoldersCount = "create-folders-count"
	actionCreateFiles        = "create-files"
	actionCreateFilesCount   = "create-files-count"
	actionRenameFiles        = "rename-files"
	actionRenameFolders      = "rename-folders"
	actionEnter              = "enter"
	actionParent             = "parent"
	actionSettings           = "settings"
	actionQuit               = "quit"
)

// App drives a Directory Session from the interactive menu
type App struct {
	session  *dirsession.Session
	cfg      *config.Config
	sources  []string
	logger   logging.Logger
	prompter Prompter
	out      io.Writer
	titleOut io.Writer
	tracer   *perf.Tracer
}

// AppOption configures an App
type AppOption func(*App)

// WithPrompter replaces the interactive prompter
func WithPrompter(p Prompter) AppOption {
	return func(a *App) {
		a.prompter = p
	}
}

// WithOutput sets where listings and reports are printed
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		a.out = w
	}
}

// WithTitleWriter sets the terminal the window title is written to; nil disables it
func WithTitleWriter(w io.Writer) AppOption {
	return func(a *App) {
		a.titleOut = w
	}
}

// WithTracer times listings, staging and commits
func WithTracer(t *perf.Tracer) AppOption {
	return func(a *App) {
		a.tracer = t
	}
}

// WithSources records the .env files cfg was loaded from
func WithSources(paths []string) AppOption {
	return func(a *App) {
		a.sources = paths
	}
}

// NewApp creates an App over session
func NewApp(session *dirsession.Session, cfg *config.Config, logger logging.Logger, opts ...AppOption) *App {
	a := &App{
		session:  session,
		cfg:      cfg,
		logger:   logger,
		prompter: NewTeaPrompter(),
		out:      os.Stdout,
		titleOut: os.Stdout,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// RunInteractiveMenu displays the main menu until the user quits or ctx is
// canceled. Failed operations are reported and the menu comes back.
func (a *App) RunInteractiveMenu(ctx context.Context) error {
	defer func() {
		a.logger.Infof("Session ended in %s", a.session.Current())
	}()

	for {
		// an interrupt cancels every later commit, so stop offering the menu
		if ctx.Err() != nil {
			a.logger.Warnf("Interrupted: %v", ctx.Err())
			fmt.Fprintln(a.out, ui.WarningStyle.Render("Interrupted."))

			return nil
		}

		shouldExit, err := a.showInteractiveMenu(ctx)
		if err != nil {
			return err
		}

		if shouldExit {
			return nil
		}
	}
}

func menuItems() []ui.MenuItem {
	return []ui.MenuItem{
		ui.NewMenuItem("Create folders (names)", "Create folders with the names you enter", actionCreateFolders),
		ui.NewMenuItem("Create folders (count)", "Create N folders named <prefix>_001...", actionCreateFoldersCount),
		ui.NewMenuItem("Create files (names)", "Create empty files with the names you enter", actionCreateFiles),
		ui.NewMenuItem("Create files (count)", "Create N empty files named <prefix>_001.ext...", actionCreateFilesCount),
		ui.NewMenuItem("Rename files (sequential)", "Rename every file to <prefix>_001.ext...", actionRenameFiles),
		ui.NewMenuItem("Rename folders (sequential)", "Rename every folder to <prefix>_001...", actionRenameFolders),
		ui.NewMenuItem("Go into folder", "Make a subfolder the current directory", actionEnter),
		ui.NewMenuItem("Go to parent folder", "Move up one level", actionParent),
		ui.NewMenuItem("Settings", "Show the active configuration", actionSettings),
		ui.NewMenuItem("Quit", "Exit batchname", actionQuit),
	}
}

// showInteractiveMenu displays the menu and handles one selection.
// Returns (shouldExit, error) where shouldExit indicates if user wants to exit menu.
func (a *App) showInteractiveMenu(ctx context.Context) (bool, error) {
	terminal.SetTitle(a.titleOut, terminal.DirTitle(AppName, a.session.Current()))

	choice, err := a.prompter.Menu(a.listing(), menuItems())
	if err != nil {
		return false, err
	}

	// Empty choice means user pressed Escape/Ctrl-C - exit menu
	if choice == "" {
		return true, nil
	}

	if choice == actionQuit {
		fmt.Fprintln(a.out, "Bye")
		return true, nil
	}

	if err := a.routeMenuChoice(ctx, choice); err != nil {
		if errors.Is(err, ui.ErrCanceled) {
			fmt.Fprintln(a.out, ui.SubtleStyle.Render("Canceled."))
			return false, nil
		}

		a.logger.Warnf("%s: %v", choice, err)
		fmt.Fprintln(a.out, ui.ErrorStyle.Render("Error: "+err.Error()))
	}

	return false, nil
}

// listing renders the current directory, or the listing error in its place
func (a *App) listing() string {
	defer a.tracer.StartSpan("list")()

	folders, files, err := a.session.ListContents()
	if err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("Cannot list %s: %v", a.session.Current(), err)) + "\n"
	}

	return ui.RenderListing(a.session.Current(), folders, files)
}

func (a *App) routeMenuChoice(ctx context.Context, choice string) error {
	defer a.tracer.StartSpan("menu:" + choice)()

	var err error

	switch choice {
	case actionCreateFolders:
		err = a.RunCreateByNames(ctx, "folder", a.session.StageCreateFolders)
	case actionCreateFoldersCount:
		err = a.RunCreateByCount(ctx, "folders", a.cfg.FolderPrefix, a.session.StageCreateFoldersBySequence)
	case actionCreateFiles:
		err = a.RunCreateByNames(ctx, "file", a.session.StageCreateFiles)
	case actionCreateFilesCount:
		err = a.RunCreateByCount(ctx, "files", a.cfg.FilePrefix, a.session.StageCreateFilesBySequence)
	case actionRenameFiles:
		err = a.RunRename(ctx, "files", a.cfg.FilePrefix, a.session.StageRenameFilesSequential)
	case actionRenameFolders:
		err = a.RunRename(ctx, "folders", a.cfg.FolderPrefix, a.session.StageRenameFoldersSequential)
	case actionEnter:
		err = a.RunEnterFolder()
	case actionParent:
		err = a.RunParent()
	case actionSettings:
		err = a.prompter.ShowSettings(a.cfg, a.sources)
	default:
		return fmt.Errorf("unknown command: %s", choice)
	}

	return err
}

// RunCreateByNames prompts for names and creates one entry per name.
// kind is "folder" or "file".
func (a *App) RunCreateByNames(ctx context.Context, kind string, stage func([]string) ([]dirsession.Change, error)) error {
	preview, err := a.askPreview()
	if err != nil {
		return err
	}

	raw, err := a.prompter.Names(fmt.Sprintf("Enter %s names", kind))
	if err != nil {
		return err
	}

	names := naming.ParseList(raw)
	if len(names) == 0 {
		fmt.Fprintln(a.out, ui.SubtleStyle.Render("No names given."))
		return nil
	}

	changes, err := stage(names)
	if err != nil {
		return err
	}

	return a.commit(ctx, changes, preview)
}

// RunCreateByCount prompts for a count and a prefix and creates
// <prefix>_001 onwards. what is "folders" or "files".
func (a *App) RunCreateByCount(ctx context.Context, what, defaultPrefix string, stage func(int, string) ([]dirsession.Change, error)) error {
	preview, err := a.askPreview()
	if err != nil {
		return err
	}

	raw, err := a.prompter.Input(fmt.Sprintf("How many %s?", what), "", ui.PositiveInt)
	if err != nil {
		return err
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %q", dirsession.ErrInvalidCount, raw)
	}

	prefix, err := a.promptPrefix(what, defaultPrefix)
	if err != nil {
		return err
	}

	changes, err := stage(count, prefix)
	if err != nil {
		return err
	}

	return a.commit(ctx, changes, preview)
}

// RunRename prompts for a prefix and renames every entry of one kind
func (a *App) RunRename(ctx context.Context, what, defaultPrefix string, stage func(string) ([]dirsession.Change, error)) error {
	preview, err := a.askPreview()
	if err != nil {
		return err
	}

	prefix, err := a.promptPrefix("renamed "+what, defaultPrefix)
	if err != nil {
		return err
	}

	changes, err := stage(prefix)
	if err != nil {
		return err
	}

	return a.commit(ctx, changes, preview)
}

func (a *App) promptPrefix(what, defaultPrefix string) (string, error) {
	return a.prompter.Input(
		fmt.Sprintf("Prefix for %s (default %q)", what, defaultPrefix),
		defaultPrefix,
		naming.Validate,
	)
}

// askPreview reports whether the batch should be previewed and confirmed
func (a *App) askPreview() (bool, error) {
	switch a.cfg.Preview {
	case config.PreviewAlways:
		return true, nil
	case config.PreviewNever:
		return false, nil
	default:
		return a.prompter.Confirm("Preview changes before applying?", "")
	}
}

// commit applies changes, asking first when preview is set, and prints the report
func (a *App) commit(ctx context.Context, changes []dirsession.Change, preview bool) error {
	var report *dirsession.Report

	switch {
	case len(changes) == 0:
		report = a.session.Commit(ctx, changes, nil)

	case preview:
		ok, err := a.prompter.Confirm(
			fmt.Sprintf("Apply %d change(s)?", len(changes)),
			ui.RenderPreview(changes),
		)
		if err != nil {
			return err
		}

		if !ok {
			report = a.session.Commit(ctx, changes, &dirsession.CommitOptions{
				Confirm: func([]dirsession.Change) bool { return false },
			})

			break
		}

		fallthrough

	default:
		err := a.prompter.Progress(ctx, "Applying changes", len(changes), func(ctx context.Context, update func(int, string)) error {
			defer a.tracer.StartSpan("commit")()

			report = a.session.Commit(ctx, changes, &dirsession.CommitOptions{
				OnResult: func(done, _ int, r dirsession.Result) {
					update(done, r.Change.Resolved)
				},
			})

			if failed := len(report.Failed()); failed > 0 {
				return fmt.Errorf("%d of %d change(s) failed", failed, len(changes))
			}

			return nil
		})
		if err != nil && report == nil {
			return err
		}
	}

	fmt.Fprintln(a.out, ui.RenderReport(report))

	return nil
}

// RunEnterFolder lets the user pick a subfolder and makes it current
func (a *App) RunEnterFolder() error {
	folders, _, err := a.session.ListContents()
	if err != nil {
		return err
	}

	if len(folders) == 0 {
		fmt.Fprintln(a.out, ui.WarningStyle.Render("No folders to go into."))
		return nil
	}

	name, err := a.prompter.PickFolder(folders)
	if err != nil {
		return err
	}

	if err := a.session.NavigateInto(name); err != nil {
		return err
	}

	fmt.Fprintln(a.out, ui.InfoStyle.Render("Now in "+a.session.Current()))

	return nil
}

// RunParent moves the session up one level
func (a *App) RunParent() error {
	if err := a.session.NavigateToParent(); err != nil {
		if errors.Is(err, dirsession.ErrAtRoot) {
			fmt.Fprintln(a.out, ui.WarningStyle.Render("Already at the filesystem root."))
			return nil
		}

		return err
	}

	fmt.Fprintln(a.out, ui.InfoStyle.Render("Now in "+a.session.Current()))

	return nil
}
