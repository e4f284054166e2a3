package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/format"
	"github.com/dmitrijs2005/emaildig/internal/logging"
	"github.com/dmitrijs2005/emaildig/internal/models"
	"github.com/dmitrijs2005/emaildig/internal/report"
	"github.com/dmitrijs2005/emaildig/internal/scoring"
	"github.com/dmitrijs2005/emaildig/internal/session"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	cat    *catalog.Catalog
	sess   *session.Manager
	engine *scoring.Engine
	log    logging.Logger
	out    io.Writer
	mode   format.Mode
}

type Option func(*App)

// WithOutput sends all screens to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithMode selects ASCII or Markdown tables.
func WithMode(m format.Mode) Option {
	return func(a *App) { a.mode = m }
}

func NewApp(cat *catalog.Catalog, sess *session.Manager, engine *scoring.Engine, log logging.Logger, opts ...Option) *App {
	a := &App{
		cat:    cat,
		sess:   sess,
		engine: engine,
		log:    log,
		out:    os.Stdout,
		mode:   format.ASCII,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run reads commands from in until "exit" or end of input. The prompt is
// only printed when in is a terminal.
func (a *App) Run(ctx context.Context, in io.Reader) {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isTerminal(int(f.Fd()))
	}

	a.printf("⛏️  Email Archaeology Dig (type 'help' for commands)\n")
	_ = a.Stats(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(in), interactive)
}

// status is shown in the prompt: site, layer and a marker for a held analysis.
func (a *App) status() string {
	site := a.sess.CurrentSite()
	if site == nil {
		return ""
	}
	s := fmt.Sprintf("%s %d/%d", site.ID, a.sess.CurrentLayer(), site.Layers)
	if _, held := a.engine.Pending(); held {
		s += " 🔍"
	}
	return s
}

func (a *App) printf(f string, args ...any) {
	fmt.Fprintf(a.out, f, args...)
}

// fail tells the player what went wrong and returns err for the caller.
func (a *App) fail(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrNoSiteSelected):
		a.printf("No site selected. Use 'sites' and then 'select <site-id>'.\n")
	case errors.Is(err, common.ErrNoAnalysis):
		a.printf("Nothing to decide on yet. Analyse the email first with 'use <tool-id>'.\n")
	case errors.Is(err, common.ErrNoEmail):
		a.printf("There is no email at this layer.\n")
	case errors.Is(err, common.ErrUnknownSite):
		a.printf("Unknown site. Type 'sites' to list them.\n")
	case errors.Is(err, common.ErrUnknownTool):
		a.printf("Unknown tool. Type 'tools' to list them.\n")
	default:
		a.log.Error(ctx, "command failed", "error", err)
		a.printf("Error: %v\n", err)
	}
	return err
}

func (a *App) Sites(ctx context.Context) error {
	a.printf("%s\n", renderSites(a.cat.Sites(), a.sess, a.mode))
	return nil
}

func (a *App) Select(ctx context.Context, id string) error {
	if err := a.engine.SelectSite(id); err != nil {
		return a.fail(ctx, err)
	}
	a.log.Info(ctx, "site selected", "site", id)
	return a.Show(ctx)
}

func (a *App) Show(ctx context.Context) error {
	site := a.sess.CurrentSite()
	if site == nil {
		return a.fail(ctx, common.ErrNoSiteSelected)
	}
	email := a.sess.CurrentEmail()
	if email == nil {
		return a.fail(ctx, common.ErrNoEmail)
	}
	a.printf("%s", renderLayer(site, a.sess.CurrentLayer(), email))
	return nil
}

func (a *App) Tools(ctx context.Context) error {
	a.printf("%s\n", renderTools(a.cat.Tools(), a.mode))
	return nil
}

func (a *App) Use(ctx context.Context, tool string) error {
	res, err := a.engine.Inspect(ctx, models.ToolID(tool))
	if err != nil {
		return a.fail(ctx, err)
	}
	info, err := a.cat.Tool(res.Tool)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%s", renderResult(info, res))
	a.printf("Type 'flag' to flag this email as a threat or 'safe' to mark it safe.\n")
	return nil
}

func (a *App) Flag(ctx context.Context) error {
	ds, err := a.engine.FlagThreat(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	for _, d := range ds {
		a.printf("%s\n", renderDiscovery(d))
	}
	return nil
}

func (a *App) Safe(ctx context.Context) error {
	d, err := a.engine.MarkSafe(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%s\n", renderDiscovery(d))
	return nil
}

// Dig moves one layer deeper, or documents the findings at the last layer.
func (a *App) Dig(ctx context.Context) error {
	if a.sess.IsLastLayer() {
		return a.Complete(ctx)
	}
	if _, err := a.engine.AdvanceLayer(); err != nil {
		return a.fail(ctx, err)
	}
	return a.Show(ctx)
}

func (a *App) Complete(ctx context.Context) error {
	sum, err := a.engine.CompleteSite(ctx)
	if sum.Site == nil {
		return a.fail(ctx, err)
	}

	r := report.Build(sum.Site, a.sess.State(), sum.Accuracy)
	a.printf("%s", report.Render(r, a.cat, a.mode))
	if sum.LeveledUp() {
		a.printf("🎉 New rank: %s\n", sum.Level)
	}
	if err != nil {
		a.printf("Warning: progress could not be saved: %v\n", err)
		return err
	}
	return nil
}

func (a *App) Log(ctx context.Context) error {
	a.printf("%s", renderLog(a.sess.State().Discoveries))
	return nil
}

func (a *App) Artifacts(ctx context.Context) error {
	a.printf("%s", renderArtifacts(a.cat, a.sess.State().UnlockedArtifacts, a.mode))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	a.printf("%s", renderStats(a.sess.State(), a.sess.CurrentSite(), a.sess.Accuracy()))
	return nil
}

func (a *App) History(ctx context.Context) error {
	hist, err := a.sess.History(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%s", renderHistory(hist, a.mode))
	return nil
}

func (a *App) Slots(ctx context.Context) error {
	slots, err := a.sess.Slots(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%s", renderSlots(slots, a.mode))
	return nil
}

func (a *App) Guide(ctx context.Context) error {
	a.printf("%s", guide)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	if err := a.sess.Reset(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.engine.Discard()
	a.printf("Progress erased. A new dig begins.\n")
	return nil
}

// Wipe erases every slot and the journal.
func (a *App) Wipe(ctx context.Context) error {
	if err := a.sess.Wipe(ctx); err != nil {
		return a.fail(ctx, err)
	}
	a.engine.Discard()
	a.printf("All saved games and the excavation journal erased. A new dig begins.\n")
	return nil
}
