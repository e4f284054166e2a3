// Package scoring judges the player's decisions. Flagging an email as a
// threat or marking it safe is compared with the email's ground truth and
// turned into discoveries; correct threat calls unlock artifacts.
package scoring

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/emaildig/internal/analysis"
	"github.com/dmitrijs2005/emaildig/internal/catalog"
	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/logging"
	"github.com/dmitrijs2005/emaildig/internal/models"
	"github.com/dmitrijs2005/emaildig/internal/session"
)

// Analyzer runs a forensics tool. *analysis.Engine implements it.
type Analyzer interface {
	Analyze(tool models.ToolID, email models.Email) (analysis.Result, error)
}

// Inspection is an analysis held until the player decides.
type Inspection struct {
	Email  *models.Email
	Result analysis.Result
}

type Option func(*Engine)

// WithAnalyzer replaces the default analysis engine.
func WithAnalyzer(a Analyzer) Option {
	return func(e *Engine) { e.analyzer = a }
}

type Engine struct {
	sess     *session.Manager
	cat      *catalog.Catalog
	log      logging.Logger
	analyzer Analyzer

	pending *Inspection
}

func NewEngine(sess *session.Manager, cat *catalog.Catalog, log logging.Logger, opts ...Option) *Engine {
	e := &Engine{
		sess:     sess,
		cat:      cat,
		log:      log,
		analyzer: analysis.NewEngine(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) precheck(email *models.Email, result *analysis.Result) (*models.Site, error) {
	if result == nil {
		return nil, common.ErrNoAnalysis
	}
	if email == nil {
		return nil, common.ErrNoEmail
	}
	site := e.sess.CurrentSite()
	if site == nil {
		return nil, common.ErrNoSiteSelected
	}
	return site, nil
}

// RecordFlagAsThreat scores the decision "this email is a threat".
//
// For a phishing email every hypothesis in result becomes a correct threat
// discovery and unlocks its artifact at the current site if it is new. A
// result with no hypotheses yields one general-phishing discovery and no
// artifact. Flagging a legitimate email yields a false positive.
func (e *Engine) RecordFlagAsThreat(ctx context.Context, email *models.Email, result *analysis.Result) ([]models.Discovery, error) {
	site, err := e.precheck(email, result)
	if err != nil {
		return nil, err
	}
	layer := e.sess.CurrentLayer()
	log := e.log.With("site", site.ID, "layer", layer, "tool", result.Tool)

	var out []models.Discovery
	switch {
	case email.IsLegitimate:
		out = append(out, models.Discovery{
			Layer:       layer,
			Kind:        models.DiscoveryFalsePositive,
			IsCorrect:   false,
			Description: fmt.Sprintf("Incorrectly flagged legitimate email in layer %d", layer),
		})

	case len(result.Threats) == 0:
		out = append(out, models.Discovery{
			Layer:       layer,
			Kind:        models.DiscoveryThreat,
			ThreatType:  models.GeneralPhishing,
			IsCorrect:   true,
			Description: fmt.Sprintf("Correctly identified phishing attempt in layer %d", layer),
		})

	default:
		for _, tag := range result.Threats {
			out = append(out, models.Discovery{
				Layer:       layer,
				Kind:        models.DiscoveryThreat,
				ThreatType:  tag,
				IsCorrect:   true,
				Description: fmt.Sprintf("Correctly identified %s in layer %d", e.cat.ArtifactName(tag), layer),
			})
			if e.sess.UnlockArtifact(tag, email.Subject) {
				log.Info(ctx, "artifact unlocked", "artifact", tag)
			}
		}
	}

	e.sess.AppendDiscoveries(out...)
	log.Debug(ctx, "email flagged as threat", "legitimate", email.IsLegitimate, "discoveries", len(out))
	return out, nil
}

// RecordMarkSafe scores the decision "this email is safe".
func (e *Engine) RecordMarkSafe(ctx context.Context, email *models.Email, result *analysis.Result) (models.Discovery, error) {
	site, err := e.precheck(email, result)
	if err != nil {
		return models.Discovery{}, err
	}
	layer := e.sess.CurrentLayer()

	d := models.Discovery{
		Layer:       layer,
		Kind:        models.DiscoverySafe,
		IsCorrect:   true,
		Description: fmt.Sprintf("Correctly identified legitimate email in layer %d", layer),
	}
	if !email.IsLegitimate {
		d = models.Discovery{
			Layer:       layer,
			Kind:        models.DiscoveryFalseNegative,
			IsCorrect:   false,
			Description: fmt.Sprintf("Missed threat in layer %d - marked as safe incorrectly", layer),
		}
	}

	e.sess.AppendDiscoveries(d)
	e.log.Debug(ctx, "email marked safe", "site", site.ID, "layer", layer, "correct", d.IsCorrect)
	return d, nil
}

// Inspect runs tool against the current email and holds the result for the
// next FlagThreat or MarkSafe. A later Inspect replaces it.
func (e *Engine) Inspect(ctx context.Context, tool models.ToolID) (analysis.Result, error) {
	if e.sess.CurrentSite() == nil {
		return analysis.Result{}, common.ErrNoSiteSelected
	}
	email := e.sess.CurrentEmail()
	if email == nil {
		return analysis.Result{}, common.ErrNoEmail
	}

	res, err := e.analyzer.Analyze(tool, *email)
	if err != nil {
		return analysis.Result{}, err
	}
	e.pending = &Inspection{Email: email, Result: res}
	e.log.Debug(ctx, "tool used", "tool", tool, "layer", email.Layer, "hypotheses", len(res.Threats))
	return res, nil
}

// Pending returns the held analysis, if any.
func (e *Engine) Pending() (Inspection, bool) {
	if e.pending == nil {
		return Inspection{}, false
	}
	return *e.pending, true
}

// Discard drops the held analysis.
func (e *Engine) Discard() {
	e.pending = nil
}

// FlagThreat scores the held analysis as a threat call and releases it.
func (e *Engine) FlagThreat(ctx context.Context) ([]models.Discovery, error) {
	if e.pending == nil {
		return nil, common.ErrNoAnalysis
	}
	ds, err := e.RecordFlagAsThreat(ctx, e.pending.Email, &e.pending.Result)
	if err != nil {
		return nil, err
	}
	e.pending = nil
	return ds, nil
}

// MarkSafe scores the held analysis as a safe call and releases it.
func (e *Engine) MarkSafe(ctx context.Context) (models.Discovery, error) {
	if e.pending == nil {
		return models.Discovery{}, common.ErrNoAnalysis
	}
	d, err := e.RecordMarkSafe(ctx, e.pending.Email, &e.pending.Result)
	if err != nil {
		return models.Discovery{}, err
	}
	e.pending = nil
	return d, nil
}

// SelectSite switches site and drops any held analysis.
func (e *Engine) SelectSite(id string) error {
	if err := e.sess.SelectSite(id); err != nil {
		return err
	}
	e.pending = nil
	return nil
}

// AdvanceLayer moves to the next layer and drops any held analysis when it
// moved.
func (e *Engine) AdvanceLayer() (bool, error) {
	moved, err := e.sess.AdvanceLayer()
	if moved {
		e.pending = nil
	}
	return moved, err
}

// CompleteSite documents the current site and drops any held analysis, so
// nothing can be scored after the checkpoint. A save error still comes back
// with the summary.
func (e *Engine) CompleteSite(ctx context.Context) (session.Summary, error) {
	sum, err := e.sess.CompleteSite(ctx)
	if sum.Site != nil {
		e.pending = nil
	}
	return sum, err
}
