// Package engine wires the classifier, rule registry, validator
// modules, scorecard builder, and PII redactor into the one entry
// point the rest of the program calls to audit a claim.
package engine

import (
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/classifier"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/redact"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/rules"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/scorecard"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/validators/financial"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/validators/flooring"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/validators/general"
	"github.com/ingo-eichhorst/claim-integrity-engine/internal/validators/water"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// moduleRuleIDs fixes the C4->C5->C6->C7 execution order: financial
// first, then water remediation, flooring, and general repair.
var moduleRuleIDs = []struct {
	name string
	ids  []string
}{
	{financial.ModuleName, financial.RuleIDs},
	{water.ModuleName, water.RuleIDs},
	{flooring.ModuleName, flooring.RuleIDs},
	{general.ModuleName, general.RuleIDs},
}

// AllModules lists every validator module name, in execution order.
func AllModules() []string {
	names := make([]string, len(moduleRuleIDs))
	for i, m := range moduleRuleIDs {
		names[i] = m.name
	}
	return names
}

// Options configures an Engine.
type Options struct {
	// EnabledModules restricts which validator modules run, by
	// ModuleName. Nil or empty means all modules run.
	EnabledModules []string
	// DisabledRules disables specific rule IDs beyond module-level
	// enablement, e.g. to silence one noisy rule without dropping the
	// whole module.
	DisabledRules []string
	// RedactPII, when true, redacts the scorecard's finding text
	// before Audit returns it.
	RedactPII bool
}

func (o Options) moduleEnabled(name string) bool {
	if len(o.EnabledModules) == 0 {
		return true
	}
	for _, m := range o.EnabledModules {
		if m == name {
			return true
		}
	}
	return false
}

// Engine audits claims against the registered validator modules. Each
// Engine owns its own registry, classifier, and redactor instances —
// there is no package-level mutable state, so distinct Engines audit
// distinct claims safely in parallel, and a shared Engine's Audit calls
// are safe too since the classifier cache and registry are mutex
// guarded.
type Engine struct {
	opts       Options
	registry   *rules.Registry
	classifier *classifier.Classifier
	redactor   *redact.Redactor
}

// New builds an Engine from opts, registering every enabled module's
// rules and disabling any rule IDs named in opts.DisabledRules.
func New(opts Options) *Engine {
	e := &Engine{
		opts:       opts,
		registry:   rules.New(),
		classifier: classifier.New(),
		redactor:   redact.New(),
	}
	e.build()
	return e
}

func (e *Engine) build() {
	e.registry = rules.New()
	if e.opts.moduleEnabled(financial.ModuleName) {
		financial.Register(e.registry)
	}
	if e.opts.moduleEnabled(water.ModuleName) {
		water.Register(e.registry)
	}
	if e.opts.moduleEnabled(flooring.ModuleName) {
		flooring.Register(e.registry)
	}
	if e.opts.moduleEnabled(general.ModuleName) {
		general.Register(e.registry)
	}
	for _, id := range e.opts.DisabledRules {
		e.registry.Disable(id)
	}
}

// Configure replaces the Engine's Options and rebuilds its registry
// accordingly. The classifier and redactor are left in place so their
// caches/logs survive reconfiguration.
func (e *Engine) Configure(opts Options) {
	e.opts = opts
	e.build()
}

// EnabledModules returns the names of the modules this Engine will
// run, in fixed execution order.
func (e *Engine) EnabledModules() []string {
	var out []string
	for _, m := range moduleRuleIDs {
		if e.opts.moduleEnabled(m.name) {
			out = append(out, m.name)
		}
	}
	return out
}

// Audit runs every enabled module against c and returns the resulting
// scorecard, redacting it first if opts.RedactPII is set.
func (e *Engine) Audit(c claim.ClaimData) (*claim.AuditScorecard, error) {
	return e.AuditWithOverride(c, e.opts.RedactPII)
}

// AuditWithOverride runs the audit exactly like Audit, but lets the
// caller override the configured RedactPII setting for this one call.
func (e *Engine) AuditWithOverride(c claim.ClaimData, redactPII bool) (*claim.AuditScorecard, error) {
	builder := scorecard.NewBuilder(c)
	ctx := rules.Context{Classifier: e.classifier}

	for _, m := range moduleRuleIDs {
		if !e.opts.moduleEnabled(m.name) {
			continue
		}
		findings := e.registry.ExecuteRules(m.ids, c, ctx)
		builder.AddFindings(findings)
		builder.AddModule(m.name)
	}

	sc := builder.Build()
	if redactPII {
		sc = e.redactor.RedactScorecard(sc)
	}
	return sc, nil
}

// Redactor exposes the Engine's redactor so callers can inspect its
// audit log (e.g. Redactor().Summary()) after an Audit call with
// redaction enabled.
func (e *Engine) Redactor() *redact.Redactor { return e.redactor }

// Registry exposes the Engine's rule registry for introspection, e.g.
// listing every rule a given configuration will run.
func (e *Engine) Registry() *rules.Registry { return e.registry }

// AuditClaim is a package-level convenience that builds a default
// Engine (every module enabled) and audits c in one call.
func AuditClaim(c claim.ClaimData, redactPII bool) (*claim.AuditScorecard, error) {
	return New(Options{}).AuditWithOverride(c, redactPII)
}
