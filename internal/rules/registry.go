// Package rules holds the rule registry: the indexed collection of
// audit rules each validator module registers into, with fault-isolated
// execution and monotonic finding-id minting.
package rules

import (
	"fmt"
	"sync"

	"github.com/ingo-eichhorst/claim-integrity-engine/internal/classifier"
	"github.com/ingo-eichhorst/claim-integrity-engine/pkg/claim"
)

// Context is passed to every rule's Validate function. It carries the
// shared classifier so rules never construct their own.
type Context struct {
	Classifier *classifier.Classifier
}

// ValidateFunc runs one rule's check against a claim and returns the
// findings it raises. A rule that finds nothing wrong returns a nil or
// empty slice, not an error; ValidateFunc returning an error means the
// rule itself failed, which the registry turns into a single synthetic
// finding.
type ValidateFunc func(c claim.ClaimData, ctx Context) ([]claim.AuditFinding, error)

// Rule is one registered audit rule.
type Rule struct {
	RuleID      string
	Name        string
	Description string
	Category    claim.AuditCategory
	Severity    claim.AuditSeverity
	Validate    ValidateFunc
	Enabled     bool
}

// Registry holds rules indexed by id, tracks per-category insertion
// order, and mints finding ids. The zero value is not usable; construct
// with New. Each Engine owns its own Registry, per the no-process-wide-
// mutable-state rule.
type Registry struct {
	mu        sync.Mutex
	rules     map[string]*Rule
	order     []string // insertion order, all rules
	counter   int
}

// New returns an empty, ready-to-use Registry.
func New() *Registry {
	return &Registry{rules: make(map[string]*Rule)}
}

// Add registers a rule. Re-adding a rule_id replaces the prior
// definition in place but keeps its original position in insertion
// order.
func (r *Registry) Add(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.RuleID]; !exists {
		r.order = append(r.order, rule.RuleID)
	}
	stored := rule
	if !ruleHasEnabledSet(rule) {
		stored.Enabled = true
	}
	r.rules[rule.RuleID] = &stored
}

// ruleHasEnabledSet reports whether rule arrives with Enabled already
// true. Add cannot tell an explicit Enabled: false from the zero value,
// so it treats Enabled == false as "use the default" and registers the
// rule enabled; disabling at registration time is done via Disable
// after Add, not by passing Enabled: false.
func ruleHasEnabledSet(rule Rule) bool {
	return rule.Enabled
}

// Remove deletes a rule from the registry entirely.
func (r *Registry) Remove(ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rules, ruleID)
	for i, id := range r.order {
		if id == ruleID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Enable turns a rule on.
func (r *Registry) Enable(ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule, ok := r.rules[ruleID]; ok {
		rule.Enabled = true
	}
}

// Disable turns a rule off. A disabled rule is skipped by Execute,
// ExecuteAll, and ExecuteCategory.
func (r *Registry) Disable(ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rule, ok := r.rules[ruleID]; ok {
		rule.Enabled = false
	}
}

// Get returns the rule with the given id, and whether it was found.
func (r *Registry) Get(ruleID string) (Rule, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok {
		return Rule{}, false
	}
	return *rule, true
}

// RulesByCategory returns the enabled rules in the given category, in
// insertion order.
func (r *Registry) RulesByCategory(cat claim.AuditCategory) []Rule {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Rule
	for _, id := range r.order {
		rule := r.rules[id]
		if rule.Enabled && rule.Category == cat {
			out = append(out, *rule)
		}
	}
	return out
}

// List returns every registered rule, enabled or not, in insertion
// order. Backs the CLI's rule-introspection command.
func (r *Registry) List() []Rule {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.rules[id])
	}
	return out
}

// NewFindingID mints the next monotonic finding id. The counter is
// private to the registry and never resets.
func (r *Registry) NewFindingID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	return fmt.Sprintf("FND-%06d", r.counter)
}

// Execute runs one rule against a claim with fault isolation: if the
// rule is disabled or has no Validate function, it returns no findings.
// If Validate panics or returns an error, Execute recovers and returns
// exactly one synthetic finding describing the failure, tagged with the
// rule's own category and severity, instead of propagating the failure
// to the caller. The audit as a whole always completes.
func (r *Registry) Execute(rule Rule, c claim.ClaimData, ctx Context) (findings []claim.AuditFinding) {
	if !rule.Enabled || rule.Validate == nil {
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			findings = []claim.AuditFinding{r.ruleExecutionError(rule, "panic", fmt.Sprintf("panic: %v", rec))}
		}
	}()

	results, err := rule.Validate(c, ctx)
	if err != nil {
		return []claim.AuditFinding{r.ruleExecutionError(rule, fmt.Sprintf("%T", err), err.Error())}
	}
	for i, f := range results {
		if f.FindingID == "" {
			f.FindingID = r.NewFindingID()
			results[i] = f
		}
	}
	return results
}

func (r *Registry) ruleExecutionError(rule Rule, kind, message string) claim.AuditFinding {
	return claim.AuditFinding{
		FindingID:   r.NewFindingID(),
		RuleName:    rule.Name,
		Category:    rule.Category,
		Severity:    rule.Severity,
		Title:       "Rule Execution Error: " + rule.Name,
		Description: fmt.Sprintf("rule %s failed during execution: %s", rule.RuleID, message),
		Evidence: map[string]any{
			"error":      message,
			"error_type": kind,
			"rule_id":    rule.RuleID,
		},
	}
}

// ExecuteAll runs every enabled rule, in insertion order, concatenating
// their findings.
func (r *Registry) ExecuteAll(c claim.ClaimData, ctx Context) []claim.AuditFinding {
	r.mu.Lock()
	order := append([]string(nil), r.order...)
	r.mu.Unlock()

	var out []claim.AuditFinding
	for _, id := range order {
		rule, ok := r.Get(id)
		if !ok {
			continue
		}
		out = append(out, r.Execute(rule, c, ctx)...)
	}
	return out
}

// ExecuteCategory runs every enabled rule in the given category, in
// insertion order, concatenating their findings.
func (r *Registry) ExecuteCategory(cat claim.AuditCategory, c claim.ClaimData, ctx Context) []claim.AuditFinding {
	var out []claim.AuditFinding
	for _, rule := range r.RulesByCategory(cat) {
		out = append(out, r.Execute(rule, c, ctx)...)
	}
	return out
}

// ExecuteRules runs exactly the named rules, in the given order,
// concatenating their findings. Validator modules use this (rather than
// ExecuteCategory) to run their own rule set: a module's rules usually
// share one AuditCategory, but several modules can share a category
// too (e.g. both water remediation and general repair raise "leakage"
// findings), so category alone cannot select "this module's rules".
func (r *Registry) ExecuteRules(ruleIDs []string, c claim.ClaimData, ctx Context) []claim.AuditFinding {
	var out []claim.AuditFinding
	for _, id := range ruleIDs {
		rule, ok := r.Get(id)
		if !ok {
			continue
		}
		out = append(out, r.Execute(rule, c, ctx)...)
	}
	return out
}
