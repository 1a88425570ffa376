package query

import (
	"strings"

	"github.com/collisiondb/collisiondb/internal/record"
)

// Plan is a validated request ready to run against any snapshot.
type Plan struct {
	predicates []predicate
	key        string
}

// NewPlan validates every condition of req before anything is executed.
func NewPlan(req Request) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &Plan{predicates: make([]predicate, 0, len(req.Conditions))}
	keys := make([]string, 0, len(req.Conditions))
	for _, c := range req.Conditions {
		pred, err := compile(c)
		if err != nil {
			return nil, err
		}
		p.predicates = append(p.predicates, pred)
		keys = append(keys, conditionKey(c))
	}
	p.key = strings.Join(keys, ";")
	return p, nil
}

func conditionKey(c Condition) string {
	var sb strings.Builder
	sb.WriteString(c.Field.String())
	sb.WriteByte('|')
	sb.WriteString(string(c.Operator))
	sb.WriteByte('|')
	sb.WriteString(c.Literal.key())
	if c.Not {
		sb.WriteString("|not")
	}
	if c.CaseInsensitive {
		sb.WriteString("|ci")
	}
	return sb.String()
}

// Key identifies the plan's semantics; equal keys give equal results on the
// same snapshot.
func (p *Plan) Key() string { return p.key }

func (p *Plan) Len() int { return len(p.predicates) }

// Match evaluates the conditions in order and stops at the first that fails.
func (p *Plan) Match(rec *record.Record) (bool, error) {
	for _, pred := range p.predicates {
		ok, err := pred.match(rec)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
