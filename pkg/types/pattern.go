// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// PatternID names a visual template a beat can be mapped onto.
// The set is closed; per prd013-pattern R1.1.
type PatternID string

const (
	PatternTitle    PatternID = "title"
	PatternChart    PatternID = "chart"
	PatternStatRows PatternID = "stat-rows"
	PatternStatHero PatternID = "stat-hero"
	PatternQuote    PatternID = "quote"
	PatternSteps    PatternID = "steps"
	PatternCallout  PatternID = "callout"
)

// PatternProps is the schema-validated prop set of one pattern. A props
// value that fails Validate is rejected outright, never coerced
// (prd013-pattern R4.1).
type PatternProps interface {
	Pattern() PatternID
	Validate() error
}

// PatternDecision binds one beat to a visual template.
type PatternDecision struct {
	Pattern PatternID `json:"pattern" yaml:"pattern"`

	Props PatternProps `json:"props" yaml:"props"`

	// Rationale explains the rule that fired. Diagnostic only.
	Rationale string `json:"rationale" yaml:"rationale"`
}

// TitleProps renders a headline with an optional subhead.
type TitleProps struct {
	Title   string `json:"title" yaml:"title"`
	Subhead string `json:"subhead,omitempty" yaml:"subhead,omitempty"`
}

func (TitleProps) Pattern() PatternID { return PatternTitle }

func (p TitleProps) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title props: title is empty")
	}
	if len(p.Title) > 80 {
		return fmt.Errorf("title props: title exceeds 80 characters (%d)", len(p.Title))
	}
	return nil
}

// ChartProps renders a numeric series as a chart.
type ChartProps struct {
	Title  string        `json:"title,omitempty" yaml:"title,omitempty"`
	Points []SeriesPoint `json:"points" yaml:"points"`
}

func (ChartProps) Pattern() PatternID { return PatternChart }

func (p ChartProps) Validate() error {
	if len(p.Points) == 0 {
		return fmt.Errorf("chart props: no points")
	}
	if len(p.Points) > 6 {
		return fmt.Errorf("chart props: %d points exceeds maximum of 6", len(p.Points))
	}
	for i, pt := range p.Points {
		if pt.Label == "" {
			return fmt.Errorf("chart props: point %d has empty label", i)
		}
	}
	return nil
}

// Stat is one value/label pair of a stat-rows pattern.
type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// StatRowsProps renders up to four stats side by side.
type StatRowsProps struct {
	Stats []Stat `json:"stats" yaml:"stats"`
}

func (StatRowsProps) Pattern() PatternID { return PatternStatRows }

func (p StatRowsProps) Validate() error {
	if len(p.Stats) < 2 {
		return fmt.Errorf("stat-rows props: need at least 2 stats, have %d", len(p.Stats))
	}
	if len(p.Stats) > 4 {
		return fmt.Errorf("stat-rows props: %d stats exceeds maximum of 4", len(p.Stats))
	}
	for i, st := range p.Stats {
		if st.Value == "" {
			return fmt.Errorf("stat-rows props: stat %d has empty value", i)
		}
	}
	return nil
}

// StatHeroProps renders one oversized stat with a label.
type StatHeroProps struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

func (StatHeroProps) Pattern() PatternID { return PatternStatHero }

func (p StatHeroProps) Validate() error {
	if p.Value == "" {
		return fmt.Errorf("stat-hero props: value is empty")
	}
	if len(p.Label) > 120 {
		return fmt.Errorf("stat-hero props: label exceeds 120 characters (%d)", len(p.Label))
	}
	return nil
}

// QuoteProps renders a pull quote.
type QuoteProps struct {
	Quote       string `json:"quote" yaml:"quote"`
	Attribution string `json:"attribution,omitempty" yaml:"attribution,omitempty"`
}

func (QuoteProps) Pattern() PatternID { return PatternQuote }

func (p QuoteProps) Validate() error {
	if p.Quote == "" {
		return fmt.Errorf("quote props: quote is empty")
	}
	if len(p.Quote) > 240 {
		return fmt.Errorf("quote props: quote exceeds 240 characters (%d)", len(p.Quote))
	}
	return nil
}

// StepsProps renders a numbered sequence of steps.
type StepsProps struct {
	Steps []string `json:"steps" yaml:"steps"`
}

func (StepsProps) Pattern() PatternID { return PatternSteps }

func (p StepsProps) Validate() error {
	if len(p.Steps) < 3 {
		return fmt.Errorf("steps props: need at least 3 steps, have %d", len(p.Steps))
	}
	if len(p.Steps) > 6 {
		return fmt.Errorf("steps props: %d steps exceeds maximum of 6", len(p.Steps))
	}
	for i, s := range p.Steps {
		if s == "" {
			return fmt.Errorf("steps props: step %d is empty", i)
		}
	}
	return nil
}

// CalloutProps renders a titled text block. The default pattern.
type CalloutProps struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

func (CalloutProps) Pattern() PatternID { return PatternCallout }

func (p CalloutProps) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("callout props: title is empty")
	}
	if len(p.Title) > 60 {
		return fmt.Errorf("callout props: title exceeds 60 characters (%d)", len(p.Title))
	}
	if len(p.Body) > 200 {
		return fmt.Errorf("callout props: body exceeds 200 characters (%d)", len(p.Body))
	}
	return nil
}
