package style

import (
	"fmt"

	"github.com/matzehuels/worldsvg/pkg/errors"
	"github.com/matzehuels/worldsvg/pkg/render/layers"
	"github.com/matzehuels/worldsvg/pkg/world"
)

// AnyValue matches every value of the named property.
const AnyValue = "*"

// Rule matches a single property and patches the style when it does.
// An empty Value and [AnyValue] both match any value of the named property.
type Rule struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
	Patch
}

// Matches reports whether p triggers the rule.
func (r Rule) Matches(p world.Property) bool {
	if p.Name != r.Name {
		return false
	}
	return r.anyValue() || p.Value == r.Value
}

func (r Rule) anyValue() bool {
	return r.Value == "" || r.Value == AnyValue
}

// Validate checks that the rule names a property and, if it moves features
// to another layer, that the layer name is usable as a file name and is not
// one of the store's own layers.
func (r Rule) Validate() error {
	if r.Name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "rule has no property name")
	}
	if r.Layer != nil {
		if err := errors.ValidateLayerName(*r.Layer); err != nil {
			return fmt.Errorf("rule %s: %w", r, err)
		}
		if layers.Reserved(*r.Layer) {
			return errors.New(errors.ErrCodeInvalidLayer, "rule %s: layer %q is reserved", r, *r.Layer)
		}
	}
	return nil
}

func (r Rule) String() string {
	if r.anyValue() {
		return r.Name + "=" + AnyValue
	}
	return r.Name + "=" + r.Value
}

// Describe returns the predicate and the patch, e.g. "water=* -> fill=blue".
func (r Rule) Describe() string {
	return r.String() + " -> " + r.Patch.String()
}

func ptr(s string) *string { return &s }

// BuiltinRules returns the default rule set, in evaluation order.
func BuiltinRules() []Rule {
	return []Rule{
		{Name: "water", Patch: Patch{Layer: ptr(LayerWater), Fill: ptr(ColorBlue), Stroke: ptr(None)}},
		{Name: "natural", Value: "wood", Patch: Patch{Fill: ptr(ColorGreen), Stroke: ptr(None)}},
		{Name: "building", Value: "Medical", Patch: Patch{Layer: ptr(LayerMedical), Fill: ptr(ColorRed), Stroke: ptr(None)}},
	}
}

// Classifier resolves styles from properties using an ordered rule list.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier with the built-in rules followed by
// extra. Extra rules are evaluated after the built-ins for each property, so
// they take precedence when both match.
func NewClassifier(extra ...Rule) *Classifier {
	rules := append(BuiltinRules(), extra...)
	return &Classifier{rules: rules}
}

// Rules returns a copy of the classifier's rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify folds the rules over props in attribute order, starting from
// Default.
func (c *Classifier) Classify(props world.Properties) Style {
	s := Default()
	for _, p := range props {
		for _, r := range c.rules {
			if r.Matches(p) {
				s = r.Apply(s)
			}
		}
	}
	return s
}

// Label returns the first name_en value in props.
func Label(props world.Properties) (string, bool) {
	return props.Lookup(LabelProperty)
}

// Decide resolves the drawing decision for a geometry of kind k.
// Unsupported kinds and unlabeled points are not drawn.
func (c *Classifier) Decide(k world.Kind, props world.Properties) Decision {
	d := Decision{Kind: k}
	switch k {
	case world.KindPolygon:
		d.Style = c.Classify(props)
		d.Draw = true
	case world.KindPoint:
		d.Label, d.Draw = Label(props)
		d.Style = Style{Fill: ColorBlue, Stroke: None, Layer: LayerText}
	}
	return d
}
