// Package style decides how a feature is drawn from its attributes.
//
// # Polygons
//
// A [Classifier] holds an ordered list of [Rule] values. [Classifier.Classify]
// starts from [Default] and walks the feature's properties in order; for each
// property it applies every rule whose predicate matches. A rule carries a
// [Patch] whose nil fields are left alone, so a later match can override the
// fill or layer an earlier one set without touching the stroke:
//
//	c := style.NewClassifier()
//	s := c.Classify(world.Properties{{Name: "water", Value: "yes"}, {Name: "building", Value: "Medical"}})
//	// s.Fill == "red", s.Layer == "medical", s.Stroke == "none"
//
// The built-in rules ([BuiltinRules]) are:
//
//  1. water=*          → layer water, fill blue, no stroke
//  2. natural=wood     → fill green, no stroke
//  3. building=Medical → layer medical, fill red, no stroke
//
// # Points
//
// Points are labels. [Label] returns the first name_en value; a point without
// one draws nothing. Labels always go to [LayerText].
//
// [Classifier.Decide] wraps both cases for the renderer.
package style
