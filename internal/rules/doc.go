// Package rules holds the style rules and their registry.
//
// A rule is a stateless pass over one file's token stream (layout tokens
// included). It picks the tokens that break a convention and returns
// violations built with diag.At; the engine stamps the rule id and the
// configured severity. Rules never see each other's output.
package rules
