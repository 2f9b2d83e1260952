// Package fuzztests houses Go fuzz harnesses for the tokenizer and the rule
// engine. They guard the token-stream laws (round trip, contiguous spans,
// ascending positions) and check that no input makes a rule panic.
//
// Зависимости: internal/source, internal/lexer, internal/engine,
// internal/rules, internal/testkit.
package fuzztests
