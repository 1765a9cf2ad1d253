// Package params implements the parameter contract every constructible type
// satisfies: a self-describing Schema of accepted parameters, and the
// binding of raw block values against that schema into a typed Set.
//
// Semantic types are cty types. Binding converts each raw value with the
// cty conversion rules, so a number written as a string in the input is
// accepted for a number parameter while an unconvertible value is reported
// as a TypeError naming the block and parameter.
package params
