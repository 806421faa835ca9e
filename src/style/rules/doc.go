// Package rules contains all built-in style rules.
// Import this package to register them via their init() functions.
package rules
