// Package prompts holds the static prompt sets the experiments draw from.
// The built-in sets can be extended or replaced via a YAML overlay file.
package prompts
