// Package inspect renders register viewer pages as plain text for the CLI
// and the interactive browser, and resolves user-typed names
// case-insensitively.
package inspect
