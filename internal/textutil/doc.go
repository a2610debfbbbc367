// Package textutil holds small text helpers shared by the catalog and episode
// packages: diacritic folding for Vietnamese labels and slug derivation.
package textutil
