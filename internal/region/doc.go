// Package region tracks the active region of a text view: the user-selected
// sub-range of the document that search, replace, and the highlight overlay
// are confined to. The region is distinct from the transient selection it is
// captured from and defaults to the full document extent.
package region
