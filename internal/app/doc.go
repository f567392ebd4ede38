// Package app is the application layer — the only component that references
// multiple domain components. It orchestrates all use cases and maps domain
// entities into the view models the HTTP layer serializes.
package app
