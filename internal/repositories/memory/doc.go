// Package memory provides in-process implementations of the repository interfaces.
// They back the offline mode (storage.driver=memory) and serve as fixtures in tests.
// Each repository enforces the same uniqueness and conditional-update rules as the
// MongoDB implementations.
package memory
