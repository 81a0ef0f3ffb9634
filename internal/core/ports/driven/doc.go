// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TableCodec: Delimited file reading and writing
//   - Normaliser: Turns a manuscript file into plain text
//   - NormaliserRegistry: Selects the normaliser for a file
//   - Segmenter: Splits plain text into story segments
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the commands that need them report an error:
//
//   - StoryStore: Story library persistence
//   - FileWatcher: Change notifications for watch mode
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
