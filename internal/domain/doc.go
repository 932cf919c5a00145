// Package domain contains the core domain entities and value objects for envtap.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (file system, logging, storage) and
// contains only the types that flow between the codec, the step logger and the
// environment adapter.
//
// # Entities
//
//   - [Frame]: One observation snapshot of unsigned 8-bit samples (H×W×C)
//   - [EncodedFrame]: The lossless transport form of a Frame
//   - [StepRecord]: One logged transition (step index, reward, done, info)
//   - [Identity]: The run-scoped experiment identity used to namespace sinks
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on invariants
//   - Testable without mocks or external systems
package domain
