// Package ports defines the interfaces (ports) that connect the environment
// adapter to infrastructure adapters.
//
// Ports are the boundaries between the adapter core and the outside world.
// They define what the core needs from external systems without specifying
// how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Env]: The raw stepping environment being wrapped
//   - [StepSink]: Durable, append-only storage for step records
//   - [RunRegistry]: Catalog of experiment runs
//
// # Usage
//
// pkg/envtap depends only on these interfaces and on pkg/log for logging.
// Concrete implementations live in pkg/steplog (CSV sinks) and
// internal/adapters/sqlite (registry).
package ports
