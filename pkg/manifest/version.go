package manifest

// SchemaVersion is written into every run.json. Load refuses manifests
// written by a newer schema.
const SchemaVersion = 1
