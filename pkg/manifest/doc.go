// Package manifest persists the description of an experiment run.
//
// Each run directory holds a run.json describing the identity, discount,
// frame skip and sink locations of the run, so a directory of CSV sinks can
// be interpreted without the process that produced it.
//
// # Usage
//
// Create a file-based repository in the run directory:
//
//	repo := manifest.NewFileRepository(runDir)
//
//	if err := repo.Save(ctx, run); err != nil {
//	    return err
//	}
//
//	run, ok, err := repo.Load(ctx)
//
// # Schema
//
// Every manifest carries a "version" field set to [SchemaVersion]. Load
// rejects manifests with a higher version.
package manifest
