// Package steplog records environment transitions in append-only CSV sinks.
//
// A sink is one comma-delimited file per (experiment identity, mode). It is
// created once with a header row and then only ever grows: every Append opens
// the file in append mode, writes one complete row in a single write, and
// syncs before returning.
//
// # Usage
//
//	sink := steplog.NewFileSink("/data/experiments", "envtap", logger)
//	id := domain.SinkID{Identity: ident, Mode: domain.ModeTrain}
//
//	if err := sink.Initialize(id, domain.Header); err != nil {
//	    return err
//	}
//	if err := sink.Append(id, domain.NewStepRecord(1, 0.5, false, info)); err != nil {
//	    return err // wraps domain.ErrIO
//	}
//
// # Layout
//
//	<root>/<project>/<game>/<YYYY.MM.DD>/<token>/<token>_<game>_train_reward_history.csv
//	<root>/<project>/<game>/<YYYY.MM.DD>/<token>/test-<suite>/<token>_<game>_test_reward_history.csv
//
// # Hazard
//
// Initialize truncates. Initializing a sink that already holds rows discards
// them; the adapter only initializes at construction.
//
// # Reading back
//
// [ReadFile] parses a sink into [Row] values, [Summarize] aggregates them and
// [Follow] streams rows as they are appended.
package steplog
