// Package diagnostic provides structured warnings, errors and infos
// collected during a generation run.
//
// Per-operation and per-model anomalies never abort a run. They are
// recorded here with a stable code so callers can report them:
//   - root paths without a tag (untitled groups)
//   - parameterized first segments without a tag
//   - unrecognized configuration overrides
//   - overrides discarded by a variant's hard rules
package diagnostic
