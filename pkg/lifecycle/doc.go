// Package lifecycle runs the single background job that creates a project
// from a template. A host loop calls Controller.Tick on a steady cadence;
// the controller polls the job without blocking, records status lines,
// updates the project list, and keeps the finished job's log visible for a
// grace period before returning to Idle.
package lifecycle
