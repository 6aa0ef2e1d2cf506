// Package audithook is an exgroup extension that bridges dispatch
// lifecycle events to an immutable audit trail backend.
//
// Every block, clause, and chain hook emits a structured audit event
// through the [Recorder] interface. The extension assigns appropriate
// severity levels (info for normal operations, warning for propagating
// errors) and rich metadata (block ID, clause name, error text).
//
// # Usage
//
//	audithook.New(audithook.RecorderFunc(func(ctx context.Context, evt *audithook.AuditEvent) error {
//	    return trail.Write(ctx, evt.Action, evt.Resource, evt.ResourceID, evt.Metadata)
//	}))
//
// # Selective filtering
//
//	audithook.New(recorder,
//	    audithook.WithActions(
//	        audithook.ActionBlockPropagated,
//	        audithook.ActionErrorRaised,
//	    ),
//	)
package audithook
