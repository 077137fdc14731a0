// Package errors provides structured errors for the ringside engine and its
// service surfaces.
//
// Every error carries a Code, a user facing Message, an optional Cause and
// free-form metadata. Engine packages attach a "reason" entry so callers can
// tell an off-board coordinate from an illegal move without string matching.
//
// # Basic Usage
//
//	err := errors.NotFound("match not found").WithMeta("match_id", id)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load match")
//	}
//
//	if errors.IsNotFound(err) {
//	    // start a fresh match
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("width", cfg.Width, 2, 64, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients recover the structured
// error with errors.FromGRPCError. Metadata travels as a
// google.protobuf.Struct status detail.
//
// # Layer Guidelines
//
// Engine packages:
//   - Reject illegal commands with OutOfRange / FailedPrecondition errors
//   - Tag them with a reason via WithReason; callers read it back with GetReason
//
// Repository layer:
//   - Return NotFound for missing snapshots
//   - Wrap redis errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Wrap engine and repository errors with match context
package errors
