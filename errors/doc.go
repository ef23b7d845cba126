// Package errors provides structured error types for the asset extractor.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending byte offset, the asset path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
//		Path("entry", "12").
//		Offset(0x1a2c).
//		Detail("bitmap needs %d bytes", 4096).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseRead, 0x1a2c, 4, 0x1a2d)
//	err := errors.TableNotFound("intro")
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind only:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseLocate, Kind: errors.KindTableNotFound}) {
//		// skip this script
//	}
package errors
