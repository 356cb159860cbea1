package stage

import "fmt"

// Each stage wraps failures of underlying libraries in its own error kind, so
// the orchestrator and the caller always see a stage-scoped type with the
// originating cause attached.

type IngestionError struct{ Err error }

func (e *IngestionError) Error() string { return fmt.Sprintf("data ingestion failed: %v", e.Err) }
func (e *IngestionError) Unwrap() error { return e.Err }

type ValidationError struct{ Err error }

func (e *ValidationError) Error() string { return fmt.Sprintf("data validation failed: %v", e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

type TransformationError struct{ Err error }

func (e *TransformationError) Error() string {
	return fmt.Sprintf("data transformation failed: %v", e.Err)
}
func (e *TransformationError) Unwrap() error { return e.Err }

type ModelTrainerError struct{ Err error }

func (e *ModelTrainerError) Error() string { return fmt.Sprintf("model training failed: %v", e.Err) }
func (e *ModelTrainerError) Unwrap() error { return e.Err }

type EvaluationError struct{ Err error }

func (e *EvaluationError) Error() string { return fmt.Sprintf("model evaluation failed: %v", e.Err) }
func (e *EvaluationError) Unwrap() error { return e.Err }

type PushError struct{ Err error }

func (e *PushError) Error() string { return fmt.Sprintf("model push failed: %v", e.Err) }
func (e *PushError) Unwrap() error { return e.Err }
