// internal/errors/errors.go
package appErrors

import "fmt"

// Stage names reported back to callers when a pipeline stage fails.
const (
    StagePersona  = "persona"
    StageIdeas    = "ideas"
    StageCampaign = "campaign"
)

// ValidationError means the caller's input was unusable before any work ran.
type ValidationError struct {
    Msg string
}

func (e *ValidationError) Error() string {
    return e.Msg
}

func NewValidation(msg string) error {
    return &ValidationError{Msg: msg}
}

// GenerationError means the generative collaborator failed or timed out for a
// whole stage. The stage aborts; nothing partial is kept.
type GenerationError struct {
    Stage string
    Cause error
}

func (e *GenerationError) Error() string {
    return fmt.Sprintf("generation failed at %s stage: %v", e.Stage, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func NewGenerationFailed(stage string, cause error) error {
    return &GenerationError{Stage: stage, Cause: cause}
}

// EmptyResultError means generation ran but left zero usable content after
// malformed fields were dropped.
type EmptyResultError struct {
    Stage string
}

func (e *EmptyResultError) Error() string {
    return fmt.Sprintf("%s generation produced no usable content", e.Stage)
}

func NewEmptyResult(stage string) error {
    return &EmptyResultError{Stage: stage}
}

// ChannelError is scoped to a single campaign channel. It never aborts the
// sibling channels of the same campaign.
type ChannelError struct {
    Channel string
    Cause   error
}

func (e *ChannelError) Error() string {
    return fmt.Sprintf("content generation failed for channel %s: %v", e.Channel, e.Cause)
}

func (e *ChannelError) Unwrap() error { return e.Cause }

func NewChannelFailed(channel string, cause error) error {
    return &ChannelError{Channel: channel, Cause: cause}
}

// PersistenceError means the store rejected a write. The computed content is
// not lost: services return it alongside this error so callers can retry the
// write without re-invoking generation.
type PersistenceError struct {
    Collection string
    Cause      error
}

func (e *PersistenceError) Error() string {
    return fmt.Sprintf("failed to persist into %s: %v", e.Collection, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

func NewPersistenceFailed(collection string, cause error) error {
    return &PersistenceError{Collection: collection, Cause: cause}
}

// NotFoundError reports an unknown document id in a collection.
type NotFoundError struct {
    Collection string
    ID         string
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("%s document %s not found", e.Collection, e.ID)
}

func NewNotFound(collection, id string) error {
    return &NotFoundError{Collection: collection, ID: id}
}

// StorageUnavailableError means the underlying connection could not be
// established at all.
type StorageUnavailableError struct {
    Cause error
}

func (e *StorageUnavailableError) Error() string {
    return fmt.Sprintf("storage unavailable: %v", e.Cause)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Cause }

func NewStorageUnavailable(cause error) error {
    return &StorageUnavailableError{Cause: cause}
}

// StorageWriteError means the store accepted the connection but rejected the
// operation.
type StorageWriteError struct {
    Op         string
    Collection string
    Cause      error
}

func (e *StorageWriteError) Error() string {
    return fmt.Sprintf("storage %s on %s failed: %v", e.Op, e.Collection, e.Cause)
}

func (e *StorageWriteError) Unwrap() error { return e.Cause }

func NewStorageWrite(op, collection string, cause error) error {
    return &StorageWriteError{Op: op, Collection: collection, Cause: cause}
}
