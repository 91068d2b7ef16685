package forms

import (
	"context"
	"fmt"

	"github.com/jsvantner/minca/internal/common"
	"github.com/jsvantner/minca/internal/models"
)

// State is the dialog lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFieldError State = "field_error"
	StateFatal      State = "fatal"
)

// Mode distinguishes a blank create dialog from an edit of a loaded record.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// SubmitFunc performs the create/update call for the current form values.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// DeleteFunc performs the delete call for the open record.
type DeleteFunc func(ctx context.Context) error

// Controller is the per-dialog state machine. It owns the form values,
// runs client-side validation before submission, and reconciles server-side
// 422 responses back onto fields. One dialog per entity is open at a time,
// so calls are not synchronized.
type Controller struct {
	schema Schema
	logger *common.Logger

	state       State
	mode        Mode
	recordID    int64
	values      map[string]string
	fieldErrors map[string]string
	fatalErr    error
	deleteErr   error
}

// NewController creates an idle controller for the given schema.
func NewController(schema Schema, logger *common.Logger) *Controller {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Controller{
		schema: schema,
		logger: logger,
		state:  StateIdle,
	}
}

// Open starts a blank create dialog.
func (c *Controller) Open() {
	c.reset()
	c.mode = ModeCreate
	c.state = StateEditing
}

// OpenWith starts an edit dialog populated from the target record.
func (c *Controller) OpenWith(recordID int64, values map[string]string) {
	c.reset()
	c.mode = ModeEdit
	c.recordID = recordID
	for k, v := range values {
		c.values[k] = v
	}
	c.state = StateEditing
}

// Close dismisses the dialog and discards all form state.
func (c *Controller) Close() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.mode = ""
	c.recordID = 0
	c.values = make(map[string]string)
	c.fieldErrors = make(map[string]string)
	c.fatalErr = nil
	c.deleteErr = nil
}

// SetField updates one form value and clears that field's error along with
// any pending delete error.
func (c *Controller) SetField(name, value string) {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	c.values[name] = value
	delete(c.fieldErrors, name)
	c.deleteErr = nil
}

// State returns the current dialog state.
func (c *Controller) State() State { return c.state }

// Mode returns create or edit.
func (c *Controller) Mode() Mode { return c.mode }

// RecordID returns the ID of the record being edited, 0 for create.
func (c *Controller) RecordID() int64 { return c.recordID }

// Value returns one form value.
func (c *Controller) Value(name string) string { return c.values[name] }

// Values returns a copy of the current form values.
func (c *Controller) Values() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// FieldError returns the message for one field, empty when clean.
func (c *Controller) FieldError(name string) string { return c.fieldErrors[name] }

// FieldErrors returns a copy of all field messages.
func (c *Controller) FieldErrors() map[string]string {
	out := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		out[k] = v
	}
	return out
}

// FatalError returns the page-level failure, if any.
func (c *Controller) FatalError() error { return c.fatalErr }

// DeleteError returns the blocked-delete failure shown in its own dialog.
func (c *Controller) DeleteError() error { return c.deleteErr }

// Submit validates the form and runs the mutation. Client-side validation
// failures and server 422s land in field errors with the dialog still open;
// anything else is fatal. On success the dialog closes and the caller
// applies the entity's side-effect contract (ledger re-fetch, category
// list upsert).
func (c *Controller) Submit(ctx context.Context, fn SubmitFunc) error {
	if c.state != StateEditing && c.state != StateFieldError {
		return fmt.Errorf("submit from state %q", c.state)
	}

	c.state = StateValidating
	if errs := c.schema.Validate(c.values); len(errs) > 0 {
		c.fieldErrors = errs
		c.state = StateFieldError
		return &models.ValidationError{Fields: errs}
	}

	c.state = StateSubmitting
	err := fn(ctx, c.Values())
	if err == nil {
		c.state = StateSuccess
		c.logger.Debug().Str("entity", c.schema.Entity).Str("mode", string(c.mode)).Msg("form submitted")
		return nil
	}

	if ve, ok := models.AsValidation(err); ok {
		c.applyServerValidation(ve)
		c.state = StateFieldError
		return err
	}

	c.fatalErr = err
	c.state = StateFatal
	return err
}

// applyServerValidation merges a 422 onto the form without dropping any
// server-provided field, mapped or not.
func (c *Controller) applyServerValidation(ve *models.ValidationError) {
	for field, msg := range ve.Fields {
		c.fieldErrors[field] = msg
	}
	if len(ve.Fields) == 0 && ve.Message != "" && c.schema.FlatMessageField != "" {
		c.fieldErrors[c.schema.FlatMessageField] = ve.Message
	}
}

// Delete removes the open record. A conflict (e.g. category with dependent
// transactions) keeps the dialog open and surfaces a dedicated non-field
// error; success closes the dialog.
func (c *Controller) Delete(ctx context.Context, fn DeleteFunc) error {
	if c.state != StateEditing && c.state != StateFieldError {
		return fmt.Errorf("delete from state %q", c.state)
	}
	if c.mode != ModeEdit {
		return fmt.Errorf("delete requires an open record")
	}

	err := fn(ctx)
	if err == nil {
		c.state = StateSuccess
		c.logger.Debug().Str("entity", c.schema.Entity).Int64("id", c.recordID).Msg("record deleted")
		return nil
	}

	if _, ok := models.AsConflict(err); ok {
		c.deleteErr = err
		c.state = StateEditing
		return err
	}

	c.fatalErr = err
	c.state = StateFatal
	return err
}
