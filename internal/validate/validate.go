// Package validate checks client-supplied records against CUE schemas.
//
// The schemas live in schema.cue and are compiled once per Validator.
// Go values are encoded with their JSON field names, so the CUE field
// names match model's json tags.
package validate

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/storefront/internal/model"
)

//go:embed schema.cue
var schemaCUE string

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid input")

// Validator holds a compiled schema. cue.Context is not safe for concurrent
// use, so calls are serialized.
type Validator struct {
	mu       sync.Mutex
	ctx      *cue.Context
	storeDef cue.Value
	lineDef  cue.Value
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	v := &Validator{
		ctx:      ctx,
		storeDef: schema.LookupPath(cue.ParsePath("#StoreInput")),
		lineDef:  schema.LookupPath(cue.ParsePath("#LineItem")),
	}
	if !v.storeDef.Exists() || !v.lineDef.Exists() {
		return nil, fmt.Errorf("compile schema: missing definitions")
	}
	return v, nil
}

// StoreInput validates a store setup request. The phone number must already
// be normalized.
func (v *Validator) StoreInput(in model.StoreInput) error {
	return v.check(v.storeDef, in, "store input")
}

// LineItem validates one cart line.
func (v *Validator) LineItem(item model.LineItem) error {
	return v.check(v.lineDef, item, "line item")
}

func (v *Validator) check(def cue.Value, x any, what string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.ctx.Encode(x)
	if err := val.Err(); err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrInvalid, what, err)
	}
	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalid, what, formatCUEError(err))
	}
	return nil
}

// formatCUEError flattens a CUE error list into one line.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return msg
}
