package dashboard

import (
	"github.com/dfagundes/prodboard/internal/store"
)

// ValidationError is a recoverable form error; the handler re-prompts with
// the message instead of failing the request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Submission is the typed /register form payload. Quantity fields bind
// strictly: gin rejects non-numeric input outright rather than coercing
// it to zero, and empty fields bind to zero.
type Submission struct {
	Model        string `form:"modelo"`
	AssemblyOp   string `form:"op_montagem"`
	AssembledQty int    `form:"qty_montado"`
	PaintOp      string `form:"op_pintura"`
	PaintedQty   int    `form:"qty_pintado"`
	TestOp       string `form:"op_teste"`
	TestedQty    int    `form:"qty_testado"`
	ReworkOp     string `form:"op_retrabalho"`
	ReworkQty    int    `form:"qty_retrabalho"`
	Note         string `form:"observacao"`
}

// Validate checks presence of the model and that quantities are not
// negative. Partial submissions (a single pipeline stage) are valid.
func (s *Submission) Validate() *ValidationError {
	if s.Model == "" {
		return &ValidationError{Message: "Selecione o modelo."}
	}
	for _, q := range []int{s.AssembledQty, s.PaintedQty, s.TestedQty, s.ReworkQty} {
		if q < 0 {
			return &ValidationError{Message: "Quantidades não podem ser negativas."}
		}
	}
	return nil
}

// Draft converts the submission into a store draft.
func (s *Submission) Draft() store.Draft {
	return store.Draft{
		Model:        s.Model,
		AssemblyOp:   s.AssemblyOp,
		AssembledQty: s.AssembledQty,
		PaintOp:      s.PaintOp,
		PaintedQty:   s.PaintedQty,
		TestOp:       s.TestOp,
		TestedQty:    s.TestedQty,
		ReworkOp:     s.ReworkOp,
		ReworkQty:    s.ReworkQty,
		Note:         s.Note,
	}
}
