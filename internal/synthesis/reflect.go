package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"briefweaver/internal/llmgw"
	"briefweaver/internal/models"
	"briefweaver/internal/promptlib"
)

// ReflectionTemperature matches the gateway contract's <=0.3 ceiling for
// reflection (spec.md §4.1).
const ReflectionTemperature = 0.3

// Reflector critiques a synthesis document and, when the critique flags
// it as shallow, asks for one refinement pass (spec.md §4.15).
type Reflector struct {
	gw                llmgw.Gateway
	refinementTrigger float64
}

// NewReflector builds a Reflector. A document scoring below refinementTrigger, or
// carrying at least one shallow area, is sent back for one refinement
// pass; spec.md §4.15 sets the default threshold at 8.0.
func NewReflector(gw llmgw.Gateway) *Reflector {
	return &Reflector{gw: gw, refinementTrigger: 8.0}
}

// Reflect scores doc, and if the score is below the refinement trigger or
// the critique names any shallow area, asks the model for a revision. The
// revision is accepted only if it preserves doc's exact key shape;
// otherwise the original document is kept and the refinement is discarded
// (spec.md §9 "schema invariant").
func (r *Reflector) Reflect(ctx context.Context, doc *models.SynthesisDocument) (*models.ReflectionResult, *models.SynthesisDocument, error) {
	result, err := r.critique(ctx, doc)
	if err != nil {
		// LLM failure: a minimally passing reflection lets the pipeline
		// proceed with the original document rather than blocking on the
		// critique pass (spec.md §4.15).
		return &models.ReflectionResult{DepthScore: r.refinementTrigger}, doc, nil
	}

	if result.DepthScore >= r.refinementTrigger && len(result.ShallowAreas) == 0 {
		return result, doc, nil
	}

	refined, err := r.refine(ctx, doc, result)
	if err != nil {
		return result, doc, nil
	}

	if !sameSchema(doc, refined) {
		// apierrors.ErrSchemaInvariantViolation: discard silently, keep doc.
		return result, doc, nil
	}

	refined.Metadata = doc.Metadata
	return result, refined, nil
}

func (r *Reflector) critique(ctx context.Context, doc *models.SynthesisDocument) (*models.ReflectionResult, error) {
	raw, err := r.gw.Analyze(ctx, promptlib.ReflectionSystem, documentJSON(doc), ReflectionTemperature, 0)
	if err != nil {
		return nil, err
	}
	var result models.ReflectionResult
	if err := llmgw.DecodeJSON(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *Reflector) refine(ctx context.Context, doc *models.SynthesisDocument, result *models.ReflectionResult) (*models.SynthesisDocument, error) {
	directive := fmt.Sprintf(
		promptlib.RefinementDirectiveTemplate,
		result.DepthScore,
		documentJSON(doc),
		strings.Join(result.ShallowAreas, "; "),
		strings.Join(result.MissingConnections, "; "),
		strings.Join(result.Recommendations, "; "),
	)

	raw, err := r.gw.Analyze(ctx, promptlib.ReflectionSystem, directive, ReflectionTemperature, 0)
	if err != nil {
		return nil, err
	}
	var refined models.SynthesisDocument
	if err := llmgw.DecodeJSON(raw, &refined); err != nil {
		return nil, err
	}
	return &refined, nil
}

func documentJSON(doc *models.SynthesisDocument) string {
	b, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// sameSchema reports whether a and b share exactly the same top-level and
// nested key set, ignoring values. A refinement that renames, adds, or
// drops a key violates the schema invariant and must be discarded
// (apierrors.ErrSchemaInvariantViolation).
func sameSchema(a, b *models.SynthesisDocument) bool {
	aShape, errA := shapeOf(a)
	bShape, errB := shapeOf(b)
	if errA != nil || errB != nil {
		return false
	}
	return schemaEqual(aShape, bShape)
}

func shapeOf(doc *models.SynthesisDocument) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var shape map[string]any
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, err
	}
	return shape, nil
}

// schemaEqual recursively compares the key shape of two decoded JSON
// values. Arrays compare their element shapes pairwise up to the shorter
// length: the schema invariant is about key structure, not element count,
// so a refinement that adds or removes array entries does not itself
// violate the invariant (apierrors.ErrSchemaInvariantViolation governs
// key renames/drops, not list length changes).
func schemaEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, aChild := range av {
			bChild, ok := bv[k]
			if !ok {
				return false
			}
			if !schemaEqual(aChild, bChild) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok {
			return false
		}
		if len(av) == 0 || len(bv) == 0 {
			return true
		}
		n := len(av)
		if len(bv) < n {
			n = len(bv)
		}
		for i := 0; i < n; i++ {
			if !schemaEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		_, bIsMap := b.(map[string]any)
		_, bIsSlice := b.([]any)
		return !bIsMap && !bIsSlice
	}
}
