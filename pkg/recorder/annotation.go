package recorder

import (
	"github.com/google/uuid"

	"github.com/matzehuels/framescope/pkg/geometry"
)

// Scope is the parent context descendants record under.
type Scope struct {
	parentID string
}

// Root returns the scope of elements without a parent.
func Root() Scope { return Scope{} }

// ScopeOf returns the scope for descendants of the element with id.
func ScopeOf(id string) Scope { return Scope{parentID: id} }

// ParentID returns the id reported as parent by elements in this scope.
func (s Scope) ParentID() string { return s.parentID }

// IsRoot reports whether s is the root scope.
func (s Scope) IsRoot() bool { return s.parentID == "" }

// Annotation gives an element a stable identity across passes.
type Annotation struct {
	id string
}

// NewAnnotation returns an annotation for id, or for a fresh random id
// when id is empty. Keep the annotation with the element so the same id is
// reported on every pass.
func NewAnnotation(id string) Annotation {
	if id == "" {
		id = uuid.NewString()
	}
	return Annotation{id: id}
}

// ID returns the annotation's element id.
func (a Annotation) ID() string { return a.id }

// Scope returns the scope for this element's descendants.
func (a Annotation) Scope() Scope { return ScopeOf(a.id) }

// Record reports frame under parent and returns the scope descendants
// record under.
func (a Annotation) Record(rec *Recorder, parent Scope, frame geometry.Rect) Scope {
	rec.Report(a.id, parent.ParentID(), frame)
	return a.Scope()
}
