package assets

import "fmt"

// BadKindError is returned when MarkLoaded, IsLoaded or WaitFor is called
// with a Kind outside {KindScript, KindStylesheet}.
type BadKindError struct {
	Kind Kind
}

func (e *BadKindError) Error() string {
	return fmt.Sprintf("assets: unknown asset kind %d", e.Kind)
}

// BadTagError is returned when a TagDescriptor's Tag field does not match
// the operation it was passed to (e.g. a "link" tag passed to LoadScript).
type BadTagError struct {
	Want, Got string
}

func (e *BadTagError) Error() string {
	return fmt.Sprintf("assets: expected tag %q, got %q", e.Want, e.Got)
}
