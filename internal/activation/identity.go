package activation

import "fmt"

// Identity names the component instance an activation belongs to: its
// class (the callback list to look up), the DOM instance it will scan for
// at execution time, and, optionally, the data-hash naming the factory
// that must produce its callback data. A nil DataHash means the activation
// has no associated data object.
type Identity struct {
	ClassID    string
	InstanceID string
	DataHash   *string
}

// hasDataHash reports whether this identity names a data factory.
func (id Identity) hasDataHash() bool {
	return id.DataHash != nil
}

func (id Identity) dataHash() string {
	if id.DataHash == nil {
		return ""
	}
	return *id.DataHash
}

func (id Identity) String() string {
	if id.DataHash == nil {
		return fmt.Sprintf("%s#%s", id.ClassID, id.InstanceID)
	}
	return fmt.Sprintf("%s#%s@%s", id.ClassID, id.InstanceID, *id.DataHash)
}
