package envelope

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// decodeJSONToCty parses raw JSON text into a cty.Value, inferring its type
// structurally. Called fresh on every data factory invocation (never
// cached), which is what gives activations sharing a data-hash the "fresh
// data" guarantee of spec.md §8: a cty.Value is immutable, and a new one is
// built from the source text every time.
func decodeJSONToCty(raw string) (cty.Value, error) {
	if raw == "" {
		return cty.NilVal, nil
	}
	ty, err := ctyjson.ImpliedType([]byte(raw))
	if err != nil {
		return cty.NilVal, fmt.Errorf("envelope: could not infer type of json var: %w", err)
	}
	v, err := ctyjson.Unmarshal([]byte(raw), ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("envelope: could not unmarshal json var: %w", err)
	}
	return v, nil
}
