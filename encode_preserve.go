package typedclass

// EncodePreserving returns the field values as the caller supplied them:
//   - Fields materialized only by defaults (PresenceDefaultApplied) are left out.
//   - Fields explicitly supplied as None are kept as nil.
//   - Passthrough extras are kept.
//
// Feeding the result back into Shape.New yields an equal instance.
func (in *Instance) EncodePreserving() map[string]any {
	out := make(map[string]any, len(in.values)+len(in.extra))
	for i, f := range in.shape.fields {
		if in.presence[i]&PresenceSupplied == 0 {
			continue
		}
		v := in.values[i]
		if IsNone(v) {
			v = nil
		}
		out[f.Name] = v
	}
	for k, v := range in.extra {
		out[k] = v
	}
	return out
}
