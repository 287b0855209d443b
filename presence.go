package typedclass

// Presence is the bit flag recorded per field at construction.
type Presence uint8

const (
	PresenceSupplied       Presence = 1 << iota // The caller supplied the field.
	PresenceWasNone                             // The supplied value was None.
	PresenceDefaultApplied                      // The declared default was used.
)

// PresenceMap maps JSON Pointers ("/field") to Presence flags.
type PresenceMap map[string]Presence

// PresenceMap returns the presence flags of every field keyed by JSON Pointer.
func (in *Instance) PresenceMap() PresenceMap {
	pm := make(PresenceMap, len(in.presence))
	for i, f := range in.shape.fields {
		pm[Root().Field(f.Name).Pointer()] = in.presence[i]
	}
	return pm
}
