package shapefile

// Document is the decoded form of a shape file:
//
//	records:
//	  - name: User
//	    unknown: strict        # strict | strip | passthrough (inherited when empty)
//	    fields:
//	      - name: id
//	        type: int
//	      - name: email
//	        type: Optional[str]
//	        default: null      # null is None; no default key means required
//	  - name: Admin
//	    extends: User
//	    fields:
//	      - {name: level, type: int, default: 1}
type Document struct {
	Records []RecordDecl `json:"records" mapstructure:"records"`
}

// RecordDecl declares one record shape.
type RecordDecl struct {
	Name    string      `json:"name" mapstructure:"name"`
	Extends string      `json:"extends,omitempty" mapstructure:"extends"`
	Unknown string      `json:"unknown,omitempty" mapstructure:"unknown"`
	Fields  []FieldDecl `json:"fields" mapstructure:"fields"`
}

// FieldDecl declares one field. Type is a type expression (see package
// typeexpr). Default is nil when the key is absent and typedclass.None when
// it is null.
type FieldDecl struct {
	Name    string `json:"name" mapstructure:"name"`
	Type    string `json:"type" mapstructure:"type"`
	Default any    `json:"default,omitempty" mapstructure:"default"`
}
