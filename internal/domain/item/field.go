package item

// Field is the wire name of an item field.
type Field string

// Item fields.
const (
	FieldID         Field = "id"
	FieldName       Field = "name"
	FieldCategory   Field = "category"
	FieldPrice      Field = "price"
	FieldRating     Field = "rating"
	FieldTags       Field = "tags"
	FieldCreatedAt  Field = "created_at"
	FieldStock      Field = "stock"
	FieldVendor     Field = "vendor"
	FieldAttributes Field = "attributes"
)

// Kind is how a field compares when sorting.
type Kind int

const (
	// KindUnsortable marks collection-valued fields.
	KindUnsortable Kind = iota
	// KindText compares case-sensitively, byte-wise.
	KindText
	// KindNumber compares numerically.
	KindNumber
	// KindTime compares chronologically.
	KindTime
)

var fieldKinds = map[Field]Kind{
	FieldID:         KindText,
	FieldName:       KindText,
	FieldCategory:   KindText,
	FieldPrice:      KindNumber,
	FieldRating:     KindNumber,
	FieldTags:       KindUnsortable,
	FieldCreatedAt:  KindTime,
	FieldStock:      KindNumber,
	FieldVendor:     KindText,
	FieldAttributes: KindUnsortable,
}

// Fields returns every item field in wire order.
func Fields() []Field {
	return []Field{
		FieldID, FieldName, FieldCategory, FieldPrice, FieldRating,
		FieldTags, FieldCreatedAt, FieldStock, FieldVendor, FieldAttributes,
	}
}

// ParseField resolves a wire name. Matching is exact.
func ParseField(s string) (Field, bool) {
	f := Field(s)
	_, ok := fieldKinds[f]
	return f, ok
}

// Kind returns the comparison kind of f.
func (f Field) Kind() Kind { return fieldKinds[f] }

// Sortable reports whether f can be used as a sort key.
func (f Field) Sortable() bool { return f.Kind() != KindUnsortable }
